package entities

import "time"

// RegistryAction enumerates auditable roster mutations.
type RegistryAction string

const (
	ActionAuthorize RegistryAction = "authorize"
	ActionRevoke    RegistryAction = "revoke"
)

// AuditEntry records one roster mutation for the audit trail.
type AuditEntry struct {
	AuditID    string         `json:"audit_id"`
	Action     RegistryAction `json:"action"`
	Actor      string         `json:"actor"`
	Arbiter    string         `json:"arbiter"`
	Removed    int            `json:"removed"`
	OccurredAt time.Time      `json:"occurred_at"`
}
