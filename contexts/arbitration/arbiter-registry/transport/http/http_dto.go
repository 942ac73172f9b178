// Package httptransport defines the wire DTOs for the arbiter registry API.
package httptransport

// AuthorizeArbiterRequest asks the registry owner to add an arbiter.
type AuthorizeArbiterRequest struct {
	ArbiterID string `json:"arbiter_id"`
}

// ArbiterEntryDTO is one roster row on the wire.
type ArbiterEntryDTO struct {
	EntryID      string `json:"entry_id"`
	ArbiterID    string `json:"arbiter_id"`
	AuthorizedBy string `json:"authorized_by"`
	AuthorizedAt string `json:"authorized_at"`
}

// AuthorizeArbiterResponse reports the new roster row.
type AuthorizeArbiterResponse struct {
	Entry      ArbiterEntryDTO `json:"entry"`
	RosterSize int             `json:"roster_size"`
}

// RevokeArbiterResponse reports how many roster rows were removed.
type RevokeArbiterResponse struct {
	ArbiterID  string `json:"arbiter_id"`
	Removed    int    `json:"removed"`
	RosterSize int    `json:"roster_size"`
}

// RosterResponse lists the roster in insertion order.
type RosterResponse struct {
	Items []ArbiterEntryDTO `json:"items"`
	Count int               `json:"count"`
}

// ArbiterStatusResponse reports membership for a single arbiter.
type ArbiterStatusResponse struct {
	ArbiterID  string `json:"arbiter_id"`
	Authorized bool   `json:"authorized"`
}

// AuditEntryDTO is one audit row on the wire.
type AuditEntryDTO struct {
	AuditID    string `json:"audit_id"`
	Action     string `json:"action"`
	Actor      string `json:"actor"`
	ArbiterID  string `json:"arbiter_id"`
	Removed    int    `json:"removed"`
	OccurredAt string `json:"occurred_at"`
}

// AuditResponse lists audit rows newest first.
type AuditResponse struct {
	Items []AuditEntryDTO `json:"items"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
