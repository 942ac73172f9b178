package entities

import "time"

// SettlementAudit mirrors one dispute.resolved event into the ledger's own
// books, so finance can reconcile payouts without reaching into the
// arbitration context.
type SettlementAudit struct {
	AuditID       string    `json:"audit_id"`
	EventID       string    `json:"event_id"`
	DisputeID     int64     `json:"dispute_id"`
	Outcome       string    `json:"outcome"`
	RewardsPaid   int       `json:"rewards_paid"`
	PayoutsFailed int       `json:"payouts_failed"`
	TotalPaid     int64     `json:"total_paid"`
	RecordedAt    time.Time `json:"recorded_at"`
}
