package entities

import "time"

// Resolution summarizes a completed resolve pass. PayoutsFailed counts
// winners whose reward transfer failed; those failures never roll back the
// status transition, so the count is the operator's signal to reconcile.
type Resolution struct {
	DisputeID          int64
	Outcome            DisputeStatus
	WinningVotes       int64
	RewardPerStakeUnit int64
	RewardsPaid        int
	PayoutsFailed      int
	TotalPaid          int64
	ResolvedAt         time.Time
}
