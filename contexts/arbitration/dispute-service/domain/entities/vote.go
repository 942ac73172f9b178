package entities

import "time"

type VoteChoice string

const (
	VoteChoiceFor     VoteChoice = "for"
	VoteChoiceAgainst VoteChoice = "against"
)

func (c VoteChoice) Valid() bool {
	return c == VoteChoiceFor || c == VoteChoiceAgainst
}

// WinsUnder reports whether a vote with this choice sits on the winning side
// of the given outcome.
func (c VoteChoice) WinsUnder(outcome DisputeStatus) bool {
	if c == VoteChoiceFor {
		return outcome == DisputeStatusResolvedFor
	}
	return outcome == DisputeStatusResolvedAgainst
}

// Vote is immutable once recorded. The (DisputeID, Arbiter) pair is the
// ledger key: an arbiter gets exactly one vote per dispute.
type Vote struct {
	DisputeID int64
	Arbiter   string
	Choice    VoteChoice
	Stake     int64
	CastAt    time.Time
}
