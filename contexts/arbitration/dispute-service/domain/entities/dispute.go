package entities

import "time"

type DisputeStatus string

const (
	DisputeStatusOpen            DisputeStatus = "open"
	DisputeStatusResolvedFor     DisputeStatus = "resolved-for"
	DisputeStatusResolvedAgainst DisputeStatus = "resolved-against"
)

// MaxDescriptionLength bounds dispute descriptions at creation time.
const MaxDescriptionLength = 500

type Dispute struct {
	DisputeID     int64
	Creator       string
	Description   string
	Status        DisputeStatus
	VotesFor      int64
	VotesAgainst  int64
	TotalStake    int64
	ResolutionFee int64
	OpenedAt      time.Time
	ResolvedAt    *time.Time
}

func (d Dispute) IsOpen() bool {
	return d.Status == DisputeStatusOpen
}

func (d Dispute) TotalVotes() int64 {
	return d.VotesFor + d.VotesAgainst
}

// Outcome applies the majority rule: the dispute resolves in favor only when
// votes for strictly exceed votes against. Ties resolve against.
func (d Dispute) Outcome() DisputeStatus {
	if d.VotesFor > d.VotesAgainst {
		return DisputeStatusResolvedFor
	}
	return DisputeStatusResolvedAgainst
}

// WinningVotes returns the vote count on the side Outcome selects.
func (d Dispute) WinningVotes() int64 {
	if d.Outcome() == DisputeStatusResolvedFor {
		return d.VotesFor
	}
	return d.VotesAgainst
}
