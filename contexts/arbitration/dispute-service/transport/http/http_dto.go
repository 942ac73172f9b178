package httptransport

type OpenDisputeRequest struct {
	Description   string `json:"description"`
	ResolutionFee int64  `json:"resolution_fee"`
}

type DisputeDTO struct {
	DisputeID     int64  `json:"dispute_id"`
	Creator       string `json:"creator"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	VotesFor      int64  `json:"votes_for"`
	VotesAgainst  int64  `json:"votes_against"`
	TotalStake    int64  `json:"total_stake"`
	ResolutionFee int64  `json:"resolution_fee"`
	OpenedAt      string `json:"opened_at"`
	ResolvedAt    string `json:"resolved_at,omitempty"`
}

type OpenDisputeResponse struct {
	Dispute  DisputeDTO `json:"dispute"`
	Replayed bool       `json:"replayed,omitempty"`
}

type ListDisputesResponse struct {
	Items []DisputeDTO `json:"items"`
}

type SubmitEvidenceRequest struct {
	Digest string `json:"digest"`
}

type EvidenceDTO struct {
	EvidenceID  int64  `json:"evidence_id"`
	DisputeID   int64  `json:"dispute_id"`
	Submitter   string `json:"submitter"`
	Digest      string `json:"digest"`
	SubmittedAt string `json:"submitted_at"`
}

type SubmitEvidenceResponse struct {
	Evidence EvidenceDTO `json:"evidence"`
	Replayed bool        `json:"replayed,omitempty"`
}

type ListEvidenceResponse struct {
	Items []EvidenceDTO `json:"items"`
}

type CastVoteRequest struct {
	Choice string `json:"choice"`
	Stake  int64  `json:"stake"`
}

type VoteDTO struct {
	DisputeID int64  `json:"dispute_id"`
	Arbiter   string `json:"arbiter"`
	Choice    string `json:"choice"`
	Stake     int64  `json:"stake"`
	CastAt    string `json:"cast_at"`
}

type CastVoteResponse struct {
	Vote    VoteDTO    `json:"vote"`
	Dispute DisputeDTO `json:"dispute"`
}

type ListVotesResponse struct {
	Items []VoteDTO `json:"items"`
}

type ResolveDisputeResponse struct {
	DisputeID          int64  `json:"dispute_id"`
	Outcome            string `json:"outcome"`
	WinningVotes       int64  `json:"winning_votes"`
	RewardPerStakeUnit int64  `json:"reward_per_stake_unit"`
	RewardsPaid        int    `json:"rewards_paid"`
	PayoutsFailed      int    `json:"payouts_failed"`
	TotalPaid          int64  `json:"total_paid"`
	ResolvedAt         string `json:"resolved_at"`
}

type TallyResponse struct {
	Dispute      DisputeDTO `json:"dispute"`
	VoterCount   int        `json:"voter_count"`
	StakeFor     int64      `json:"stake_for"`
	StakeAgainst int64      `json:"stake_against"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
