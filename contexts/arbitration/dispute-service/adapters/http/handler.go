package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"tribunal/contexts/arbitration/dispute-service/application/commands"
	"tribunal/contexts/arbitration/dispute-service/application/queries"
	"tribunal/contexts/arbitration/dispute-service/domain/entities"
	httptransport "tribunal/contexts/arbitration/dispute-service/transport/http"
)

type Handler struct {
	OpenDispute    commands.OpenDisputeUseCase
	SubmitEvidence commands.SubmitEvidenceUseCase
	CastVote       commands.CastVoteUseCase
	Resolve        commands.ResolveDisputeUseCase
	Queries        queries.DisputeQueries
	Logger         *slog.Logger
}

// OpenDisputeHandler godoc
// @Summary Open a dispute
// @Description Creates a dispute with zero tallies. The resolution fee funds winner rewards at resolve time.
// @Tags arbitration
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Creator identity"
// @Param Idempotency-Key header string false "Replay-safe retry key"
// @Param request body httptransport.OpenDisputeRequest true "Dispute payload"
// @Success 200 {object} httptransport.OpenDisputeResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/arbitration/v1/disputes [post]
func (h Handler) OpenDisputeHandler(
	ctx context.Context,
	userID string,
	idempotencyKey string,
	req httptransport.OpenDisputeRequest,
) (httptransport.OpenDisputeResponse, error) {
	result, err := h.OpenDispute.Execute(ctx, commands.OpenDisputeCommand{
		Creator:        userID,
		Description:    req.Description,
		ResolutionFee:  req.ResolutionFee,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return httptransport.OpenDisputeResponse{}, err
	}
	return httptransport.OpenDisputeResponse{
		Dispute:  mapDispute(result.Dispute),
		Replayed: result.Replayed,
	}, nil
}

// GetDisputeHandler godoc
// @Summary Get a dispute
// @Tags arbitration
// @Produce json
// @Param dispute_id path int true "Dispute id"
// @Success 200 {object} httptransport.DisputeDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/arbitration/v1/disputes/{dispute_id} [get]
func (h Handler) GetDisputeHandler(ctx context.Context, disputeID int64) (httptransport.DisputeDTO, error) {
	dispute, err := h.Queries.GetDispute(ctx, disputeID)
	if err != nil {
		return httptransport.DisputeDTO{}, err
	}
	return mapDispute(dispute), nil
}

// ListDisputesHandler godoc
// @Summary List disputes
// @Tags arbitration
// @Produce json
// @Param status query string false "Status filter: open, resolved-for, resolved-against"
// @Param limit query int false "Page size"
// @Success 200 {object} httptransport.ListDisputesResponse
// @Router /api/arbitration/v1/disputes [get]
func (h Handler) ListDisputesHandler(ctx context.Context, statusFilter string, limit int) (httptransport.ListDisputesResponse, error) {
	disputes, err := h.Queries.ListDisputes(ctx, statusFilter, limit)
	if err != nil {
		return httptransport.ListDisputesResponse{}, err
	}
	items := make([]httptransport.DisputeDTO, 0, len(disputes))
	for _, dispute := range disputes {
		items = append(items, mapDispute(dispute))
	}
	return httptransport.ListDisputesResponse{Items: items}, nil
}

// SubmitEvidenceHandler godoc
// @Summary Submit evidence
// @Description Appends a 32-byte hex digest to an open dispute. The payload itself stays off-system.
// @Tags arbitration
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Submitter identity"
// @Param Idempotency-Key header string false "Replay-safe retry key"
// @Param dispute_id path int true "Dispute id"
// @Param request body httptransport.SubmitEvidenceRequest true "Evidence payload"
// @Success 200 {object} httptransport.SubmitEvidenceResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/arbitration/v1/disputes/{dispute_id}/evidence [post]
func (h Handler) SubmitEvidenceHandler(
	ctx context.Context,
	userID string,
	idempotencyKey string,
	disputeID int64,
	req httptransport.SubmitEvidenceRequest,
) (httptransport.SubmitEvidenceResponse, error) {
	result, err := h.SubmitEvidence.Execute(ctx, commands.SubmitEvidenceCommand{
		DisputeID:      disputeID,
		Submitter:      userID,
		Digest:         req.Digest,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return httptransport.SubmitEvidenceResponse{}, err
	}
	return httptransport.SubmitEvidenceResponse{
		Evidence: mapEvidence(result.Evidence),
		Replayed: result.Replayed,
	}, nil
}

func (h Handler) GetEvidenceHandler(ctx context.Context, disputeID int64, evidenceID int64) (httptransport.EvidenceDTO, error) {
	evidence, err := h.Queries.GetEvidence(ctx, disputeID, evidenceID)
	if err != nil {
		return httptransport.EvidenceDTO{}, err
	}
	return mapEvidence(evidence), nil
}

func (h Handler) ListEvidenceHandler(ctx context.Context, disputeID int64) (httptransport.ListEvidenceResponse, error) {
	records, err := h.Queries.ListEvidence(ctx, disputeID)
	if err != nil {
		return httptransport.ListEvidenceResponse{}, err
	}
	items := make([]httptransport.EvidenceDTO, 0, len(records))
	for _, evidence := range records {
		items = append(items, mapEvidence(evidence))
	}
	return httptransport.ListEvidenceResponse{Items: items}, nil
}

// CastVoteHandler godoc
// @Summary Cast a stake-weighted vote
// @Description Records one immutable vote per arbiter per dispute; the stake moves to the treasury when the vote lands.
// @Tags arbitration
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Arbiter identity"
// @Param dispute_id path int true "Dispute id"
// @Param request body httptransport.CastVoteRequest true "Vote payload"
// @Success 200 {object} httptransport.CastVoteResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/arbitration/v1/disputes/{dispute_id}/votes [post]
func (h Handler) CastVoteHandler(
	ctx context.Context,
	userID string,
	disputeID int64,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	result, err := h.CastVote.Execute(ctx, commands.CastVoteCommand{
		DisputeID: disputeID,
		Arbiter:   userID,
		Choice:    entities.VoteChoice(req.Choice),
		Stake:     req.Stake,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		Vote:    mapVote(result.Vote),
		Dispute: mapDispute(result.Dispute),
	}, nil
}

func (h Handler) GetVoteHandler(ctx context.Context, disputeID int64, arbiter string) (httptransport.VoteDTO, error) {
	vote, err := h.Queries.GetVote(ctx, disputeID, arbiter)
	if err != nil {
		return httptransport.VoteDTO{}, err
	}
	return mapVote(vote), nil
}

func (h Handler) ListVotesHandler(ctx context.Context, disputeID int64) (httptransport.ListVotesResponse, error) {
	votes, err := h.Queries.ListVotes(ctx, disputeID)
	if err != nil {
		return httptransport.ListVotesResponse{}, err
	}
	items := make([]httptransport.VoteDTO, 0, len(votes))
	for _, vote := range votes {
		items = append(items, mapVote(vote))
	}
	return httptransport.ListVotesResponse{Items: items}, nil
}

// ResolveDisputeHandler godoc
// @Summary Resolve a dispute
// @Description Settles the majority outcome, pays winner rewards from the treasury, and closes the dispute for good.
// @Tags arbitration
// @Produce json
// @Param X-User-Id header string true "Caller identity (must be an authorized arbiter)"
// @Param dispute_id path int true "Dispute id"
// @Success 200 {object} httptransport.ResolveDisputeResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/arbitration/v1/disputes/{dispute_id}/resolve [post]
func (h Handler) ResolveDisputeHandler(ctx context.Context, userID string, disputeID int64) (httptransport.ResolveDisputeResponse, error) {
	result, err := h.Resolve.Execute(ctx, commands.ResolveDisputeCommand{
		DisputeID: disputeID,
		Caller:    userID,
	})
	if err != nil {
		return httptransport.ResolveDisputeResponse{}, err
	}
	return httptransport.ResolveDisputeResponse{
		DisputeID:          result.Resolution.DisputeID,
		Outcome:            string(result.Resolution.Outcome),
		WinningVotes:       result.Resolution.WinningVotes,
		RewardPerStakeUnit: result.Resolution.RewardPerStakeUnit,
		RewardsPaid:        result.Resolution.RewardsPaid,
		PayoutsFailed:      result.Resolution.PayoutsFailed,
		TotalPaid:          result.Resolution.TotalPaid,
		ResolvedAt:         result.Resolution.ResolvedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (h Handler) GetTallyHandler(ctx context.Context, disputeID int64) (httptransport.TallyResponse, error) {
	tally, err := h.Queries.GetTally(ctx, disputeID)
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return httptransport.TallyResponse{
		Dispute:      mapDispute(tally.Dispute),
		VoterCount:   tally.VoterCount,
		StakeFor:     tally.StakeFor,
		StakeAgainst: tally.StakeAgainst,
	}, nil
}

func mapDispute(dispute entities.Dispute) httptransport.DisputeDTO {
	dto := httptransport.DisputeDTO{
		DisputeID:     dispute.DisputeID,
		Creator:       dispute.Creator,
		Description:   dispute.Description,
		Status:        string(dispute.Status),
		VotesFor:      dispute.VotesFor,
		VotesAgainst:  dispute.VotesAgainst,
		TotalStake:    dispute.TotalStake,
		ResolutionFee: dispute.ResolutionFee,
		OpenedAt:      dispute.OpenedAt.UTC().Format(time.RFC3339),
	}
	if dispute.ResolvedAt != nil {
		dto.ResolvedAt = dispute.ResolvedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func mapVote(vote entities.Vote) httptransport.VoteDTO {
	return httptransport.VoteDTO{
		DisputeID: vote.DisputeID,
		Arbiter:   vote.Arbiter,
		Choice:    string(vote.Choice),
		Stake:     vote.Stake,
		CastAt:    vote.CastAt.UTC().Format(time.RFC3339),
	}
}

func mapEvidence(evidence entities.Evidence) httptransport.EvidenceDTO {
	return httptransport.EvidenceDTO{
		EvidenceID:  evidence.EvidenceID,
		DisputeID:   evidence.DisputeID,
		Submitter:   evidence.Submitter,
		Digest:      evidence.Digest,
		SubmittedAt: evidence.SubmittedAt.UTC().Format(time.RFC3339),
	}
}
