package queries

import (
	"context"
	"strings"

	"tribunal/contexts/arbitration/dispute-service/domain/entities"
	domainerrors "tribunal/contexts/arbitration/dispute-service/domain/errors"
	"tribunal/contexts/arbitration/dispute-service/ports"
)

type DisputeQueries struct {
	Disputes ports.DisputeRepository
	Votes    ports.VoteRepository
	Evidence ports.EvidenceRepository
}

func (q DisputeQueries) GetDispute(ctx context.Context, disputeID int64) (entities.Dispute, error) {
	return q.Disputes.GetDispute(ctx, disputeID)
}

// ListDisputes filters by status when the string names one; an empty filter
// returns every dispute. Unknown status strings are an input error.
func (q DisputeQueries) ListDisputes(ctx context.Context, statusFilter string, limit int) ([]entities.Dispute, error) {
	filter := strings.TrimSpace(statusFilter)
	if filter == "" {
		return q.Disputes.ListDisputes(ctx, nil, limit)
	}
	status := entities.DisputeStatus(filter)
	switch status {
	case entities.DisputeStatusOpen, entities.DisputeStatusResolvedFor, entities.DisputeStatusResolvedAgainst:
		return q.Disputes.ListDisputes(ctx, &status, limit)
	default:
		return nil, domainerrors.ErrInvalidInput
	}
}

func (q DisputeQueries) GetVote(ctx context.Context, disputeID int64, arbiter string) (entities.Vote, error) {
	if _, err := q.Disputes.GetDispute(ctx, disputeID); err != nil {
		return entities.Vote{}, err
	}
	return q.Votes.GetVote(ctx, disputeID, strings.TrimSpace(arbiter))
}

// ListVotes returns the dispute's vote ledger in the order votes arrived.
func (q DisputeQueries) ListVotes(ctx context.Context, disputeID int64) ([]entities.Vote, error) {
	if _, err := q.Disputes.GetDispute(ctx, disputeID); err != nil {
		return nil, err
	}
	return q.Votes.ListVotes(ctx, disputeID)
}

func (q DisputeQueries) GetEvidence(ctx context.Context, disputeID int64, evidenceID int64) (entities.Evidence, error) {
	if _, err := q.Disputes.GetDispute(ctx, disputeID); err != nil {
		return entities.Evidence{}, err
	}
	return q.Evidence.GetEvidence(ctx, disputeID, evidenceID)
}

func (q DisputeQueries) ListEvidence(ctx context.Context, disputeID int64) ([]entities.Evidence, error) {
	if _, err := q.Disputes.GetDispute(ctx, disputeID); err != nil {
		return nil, err
	}
	return q.Evidence.ListEvidence(ctx, disputeID)
}

// Tally is a read-model convenience for operators watching a dispute.
type Tally struct {
	Dispute      entities.Dispute
	VoterCount   int
	StakeFor     int64
	StakeAgainst int64
}

func (q DisputeQueries) GetTally(ctx context.Context, disputeID int64) (Tally, error) {
	dispute, err := q.Disputes.GetDispute(ctx, disputeID)
	if err != nil {
		return Tally{}, err
	}
	votes, err := q.Votes.ListVotes(ctx, disputeID)
	if err != nil {
		return Tally{}, err
	}
	tally := Tally{Dispute: dispute, VoterCount: len(votes)}
	for _, vote := range votes {
		if vote.Choice == entities.VoteChoiceFor {
			tally.StakeFor += vote.Stake
		} else {
			tally.StakeAgainst += vote.Stake
		}
	}
	return tally, nil
}
