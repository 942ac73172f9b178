package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "tribunal/contexts/arbitration/dispute-service/application"
	"tribunal/contexts/arbitration/dispute-service/domain/entities"
	domainerrors "tribunal/contexts/arbitration/dispute-service/domain/errors"
	"tribunal/contexts/arbitration/dispute-service/ports"
)

type CastVoteCommand struct {
	DisputeID int64
	Arbiter   string
	Choice    entities.VoteChoice
	Stake     int64
}

type CastVoteResult struct {
	Vote    entities.Vote
	Dispute entities.Dispute
}

type CastVoteUseCase struct {
	Disputes        ports.DisputeRepository
	Votes           ports.VoteRepository
	Directory       ports.ArbiterDirectory
	Ledger          ports.ValueTransferrer
	Outbox          ports.OutboxStore
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	Locks           *DisputeLocks
	MinimumStake    int64
	TreasuryAccount string
	Logger          *slog.Logger
}

// Execute records one immutable vote. Precondition checks run in a fixed
// order so callers always see the same failure for the same state:
// dispute exists, arbiter authorized, dispute open, stake sufficient, no
// prior vote, choice valid. The stake moves to the treasury before the vote
// is persisted; a vote that cannot persist refunds the stake best-effort.
// There is no replay affordance here: a repeated call must fail with
// ErrAlreadyVoted whatever side it names.
func (uc CastVoteUseCase) Execute(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	arbiter := strings.TrimSpace(cmd.Arbiter)
	logger.Info("vote cast started",
		"event", "arbitration_vote_cast_started",
		"module", "arbitration/dispute-service",
		"layer", "application",
		"dispute_id", cmd.DisputeID,
		"arbiter", arbiter,
		"choice", string(cmd.Choice),
		"stake", cmd.Stake,
	)

	if uc.Locks != nil {
		unlock := uc.Locks.Lock(cmd.DisputeID)
		defer unlock()
	}

	dispute, err := uc.Disputes.GetDispute(ctx, cmd.DisputeID)
	if err != nil {
		return CastVoteResult{}, err
	}

	authorized, err := uc.Directory.IsAuthorized(ctx, arbiter)
	if err != nil {
		return CastVoteResult{}, err
	}
	if !authorized {
		logger.Warn("vote cast by unauthorized identity",
			"event", "arbitration_vote_cast_unauthorized",
			"module", "arbitration/dispute-service",
			"layer", "application",
			"dispute_id", dispute.DisputeID,
			"arbiter", arbiter,
		)
		return CastVoteResult{}, domainerrors.ErrNotAuthorized
	}

	if !dispute.IsOpen() {
		return CastVoteResult{}, domainerrors.ErrDisputeClosed
	}

	if cmd.Stake <= 0 || cmd.Stake < uc.MinimumStake {
		logger.Warn("vote cast with insufficient stake",
			"event", "arbitration_vote_cast_insufficient_stake",
			"module", "arbitration/dispute-service",
			"layer", "application",
			"dispute_id", dispute.DisputeID,
			"arbiter", arbiter,
			"stake", cmd.Stake,
			"minimum_stake", uc.MinimumStake,
		)
		return CastVoteResult{}, domainerrors.ErrInsufficientStake
	}

	if _, err := uc.Votes.GetVote(ctx, dispute.DisputeID, arbiter); err == nil {
		return CastVoteResult{}, domainerrors.ErrAlreadyVoted
	} else if !errors.Is(err, domainerrors.ErrVoteNotFound) {
		return CastVoteResult{}, err
	}

	if !cmd.Choice.Valid() {
		return CastVoteResult{}, domainerrors.ErrInvalidVote
	}

	now := resolveNow(uc.Clock)
	stakeReason := fmt.Sprintf("dispute-%d-stake", dispute.DisputeID)
	if err := uc.Ledger.Transfer(ctx, arbiter, uc.TreasuryAccount, cmd.Stake, stakeReason); err != nil {
		logger.Warn("vote stake transfer failed",
			"event", "arbitration_vote_stake_transfer_failed",
			"module", "arbitration/dispute-service",
			"layer", "application",
			"dispute_id", dispute.DisputeID,
			"arbiter", arbiter,
			"stake", cmd.Stake,
			"error", err.Error(),
		)
		return CastVoteResult{}, fmt.Errorf("%w: %v", domainerrors.ErrStakeTransferFailed, err)
	}

	vote := entities.Vote{
		DisputeID: dispute.DisputeID,
		Arbiter:   arbiter,
		Choice:    cmd.Choice,
		Stake:     cmd.Stake,
		CastAt:    now,
	}
	updated, err := uc.Votes.RecordVote(ctx, vote)
	if err != nil {
		// The stake already moved; hand it back so a persistence fault does
		// not strand funds in the treasury.
		refundReason := fmt.Sprintf("dispute-%d-stake-refund", dispute.DisputeID)
		if refundErr := uc.Ledger.Transfer(ctx, uc.TreasuryAccount, arbiter, cmd.Stake, refundReason); refundErr != nil {
			logger.Error("vote stake refund failed",
				"event", "arbitration_vote_stake_refund_failed",
				"module", "arbitration/dispute-service",
				"layer", "application",
				"dispute_id", dispute.DisputeID,
				"arbiter", arbiter,
				"stake", cmd.Stake,
				"error", refundErr.Error(),
			)
		}
		return CastVoteResult{}, err
	}

	if err := appendOutboxEvent(ctx, uc.Outbox, uc.IDGen, TopicVoteCast, updated.DisputeID, now, map[string]any{
		"dispute_id":    updated.DisputeID,
		"arbiter":       vote.Arbiter,
		"choice":        string(vote.Choice),
		"stake":         vote.Stake,
		"votes_for":     updated.VotesFor,
		"votes_against": updated.VotesAgainst,
		"total_stake":   updated.TotalStake,
		"cast_at":       now.Format(time.RFC3339),
	}); err != nil {
		return CastVoteResult{}, err
	}

	logger.Info("vote cast",
		"event", "arbitration_vote_cast",
		"module", "arbitration/dispute-service",
		"layer", "application",
		"dispute_id", updated.DisputeID,
		"arbiter", vote.Arbiter,
		"choice", string(vote.Choice),
		"stake", vote.Stake,
		"votes_for", updated.VotesFor,
		"votes_against", updated.VotesAgainst,
		"total_stake", updated.TotalStake,
	)
	return CastVoteResult{Vote: vote, Dispute: updated}, nil
}
