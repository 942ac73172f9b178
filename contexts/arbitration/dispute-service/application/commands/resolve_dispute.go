package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "tribunal/contexts/arbitration/dispute-service/application"
	"tribunal/contexts/arbitration/dispute-service/domain/entities"
	domainerrors "tribunal/contexts/arbitration/dispute-service/domain/errors"
	"tribunal/contexts/arbitration/dispute-service/ports"
)

type ResolveDisputeCommand struct {
	DisputeID int64
	Caller    string
}

type ResolveDisputeResult struct {
	Dispute    entities.Dispute
	Resolution entities.Resolution
}

type ResolveDisputeUseCase struct {
	Disputes        ports.DisputeRepository
	Votes           ports.VoteRepository
	Directory       ports.ArbiterDirectory
	Ledger          ports.ValueTransferrer
	Outbox          ports.OutboxStore
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	Locks           *DisputeLocks
	TreasuryAccount string
	// StakeWeightedPayout switches the reward divisor from the winning-side
	// vote count (the historical behavior) to the winning-side stake sum.
	// Off by default: the count divisor is what downstream accounting was
	// built against, even though it overpays large stakes.
	StakeWeightedPayout bool
	Logger              *slog.Logger
}

// Execute closes out a dispute: majority outcome, reward rate from the
// resolution fee, one treasury payout per winning voter, then the terminal
// status write. Payouts are best-effort per voter; a failed transfer is
// counted and logged but never aborts the loop or the status transition.
// Losing stakes stay in the treasury.
func (uc ResolveDisputeUseCase) Execute(ctx context.Context, cmd ResolveDisputeCommand) (ResolveDisputeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	logger.Info("dispute resolve started",
		"event", "arbitration_dispute_resolve_started",
		"module", "arbitration/dispute-service",
		"layer", "application",
		"dispute_id", cmd.DisputeID,
		"caller", caller,
	)

	if uc.Locks != nil {
		unlock := uc.Locks.Lock(cmd.DisputeID)
		defer unlock()
	}

	dispute, err := uc.Disputes.GetDispute(ctx, cmd.DisputeID)
	if err != nil {
		return ResolveDisputeResult{}, err
	}

	authorized, err := uc.Directory.IsAuthorized(ctx, caller)
	if err != nil {
		return ResolveDisputeResult{}, err
	}
	if !authorized {
		logger.Warn("dispute resolve by unauthorized identity",
			"event", "arbitration_dispute_resolve_unauthorized",
			"module", "arbitration/dispute-service",
			"layer", "application",
			"dispute_id", dispute.DisputeID,
			"caller", caller,
		)
		return ResolveDisputeResult{}, domainerrors.ErrNotAuthorized
	}

	if !dispute.IsOpen() {
		return ResolveDisputeResult{}, domainerrors.ErrDisputeClosed
	}

	if dispute.TotalVotes() == 0 {
		logger.Warn("dispute resolve with empty ledger",
			"event", "arbitration_dispute_resolve_no_votes",
			"module", "arbitration/dispute-service",
			"layer", "application",
			"dispute_id", dispute.DisputeID,
		)
		return ResolveDisputeResult{}, domainerrors.ErrNoVotesCast
	}

	outcome := dispute.Outcome()
	winningVotes := dispute.WinningVotes()
	if winningVotes == 0 {
		return ResolveDisputeResult{}, domainerrors.ErrNoVotesCast
	}

	votes, err := uc.Votes.ListVotes(ctx, dispute.DisputeID)
	if err != nil {
		return ResolveDisputeResult{}, err
	}

	divisor := winningVotes
	if uc.StakeWeightedPayout {
		divisor = 0
		for _, vote := range votes {
			if vote.Choice.WinsUnder(outcome) {
				divisor += vote.Stake
			}
		}
		if divisor == 0 {
			return ResolveDisputeResult{}, domainerrors.ErrNoVotesCast
		}
	}
	rate := dispute.ResolutionFee / divisor

	now := resolveNow(uc.Clock)
	rewardReason := fmt.Sprintf("dispute-%d-reward", dispute.DisputeID)
	rewardsPaid := 0
	payoutsFailed := 0
	totalPaid := int64(0)
	for _, vote := range votes {
		if !vote.Choice.WinsUnder(outcome) {
			continue
		}
		reward := vote.Stake * rate
		if reward == 0 {
			// Integer division can zero the rate; nothing to move.
			continue
		}
		if err := uc.Ledger.Transfer(ctx, uc.TreasuryAccount, vote.Arbiter, reward, rewardReason); err != nil {
			payoutsFailed++
			logger.Error("dispute reward payout failed",
				"event", "arbitration_dispute_payout_failed",
				"module", "arbitration/dispute-service",
				"layer", "application",
				"dispute_id", dispute.DisputeID,
				"arbiter", vote.Arbiter,
				"reward", reward,
				"error", err.Error(),
			)
			continue
		}
		rewardsPaid++
		totalPaid += reward
	}

	updated, err := uc.Disputes.FinalizeDispute(ctx, dispute.DisputeID, outcome, now)
	if err != nil {
		logger.Error("dispute finalize failed after payouts",
			"event", "arbitration_dispute_finalize_failed",
			"module", "arbitration/dispute-service",
			"layer", "application",
			"dispute_id", dispute.DisputeID,
			"rewards_paid", rewardsPaid,
			"error", err.Error(),
		)
		return ResolveDisputeResult{}, err
	}

	if err := appendOutboxEvent(ctx, uc.Outbox, uc.IDGen, TopicDisputeResolved, updated.DisputeID, now, map[string]any{
		"dispute_id":            updated.DisputeID,
		"outcome":               string(outcome),
		"winning_votes":         winningVotes,
		"reward_per_stake_unit": rate,
		"rewards_paid":          rewardsPaid,
		"payouts_failed":        payoutsFailed,
		"total_paid":            totalPaid,
		"resolved_at":           now.Format(time.RFC3339),
	}); err != nil {
		return ResolveDisputeResult{}, err
	}

	logger.Info("dispute resolved",
		"event", "arbitration_dispute_resolved",
		"module", "arbitration/dispute-service",
		"layer", "application",
		"dispute_id", updated.DisputeID,
		"outcome", string(outcome),
		"winning_votes", winningVotes,
		"reward_per_stake_unit", rate,
		"rewards_paid", rewardsPaid,
		"payouts_failed", payoutsFailed,
		"total_paid", totalPaid,
	)
	return ResolveDisputeResult{
		Dispute: updated,
		Resolution: entities.Resolution{
			DisputeID:          updated.DisputeID,
			Outcome:            outcome,
			WinningVotes:       winningVotes,
			RewardPerStakeUnit: rate,
			RewardsPaid:        rewardsPaid,
			PayoutsFailed:      payoutsFailed,
			TotalPaid:          totalPaid,
			ResolvedAt:         now,
		},
	}, nil
}
