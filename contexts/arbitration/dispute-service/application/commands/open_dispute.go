package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "tribunal/contexts/arbitration/dispute-service/application"
	"tribunal/contexts/arbitration/dispute-service/domain/entities"
	domainerrors "tribunal/contexts/arbitration/dispute-service/domain/errors"
	"tribunal/contexts/arbitration/dispute-service/ports"
)

// OpenDisputeCommand is the write-model input for dispute creation. The
// idempotency key is optional; when present, retries replay the original
// dispute instead of opening a second one.
type OpenDisputeCommand struct {
	Creator        string
	Description    string
	ResolutionFee  int64
	IdempotencyKey string
}

type OpenDisputeResult struct {
	Dispute  entities.Dispute
	Replayed bool
}

type OpenDisputeUseCase struct {
	Disputes       ports.DisputeRepository
	Idempotency    ports.IdempotencyStore
	Outbox         ports.OutboxStore
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

// Execute opens a dispute with zero tallies and an empty vote ledger. No
// value moves at creation: the resolution fee is a promised reward pool paid
// out of the treasury at resolve time.
func (uc OpenDisputeUseCase) Execute(ctx context.Context, cmd OpenDisputeCommand) (OpenDisputeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	creator := strings.TrimSpace(cmd.Creator)
	description := strings.TrimSpace(cmd.Description)
	logger.Info("dispute open started",
		"event", "arbitration_dispute_open_started",
		"module", "arbitration/dispute-service",
		"layer", "application",
		"creator", creator,
	)
	if creator == "" || description == "" || len(description) > entities.MaxDescriptionLength || cmd.ResolutionFee < 0 {
		logger.Warn("dispute open validation failed",
			"event", "arbitration_dispute_open_validation_failed",
			"module", "arbitration/dispute-service",
			"layer", "application",
			"creator", creator,
			"description_length", len(description),
			"resolution_fee", cmd.ResolutionFee,
		)
		return OpenDisputeResult{}, domainerrors.ErrInvalidInput
	}

	now := resolveNow(uc.Clock)
	key := strings.TrimSpace(cmd.IdempotencyKey)
	requestHash := ""
	if key != "" {
		hash, err := hashRequest(map[string]any{
			"op":             "open_dispute",
			"creator":        creator,
			"description":    description,
			"resolution_fee": cmd.ResolutionFee,
		})
		if err != nil {
			return OpenDisputeResult{}, err
		}
		requestHash = hash
		if record, found, err := uc.Idempotency.Get(ctx, key, now); err != nil {
			logger.Error("dispute open idempotency lookup failed",
				"event", "arbitration_dispute_open_idempotency_lookup_failed",
				"module", "arbitration/dispute-service",
				"layer", "application",
				"creator", creator,
				"error", err.Error(),
			)
			return OpenDisputeResult{}, err
		} else if found {
			if record.RequestHash != requestHash {
				return OpenDisputeResult{}, domainerrors.ErrIdempotencyConflict
			}
			dispute, err := uc.Disputes.GetDispute(ctx, record.DisputeID)
			if err != nil {
				return OpenDisputeResult{}, err
			}
			logger.Info("dispute open replayed",
				"event", "arbitration_dispute_open_replayed",
				"module", "arbitration/dispute-service",
				"layer", "application",
				"dispute_id", dispute.DisputeID,
				"creator", creator,
			)
			return OpenDisputeResult{Dispute: dispute, Replayed: true}, nil
		}
	}

	dispute, err := uc.Disputes.CreateDispute(ctx, entities.Dispute{
		Creator:       creator,
		Description:   description,
		Status:        entities.DisputeStatusOpen,
		ResolutionFee: cmd.ResolutionFee,
		OpenedAt:      now,
	})
	if err != nil {
		return OpenDisputeResult{}, err
	}

	if err := appendOutboxEvent(ctx, uc.Outbox, uc.IDGen, TopicDisputeOpened, dispute.DisputeID, now, map[string]any{
		"dispute_id":     dispute.DisputeID,
		"creator":        dispute.Creator,
		"resolution_fee": dispute.ResolutionFee,
		"opened_at":      now.Format(time.RFC3339),
	}); err != nil {
		return OpenDisputeResult{}, err
	}

	if key != "" {
		if err := uc.Idempotency.Put(ctx, ports.IdempotencyRecord{
			Key:         key,
			RequestHash: requestHash,
			Operation:   "open_dispute",
			DisputeID:   dispute.DisputeID,
			ExpiresAt:   now.Add(resolveTTL(uc.IdempotencyTTL)),
		}); err != nil {
			return OpenDisputeResult{}, err
		}
	}

	logger.Info("dispute opened",
		"event", "arbitration_dispute_opened",
		"module", "arbitration/dispute-service",
		"layer", "application",
		"dispute_id", dispute.DisputeID,
		"creator", dispute.Creator,
		"resolution_fee", dispute.ResolutionFee,
	)
	return OpenDisputeResult{Dispute: dispute}, nil
}
