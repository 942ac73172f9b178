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

// SubmitEvidenceCommand attaches a content digest to an open dispute. The
// digest is stored blind: nothing here fetches or validates the payload it
// names.
type SubmitEvidenceCommand struct {
	DisputeID      int64
	Submitter      string
	Digest         string
	IdempotencyKey string
}

type SubmitEvidenceResult struct {
	Evidence entities.Evidence
	Replayed bool
}

type SubmitEvidenceUseCase struct {
	Disputes       ports.DisputeRepository
	Evidence       ports.EvidenceRepository
	Idempotency    ports.IdempotencyStore
	Outbox         ports.OutboxStore
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

func (uc SubmitEvidenceUseCase) Execute(ctx context.Context, cmd SubmitEvidenceCommand) (SubmitEvidenceResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	submitter := strings.TrimSpace(cmd.Submitter)
	digest := strings.ToLower(strings.TrimSpace(cmd.Digest))
	logger.Info("evidence submit started",
		"event", "arbitration_evidence_submit_started",
		"module", "arbitration/dispute-service",
		"layer", "application",
		"dispute_id", cmd.DisputeID,
		"submitter", submitter,
	)
	if submitter == "" || !entities.ValidDigest(digest) {
		logger.Warn("evidence submit validation failed",
			"event", "arbitration_evidence_submit_validation_failed",
			"module", "arbitration/dispute-service",
			"layer", "application",
			"dispute_id", cmd.DisputeID,
			"submitter", submitter,
		)
		return SubmitEvidenceResult{}, domainerrors.ErrInvalidInput
	}

	now := resolveNow(uc.Clock)
	key := strings.TrimSpace(cmd.IdempotencyKey)
	requestHash := ""
	if key != "" {
		hash, err := hashRequest(map[string]any{
			"op":         "submit_evidence",
			"dispute_id": cmd.DisputeID,
			"submitter":  submitter,
			"digest":     digest,
		})
		if err != nil {
			return SubmitEvidenceResult{}, err
		}
		requestHash = hash
		if record, found, err := uc.Idempotency.Get(ctx, key, now); err != nil {
			logger.Error("evidence submit idempotency lookup failed",
				"event", "arbitration_evidence_submit_idempotency_lookup_failed",
				"module", "arbitration/dispute-service",
				"layer", "application",
				"dispute_id", cmd.DisputeID,
				"error", err.Error(),
			)
			return SubmitEvidenceResult{}, err
		} else if found {
			if record.RequestHash != requestHash {
				return SubmitEvidenceResult{}, domainerrors.ErrIdempotencyConflict
			}
			evidence, err := uc.Evidence.GetEvidence(ctx, record.DisputeID, record.EvidenceID)
			if err != nil {
				return SubmitEvidenceResult{}, err
			}
			logger.Info("evidence submit replayed",
				"event", "arbitration_evidence_submit_replayed",
				"module", "arbitration/dispute-service",
				"layer", "application",
				"dispute_id", evidence.DisputeID,
				"evidence_id", evidence.EvidenceID,
			)
			return SubmitEvidenceResult{Evidence: evidence, Replayed: true}, nil
		}
	}

	dispute, err := uc.Disputes.GetDispute(ctx, cmd.DisputeID)
	if err != nil {
		return SubmitEvidenceResult{}, err
	}
	if !dispute.IsOpen() {
		logger.Warn("evidence submit rejected on closed dispute",
			"event", "arbitration_evidence_submit_dispute_closed",
			"module", "arbitration/dispute-service",
			"layer", "application",
			"dispute_id", dispute.DisputeID,
			"status", string(dispute.Status),
		)
		return SubmitEvidenceResult{}, domainerrors.ErrDisputeClosed
	}

	evidence, err := uc.Evidence.AppendEvidence(ctx, entities.Evidence{
		DisputeID:   dispute.DisputeID,
		Submitter:   submitter,
		Digest:      digest,
		SubmittedAt: now,
	})
	if err != nil {
		return SubmitEvidenceResult{}, err
	}

	if err := appendOutboxEvent(ctx, uc.Outbox, uc.IDGen, TopicEvidenceSubmitted, dispute.DisputeID, now, map[string]any{
		"dispute_id":   dispute.DisputeID,
		"evidence_id":  evidence.EvidenceID,
		"submitter":    evidence.Submitter,
		"digest":       evidence.Digest,
		"submitted_at": now.Format(time.RFC3339),
	}); err != nil {
		return SubmitEvidenceResult{}, err
	}

	if key != "" {
		if err := uc.Idempotency.Put(ctx, ports.IdempotencyRecord{
			Key:         key,
			RequestHash: requestHash,
			Operation:   "submit_evidence",
			DisputeID:   evidence.DisputeID,
			EvidenceID:  evidence.EvidenceID,
			ExpiresAt:   now.Add(resolveTTL(uc.IdempotencyTTL)),
		}); err != nil {
			return SubmitEvidenceResult{}, err
		}
	}

	logger.Info("evidence submitted",
		"event", "arbitration_evidence_submitted",
		"module", "arbitration/dispute-service",
		"layer", "application",
		"dispute_id", evidence.DisputeID,
		"evidence_id", evidence.EvidenceID,
		"submitter", evidence.Submitter,
	)
	return SubmitEvidenceResult{Evidence: evidence}, nil
}
