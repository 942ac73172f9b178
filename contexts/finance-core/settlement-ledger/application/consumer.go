package application

import (
	"context"
	"encoding/json"
	"strings"

	"tribunal/contexts/finance-core/settlement-ledger/domain/entities"
	domainerrors "tribunal/contexts/finance-core/settlement-ledger/domain/errors"
	"tribunal/contexts/finance-core/settlement-ledger/ports"
)

// TopicDisputeResolved is the arbitration event stream the ledger mirrors.
const TopicDisputeResolved = "dispute.resolved"

type disputeResolvedPayload struct {
	DisputeID     int64  `json:"dispute_id"`
	Outcome       string `json:"outcome"`
	RewardsPaid   int    `json:"rewards_paid"`
	PayoutsFailed int    `json:"payouts_failed"`
	TotalPaid     int64  `json:"total_paid"`
}

// HandleDisputeResolved records one settlement audit row per resolution
// event. Redelivered events are recognized by event id and skipped.
func (s Service) HandleDisputeResolved(ctx context.Context, envelope ports.EventEnvelope) (entities.SettlementAudit, bool, error) {
	eventID := strings.TrimSpace(envelope.EventID)
	if eventID == "" {
		return entities.SettlementAudit{}, false, domainerrors.ErrInvalidInput
	}

	var payload disputeResolvedPayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		return entities.SettlementAudit{}, false, domainerrors.ErrInvalidInput
	}
	if payload.DisputeID <= 0 || strings.TrimSpace(payload.Outcome) == "" {
		return entities.SettlementAudit{}, false, domainerrors.ErrInvalidInput
	}

	if s.EventDedup != nil {
		payloadHash := hashPayload(map[string]any{
			"dispute_id":     payload.DisputeID,
			"outcome":        payload.Outcome,
			"rewards_paid":   payload.RewardsPaid,
			"payouts_failed": payload.PayoutsFailed,
			"total_paid":     payload.TotalPaid,
		})
		alreadyProcessed, err := s.EventDedup.ReserveEvent(ctx, eventID, payloadHash, s.now().Add(s.eventDedupTTL()))
		if err != nil {
			return entities.SettlementAudit{}, false, err
		}
		if alreadyProcessed {
			return entities.SettlementAudit{}, true, nil
		}
	}

	auditID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.SettlementAudit{}, false, err
	}
	audit := entities.SettlementAudit{
		AuditID:       strings.TrimSpace(auditID),
		EventID:       eventID,
		DisputeID:     payload.DisputeID,
		Outcome:       payload.Outcome,
		RewardsPaid:   payload.RewardsPaid,
		PayoutsFailed: payload.PayoutsFailed,
		TotalPaid:     payload.TotalPaid,
		RecordedAt:    s.now(),
	}
	if err := s.Repo.RecordSettlement(ctx, audit); err != nil {
		return entities.SettlementAudit{}, false, err
	}

	ResolveLogger(s.Logger).Info("resolution settlement recorded",
		"event", "ledger_settlement_recorded",
		"module", "finance-core/settlement-ledger",
		"layer", "application",
		"event_id", eventID,
		"dispute_id", payload.DisputeID,
		"outcome", payload.Outcome,
		"total_paid", payload.TotalPaid,
	)
	return audit, false, nil
}
