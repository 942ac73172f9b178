package commands

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"tribunal/contexts/arbitration/dispute-service/ports"
)

const (
	TopicDisputeOpened     = "dispute.opened"
	TopicEvidenceSubmitted = "dispute.evidence_submitted"
	TopicVoteCast          = "dispute.vote_cast"
	TopicDisputeResolved   = "dispute.resolved"
)

func newArbitrationEnvelope(
	eventID string,
	eventType string,
	disputeID int64,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Events are partitioned by dispute so a consumer sees one dispute's
	// lifecycle in order.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "dispute-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "dispute_id",
		PartitionKey:     strconv.FormatInt(disputeID, 10),
		Data:             payload,
	}, nil
}

// appendOutboxEvent is the shared command-side emit path. Outbox is optional
// for pure read/test wiring, so nil is treated as no-op.
func appendOutboxEvent(
	ctx context.Context,
	outbox ports.OutboxStore,
	idgen ports.IDGenerator,
	eventType string,
	disputeID int64,
	occurredAt time.Time,
	data map[string]any,
) error {
	if outbox == nil {
		return nil
	}
	eventID, err := idgen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newArbitrationEnvelope(eventID, eventType, disputeID, occurredAt, data)
	if err != nil {
		return err
	}
	return outbox.AppendOutbox(ctx, envelope)
}
