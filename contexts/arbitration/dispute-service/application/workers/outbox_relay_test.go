package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"tribunal/contexts/arbitration/dispute-service/adapters/memory"
	"tribunal/contexts/arbitration/dispute-service/ports"
)

type capturedEvent struct {
	Topic    string
	Envelope ports.EventEnvelope
}

type stubPublisher struct {
	published []capturedEvent
	fail      error
}

func (p *stubPublisher) Publish(_ context.Context, topic string, envelope ports.EventEnvelope) error {
	if p.fail != nil {
		return p.fail
	}
	p.published = append(p.published, capturedEvent{Topic: topic, Envelope: envelope})
	return nil
}

func appendTestEnvelope(t *testing.T, store *memory.Store, eventID string, eventType string) {
	err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		OccurredAt:    time.Now().UTC(),
		SourceService: "dispute-service",
		TraceID:       eventID,
		SchemaVersion: 1,
		PartitionKey:  "1",
		Data:          []byte(`{"dispute_id":1}`),
	})
	if err != nil {
		t.Fatalf("append outbox %s: %v", eventID, err)
	}
}

func TestOutboxRelayPublishesAndMarks(t *testing.T) {
	store := memory.NewStore()
	publisher := &stubPublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, BatchSize: 10}

	appendTestEnvelope(t, store, "event-1", "dispute.opened")
	appendTestEnvelope(t, store, "event-2", "dispute.vote_cast")

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once returned error: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.published))
	}
	// The topic is the event type itself.
	if publisher.published[0].Topic != publisher.published[0].Envelope.EventType {
		t.Fatalf("topic %q does not match event type %q", publisher.published[0].Topic, publisher.published[0].Envelope.EventType)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows after relay, got %d", len(pending))
	}

	// A second cycle over a drained outbox publishes nothing.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("idle run returned error: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("idle run must not republish, got %d events", len(publisher.published))
	}
}

func TestOutboxRelayKeepsRowPendingOnPublishFailure(t *testing.T) {
	store := memory.NewStore()
	publisher := &stubPublisher{fail: errors.New("broker unavailable")}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, BatchSize: 10}

	appendTestEnvelope(t, store, "event-1", "dispute.resolved")

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected publish failure to surface")
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	if len(pending) != 1 || pending[0].EventID != "event-1" {
		t.Fatalf("expected row to stay pending, got %+v", pending)
	}

	// Once the broker recovers the same row goes through.
	publisher.fail = nil
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("recovery run returned error: %v", err)
	}
	if len(publisher.published) != 1 || publisher.published[0].Envelope.EventID != "event-1" {
		t.Fatalf("expected event-1 published after recovery, got %+v", publisher.published)
	}
}
