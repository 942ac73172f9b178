package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"tribunal/contexts/finance-core/settlement-ledger/adapters/memory"
	application "tribunal/contexts/finance-core/settlement-ledger/application"
	domainerrors "tribunal/contexts/finance-core/settlement-ledger/domain/errors"
	"tribunal/contexts/finance-core/settlement-ledger/ports"
)

type stubSubscriber struct {
	topic   string
	group   string
	handler func(context.Context, ports.EventEnvelope) error
}

func (s *stubSubscriber) Subscribe(_ context.Context, topic string, consumerGroup string, handler func(context.Context, ports.EventEnvelope) error) error {
	s.topic = topic
	s.group = consumerGroup
	s.handler = handler
	return nil
}

func TestResolutionAuditConsumerSubscribesAndRecords(t *testing.T) {
	store := memory.NewStore()
	service := application.Service{Repo: store, Idempotency: store, EventDedup: store, Clock: store, IDGen: store}
	subscriber := &stubSubscriber{}
	consumer := ResolutionAuditConsumer{Subscriber: subscriber, Service: service}

	if err := consumer.Start(context.Background()); err != nil {
		t.Fatalf("start returned error: %v", err)
	}
	if subscriber.topic != application.TopicDisputeResolved {
		t.Fatalf("expected subscription to %s, got %s", application.TopicDisputeResolved, subscriber.topic)
	}
	if subscriber.group != "settlement-ledger-resolution-cg" {
		t.Fatalf("unexpected consumer group %q", subscriber.group)
	}

	err := subscriber.handler(context.Background(), ports.EventEnvelope{
		EventID:       "event-1",
		EventType:     application.TopicDisputeResolved,
		OccurredAt:    time.Now().UTC(),
		SchemaVersion: 1,
		Data:          []byte(`{"dispute_id":7,"outcome":"resolved-for","total_paid":900}`),
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	settlements, err := service.Settlements(context.Background(), 10)
	if err != nil {
		t.Fatalf("settlements returned error: %v", err)
	}
	if len(settlements) != 1 || settlements[0].DisputeID != 7 {
		t.Fatalf("expected one settlement for dispute 7, got %+v", settlements)
	}
}

func TestResolutionAuditConsumerSurfacesHandlerErrors(t *testing.T) {
	store := memory.NewStore()
	service := application.Service{Repo: store, Idempotency: store, EventDedup: store, Clock: store, IDGen: store}
	subscriber := &stubSubscriber{}
	consumer := ResolutionAuditConsumer{Subscriber: subscriber, Service: service, ConsumerGroup: "custom-cg"}

	if err := consumer.Start(context.Background()); err != nil {
		t.Fatalf("start returned error: %v", err)
	}
	if subscriber.group != "custom-cg" {
		t.Fatalf("expected custom consumer group, got %q", subscriber.group)
	}

	err := subscriber.handler(context.Background(), ports.EventEnvelope{
		EventID: "event-1",
		Data:    []byte(`not json`),
	})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput to surface, got %v", err)
	}
}
