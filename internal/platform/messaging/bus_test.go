package messaging

import (
	"context"
	"testing"
	"time"

	contractsv1 "tribunal/contracts/gen/events/v1"
)

func TestBusDeliversToSubscriber(t *testing.T) {
	bus, err := NewBus(nil, nil)
	if err != nil {
		t.Fatalf("new bus returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan contractsv1.Envelope, 1)
	err = bus.Subscribe(ctx, "dispute.resolved", "test-cg", func(_ context.Context, event contractsv1.Envelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe returned error: %v", err)
	}

	if err := bus.Publish(context.Background(), "dispute.resolved", contractsv1.Envelope{
		EventID:   "event-1",
		EventType: "dispute.resolved",
	}); err != nil {
		t.Fatalf("publish returned error: %v", err)
	}

	select {
	case event := <-received:
		if event.EventID != "event-1" {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for delivery")
	}
}

func TestBusIsolatesTopics(t *testing.T) {
	bus, err := NewBus(nil, nil)
	if err != nil {
		t.Fatalf("new bus returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan contractsv1.Envelope, 1)
	err = bus.Subscribe(ctx, "dispute.opened", "test-cg", func(_ context.Context, event contractsv1.Envelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe returned error: %v", err)
	}

	// Publish enqueues synchronously, so after it returns an unrelated topic
	// can never reach this subscriber.
	if err := bus.Publish(context.Background(), "dispute.vote_cast", contractsv1.Envelope{EventID: "event-1"}); err != nil {
		t.Fatalf("publish returned error: %v", err)
	}

	select {
	case event := <-received:
		t.Fatalf("unexpected delivery %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusFansOutToEveryGroup(t *testing.T) {
	bus, err := NewBus(nil, nil)
	if err != nil {
		t.Fatalf("new bus returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan contractsv1.Envelope, 1)
	second := make(chan contractsv1.Envelope, 1)
	if err := bus.Subscribe(ctx, "dispute.resolved", "cg-1", func(_ context.Context, event contractsv1.Envelope) error {
		first <- event
		return nil
	}); err != nil {
		t.Fatalf("subscribe returned error: %v", err)
	}
	if err := bus.Subscribe(ctx, "dispute.resolved", "cg-2", func(_ context.Context, event contractsv1.Envelope) error {
		second <- event
		return nil
	}); err != nil {
		t.Fatalf("subscribe returned error: %v", err)
	}

	if err := bus.Publish(context.Background(), "dispute.resolved", contractsv1.Envelope{EventID: "event-1"}); err != nil {
		t.Fatalf("publish returned error: %v", err)
	}

	for name, ch := range map[string]chan contractsv1.Envelope{"cg-1": first, "cg-2": second} {
		select {
		case event := <-ch:
			if event.EventID != "event-1" {
				t.Fatalf("%s received unexpected event %+v", name, event)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", name)
		}
	}
}
