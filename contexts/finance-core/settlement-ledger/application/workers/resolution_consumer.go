package workers

import (
	"context"
	"log/slog"

	application "tribunal/contexts/finance-core/settlement-ledger/application"
	"tribunal/contexts/finance-core/settlement-ledger/ports"
)

const defaultConsumerGroup = "settlement-ledger-resolution-cg"

// ResolutionAuditConsumer mirrors arbitration resolution events into the
// ledger's settlement audit. Dedup and persistence live in the service; this
// worker owns the subscription.
type ResolutionAuditConsumer struct {
	Subscriber    ports.EventSubscriber
	Service       application.Service
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c ResolutionAuditConsumer) Start(ctx context.Context) error {
	group := c.ConsumerGroup
	if group == "" {
		group = defaultConsumerGroup
	}
	return c.Subscriber.Subscribe(ctx, application.TopicDisputeResolved, group, c.handleResolved)
}

func (c ResolutionAuditConsumer) handleResolved(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)

	_, replayed, err := c.Service.HandleDisputeResolved(ctx, event)
	if err != nil {
		logger.Error("resolution event processing failed",
			"event", "ledger_resolution_event_failed",
			"module", "finance-core/settlement-ledger",
			"layer", "worker",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err.Error(),
		)
		return err
	}
	if replayed {
		logger.Debug("resolution event already processed",
			"event", "ledger_resolution_event_replayed",
			"module", "finance-core/settlement-ledger",
			"layer", "worker",
			"event_id", event.EventID,
		)
	}
	return nil
}
