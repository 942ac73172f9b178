package workers

import (
	"context"
	"log/slog"

	application "tribunal/contexts/arbitration/dispute-service/application"
	"tribunal/contexts/arbitration/dispute-service/ports"
)

// OutboxRelay drains persisted dispute events to the bus.
type OutboxRelay struct {
	Outbox    ports.OutboxStore
	Publisher ports.EventPublisher
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce publishes a bounded batch of pending rows and marks each row only
// after its publish succeeds. It stops on the first failure so the next
// cycle reprocesses from the failed row.
func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("arbitration outbox list failed",
			"event", "arbitration_outbox_list_failed",
			"module", "arbitration/dispute-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		logger.Debug("arbitration outbox relay found no pending rows",
			"event", "arbitration_outbox_relay_noop",
			"module", "arbitration/dispute-service",
			"layer", "worker",
			"batch_size", limit,
		)
		return nil
	}

	for _, envelope := range pending {
		if err := r.Publisher.Publish(ctx, envelope.EventType, envelope); err != nil {
			logger.Error("arbitration outbox publish failed",
				"event", "arbitration_outbox_publish_failed",
				"module", "arbitration/dispute-service",
				"layer", "worker",
				"event_id", envelope.EventID,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, envelope.EventID); err != nil {
			logger.Error("arbitration outbox mark published failed",
				"event", "arbitration_outbox_mark_published_failed",
				"module", "arbitration/dispute-service",
				"layer", "worker",
				"event_id", envelope.EventID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("arbitration outbox relay cycle completed",
		"event", "arbitration_outbox_relay_completed",
		"module", "arbitration/dispute-service",
		"layer", "worker",
		"published_count", len(pending),
	)
	return nil
}
