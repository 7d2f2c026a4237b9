package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "gatherly/contexts/event-planning/poll-lifecycle/application"
	"gatherly/contexts/event-planning/poll-lifecycle/ports"
)

// NotificationRelay publishes persisted poll notifications to the broker.
// The outbox keeps vote submission fire-and-forget: the API appends a row in
// the request path and this relay delivers it out of band.
type NotificationRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce publishes a bounded batch of pending outbox rows and marks each row
// published only after broker publish succeeds. It stops on the first failure
// so the retry loop can reprocess remaining rows safely.
func (r NotificationRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("poll notification outbox list failed",
			"event", "poll_notification_list_failed",
			"module", "event-planning/poll-lifecycle",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		logger.Debug("poll notification relay found no pending rows",
			"event", "poll_notification_relay_noop",
			"module", "event-planning/poll-lifecycle",
			"layer", "worker",
			"batch_size", limit,
		)
		return nil
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("poll notification decode failed",
				"event", "poll_notification_decode_failed",
				"module", "event-planning/poll-lifecycle",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Publisher.Publish(ctx, r.Topic, event); err != nil {
			logger.Error("poll notification publish failed",
				"event", "poll_notification_publish_failed",
				"module", "event-planning/poll-lifecycle",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_id", event.EventID,
				"event_type", event.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			logger.Error("poll notification mark published failed",
				"event", "poll_notification_mark_failed",
				"module", "event-planning/poll-lifecycle",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("poll notification relay cycle completed",
		"event", "poll_notification_relay_completed",
		"module", "event-planning/poll-lifecycle",
		"layer", "worker",
		"published", len(pending),
	)
	return nil
}
