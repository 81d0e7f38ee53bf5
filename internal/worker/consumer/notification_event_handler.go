// Package consumer adapts Kafka notification messages to the notifier.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/platform/messaging/producers"
	"github.com/akrgroup/backoffice/internal/worker/notifier"
)

// NotificationEventHandler handles incoming notification events from Kafka
type NotificationEventHandler struct {
	notifier notifier.Notifier
	producer producers.DeadLetterPublisher
	logger   *slog.Logger
}

// NewNotificationEventHandler creates a new handler
func NewNotificationEventHandler(
	logger *slog.Logger,
	n notifier.Notifier,
	producer producers.DeadLetterPublisher,
) *NotificationEventHandler {
	return &NotificationEventHandler{
		notifier: n,
		producer: producer,
		logger:   logger,
	}
}

// HandleMessage processes Kafka messages. Permanently unprocessable messages
// (garbage payload, unknown kind) go to the DLQ so the offset can advance;
// transient delivery failures return an error and stay uncommitted.
func (h *NotificationEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event shared.NotificationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return h.sendToDLQ(ctx, key, value, fmt.Sprintf("failed to unmarshal notification event: %s", err), err)
	}

	if !shared.ValidNotificationKind(event.Kind) {
		reason := fmt.Sprintf("unknown notification kind %q", event.Kind)
		return h.sendToDLQ(ctx, key, value, reason, shared.ErrUnknownNotificationKind)
	}

	logger := h.logger
	if event.CorrelationID != "" {
		logger = h.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Received notification event",
		"event_id", event.EventID.String(),
		"kind", string(event.Kind),
		"booking_id", event.BookingID.String(),
	)

	if err := h.notifier.Notify(ctx, &event); err != nil {
		logger.Error("Failed to deliver notification",
			"event_id", event.EventID.String(),
			"kind", string(event.Kind),
			"error", err,
		)
		return fmt.Errorf("delivering notification %s failed: %w", event.EventID.String(), err)
	}

	logger.Info("Notification delivered", "event_id", event.EventID.String())
	return nil
}

// sendToDLQ parks a poison message. Returns nil when the DLQ accepted it, so
// the consumer commits the offset.
func (h *NotificationEventHandler) sendToDLQ(ctx context.Context, key, value []byte, reason string, cause error) error {
	h.logger.Error("Unprocessable notification message",
		"message_key", string(key),
		"reason", reason,
	)

	if h.producer == nil {
		return fmt.Errorf("unprocessable notification message and no DLQ configured: %w", cause)
	}

	if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, reason); dlqErr != nil {
		h.logger.Error("Failed to publish message to DLQ",
			"dlq_error", dlqErr,
			"message_key", string(key),
		)
		return fmt.Errorf("failed to park unprocessable message: %w", cause)
	}

	h.logger.Info("Unprocessable message published to DLQ", "message_key", string(key), "reason", reason)
	return nil
}
