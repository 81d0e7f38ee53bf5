package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/akrgroup/backoffice/internal/domain/shared"
)

// Notifier delivers one notification event across its channels
type Notifier interface {
	Notify(ctx context.Context, event *shared.NotificationEvent) error
}

// Dispatcher routes events to email and SMS. Channels fail independently; the
// event only fails when every attempted channel failed, so a broken SMS
// gateway does not block confirmation emails.
type Dispatcher struct {
	logger   *slog.Logger
	renderer *Renderer
	email    EmailSender
	sms      SMSSender
	adminTo  string
}

func NewDispatcher(logger *slog.Logger, renderer *Renderer, email EmailSender, sms SMSSender, adminTo string) *Dispatcher {
	return &Dispatcher{
		logger:   logger,
		renderer: renderer,
		email:    email,
		sms:      sms,
		adminTo:  adminTo,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, event *shared.NotificationEvent) error {
	logger := d.logger.With("event_id", event.EventID, "kind", string(event.Kind), "reference", event.Reference)
	if event.CorrelationID != "" {
		logger = logger.With("correlation_id", event.CorrelationID)
	}

	msg, err := d.renderer.Render(event)
	if err != nil {
		return err
	}

	if event.Kind == shared.NotificationAdminAlert {
		if d.adminTo == "" {
			logger.Warn("Admin alert dropped, no admin address configured")
			return nil
		}
		if err := d.email.Send(d.adminTo, msg.Subject, msg.HTML); err != nil {
			logger.Error("Failed to send admin alert email", "error", err)
			return err
		}
		logger.Info("Admin alert email sent", "to", d.adminTo)
		return nil
	}

	var attempted, failed int
	var channelErrs []error

	if event.GuestEmail != "" {
		attempted++
		if err := d.email.Send(event.GuestEmail, msg.Subject, msg.HTML); err != nil {
			failed++
			channelErrs = append(channelErrs, fmt.Errorf("email: %w", err))
			logger.Error("Failed to send guest email", "to", event.GuestEmail, "error", err)
		} else {
			logger.Info("Guest email sent", "to", event.GuestEmail)
		}
	}

	if event.GuestPhone != "" && msg.SMSText != "" {
		attempted++
		if err := d.sms.Send(ctx, event.GuestPhone, msg.SMSText); err != nil {
			failed++
			channelErrs = append(channelErrs, fmt.Errorf("sms: %w", err))
			logger.Error("Failed to send guest SMS", "error", err)
		} else {
			logger.Info("Guest SMS sent")
		}
	}

	if attempted == 0 {
		logger.Warn("Event has no deliverable channel")
		return nil
	}
	if failed == attempted {
		return errors.Join(channelErrs...)
	}
	return nil
}
