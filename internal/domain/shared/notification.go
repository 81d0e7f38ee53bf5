package shared

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// NotificationKind selects which template the worker renders
type NotificationKind string

const (
	NotificationBookingReceived  NotificationKind = "BOOKING_RECEIVED"
	NotificationAdminAlert       NotificationKind = "ADMIN_ALERT"
	NotificationBookingConfirmed NotificationKind = "BOOKING_CONFIRMED"
	NotificationPaymentConfirmed NotificationKind = "PAYMENT_CONFIRMED"
	NotificationReviewInvitation NotificationKind = "REVIEW_INVITATION"
	NotificationReviewReminder   NotificationKind = "REVIEW_REMINDER"
	NotificationBookingCancelled NotificationKind = "BOOKING_CANCELLED"
)

// ErrUnknownNotificationKind is returned for events the worker cannot render
var ErrUnknownNotificationKind = errors.New("unknown notification kind")

// ValidNotificationKind reports whether k maps to a template
func ValidNotificationKind(k NotificationKind) bool {
	switch k {
	case NotificationBookingReceived, NotificationAdminAlert, NotificationBookingConfirmed,
		NotificationPaymentConfirmed, NotificationReviewInvitation, NotificationReviewReminder,
		NotificationBookingCancelled:
		return true
	}
	return false
}

// NotificationEvent is the Kafka message published by the API on booking state
// changes and consumed by the notification worker.
type NotificationEvent struct {
	EventID       uuid.UUID        `json:"event_id"`
	Kind          NotificationKind `json:"kind"`
	BookingID     uuid.UUID        `json:"booking_id"`
	Reference     string           `json:"reference"`
	GuestName     string           `json:"guest_name"`
	GuestEmail    string           `json:"guest_email"`
	GuestPhone    string           `json:"guest_phone"`
	RoomName      string           `json:"room_name"`
	CheckIn       time.Time        `json:"check_in"`
	CheckOut      time.Time        `json:"check_out"`
	Nights        int              `json:"nights"`
	TotalAmount   int64            `json:"total_amount"` // minor units
	AmountPaid    int64            `json:"amount_paid,omitempty"`
	CorrelationID string           `json:"correlation_id,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}
