package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akrgroup/backoffice/internal/domain/booking"
	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/platform/messaging/producers"
)

// BookingServiceImpl implements the BookingService interface
type BookingServiceImpl struct {
	logger      *slog.Logger
	bookingRepo booking.Repository
	producer    producers.MessagePublisher
}

// NewBookingService creates a new booking service
func NewBookingService(logger *slog.Logger, bookingRepo booking.Repository, producer producers.MessagePublisher) BookingService {
	return &BookingServiceImpl{
		logger:      logger,
		bookingRepo: bookingRepo,
		producer:    producer,
	}
}

// CreateBooking stores a received booking and emits the guest acknowledgement
// and admin alert events. The booking is accepted even if publishing fails;
// notifications are best effort, the record is not.
func (s *BookingServiceImpl) CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	b, err := booking.NewBooking(input.GuestName, input.GuestEmail, input.GuestPhone, input.Room, input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	b.Notes = input.Notes

	err = s.bookingRepo.Create(ctx, b)
	if errors.Is(err, booking.ErrDuplicateReference{}) {
		// 4-char code collided within the day. Draw once more; a second
		// collision is overwhelmingly likely a systemic fault, not bad luck.
		s.logger.Warn("Booking reference collision, regenerating", "reference", b.Reference)
		b.RegenerateReference()
		err = s.bookingRepo.Create(ctx, b)
	}
	if err != nil {
		s.logger.Error("Failed to create booking", "guest_name", input.GuestName, "error", err)
		return nil, err
	}

	s.logger.Info("Booking created",
		"booking_id", b.ID,
		"reference", b.Reference,
		"guest_name", b.GuestName,
		"nights", b.Nights,
		"total_amount", b.TotalAmount,
	)

	s.publishEvent(ctx, b, shared.NotificationBookingReceived, input.CorrelationID)
	s.publishEvent(ctx, b, shared.NotificationAdminAlert, input.CorrelationID)

	return b, nil
}

// GetBooking retrieves a booking by ID
func (s *BookingServiceImpl) GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// ListBookings retrieves a paginated booking listing
func (s *BookingServiceImpl) ListBookings(ctx context.Context, filter booking.ListFilter, page, perPage int) ([]*booking.Booking, int64, error) {
	offset := (page - 1) * perPage

	bookings, err := s.bookingRepo.List(ctx, filter, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ConfirmBooking moves a received booking to confirmed and notifies the guest
func (s *BookingServiceImpl) ConfirmBooking(ctx context.Context, id uuid.UUID, correlationID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Confirm(); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		s.logger.Error("Failed to confirm booking", "booking_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("Booking confirmed", "booking_id", b.ID, "reference", b.Reference)
	s.publishEvent(ctx, b, shared.NotificationBookingConfirmed, correlationID)

	return b, nil
}

// RecordPayment registers a payment against a booking. When the booking
// becomes fully paid the guest gets a payment confirmation.
func (s *BookingServiceImpl) RecordPayment(ctx context.Context, id uuid.UUID, amount int64, correlationID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasPaid := b.PaymentStatus == booking.PaymentPaid

	if err := b.RecordPayment(amount); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		s.logger.Error("Failed to record booking payment", "booking_id", id, "amount", amount, "error", err)
		return nil, err
	}

	s.logger.Info("Booking payment recorded",
		"booking_id", b.ID,
		"amount", amount,
		"amount_paid", b.AmountPaid,
		"payment_status", string(b.PaymentStatus),
	)

	if !wasPaid && b.PaymentStatus == booking.PaymentPaid {
		s.publishEvent(ctx, b, shared.NotificationPaymentConfirmed, correlationID)
	}

	return b, nil
}

// CancelBooking terminates a booking and notifies the guest
func (s *BookingServiceImpl) CancelBooking(ctx context.Context, id uuid.UUID, correlationID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Cancel(); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		s.logger.Error("Failed to cancel booking", "booking_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("Booking cancelled", "booking_id", b.ID, "reference", b.Reference)
	s.publishEvent(ctx, b, shared.NotificationBookingCancelled, correlationID)

	return b, nil
}

// SendReviewInvitation asks a past guest for a review. Cancelled bookings
// never get one; reminder selects the follow-up template.
func (s *BookingServiceImpl) SendReviewInvitation(ctx context.Context, id uuid.UUID, reminder bool, correlationID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.Status == booking.StatusCancelled {
		return nil, booking.ErrInvalidTransition
	}

	kind := shared.NotificationReviewInvitation
	if reminder {
		kind = shared.NotificationReviewReminder
	}

	s.logger.Info("Review invitation requested", "booking_id", b.ID, "reference", b.Reference, "kind", string(kind))
	s.publishEvent(ctx, b, kind, correlationID)

	return b, nil
}

func (s *BookingServiceImpl) publishEvent(ctx context.Context, b *booking.Booking, kind shared.NotificationKind, correlationID string) {
	event := shared.NotificationEvent{
		EventID:       uuid.New(),
		Kind:          kind,
		BookingID:     b.ID,
		Reference:     b.Reference,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		GuestPhone:    b.GuestPhone,
		RoomName:      b.Room.Name,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Nights:        b.Nights,
		TotalAmount:   b.TotalAmount,
		AmountPaid:    b.AmountPaid,
		CorrelationID: correlationID,
		Timestamp:     time.Now(),
	}

	if err := s.producer.Publish(ctx, b.ID.String(), event); err != nil {
		s.logger.Error("Failed to publish notification event",
			"booking_id", b.ID,
			"kind", string(kind),
			"error", err,
		)
	}
}
