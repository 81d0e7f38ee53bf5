package booking

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyGuestName    = errors.New("guest name cannot be empty")
	ErrMissingContact    = errors.New("booking needs a guest email or phone")
	ErrInvalidStayDates  = errors.New("check-out must be after check-in")
	ErrInvalidTransition = errors.New("invalid booking state transition")
)

// Status is the booking lifecycle state
type Status string

const (
	StatusReceived  Status = "RECEIVED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// PaymentStatus tracks whether the stay has been paid for
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

// RoomSnapshot freezes the room details at booking time so later rate or
// name changes do not rewrite history.
type RoomSnapshot struct {
	RoomID    uuid.UUID `json:"room_id" bson:"room_id"`
	Name      string    `json:"name" bson:"name"`
	NightRate int64     `json:"night_rate" bson:"night_rate"` // minor units
}

// Booking is a hotel room reservation
type Booking struct {
	ID            uuid.UUID     `json:"id" bson:"_id"`
	Reference     string        `json:"reference" bson:"reference"`
	GuestName     string        `json:"guest_name" bson:"guest_name"`
	GuestEmail    string        `json:"guest_email,omitempty" bson:"guest_email,omitempty"`
	GuestPhone    string        `json:"guest_phone,omitempty" bson:"guest_phone,omitempty"`
	Room          RoomSnapshot  `json:"room" bson:"room"`
	CheckIn       time.Time     `json:"check_in" bson:"check_in"`
	CheckOut      time.Time     `json:"check_out" bson:"check_out"`
	Nights        int           `json:"nights" bson:"nights"`
	TotalAmount   int64         `json:"total_amount" bson:"total_amount"`
	AmountPaid    int64         `json:"amount_paid" bson:"amount_paid"`
	Status        Status        `json:"status" bson:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" bson:"payment_status"`
	Notes         string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`
}

// NewBooking creates a received booking, deriving nights and total from the
// room snapshot and stay dates.
func NewBooking(guestName, guestEmail, guestPhone string, room RoomSnapshot, checkIn, checkOut time.Time) (*Booking, error) {
	if guestName == "" {
		return nil, ErrEmptyGuestName
	}
	if guestEmail == "" && guestPhone == "" {
		return nil, ErrMissingContact
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidStayDates
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	now := time.Now()
	return &Booking{
		ID:            uuid.New(),
		Reference:     newReference(now),
		GuestName:     guestName,
		GuestEmail:    guestEmail,
		GuestPhone:    guestPhone,
		Room:          room,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        nights,
		TotalAmount:   int64(nights) * room.NightRate,
		Status:        StatusReceived,
		PaymentStatus: PaymentUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Confirm moves a received booking to confirmed
func (b *Booking) Confirm() error {
	if b.Status != StatusReceived {
		return ErrInvalidTransition
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = time.Now()
	return nil
}

// RecordPayment registers a payment against the booking total
func (b *Booking) RecordPayment(amount int64) error {
	if b.Status == StatusCancelled || amount <= 0 {
		return ErrInvalidTransition
	}
	b.AmountPaid += amount
	if b.AmountPaid >= b.TotalAmount {
		b.PaymentStatus = PaymentPaid
	}
	b.UpdatedAt = time.Now()
	return nil
}

// Cancel terminates the booking from any non-cancelled state
func (b *Booking) Cancel() error {
	if b.Status == StatusCancelled {
		return ErrInvalidTransition
	}
	b.Status = StatusCancelled
	b.UpdatedAt = time.Now()
	return nil
}

// RegenerateReference draws a fresh reference code after a collision
func (b *Booking) RegenerateReference() {
	b.Reference = newReference(time.Now())
}

// newReference builds a short human-quotable booking code like AKR-20260829-X7K2
func newReference(now time.Time) string {
	const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return fmt.Sprintf("AKR-%s-%s", now.Format("20060102"), string(buf))
}
