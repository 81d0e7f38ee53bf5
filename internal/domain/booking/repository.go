package booking

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows booking listings. Zero values mean "no filter".
type ListFilter struct {
	Status    Status
	GuestName string
}

// Repository manages booking persistence
type Repository interface {
	// EnsureIndexes creates the unique reference index backing Create's
	// duplicate detection. Called once at startup.
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByReference(ctx context.Context, reference string) (*Booking, error)
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Booking, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	Update(ctx context.Context, b *Booking) error
}

// ErrDuplicateReference indicates a reference code collision on insert
type ErrDuplicateReference struct {
	Reference string
}

func (e ErrDuplicateReference) Error() string {
	return "duplicate booking reference: " + e.Reference
}

// Is implements the errors.Is interface for ErrDuplicateReference
func (e ErrDuplicateReference) Is(target error) bool {
	t, ok := target.(ErrDuplicateReference)
	if !ok {
		return false
	}
	if t.Reference == "" {
		return true
	}
	return e.Reference == t.Reference
}

// ErrBookingNotFound indicates missing booking
type ErrBookingNotFound struct {
	ID uuid.UUID
}

func (e ErrBookingNotFound) Error() string {
	return "booking not found: " + e.ID.String()
}

// Is implements the errors.Is interface for ErrBookingNotFound
func (e ErrBookingNotFound) Is(target error) bool {
	t, ok := target.(ErrBookingNotFound)
	if !ok {
		return false
	}
	if t.ID == uuid.Nil {
		return true
	}
	return e.ID == t.ID
}
