package fuellog

import (
	"context"
	"time"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// ListFilter narrows fuel log listings. Zero values mean "no filter".
type ListFilter struct {
	VehicleID     string
	PaymentStatus PaymentStatus
	Status        shared.RecordStatus
	From          time.Time
	To            time.Time
}

// Repository manages fuel log persistence with pagination support
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	Update(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Entry, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status shared.RecordStatus) error
}

// ErrEntryNotFound indicates missing fuel log entry
type ErrEntryNotFound struct {
	ID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "fuel log entry not found: " + e.ID.String()
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.ID == uuid.Nil {
		return true
	}
	return e.ID == t.ID
}
