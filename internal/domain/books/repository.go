package books

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows bookkeeping listings. Zero values mean "no filter".
type ListFilter struct {
	Category string
	From     time.Time
	To       time.Time
}

// Repository manages manual bookkeeping persistence
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, kind Kind, id uuid.UUID) (*Entry, error)
	List(ctx context.Context, kind Kind, filter ListFilter, limit, offset int) ([]*Entry, error)
	Count(ctx context.Context, kind Kind, filter ListFilter) (int64, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error
}

// ErrEntryNotFound indicates missing bookkeeping entry
type ErrEntryNotFound struct {
	ID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "bookkeeping entry not found: " + e.ID.String()
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
