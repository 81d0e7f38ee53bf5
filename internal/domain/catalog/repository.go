package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages product catalog persistence
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, category string, limit, offset int) ([]*Product, error)
	Count(ctx context.Context, category string) (int64, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrProductNotFound indicates missing product
type ErrProductNotFound struct {
	ID uuid.UUID
}

func (e ErrProductNotFound) Error() string {
	return "product not found: " + e.ID.String()
}

// Is implements the errors.Is interface for ErrProductNotFound
func (e ErrProductNotFound) Is(target error) bool {
	t, ok := target.(ErrProductNotFound)
	if !ok {
		return false
	}
	if t.ID == uuid.Nil {
		return true
	}
	return e.ID == t.ID
}
