package admin

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines admin account persistence operations
type Repository interface {
	Create(ctx context.Context, a *Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
}

// ErrAdminNotFound indicates missing admin account
type ErrAdminNotFound struct {
	Email string
}

func (e ErrAdminNotFound) Error() string {
	return "admin account not found: " + e.Email
}

// Is implements the errors.Is interface for ErrAdminNotFound
func (e ErrAdminNotFound) Is(target error) bool {
	t, ok := target.(ErrAdminNotFound)
	if !ok {
		return false
	}
	if t.Email == "" {
		return true
	}
	return e.Email == t.Email
}

// ErrDuplicateEmail indicates email uniqueness violation
type ErrDuplicateEmail struct {
	Email string
}

func (e ErrDuplicateEmail) Error() string {
	return "admin account with email already exists: " + e.Email
}
