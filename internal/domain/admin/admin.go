package admin

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrEmptyEmail      = errors.New("admin email cannot be empty")
	ErrWeakPassword    = errors.New("admin password must be at least 8 characters")
	ErrInvalidPassword = errors.New("invalid password")
)

// Admin is a back-office operator account
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAdmin creates an admin account with a bcrypt password hash
func NewAdmin(email, name, password, role string) (*Admin, error) {
	if email == "" {
		return nil, ErrEmptyEmail
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if role == "" {
		role = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Admin{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CheckPassword verifies a candidate password against the stored hash
func (a *Admin) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
