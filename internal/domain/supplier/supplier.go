package supplier

import (
	"errors"
	"time"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyName        = errors.New("supplier name cannot be empty")
	ErrInvalidAmount    = errors.New("transaction amount must not be zero")
	ErrInactiveSupplier = errors.New("supplier is inactive")
)

// Supplier is a vendor account. WalletBalance is the amount payable to the
// supplier (negative means the supplier was prepaid). Like the shed wallet,
// the cached balance only moves together with an outbox ledger append in one
// database transaction; the projected ledger is authoritative for audit.
type Supplier struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	ContactName   string              `json:"contact_name,omitempty"`
	ContactPhone  string              `json:"contact_phone,omitempty"`
	ContactEmail  string              `json:"contact_email,omitempty"`
	Categories    []string            `json:"categories,omitempty"`
	WalletBalance int64               `json:"wallet_balance"` // minor units, positive = payable
	Status        shared.RecordStatus `json:"status"`
	Version       int                 `json:"version"` // For optimistic locking
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewSupplier creates an active supplier with a zero balance
func NewSupplier(name, contactName, contactPhone, contactEmail string, categories []string) (*Supplier, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Supplier{
		ID:           uuid.New(),
		Name:         name,
		ContactName:  contactName,
		ContactPhone: contactPhone,
		ContactEmail: contactEmail,
		Categories:   categories,
		Status:       shared.RecordStatusActive,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Apply mutates the cached payable balance for a signed ledger amount.
// The balance may go negative: that is the supplier-prepaid case, not an
// error.
func (s *Supplier) Apply(amount int64) error {
	if s.Status != shared.RecordStatusActive {
		return ErrInactiveSupplier
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	s.WalletBalance += amount
	s.Version++
	s.UpdatedAt = time.Now()
	return nil
}
