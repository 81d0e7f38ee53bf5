package wallet

import (
	"errors"
	"time"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInsufficientFunds = errors.New("insufficient wallet funds")
	ErrInvalidAmount     = errors.New("transaction amount must not be zero")
	ErrEmptyName         = errors.New("wallet name cannot be empty")
	ErrInactiveWallet    = errors.New("wallet is inactive")
)

// Wallet tracks the cash position of a fuel shed. The cached balance fields
// are only ever mutated together with an outbox ledger append inside a single
// database transaction; the transaction ledger remains the source of truth
// for audit and reconciliation.
type Wallet struct {
	ID              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Location        string              `json:"location,omitempty"`
	ContactName     string              `json:"contact_name,omitempty"`
	ContactPhone    string              `json:"contact_phone,omitempty"`
	CurrentBalance  int64               `json:"current_balance"`  // minor units
	PendingTransfer int64               `json:"pending_transfer"` // earmarked, not yet moved
	TotalReceived   int64               `json:"total_received"`   // lifetime credits
	Status          shared.RecordStatus `json:"status"`
	Version         int                 `json:"version"` // For optimistic locking
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewWallet creates an active shed wallet with a zero balance
func NewWallet(name, location, contactName, contactPhone string) (*Wallet, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Wallet{
		ID:           uuid.New(),
		Name:         name,
		Location:     location,
		ContactName:  contactName,
		ContactPhone: contactPhone,
		Status:       shared.RecordStatusActive,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Apply mutates the wallet's cached balances for a signed ledger amount.
// Credits (positive amounts) of type payment_received also accumulate into
// TotalReceived. Debits may not push the balance below zero. Payment_sent
// debits are earmarked into PendingTransfer until the ledger projection
// releases them, so cash in transit to head office stays visible.
func (w *Wallet) Apply(txType TxType, amount int64) error {
	if w.Status != shared.RecordStatusActive {
		return ErrInactiveWallet
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	if amount < 0 && w.CurrentBalance+amount < 0 {
		return ErrInsufficientFunds
	}

	w.CurrentBalance += amount
	switch {
	case txType == TxTypePaymentReceived && amount > 0:
		w.TotalReceived += amount
	case txType == TxTypePaymentSent:
		w.PendingTransfer += -amount
	}

	w.Version++
	w.UpdatedAt = time.Now()
	return nil
}

// CanDebit checks whether the wallet holds at least amount
func (w *Wallet) CanDebit(amount int64) bool {
	return w.CurrentBalance >= amount
}
