package wallet

import (
	"context"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines shed wallet persistence operations
type Repository interface {
	Create(ctx context.Context, w *Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*Wallet, error)
	List(ctx context.Context, limit, offset int) ([]*Wallet, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, w *Wallet) error

	// SetBalances overwrites the cached balance fields, used by reconciliation
	SetBalances(ctx context.Context, id uuid.UUID, currentBalance, pendingTransfer, totalReceived int64, version int) error

	// ReleasePendingTransfer clears an earmark once its ledger entry is
	// projected. The earmark never goes below zero.
	ReleasePendingTransfer(ctx context.Context, id uuid.UUID, amount int64) error

	// LockForUpdate acquires a pessimistic lock for ledger appends
	LockForUpdate(ctx context.Context, id uuid.UUID) (*Wallet, error)
	WithTx(tx pgx.Tx) Repository
}

// TransactionFilter narrows ledger listings. Zero values mean "no filter".
type TransactionFilter struct {
	Type   TxType
	Status shared.TxStatus
}

// TransactionRepository manages the projected shed ledger in the document store
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID, filter TransactionFilter, limit, offset int) ([]*Transaction, error)
	CountByWallet(ctx context.Context, walletID uuid.UUID, filter TransactionFilter) (int64, error)
	// SumByWallet folds the signed amounts of all completed entries
	SumByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status shared.TxStatus) error
}

// ErrWalletNotFound indicates missing wallet
type ErrWalletNotFound struct {
	WalletID uuid.UUID
}

func (e ErrWalletNotFound) Error() string {
	return "shed wallet not found: " + e.WalletID.String()
}

// Is implements the errors.Is interface for ErrWalletNotFound
func (e ErrWalletNotFound) Is(target error) bool {
	t, ok := target.(ErrWalletNotFound)
	if !ok {
		return false
	}
	if t.WalletID == uuid.Nil {
		return true
	}
	return e.WalletID == t.WalletID
}

// ErrConcurrentModification indicates optimistic lock failure
type ErrConcurrentModification struct {
	WalletID uuid.UUID
}

func (e ErrConcurrentModification) Error() string {
	return "concurrent modification detected for wallet: " + e.WalletID.String()
}

// ErrTransactionNotFound indicates a missing ledger entry
type ErrTransactionNotFound struct {
	ID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "shed transaction not found: " + e.ID.String()
}

// Is implements the errors.Is interface for ErrTransactionNotFound
func (e ErrTransactionNotFound) Is(target error) bool {
	t, ok := target.(ErrTransactionNotFound)
	if !ok {
		return false
	}
	if t.ID == uuid.Nil {
		return true
	}
	return e.ID == t.ID
}

// ErrDuplicateTransaction indicates ledger idempotency violation
type ErrDuplicateTransaction struct {
	ID uuid.UUID
}

func (e ErrDuplicateTransaction) Error() string {
	return "duplicate shed transaction: " + e.ID.String()
}

// Is implements the errors.Is interface for ErrDuplicateTransaction
func (e ErrDuplicateTransaction) Is(target error) bool {
	t, ok := target.(ErrDuplicateTransaction)
	if !ok {
		return false
	}
	if t.ID == uuid.Nil {
		return true
	}
	return e.ID == t.ID
}
