package supplier

import (
	"context"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines supplier persistence operations
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	List(ctx context.Context, limit, offset int) ([]*Supplier, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, s *Supplier) error

	// SetBalance overwrites the cached payable balance, used by reconciliation
	SetBalance(ctx context.Context, id uuid.UUID, balance int64, version int) error

	// LockForUpdate acquires a pessimistic lock for ledger appends
	LockForUpdate(ctx context.Context, id uuid.UUID) (*Supplier, error)
	WithTx(tx pgx.Tx) Repository
}

// TransactionFilter narrows supplier ledger listings. Zero values mean "no filter".
type TransactionFilter struct {
	Type   TxType
	Status shared.TxStatus
}

// TransactionRepository manages the projected supplier ledger in the document store
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter TransactionFilter, limit, offset int) ([]*Transaction, error)
	CountBySupplier(ctx context.Context, supplierID uuid.UUID, filter TransactionFilter) (int64, error)
	// SumBySupplier folds the signed amounts of all completed entries
	SumBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status shared.TxStatus) error
}

// ErrSupplierNotFound indicates missing supplier
type ErrSupplierNotFound struct {
	SupplierID uuid.UUID
}

func (e ErrSupplierNotFound) Error() string {
	return "supplier not found: " + e.SupplierID.String()
}

// Is implements the errors.Is interface for ErrSupplierNotFound
func (e ErrSupplierNotFound) Is(target error) bool {
	t, ok := target.(ErrSupplierNotFound)
	if !ok {
		return false
	}
	if t.SupplierID == uuid.Nil {
		return true
	}
	return e.SupplierID == t.SupplierID
}

// ErrConcurrentModification indicates optimistic lock failure
type ErrConcurrentModification struct {
	SupplierID uuid.UUID
}

func (e ErrConcurrentModification) Error() string {
	return "concurrent modification detected for supplier: " + e.SupplierID.String()
}

// ErrTransactionNotFound indicates a missing ledger entry
type ErrTransactionNotFound struct {
	ID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "supplier transaction not found: " + e.ID.String()
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
	return "duplicate supplier transaction: " + e.ID.String()
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
