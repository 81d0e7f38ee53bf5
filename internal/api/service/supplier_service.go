package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akrgroup/backoffice/internal/domain/outbox"
	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/supplier"
)

// SupplierServiceImpl implements the SupplierService interface
type SupplierServiceImpl struct {
	logger         *slog.Logger
	db             TxRunner
	supplierRepo   supplier.Repository
	supplierTxRepo supplier.TransactionRepository
	outboxRepo     outbox.Repository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(
	logger *slog.Logger,
	db TxRunner,
	supplierRepo supplier.Repository,
	supplierTxRepo supplier.TransactionRepository,
	outboxRepo outbox.Repository,
) SupplierService {
	return &SupplierServiceImpl{
		logger:         logger,
		db:             db,
		supplierRepo:   supplierRepo,
		supplierTxRepo: supplierTxRepo,
		outboxRepo:     outboxRepo,
	}
}

// CreateSupplier registers a new supplier account
func (s *SupplierServiceImpl) CreateSupplier(ctx context.Context, name, contactName, contactPhone, contactEmail string, categories []string) (*supplier.Supplier, error) {
	sup, err := supplier.NewSupplier(name, contactName, contactPhone, contactEmail, categories)
	if err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Create(ctx, sup); err != nil {
		s.logger.Error("Failed to create supplier", "name", name, "error", err)
		return nil, err
	}

	s.logger.Info("Supplier created", "supplier_id", sup.ID, "name", sup.Name)
	return sup, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierServiceImpl) GetSupplier(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	return s.supplierRepo.GetByID(ctx, id)
}

// ListSuppliers retrieves a paginated supplier listing
func (s *SupplierServiceImpl) ListSuppliers(ctx context.Context, page, perPage int) ([]*supplier.Supplier, int64, error) {
	offset := (page - 1) * perPage

	suppliers, err := s.supplierRepo.List(ctx, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.supplierRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return suppliers, total, nil
}

// UpdateSupplier replaces the supplier profile. The cached balance is never
// touched here; it only moves through AppendTransaction.
func (s *SupplierServiceImpl) UpdateSupplier(ctx context.Context, id uuid.UUID, input UpdateSupplierInput) (*supplier.Supplier, error) {
	if input.Name == "" {
		return nil, supplier.ErrEmptyName
	}

	sup, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sup.Name = input.Name
	sup.ContactName = input.ContactName
	sup.ContactPhone = input.ContactPhone
	sup.ContactEmail = input.ContactEmail
	sup.Categories = input.Categories
	if input.Status != "" {
		sup.Status = input.Status
	}
	sup.Version++
	sup.UpdatedAt = time.Now()

	if err := s.supplierRepo.Update(ctx, sup); err != nil {
		s.logger.Error("Failed to update supplier", "supplier_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("Supplier updated", "supplier_id", id, "name", sup.Name)
	return sup, nil
}

// AppendTransaction applies a payable balance mutation and stores the ledger
// entry in the transactional outbox within one database transaction.
func (s *SupplierServiceImpl) AppendTransaction(ctx context.Context, input AppendSupplierTransactionInput) (*supplier.Transaction, error) {
	if !supplier.ValidTxType(input.Type) {
		return nil, ErrInvalidTransactionType
	}

	method := input.Method
	if method == "" {
		method = shared.PaymentMethodCash
	} else if !shared.ValidPaymentMethod(method) {
		return nil, ErrInvalidPaymentMethod
	}

	ledgerTx := supplier.NewTransaction(input.SupplierID, input.Type, input.Amount, method, input.ProcessedBy)
	ledgerTx.FuelLogID = input.FuelLogID
	ledgerTx.Notes = input.Notes
	ledgerTx.CorrelationID = input.CorrelationID

	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		repo := s.supplierRepo.WithTx(tx)

		sup, err := repo.LockForUpdate(ctx, input.SupplierID)
		if err != nil {
			return err
		}

		if err := sup.Apply(ledgerTx.Amount); err != nil {
			return err
		}
		ledgerTx.BalanceAfter = sup.WalletBalance

		if err := repo.Update(ctx, sup); err != nil {
			return err
		}

		msg, err := outbox.NewSupplierMessage(ledgerTx)
		if err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Create(ctx, msg)
	})
	if err != nil {
		s.logger.Error("Failed to append supplier transaction",
			"supplier_id", input.SupplierID,
			"type", string(input.Type),
			"amount", input.Amount,
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("Supplier transaction appended",
		"supplier_id", input.SupplierID,
		"transaction_id", ledgerTx.ID,
		"type", string(ledgerTx.Type),
		"amount", ledgerTx.Amount,
		"balance_after", ledgerTx.BalanceAfter,
	)

	return ledgerTx, nil
}

// ListTransactions retrieves a paginated projected ledger for a supplier
func (s *SupplierServiceImpl) ListTransactions(ctx context.Context, supplierID uuid.UUID, filter supplier.TransactionFilter, page, perPage int) ([]*supplier.Transaction, int64, error) {
	if _, err := s.supplierRepo.GetByID(ctx, supplierID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	txs, err := s.supplierTxRepo.ListBySupplier(ctx, supplierID, filter, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.supplierTxRepo.CountBySupplier(ctx, supplierID, filter)
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

// Reconcile compares the cached payable balance against the sum of completed
// ledger entries, optionally repairing the cache from the ledger.
func (s *SupplierServiceImpl) Reconcile(ctx context.Context, supplierID uuid.UUID, repair bool) (*ReconciliationResult, error) {
	sup, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	ledgerBalance, err := s.supplierTxRepo.SumBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	result := &ReconciliationResult{
		AccountID:     supplierID,
		CachedBalance: sup.WalletBalance,
		LedgerBalance: ledgerBalance,
		Drift:         sup.WalletBalance - ledgerBalance,
	}

	if result.Drift != 0 {
		s.logger.Warn("Supplier balance drift detected",
			"supplier_id", supplierID,
			"cached_balance", sup.WalletBalance,
			"ledger_balance", ledgerBalance,
			"drift", result.Drift,
		)
	}

	if repair && result.Drift != 0 {
		if err := s.supplierRepo.SetBalance(ctx, supplierID, ledgerBalance, sup.Version); err != nil {
			return nil, err
		}
		result.Repaired = true
		s.logger.Info("Supplier balance repaired from ledger", "supplier_id", supplierID, "balance", ledgerBalance)
	}

	return result, nil
}
