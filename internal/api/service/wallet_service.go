package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akrgroup/backoffice/internal/domain/fuellog"
	"github.com/akrgroup/backoffice/internal/domain/outbox"
	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/wallet"
)

// Validation errors shared by the ledger services
var (
	ErrInvalidTransactionType = errors.New("unknown transaction type")
	ErrInvalidPaymentMethod   = errors.New("unknown payment method")
)

// TxRunner runs a function inside a database transaction
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// WalletServiceImpl implements the WalletService interface
type WalletServiceImpl struct {
	logger       *slog.Logger
	db           TxRunner
	walletRepo   wallet.Repository
	walletTxRepo wallet.TransactionRepository
	fuelLogRepo  fuellog.Repository
	outboxRepo   outbox.Repository
}

// NewWalletService creates a new shed wallet service
func NewWalletService(
	logger *slog.Logger,
	db TxRunner,
	walletRepo wallet.Repository,
	walletTxRepo wallet.TransactionRepository,
	fuelLogRepo fuellog.Repository,
	outboxRepo outbox.Repository,
) WalletService {
	return &WalletServiceImpl{
		logger:       logger,
		db:           db,
		walletRepo:   walletRepo,
		walletTxRepo: walletTxRepo,
		fuelLogRepo:  fuelLogRepo,
		outboxRepo:   outboxRepo,
	}
}

// CreateWallet registers a new shed wallet
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, name, location, contactName, contactPhone string) (*wallet.Wallet, error) {
	w, err := wallet.NewWallet(name, location, contactName, contactPhone)
	if err != nil {
		return nil, err
	}

	if err := s.walletRepo.Create(ctx, w); err != nil {
		s.logger.Error("Failed to create wallet", "name", name, "error", err)
		return nil, err
	}

	s.logger.Info("Wallet created", "wallet_id", w.ID, "name", w.Name)
	return w, nil
}

// GetWallet retrieves a wallet by ID
func (s *WalletServiceImpl) GetWallet(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	return s.walletRepo.GetByID(ctx, id)
}

// ListWallets retrieves a paginated wallet listing
func (s *WalletServiceImpl) ListWallets(ctx context.Context, page, perPage int) ([]*wallet.Wallet, int64, error) {
	offset := (page - 1) * perPage

	wallets, err := s.walletRepo.List(ctx, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.walletRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return wallets, total, nil
}

// AppendTransaction applies a balance mutation and stores the ledger entry in
// the transactional outbox, all within one database transaction. The wallet
// row is locked for the duration so concurrent appends serialize.
func (s *WalletServiceImpl) AppendTransaction(ctx context.Context, input AppendWalletTransactionInput) (*wallet.Transaction, error) {
	if !wallet.ValidTxType(input.Type) {
		return nil, ErrInvalidTransactionType
	}

	method := input.Method
	if method == "" {
		method = shared.PaymentMethodCash
	} else if !shared.ValidPaymentMethod(method) {
		return nil, ErrInvalidPaymentMethod
	}

	ledgerTx := wallet.NewTransaction(input.WalletID, input.Type, input.Amount, method, input.ProcessedBy)
	ledgerTx.FuelLogIDs = input.FuelLogIDs
	ledgerTx.Reference = input.Reference
	ledgerTx.Notes = input.Notes
	ledgerTx.CorrelationID = input.CorrelationID

	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		repo := s.walletRepo.WithTx(tx)

		w, err := repo.LockForUpdate(ctx, input.WalletID)
		if err != nil {
			return err
		}

		if err := w.Apply(ledgerTx.Type, ledgerTx.Amount); err != nil {
			return err
		}
		ledgerTx.BalanceAfter = w.CurrentBalance

		if err := repo.Update(ctx, w); err != nil {
			return err
		}

		msg, err := outbox.NewWalletMessage(ledgerTx)
		if err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Create(ctx, msg)
	})
	if err != nil {
		s.logger.Error("Failed to append wallet transaction",
			"wallet_id", input.WalletID,
			"type", string(input.Type),
			"amount", input.Amount,
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("Wallet transaction appended",
		"wallet_id", input.WalletID,
		"transaction_id", ledgerTx.ID,
		"type", string(ledgerTx.Type),
		"amount", ledgerTx.Amount,
		"balance_after", ledgerTx.BalanceAfter,
	)

	// Fuel purchases settle the linked fuel logs after the ledger commit.
	// A settlement failure here leaves the ledger correct and only the fuel
	// log payment status stale, which the next update recomputes.
	if ledgerTx.Type == wallet.TxTypeFuelPurchase && len(ledgerTx.FuelLogIDs) > 0 {
		s.settleFuelLogs(ctx, ledgerTx)
	}

	return ledgerTx, nil
}

// settleFuelLogs distributes a fuel purchase across its linked fuel logs in
// order, crediting each log's outstanding balance until the amount runs out.
func (s *WalletServiceImpl) settleFuelLogs(ctx context.Context, ledgerTx *wallet.Transaction) {
	remaining := -ledgerTx.Amount // fuel purchases are debits

	for _, id := range ledgerTx.FuelLogIDs {
		if remaining <= 0 {
			return
		}

		e, err := s.fuelLogRepo.GetByID(ctx, id)
		if err != nil {
			s.logger.Error("Failed to load fuel log for settlement", "entry_id", id, "error", err)
			continue
		}

		credit := remaining
		if e.RemainingAmount > 0 && e.RemainingAmount < credit {
			credit = e.RemainingAmount
		}

		e.ApplySettlement(credit)
		if err := s.fuelLogRepo.Update(ctx, e); err != nil {
			s.logger.Error("Failed to settle fuel log", "entry_id", id, "error", err)
			continue
		}
		remaining -= credit

		s.logger.Info("Fuel log settled",
			"entry_id", id,
			"credit", credit,
			"payment_status", string(e.PaymentStatus),
		)
	}
}

// ListTransactions retrieves a paginated projected ledger for a wallet
func (s *WalletServiceImpl) ListTransactions(ctx context.Context, walletID uuid.UUID, filter wallet.TransactionFilter, page, perPage int) ([]*wallet.Transaction, int64, error) {
	if _, err := s.walletRepo.GetByID(ctx, walletID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	txs, err := s.walletTxRepo.ListByWallet(ctx, walletID, filter, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.walletTxRepo.CountByWallet(ctx, walletID, filter)
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

// Reconcile compares the cached wallet balance against the sum of completed
// ledger entries. With repair set, a drifting cache is overwritten from the
// ledger, which is the source of truth.
func (s *WalletServiceImpl) Reconcile(ctx context.Context, walletID uuid.UUID, repair bool) (*ReconciliationResult, error) {
	w, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	ledgerBalance, err := s.walletTxRepo.SumByWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}

	result := &ReconciliationResult{
		AccountID:     walletID,
		CachedBalance: w.CurrentBalance,
		LedgerBalance: ledgerBalance,
		Drift:         w.CurrentBalance - ledgerBalance,
	}

	if result.Drift != 0 {
		s.logger.Warn("Wallet balance drift detected",
			"wallet_id", walletID,
			"cached_balance", w.CurrentBalance,
			"ledger_balance", ledgerBalance,
			"drift", result.Drift,
		)
	}

	if repair && result.Drift != 0 {
		if err := s.walletRepo.SetBalances(ctx, walletID, ledgerBalance, w.PendingTransfer, w.TotalReceived, w.Version); err != nil {
			return nil, err
		}
		result.Repaired = true
		s.logger.Info("Wallet balance repaired from ledger", "wallet_id", walletID, "balance", ledgerBalance)
	}

	return result, nil
}
