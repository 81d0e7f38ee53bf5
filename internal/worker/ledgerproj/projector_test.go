package ledgerproj

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/akrgroup/backoffice/internal/domain/outbox"
	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/supplier"
	"github.com/akrgroup/backoffice/internal/domain/wallet"
)

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Create(ctx context.Context, message *outbox.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockOutboxRepository) IncrementAttempts(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOutboxRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOutboxRepository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*outbox.Message, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) WithTx(tx pgx.Tx) outbox.Repository {
	return m
}

type MockWalletAccounts struct {
	mock.Mock
}

func (m *MockWalletAccounts) Create(ctx context.Context, w *wallet.Wallet) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWalletAccounts) GetByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletAccounts) List(ctx context.Context, limit, offset int) ([]*wallet.Wallet, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallet.Wallet), args.Error(1)
}

func (m *MockWalletAccounts) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletAccounts) Update(ctx context.Context, w *wallet.Wallet) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWalletAccounts) SetBalances(ctx context.Context, id uuid.UUID, currentBalance, pendingTransfer, totalReceived int64, version int) error {
	return m.Called(ctx, id, currentBalance, pendingTransfer, totalReceived, version).Error(0)
}

func (m *MockWalletAccounts) ReleasePendingTransfer(ctx context.Context, id uuid.UUID, amount int64) error {
	return m.Called(ctx, id, amount).Error(0)
}

func (m *MockWalletAccounts) LockForUpdate(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletAccounts) WithTx(tx pgx.Tx) wallet.Repository {
	return m
}

type MockShedLedger struct {
	mock.Mock
}

func (m *MockShedLedger) Create(ctx context.Context, tx *wallet.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockShedLedger) GetByID(ctx context.Context, id uuid.UUID) (*wallet.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockShedLedger) ListByWallet(ctx context.Context, walletID uuid.UUID, filter wallet.TransactionFilter, limit, offset int) ([]*wallet.Transaction, error) {
	args := m.Called(ctx, walletID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallet.Transaction), args.Error(1)
}

func (m *MockShedLedger) CountByWallet(ctx context.Context, walletID uuid.UUID, filter wallet.TransactionFilter) (int64, error) {
	args := m.Called(ctx, walletID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShedLedger) SumByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShedLedger) UpdateStatus(ctx context.Context, id uuid.UUID, status shared.TxStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockSupplierLedger struct {
	mock.Mock
}

func (m *MockSupplierLedger) Create(ctx context.Context, tx *supplier.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockSupplierLedger) GetByID(ctx context.Context, id uuid.UUID) (*supplier.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Transaction), args.Error(1)
}

func (m *MockSupplierLedger) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter supplier.TransactionFilter, limit, offset int) ([]*supplier.Transaction, error) {
	args := m.Called(ctx, supplierID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*supplier.Transaction), args.Error(1)
}

func (m *MockSupplierLedger) CountBySupplier(ctx context.Context, supplierID uuid.UUID, filter supplier.TransactionFilter) (int64, error) {
	args := m.Called(ctx, supplierID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierLedger) SumBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierLedger) UpdateStatus(ctx context.Context, id uuid.UUID, status shared.TxStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func walletMessage(t *testing.T) (*outbox.Message, *wallet.Transaction) {
	t.Helper()
	tx := wallet.NewTransaction(uuid.New(), wallet.TxTypePaymentReceived, 5000, shared.PaymentMethodCash, "admin@akr.lk")
	msg, err := outbox.NewWalletMessage(tx)
	require.NoError(t, err)
	msg.ID = 7
	return msg, tx
}

func TestProjector_Project(t *testing.T) {
	ctx := context.Background()

	t.Run("WalletTransactionProjected", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		shedLedger := new(MockShedLedger)
		supplierLedger := new(MockSupplierLedger)
		projector := NewProjector(newTestLogger(), outboxRepo, new(MockWalletAccounts), shedLedger, supplierLedger)

		msg, tx := walletMessage(t)

		shedLedger.On("Create", ctx, mock.MatchedBy(func(got *wallet.Transaction) bool {
			return got.ID == tx.ID && got.Status == shared.TxStatusCompleted && got.Amount == 5000
		})).Return(nil)
		outboxRepo.On("UpdateStatus", ctx, msg.ID, shared.OutboxStatusProcessed).Return(nil)

		err := projector.Project(ctx, msg)

		assert.NoError(t, err)
		shedLedger.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("DuplicateTreatedAsProjected", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		shedLedger := new(MockShedLedger)
		projector := NewProjector(newTestLogger(), outboxRepo, new(MockWalletAccounts), shedLedger, new(MockSupplierLedger))

		msg, tx := walletMessage(t)

		shedLedger.On("Create", ctx, mock.Anything).Return(wallet.ErrDuplicateTransaction{ID: tx.ID})
		shedLedger.On("UpdateStatus", ctx, tx.ID, shared.TxStatusCompleted).Return(nil)
		outboxRepo.On("UpdateStatus", ctx, msg.ID, shared.OutboxStatusProcessed).Return(nil)

		err := projector.Project(ctx, msg)

		assert.NoError(t, err)
		shedLedger.AssertExpectations(t)
	})

	t.Run("PaymentSentReleasesEarmark", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		wallets := new(MockWalletAccounts)
		shedLedger := new(MockShedLedger)
		projector := NewProjector(newTestLogger(), outboxRepo, wallets, shedLedger, new(MockSupplierLedger))

		tx := wallet.NewTransaction(uuid.New(), wallet.TxTypePaymentSent, 4000, shared.PaymentMethodTransfer, "admin@akr.lk")
		msg, err := outbox.NewWalletMessage(tx)
		require.NoError(t, err)
		msg.ID = 9

		shedLedger.On("Create", ctx, mock.Anything).Return(nil)
		wallets.On("ReleasePendingTransfer", ctx, tx.WalletID, int64(4000)).Return(nil)
		outboxRepo.On("UpdateStatus", ctx, msg.ID, shared.OutboxStatusProcessed).Return(nil)

		err = projector.Project(ctx, msg)

		assert.NoError(t, err)
		wallets.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("DuplicateReplayStillReleasesEarmark", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		wallets := new(MockWalletAccounts)
		shedLedger := new(MockShedLedger)
		projector := NewProjector(newTestLogger(), outboxRepo, wallets, shedLedger, new(MockSupplierLedger))

		tx := wallet.NewTransaction(uuid.New(), wallet.TxTypePaymentSent, 4000, shared.PaymentMethodTransfer, "admin@akr.lk")
		msg, err := outbox.NewWalletMessage(tx)
		require.NoError(t, err)
		msg.ID = 10

		shedLedger.On("Create", ctx, mock.Anything).Return(wallet.ErrDuplicateTransaction{ID: tx.ID})
		shedLedger.On("UpdateStatus", ctx, tx.ID, shared.TxStatusCompleted).Return(nil)
		wallets.On("ReleasePendingTransfer", ctx, tx.WalletID, int64(4000)).Return(nil)
		outboxRepo.On("UpdateStatus", ctx, msg.ID, shared.OutboxStatusProcessed).Return(nil)

		err = projector.Project(ctx, msg)

		assert.NoError(t, err)
		wallets.AssertExpectations(t)
	})

	t.Run("EarmarkReleaseFailureLeavesOutboxPending", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		wallets := new(MockWalletAccounts)
		shedLedger := new(MockShedLedger)
		projector := NewProjector(newTestLogger(), outboxRepo, wallets, shedLedger, new(MockSupplierLedger))

		tx := wallet.NewTransaction(uuid.New(), wallet.TxTypePaymentSent, 4000, shared.PaymentMethodTransfer, "admin@akr.lk")
		msg, err := outbox.NewWalletMessage(tx)
		require.NoError(t, err)
		msg.ID = 11

		shedLedger.On("Create", ctx, mock.Anything).Return(nil)
		wallets.On("ReleasePendingTransfer", ctx, tx.WalletID, int64(4000)).Return(assert.AnError)

		err = projector.Project(ctx, msg)

		assert.Error(t, err)
		outboxRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SupplierTransactionProjected", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		supplierLedger := new(MockSupplierLedger)
		projector := NewProjector(newTestLogger(), outboxRepo, new(MockWalletAccounts), new(MockShedLedger), supplierLedger)

		tx := supplier.NewTransaction(uuid.New(), supplier.TxTypeSupply, 80000, shared.PaymentMethodTransfer, "admin@akr.lk")
		msg, err := outbox.NewSupplierMessage(tx)
		require.NoError(t, err)
		msg.ID = 8

		supplierLedger.On("Create", ctx, mock.MatchedBy(func(got *supplier.Transaction) bool {
			return got.ID == tx.ID && got.Status == shared.TxStatusCompleted
		})).Return(nil)
		outboxRepo.On("UpdateStatus", ctx, msg.ID, shared.OutboxStatusProcessed).Return(nil)

		err = projector.Project(ctx, msg)

		assert.NoError(t, err)
		supplierLedger.AssertExpectations(t)
	})

	t.Run("UnknownKindParkedImmediately", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		projector := NewProjector(newTestLogger(), outboxRepo, new(MockWalletAccounts), new(MockShedLedger), new(MockSupplierLedger))

		msg, _ := walletMessage(t)
		msg.Kind = "VEHICLE"

		outboxRepo.On("UpdateStatus", ctx, msg.ID, shared.OutboxStatusFailedToPublish).Return(nil)

		err := projector.Project(ctx, msg)

		assert.Error(t, err)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("LedgerWriteFailureLeavesOutboxPending", func(t *testing.T) {
		outboxRepo := new(MockOutboxRepository)
		shedLedger := new(MockShedLedger)
		projector := NewProjector(newTestLogger(), outboxRepo, new(MockWalletAccounts), shedLedger, new(MockSupplierLedger))

		msg, _ := walletMessage(t)

		shedLedger.On("Create", ctx, mock.Anything).Return(assert.AnError)

		err := projector.Project(ctx, msg)

		assert.Error(t, err)
		outboxRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
