package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/akrgroup/backoffice/internal/domain/admin"
	"github.com/akrgroup/backoffice/internal/domain/booking"
	"github.com/akrgroup/backoffice/internal/domain/fuellog"
	"github.com/akrgroup/backoffice/internal/domain/outbox"
	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/supplier"
	"github.com/akrgroup/backoffice/internal/domain/wallet"
)

// fakeTxRunner executes the transaction function directly, without a database
type fakeTxRunner struct{}

func (r *fakeTxRunner) ExecuteTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// MockWalletRepository is a mock implementation of wallet.Repository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) List(ctx context.Context, limit, offset int) ([]*wallet.Wallet, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) SetBalances(ctx context.Context, id uuid.UUID, currentBalance, pendingTransfer, totalReceived int64, version int) error {
	args := m.Called(ctx, id, currentBalance, pendingTransfer, totalReceived, version)
	return args.Error(0)
}

func (m *MockWalletRepository) ReleasePendingTransfer(ctx context.Context, id uuid.UUID, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockWalletRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) WithTx(tx pgx.Tx) wallet.Repository {
	return m
}

// MockWalletTxRepository is a mock implementation of wallet.TransactionRepository
type MockWalletTxRepository struct {
	mock.Mock
}

func (m *MockWalletTxRepository) Create(ctx context.Context, tx *wallet.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletTxRepository) GetByID(ctx context.Context, id uuid.UUID) (*wallet.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockWalletTxRepository) ListByWallet(ctx context.Context, walletID uuid.UUID, filter wallet.TransactionFilter, limit, offset int) ([]*wallet.Transaction, error) {
	args := m.Called(ctx, walletID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallet.Transaction), args.Error(1)
}

func (m *MockWalletTxRepository) CountByWallet(ctx context.Context, walletID uuid.UUID, filter wallet.TransactionFilter) (int64, error) {
	args := m.Called(ctx, walletID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletTxRepository) SumByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletTxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status shared.TxStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockSupplierRepository is a mock implementation of supplier.Repository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) List(ctx context.Context, limit, offset int) ([]*supplier.Supplier, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*supplier.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Update(ctx context.Context, s *supplier.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSupplierRepository) SetBalance(ctx context.Context, id uuid.UUID, balance int64, version int) error {
	args := m.Called(ctx, id, balance, version)
	return args.Error(0)
}

func (m *MockSupplierRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) WithTx(tx pgx.Tx) supplier.Repository {
	return m
}

// MockSupplierTxRepository is a mock implementation of supplier.TransactionRepository
type MockSupplierTxRepository struct {
	mock.Mock
}

func (m *MockSupplierTxRepository) Create(ctx context.Context, tx *supplier.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSupplierTxRepository) GetByID(ctx context.Context, id uuid.UUID) (*supplier.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Transaction), args.Error(1)
}

func (m *MockSupplierTxRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter supplier.TransactionFilter, limit, offset int) ([]*supplier.Transaction, error) {
	args := m.Called(ctx, supplierID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*supplier.Transaction), args.Error(1)
}

func (m *MockSupplierTxRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID, filter supplier.TransactionFilter) (int64, error) {
	args := m.Called(ctx, supplierID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierTxRepository) SumBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierTxRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status shared.TxStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockFuelLogRepository is a mock implementation of fuellog.Repository
type MockFuelLogRepository struct {
	mock.Mock
}

func (m *MockFuelLogRepository) Create(ctx context.Context, entry *fuellog.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFuelLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*fuellog.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fuellog.Entry), args.Error(1)
}

func (m *MockFuelLogRepository) Update(ctx context.Context, entry *fuellog.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFuelLogRepository) List(ctx context.Context, filter fuellog.ListFilter, limit, offset int) ([]*fuellog.Entry, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fuellog.Entry), args.Error(1)
}

func (m *MockFuelLogRepository) Count(ctx context.Context, filter fuellog.ListFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFuelLogRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status shared.RecordStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockOutboxRepository is a mock implementation of outbox.Repository
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Create(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOutboxRepository) IncrementAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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

// MockBookingRepository is a mock implementation of booking.Repository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByReference(ctx context.Context, reference string) (*booking.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, filter booking.ListFilter, limit, offset int) ([]*booking.Booking, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Count(ctx context.Context, filter booking.ListFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

// MockAdminRepository is a mock implementation of admin.Repository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*admin.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.Admin), args.Error(1)
}

func (m *MockAdminRepository) GetByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.Admin), args.Error(1)
}

// MockPublisher is a mock implementation of producers.MessagePublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
