package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/akrgroup/backoffice/internal/domain/outbox"
	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/supplier"
)

func newSupplierService(supplierRepo *MockSupplierRepository, supplierTxRepo *MockSupplierTxRepository, outboxRepo *MockOutboxRepository) SupplierService {
	return NewSupplierService(newTestLogger(), &fakeTxRunner{}, supplierRepo, supplierTxRepo, outboxRepo)
}

func activeSupplier() *supplier.Supplier {
	s, _ := supplier.NewSupplier("Lanka Fuels", "Nimal", "0712345678", "sales@lankafuels.lk", []string{"diesel"})
	return s
}

func TestSupplierService_AppendTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("SupplyIncreasesPayable", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		outboxRepo := new(MockOutboxRepository)
		svc := newSupplierService(supplierRepo, new(MockSupplierTxRepository), outboxRepo)

		sup := activeSupplier()
		supplierRepo.On("LockForUpdate", ctx, sup.ID).Return(sup, nil)
		supplierRepo.On("Update", ctx, sup).Return(nil)
		outboxRepo.On("Create", ctx, mock.MatchedBy(func(msg *outbox.Message) bool {
			return msg.Kind == shared.AggregateSupplier
		})).Return(nil)

		tx, err := svc.AppendTransaction(ctx, AppendSupplierTransactionInput{
			SupplierID:  sup.ID,
			Type:        supplier.TxTypeSupply,
			Amount:      80000,
			ProcessedBy: "admin@akr.lk",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(80000), tx.Amount)
		assert.Equal(t, int64(80000), tx.BalanceAfter)
		assert.Equal(t, int64(80000), sup.WalletBalance)
	})

	t.Run("PaymentMayPrepayBelowZero", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		outboxRepo := new(MockOutboxRepository)
		svc := newSupplierService(supplierRepo, new(MockSupplierTxRepository), outboxRepo)

		sup := activeSupplier()
		supplierRepo.On("LockForUpdate", ctx, sup.ID).Return(sup, nil)
		supplierRepo.On("Update", ctx, sup).Return(nil)
		outboxRepo.On("Create", ctx, mock.Anything).Return(nil)

		tx, err := svc.AppendTransaction(ctx, AppendSupplierTransactionInput{
			SupplierID: sup.ID,
			Type:       supplier.TxTypePayment,
			Amount:     50000,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(-50000), tx.Amount)
		assert.Equal(t, int64(-50000), sup.WalletBalance)
	})

	t.Run("RejectsUnknownMethod", func(t *testing.T) {
		svc := newSupplierService(new(MockSupplierRepository), new(MockSupplierTxRepository), new(MockOutboxRepository))

		_, err := svc.AppendTransaction(ctx, AppendSupplierTransactionInput{
			SupplierID: activeSupplier().ID,
			Type:       supplier.TxTypeSupply,
			Amount:     100,
			Method:     shared.PaymentMethod("CRYPTO"),
		})

		assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	})

	t.Run("InactiveSupplierRejected", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		svc := newSupplierService(supplierRepo, new(MockSupplierTxRepository), new(MockOutboxRepository))

		sup := activeSupplier()
		sup.Status = shared.RecordStatusInactive
		supplierRepo.On("LockForUpdate", ctx, sup.ID).Return(sup, nil)

		_, err := svc.AppendTransaction(ctx, AppendSupplierTransactionInput{
			SupplierID: sup.ID,
			Type:       supplier.TxTypeSupply,
			Amount:     100,
		})

		assert.ErrorIs(t, err, supplier.ErrInactiveSupplier)
	})
}

func TestSupplierService_UpdateSupplier(t *testing.T) {
	ctx := context.Background()

	t.Run("ReplacesProfileAndBumpsVersion", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		svc := newSupplierService(supplierRepo, new(MockSupplierTxRepository), new(MockOutboxRepository))

		sup := activeSupplier()
		sup.WalletBalance = 12000
		supplierRepo.On("GetByID", ctx, sup.ID).Return(sup, nil)
		supplierRepo.On("Update", ctx, sup).Return(nil)

		updated, err := svc.UpdateSupplier(ctx, sup.ID, UpdateSupplierInput{
			Name:         "Lanka Fuels (Pvt) Ltd",
			ContactName:  "Kamal",
			ContactPhone: "0779876543",
			Categories:   []string{"diesel", "petrol"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "Lanka Fuels (Pvt) Ltd", updated.Name)
		assert.Equal(t, []string{"diesel", "petrol"}, updated.Categories)
		assert.Equal(t, 2, updated.Version)
		assert.Equal(t, shared.RecordStatusActive, updated.Status)
		assert.Equal(t, int64(12000), updated.WalletBalance)
		supplierRepo.AssertExpectations(t)
	})

	t.Run("StatusChangeApplied", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		svc := newSupplierService(supplierRepo, new(MockSupplierTxRepository), new(MockOutboxRepository))

		sup := activeSupplier()
		supplierRepo.On("GetByID", ctx, sup.ID).Return(sup, nil)
		supplierRepo.On("Update", ctx, sup).Return(nil)

		updated, err := svc.UpdateSupplier(ctx, sup.ID, UpdateSupplierInput{
			Name:   sup.Name,
			Status: shared.RecordStatusInactive,
		})

		assert.NoError(t, err)
		assert.Equal(t, shared.RecordStatusInactive, updated.Status)
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		svc := newSupplierService(supplierRepo, new(MockSupplierTxRepository), new(MockOutboxRepository))

		_, err := svc.UpdateSupplier(ctx, activeSupplier().ID, UpdateSupplierInput{})

		assert.ErrorIs(t, err, supplier.ErrEmptyName)
		supplierRepo.AssertNotCalled(t, "Update")
	})

	t.Run("UnknownSupplier", func(t *testing.T) {
		supplierRepo := new(MockSupplierRepository)
		svc := newSupplierService(supplierRepo, new(MockSupplierTxRepository), new(MockOutboxRepository))

		sup := activeSupplier()
		supplierRepo.On("GetByID", ctx, sup.ID).Return(nil, supplier.ErrSupplierNotFound{SupplierID: sup.ID})

		_, err := svc.UpdateSupplier(ctx, sup.ID, UpdateSupplierInput{Name: "X"})

		assert.ErrorIs(t, err, supplier.ErrSupplierNotFound{})
	})
}

func TestSupplierService_Reconcile(t *testing.T) {
	ctx := context.Background()

	supplierRepo := new(MockSupplierRepository)
	supplierTxRepo := new(MockSupplierTxRepository)
	svc := newSupplierService(supplierRepo, supplierTxRepo, new(MockOutboxRepository))

	sup := activeSupplier()
	sup.WalletBalance = 30000
	supplierRepo.On("GetByID", ctx, sup.ID).Return(sup, nil)
	supplierTxRepo.On("SumBySupplier", ctx, sup.ID).Return(int64(35000), nil)
	supplierRepo.On("SetBalance", ctx, sup.ID, int64(35000), sup.Version).Return(nil)

	result, err := svc.Reconcile(ctx, sup.ID, true)

	assert.NoError(t, err)
	assert.Equal(t, int64(-5000), result.Drift)
	assert.True(t, result.Repaired)
	supplierRepo.AssertExpectations(t)
}
