package supplier

import (
	"testing"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	t.Run("SuccessfulCreation", func(t *testing.T) {
		s, err := NewSupplier("Lanka Fuels", "Kamal", "0712345678", "kamal@lankafuels.lk", []string{"diesel", "petrol"})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, s.ID)
		assert.Equal(t, "Lanka Fuels", s.Name)
		assert.Equal(t, []string{"diesel", "petrol"}, s.Categories)
		assert.Zero(t, s.WalletBalance)
		assert.Equal(t, shared.RecordStatusActive, s.Status)
		assert.Equal(t, 1, s.Version)
	})

	t.Run("EmptyName", func(t *testing.T) {
		s, err := NewSupplier("", "", "", "", nil)
		assert.ErrorIs(t, err, ErrEmptyName)
		assert.Nil(t, s)
	})
}

func TestSupplier_Apply(t *testing.T) {
	newSupplier := func() *Supplier {
		s, err := NewSupplier("Lanka Fuels", "", "", "", nil)
		require.NoError(t, err)
		return s
	}

	t.Run("SupplyIncreasesPayable", func(t *testing.T) {
		s := newSupplier()
		require.NoError(t, s.Apply(SignedAmount(TxTypeSupply, 10000)))
		assert.Equal(t, int64(10000), s.WalletBalance)
		assert.Equal(t, 2, s.Version)
	})

	t.Run("PaymentMayGoNegative", func(t *testing.T) {
		// Prepaying a supplier is valid: balance below zero means credit held
		s := newSupplier()
		require.NoError(t, s.Apply(SignedAmount(TxTypePayment, 5000)))
		assert.Equal(t, int64(-5000), s.WalletBalance)
	})

	t.Run("ZeroAmountRejected", func(t *testing.T) {
		s := newSupplier()
		assert.ErrorIs(t, s.Apply(0), ErrInvalidAmount)
	})

	t.Run("InactiveSupplierRejected", func(t *testing.T) {
		s := newSupplier()
		s.Status = shared.RecordStatusInactive
		assert.ErrorIs(t, s.Apply(100), ErrInactiveSupplier)
	})
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, int64(500), SignedAmount(TxTypeSupply, 500))
	assert.Equal(t, int64(-500), SignedAmount(TxTypePayment, 500))
	assert.Equal(t, int64(-500), SignedAmount(TxTypePayment, -500))
	assert.Equal(t, int64(-200), SignedAmount(TxTypeAdjustment, -200))
	assert.Equal(t, int64(200), SignedAmount(TxTypeAdjustment, 200))
}

func TestNewTransaction(t *testing.T) {
	supplierID := uuid.New()
	tx := NewTransaction(supplierID, TxTypePayment, 2500, shared.PaymentMethodTransfer, "admin@akr.lk")

	assert.Equal(t, supplierID, tx.SupplierID)
	assert.Equal(t, int64(-2500), tx.Amount)
	assert.Equal(t, shared.TxStatusPending, tx.Status)
}
