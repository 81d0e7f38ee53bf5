package wallet

import (
	"testing"
	"time"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWallet(t *testing.T) {
	t.Run("SuccessfulCreation", func(t *testing.T) {
		w, err := NewWallet("Main Shed", "Kurunegala", "Sunil", "0771234567")

		require.NoError(t, err)
		require.NotNil(t, w)
		assert.NotEqual(t, uuid.Nil, w.ID)
		assert.Equal(t, "Main Shed", w.Name)
		assert.Equal(t, shared.RecordStatusActive, w.Status)
		assert.Zero(t, w.CurrentBalance)
		assert.Zero(t, w.TotalReceived)
		assert.Equal(t, 1, w.Version)
	})

	t.Run("EmptyName", func(t *testing.T) {
		w, err := NewWallet("", "", "", "")
		assert.ErrorIs(t, err, ErrEmptyName)
		assert.Nil(t, w)
	})
}

func TestWallet_Apply(t *testing.T) {
	newWallet := func() *Wallet {
		w, err := NewWallet("Main Shed", "", "", "")
		require.NoError(t, err)
		return w
	}

	t.Run("PaymentReceivedCreditsAndAccumulates", func(t *testing.T) {
		w := newWallet()
		err := w.Apply(TxTypePaymentReceived, 5000)

		require.NoError(t, err)
		assert.Equal(t, int64(5000), w.CurrentBalance)
		assert.Equal(t, int64(5000), w.TotalReceived)
		assert.Equal(t, 2, w.Version)
	})

	t.Run("DebitBelowZeroRejected", func(t *testing.T) {
		w := newWallet()
		require.NoError(t, w.Apply(TxTypePaymentReceived, 1000))

		err := w.Apply(TxTypeFuelPurchase, SignedAmount(TxTypeFuelPurchase, 2000))
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Equal(t, int64(1000), w.CurrentBalance, "balance unchanged after rejected debit")
	})

	t.Run("DebitWithinBalance", func(t *testing.T) {
		w := newWallet()
		require.NoError(t, w.Apply(TxTypePaymentReceived, 5000))

		before := w.UpdatedAt
		time.Sleep(time.Millisecond)
		err := w.Apply(TxTypePaymentSent, SignedAmount(TxTypePaymentSent, 3000))

		require.NoError(t, err)
		assert.Equal(t, int64(2000), w.CurrentBalance)
		assert.Equal(t, int64(5000), w.TotalReceived, "debits do not touch lifetime received")
		assert.True(t, w.UpdatedAt.After(before))
	})

	t.Run("PaymentSentEarmarksPendingTransfer", func(t *testing.T) {
		w := newWallet()
		require.NoError(t, w.Apply(TxTypePaymentReceived, 10000))
		require.NoError(t, w.Apply(TxTypePaymentSent, SignedAmount(TxTypePaymentSent, 4000)))
		require.NoError(t, w.Apply(TxTypeFuelPurchase, SignedAmount(TxTypeFuelPurchase, 1000)))
		require.NoError(t, w.Apply(TxTypeAdjustment, -500))

		assert.Equal(t, int64(4500), w.CurrentBalance)
		assert.Equal(t, int64(4000), w.PendingTransfer, "only payment_sent moves the earmark")
		assert.Equal(t, int64(10000), w.TotalReceived)
	})

	t.Run("ZeroAmountRejected", func(t *testing.T) {
		w := newWallet()
		assert.ErrorIs(t, w.Apply(TxTypeAdjustment, 0), ErrInvalidAmount)
	})

	t.Run("InactiveWalletRejected", func(t *testing.T) {
		w := newWallet()
		w.Status = shared.RecordStatusInactive
		assert.ErrorIs(t, w.Apply(TxTypePaymentReceived, 100), ErrInactiveWallet)
	})
}

func TestSignedAmount(t *testing.T) {
	testCases := []struct {
		name     string
		txType   TxType
		amount   int64
		expected int64
	}{
		{"PaymentReceivedCredits", TxTypePaymentReceived, 5000, 5000},
		{"RefundCredits", TxTypeRefund, 300, 300},
		{"FuelPurchaseDebits", TxTypeFuelPurchase, 5000, -5000},
		{"PaymentSentDebits", TxTypePaymentSent, 700, -700},
		{"FuelPurchaseNormalizesSign", TxTypeFuelPurchase, -5000, -5000},
		{"AdjustmentKeepsPositive", TxTypeAdjustment, 250, 250},
		{"AdjustmentKeepsNegative", TxTypeAdjustment, -250, -250},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SignedAmount(tc.txType, tc.amount))
		})
	}
}

func TestNewTransaction(t *testing.T) {
	walletID := uuid.New()
	tx := NewTransaction(walletID, TxTypeFuelPurchase, 5000, shared.PaymentMethodCash, "admin@akr.lk")

	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, walletID, tx.WalletID)
	assert.Equal(t, int64(-5000), tx.Amount, "sign convention applied on creation")
	assert.Equal(t, shared.TxStatusPending, tx.Status)
	assert.Equal(t, "admin@akr.lk", tx.ProcessedBy)
}
