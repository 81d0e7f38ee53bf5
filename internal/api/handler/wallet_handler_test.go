package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/akrgroup/backoffice/internal/api/service"
	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/wallet"
)

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) CreateWallet(ctx context.Context, name, location, contactName, contactPhone string) (*wallet.Wallet, error) {
	args := m.Called(ctx, name, location, contactName, contactPhone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) GetWallet(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) ListWallets(ctx context.Context, page, perPage int) ([]*wallet.Wallet, int64, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*wallet.Wallet), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletService) AppendTransaction(ctx context.Context, input service.AppendWalletTransactionInput) (*wallet.Transaction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Transaction), args.Error(1)
}

func (m *MockWalletService) ListTransactions(ctx context.Context, walletID uuid.UUID, filter wallet.TransactionFilter, page, perPage int) ([]*wallet.Transaction, int64, error) {
	args := m.Called(ctx, walletID, filter, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*wallet.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletService) Reconcile(ctx context.Context, walletID uuid.UUID, repair bool) (*service.ReconciliationResult, error) {
	args := m.Called(ctx, walletID, repair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconciliationResult), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeData[T any](t *testing.T, body []byte) T {
	t.Helper()
	var topLevel Response
	require.NoError(t, json.Unmarshal(body, &topLevel))
	require.NotNil(t, topLevel.Data)

	dataBytes, err := json.Marshal(topLevel.Data)
	require.NoError(t, err)

	var out T
	require.NoError(t, json.Unmarshal(dataBytes, &out))
	return out
}

func TestWalletHandler_CreateTransaction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockWalletService)
		h := NewWalletHandler(testLogger(), mockService)

		walletID := uuid.New()
		tx := wallet.NewTransaction(walletID, wallet.TxTypePaymentReceived, 5000, shared.PaymentMethodCash, "admin@akr.lk")
		tx.BalanceAfter = 5000

		mockService.On("AppendTransaction", mock.Anything, mock.MatchedBy(func(input service.AppendWalletTransactionInput) bool {
			return input.WalletID == walletID && input.Type == wallet.TxTypePaymentReceived && input.Amount == 5000
		})).Return(tx, nil)

		router := setupTestRouter()
		router.POST("/wallets/:id/transactions", h.CreateTransaction)

		body, _ := json.Marshal(CreateWalletTransactionRequest{
			Type:   "PAYMENT_RECEIVED",
			Amount: 5000,
			Method: "CASH",
		})
		req, _ := http.NewRequest(http.MethodPost, "/wallets/"+walletID.String()+"/transactions", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		resp := decodeData[WalletTransactionResponse](t, rr.Body.Bytes())
		assert.Equal(t, "PAYMENT_RECEIVED", resp.Type)
		assert.Equal(t, int64(5000), resp.BalanceAfter)
		mockService.AssertExpectations(t)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		mockService := new(MockWalletService)
		h := NewWalletHandler(testLogger(), mockService)

		walletID := uuid.New()
		mockService.On("AppendTransaction", mock.Anything, mock.Anything).Return(nil, wallet.ErrInsufficientFunds)

		router := setupTestRouter()
		router.POST("/wallets/:id/transactions", h.CreateTransaction)

		body, _ := json.Marshal(CreateWalletTransactionRequest{Type: "PAYMENT_SENT", Amount: 999999})
		req, _ := http.NewRequest(http.MethodPost, "/wallets/"+walletID.String()+"/transactions", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("UnknownType", func(t *testing.T) {
		mockService := new(MockWalletService)
		h := NewWalletHandler(testLogger(), mockService)

		mockService.On("AppendTransaction", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidTransactionType)

		router := setupTestRouter()
		router.POST("/wallets/:id/transactions", h.CreateTransaction)

		body, _ := json.Marshal(CreateWalletTransactionRequest{Type: "WITHDRAWAL", Amount: 100})
		req, _ := http.NewRequest(http.MethodPost, "/wallets/"+uuid.New().String()+"/transactions", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InvalidWalletID", func(t *testing.T) {
		h := NewWalletHandler(testLogger(), new(MockWalletService))

		router := setupTestRouter()
		router.POST("/wallets/:id/transactions", h.CreateTransaction)

		body, _ := json.Marshal(CreateWalletTransactionRequest{Type: "PAYMENT_RECEIVED", Amount: 100})
		req, _ := http.NewRequest(http.MethodPost, "/wallets/not-a-uuid/transactions", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestWalletHandler_Reconcile(t *testing.T) {
	t.Run("ReportsDrift", func(t *testing.T) {
		mockService := new(MockWalletService)
		h := NewWalletHandler(testLogger(), mockService)

		walletID := uuid.New()
		mockService.On("Reconcile", mock.Anything, walletID, true).Return(&service.ReconciliationResult{
			AccountID:     walletID,
			CachedBalance: 42000,
			LedgerBalance: 40000,
			Drift:         2000,
			Repaired:      true,
		}, nil)

		router := setupTestRouter()
		router.POST("/wallets/:id/reconcile", h.Reconcile)

		req, _ := http.NewRequest(http.MethodPost, "/wallets/"+walletID.String()+"/reconcile?repair=true", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		resp := decodeData[ReconciliationResponse](t, rr.Body.Bytes())
		assert.Equal(t, int64(2000), resp.Drift)
		assert.True(t, resp.Repaired)
	})

	t.Run("WalletNotFound", func(t *testing.T) {
		mockService := new(MockWalletService)
		h := NewWalletHandler(testLogger(), mockService)

		walletID := uuid.New()
		mockService.On("Reconcile", mock.Anything, walletID, false).Return(nil, wallet.ErrWalletNotFound{WalletID: walletID})

		router := setupTestRouter()
		router.POST("/wallets/:id/reconcile", h.Reconcile)

		req, _ := http.NewRequest(http.MethodPost, "/wallets/"+walletID.String()+"/reconcile", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
