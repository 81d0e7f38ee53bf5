package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akrgroup/backoffice/internal/api/middleware"
	"github.com/akrgroup/backoffice/internal/api/service"
	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/wallet"
)

// WalletHandler manages shed wallet requests
type WalletHandler struct {
	logger        *slog.Logger
	walletService service.WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(logger *slog.Logger, walletService service.WalletService) *WalletHandler {
	return &WalletHandler{
		logger:        logger,
		walletService: walletService,
	}
}

// Create handles POST /api/v1/wallets requests
func (h *WalletHandler) Create(c *gin.Context) {
	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	w, err := h.walletService.CreateWallet(c.Request.Context(), req.Name, req.Location, req.ContactName, req.ContactPhone)
	if err != nil {
		if errors.Is(err, wallet.ErrEmptyName) {
			RespondBadRequest(c, err.Error())
			return
		}
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapWalletToResponse(w))
}

// GetByID handles GET /api/v1/wallets/:id requests
func (h *WalletHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	w, err := h.walletService.GetWallet(c.Request.Context(), id)
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Wallet not found")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapWalletToResponse(w))
}

// List handles GET /api/v1/wallets requests
func (h *WalletHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)

	wallets, total, err := h.walletService.ListWallets(c.Request.Context(), page, perPage)
	if err != nil {
		RespondInternalError(c)
		return
	}

	responses := make([]*WalletResponse, 0, len(wallets))
	for _, w := range wallets {
		responses = append(responses, mapWalletToResponse(w))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, page, perPage, int(total))
}

// CreateTransaction handles POST /api/v1/wallets/:id/transactions requests
func (h *WalletHandler) CreateTransaction(c *gin.Context) {
	walletID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateWalletTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	fuelLogIDs := make([]uuid.UUID, 0, len(req.FuelLogIDs))
	for _, raw := range req.FuelLogIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondBadRequest(c, "Invalid fuel log ID: "+raw)
			return
		}
		fuelLogIDs = append(fuelLogIDs, id)
	}
	if len(fuelLogIDs) == 0 {
		fuelLogIDs = nil
	}

	tx, err := h.walletService.AppendTransaction(c.Request.Context(), service.AppendWalletTransactionInput{
		WalletID:      walletID,
		Type:          wallet.TxType(req.Type),
		Amount:        req.Amount,
		Method:        shared.PaymentMethod(req.Method),
		FuelLogIDs:    fuelLogIDs,
		Reference:     req.Reference,
		Notes:         req.Notes,
		ProcessedBy:   middleware.GetAdminEmail(c),
		CorrelationID: middleware.GetCorrelationID(c),
	})
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Wallet not found")
		case errors.Is(err, service.ErrInvalidTransactionType), errors.Is(err, service.ErrInvalidPaymentMethod):
			RespondBadRequest(c, err.Error())
		case errors.Is(err, wallet.ErrInsufficientFunds):
			RespondUnprocessable(c, err.Error())
		case errors.Is(err, wallet.ErrInactiveWallet), errors.Is(err, wallet.ErrInvalidAmount):
			RespondUnprocessable(c, err.Error())
		default:
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapWalletTxToResponse(tx))
}

// ListTransactions handles GET /api/v1/wallets/:id/transactions requests
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	walletID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	page, perPage := parsePagination(c)
	filter := wallet.TransactionFilter{
		Type:   wallet.TxType(c.Query("type")),
		Status: shared.TxStatus(c.Query("status")),
	}

	txs, total, err := h.walletService.ListTransactions(c.Request.Context(), walletID, filter, page, perPage)
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Wallet not found")
			return
		}
		RespondInternalError(c)
		return
	}

	responses := make([]*WalletTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, mapWalletTxToResponse(tx))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, page, perPage, int(total))
}

// Reconcile handles POST /api/v1/wallets/:id/reconcile requests
func (h *WalletHandler) Reconcile(c *gin.Context) {
	walletID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	repair := c.Query("repair") == "true"

	result, err := h.walletService.Reconcile(c.Request.Context(), walletID, repair)
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Wallet not found")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondOK(c, &ReconciliationResponse{
		AccountID:     result.AccountID.String(),
		CachedBalance: result.CachedBalance,
		LedgerBalance: result.LedgerBalance,
		Drift:         result.Drift,
		Repaired:      result.Repaired,
	})
}
