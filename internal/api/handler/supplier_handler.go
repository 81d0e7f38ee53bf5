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
	"github.com/akrgroup/backoffice/internal/domain/supplier"
)

// SupplierHandler manages supplier account requests
type SupplierHandler struct {
	logger          *slog.Logger
	supplierService service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(logger *slog.Logger, supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{
		logger:          logger,
		supplierService: supplierService,
	}
}

// Create handles POST /api/v1/suppliers requests
func (h *SupplierHandler) Create(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	s, err := h.supplierService.CreateSupplier(c.Request.Context(), req.Name, req.ContactName, req.ContactPhone, req.ContactEmail, req.Categories)
	if err != nil {
		if errors.Is(err, supplier.ErrEmptyName) {
			RespondBadRequest(c, err.Error())
			return
		}
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapSupplierToResponse(s))
}

// GetByID handles GET /api/v1/suppliers/:id requests
func (h *SupplierHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.supplierService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		var notFound supplier.ErrSupplierNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Supplier not found")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapSupplierToResponse(s))
}

// List handles GET /api/v1/suppliers requests
func (h *SupplierHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)

	suppliers, total, err := h.supplierService.ListSuppliers(c.Request.Context(), page, perPage)
	if err != nil {
		RespondInternalError(c)
		return
	}

	responses := make([]*SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		responses = append(responses, mapSupplierToResponse(s))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, page, perPage, int(total))
}

// Update handles PUT /api/v1/suppliers/:id requests
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	s, err := h.supplierService.UpdateSupplier(c.Request.Context(), id, service.UpdateSupplierInput{
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Categories:   req.Categories,
		Status:       shared.RecordStatus(req.Status),
	})
	if err != nil {
		var notFound supplier.ErrSupplierNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Supplier not found")
		case errors.Is(err, supplier.ErrEmptyName):
			RespondBadRequest(c, err.Error())
		default:
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapSupplierToResponse(s))
}

// CreateTransaction handles POST /api/v1/suppliers/:id/transactions requests
func (h *SupplierHandler) CreateTransaction(c *gin.Context) {
	supplierID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateSupplierTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	var fuelLogID *uuid.UUID
	if req.FuelLogID != "" {
		id, err := uuid.Parse(req.FuelLogID)
		if err != nil {
			RespondBadRequest(c, "Invalid fuel log ID: "+req.FuelLogID)
			return
		}
		fuelLogID = &id
	}

	tx, err := h.supplierService.AppendTransaction(c.Request.Context(), service.AppendSupplierTransactionInput{
		SupplierID:    supplierID,
		Type:          supplier.TxType(req.Type),
		Amount:        req.Amount,
		Method:        shared.PaymentMethod(req.Method),
		FuelLogID:     fuelLogID,
		Notes:         req.Notes,
		ProcessedBy:   middleware.GetAdminEmail(c),
		CorrelationID: middleware.GetCorrelationID(c),
	})
	if err != nil {
		var notFound supplier.ErrSupplierNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Supplier not found")
		case errors.Is(err, service.ErrInvalidTransactionType), errors.Is(err, service.ErrInvalidPaymentMethod):
			RespondBadRequest(c, err.Error())
		case errors.Is(err, supplier.ErrInactiveSupplier), errors.Is(err, supplier.ErrInvalidAmount):
			RespondUnprocessable(c, err.Error())
		default:
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapSupplierTxToResponse(tx))
}

// ListTransactions handles GET /api/v1/suppliers/:id/transactions requests
func (h *SupplierHandler) ListTransactions(c *gin.Context) {
	supplierID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	page, perPage := parsePagination(c)
	filter := supplier.TransactionFilter{
		Type:   supplier.TxType(c.Query("type")),
		Status: shared.TxStatus(c.Query("status")),
	}

	txs, total, err := h.supplierService.ListTransactions(c.Request.Context(), supplierID, filter, page, perPage)
	if err != nil {
		var notFound supplier.ErrSupplierNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Supplier not found")
			return
		}
		RespondInternalError(c)
		return
	}

	responses := make([]*SupplierTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, mapSupplierTxToResponse(tx))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, page, perPage, int(total))
}

// Reconcile handles POST /api/v1/suppliers/:id/reconcile requests
func (h *SupplierHandler) Reconcile(c *gin.Context) {
	supplierID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	repair := c.Query("repair") == "true"

	result, err := h.supplierService.Reconcile(c.Request.Context(), supplierID, repair)
	if err != nil {
		var notFound supplier.ErrSupplierNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Supplier not found")
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
