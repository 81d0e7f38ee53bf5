package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akrgroup/backoffice/internal/api/service"
	"github.com/akrgroup/backoffice/internal/domain/fuellog"
	"github.com/akrgroup/backoffice/internal/domain/shared"
)

// FuelLogHandler manages fuel log requests
type FuelLogHandler struct {
	logger         *slog.Logger
	fuelLogService service.FuelLogService
}

// NewFuelLogHandler creates a new fuel log handler
func NewFuelLogHandler(logger *slog.Logger, fuelLogService service.FuelLogService) *FuelLogHandler {
	return &FuelLogHandler{
		logger:         logger,
		fuelLogService: fuelLogService,
	}
}

// Create handles POST /api/v1/fuel-logs requests
func (h *FuelLogHandler) Create(c *gin.Context) {
	var req CreateFuelLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	e, err := h.fuelLogService.CreateEntry(c.Request.Context(), service.FuelLogInput{
		VehicleID:    req.VehicleID,
		Date:         req.Date,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		FuelAmount:   req.FuelAmount,
		FuelPrice:    req.FuelPrice,
		StartKm:      req.StartKm,
		EndKm:        req.EndKm,
		PaidAmount:   req.PaidAmount,
	})
	if err != nil {
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapFuelLogToResponse(e))
}

// GetByID handles GET /api/v1/fuel-logs/:id requests
func (h *FuelLogHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	e, err := h.fuelLogService.GetEntry(c.Request.Context(), id)
	if err != nil {
		var notFound fuellog.ErrEntryNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Fuel log not found")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapFuelLogToResponse(e))
}

// List handles GET /api/v1/fuel-logs requests
func (h *FuelLogHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)

	filter := fuellog.ListFilter{
		VehicleID:     c.Query("vehicle_id"),
		PaymentStatus: fuellog.PaymentStatus(c.Query("payment_status")),
		Status:        shared.RecordStatus(c.Query("status")),
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			RespondBadRequest(c, "Invalid from date")
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			RespondBadRequest(c, "Invalid to date")
			return
		}
		filter.To = t
	}

	entries, total, err := h.fuelLogService.ListEntries(c.Request.Context(), filter, page, perPage)
	if err != nil {
		RespondInternalError(c)
		return
	}

	responses := make([]*FuelLogResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, mapFuelLogToResponse(e))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, page, perPage, int(total))
}

// Update handles PUT /api/v1/fuel-logs/:id requests
func (h *FuelLogHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateFuelLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	e, err := h.fuelLogService.UpdateEntry(c.Request.Context(), id, service.FuelLogInput{
		VehicleID:    req.VehicleID,
		Date:         req.Date,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		FuelAmount:   req.FuelAmount,
		FuelPrice:    req.FuelPrice,
		StartKm:      req.StartKm,
		EndKm:        req.EndKm,
		PaidAmount:   req.PaidAmount,
	})
	if err != nil {
		var notFound fuellog.ErrEntryNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Fuel log not found")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapFuelLogToResponse(e))
}

// Delete handles DELETE /api/v1/fuel-logs/:id requests with a soft delete
func (h *FuelLogHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.fuelLogService.Deactivate(c.Request.Context(), id); err != nil {
		var notFound fuellog.ErrEntryNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Fuel log not found")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}
