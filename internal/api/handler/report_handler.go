package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/akrgroup/backoffice/internal/api/service"
	"github.com/akrgroup/backoffice/internal/domain/fuellog"
	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/wallet"
	"github.com/akrgroup/backoffice/internal/reports"
)

// reportRowLimit caps export size; the office exports are monthly and far below this
const reportRowLimit = 10000

// ReportHandler serves Excel exports of fuel logs and wallet statements
type ReportHandler struct {
	logger         *slog.Logger
	fuelLogService service.FuelLogService
	walletService  service.WalletService
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, fuelLogService service.FuelLogService, walletService service.WalletService) *ReportHandler {
	return &ReportHandler{
		logger:         logger,
		fuelLogService: fuelLogService,
		walletService:  walletService,
	}
}

// FuelLogReport handles GET /api/v1/reports/fuel-logs requests
func (h *ReportHandler) FuelLogReport(c *gin.Context) {
	filter := fuellog.ListFilter{
		VehicleID: c.Query("vehicle_id"),
		Status:    shared.RecordStatusActive,
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

	entries, _, err := h.fuelLogService.ListEntries(c.Request.Context(), filter, 1, reportRowLimit)
	if err != nil {
		RespondInternalError(c)
		return
	}

	f, err := reports.BuildFuelLogReport(entries)
	if err != nil {
		h.logger.Error("Failed to build fuel log report", "error", err)
		RespondInternalError(c)
		return
	}
	defer f.Close()

	h.sendWorkbook(c, f, fmt.Sprintf("fuel_logs_%s.xlsx", time.Now().Format("20060102_150405")))
}

// WalletStatement handles GET /api/v1/reports/wallets/:id requests
func (h *ReportHandler) WalletStatement(c *gin.Context) {
	walletID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	w, err := h.walletService.GetWallet(c.Request.Context(), walletID)
	if err != nil {
		var notFound wallet.ErrWalletNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Wallet not found")
			return
		}
		RespondInternalError(c)
		return
	}

	txs, _, err := h.walletService.ListTransactions(c.Request.Context(), walletID, wallet.TransactionFilter{}, 1, reportRowLimit)
	if err != nil {
		RespondInternalError(c)
		return
	}

	// Listings come newest first; the statement runs oldest first
	for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
		txs[i], txs[j] = txs[j], txs[i]
	}

	f, err := reports.BuildWalletStatement(w, txs)
	if err != nil {
		h.logger.Error("Failed to build wallet statement", "wallet_id", walletID, "error", err)
		RespondInternalError(c)
		return
	}
	defer f.Close()

	h.sendWorkbook(c, f, fmt.Sprintf("wallet_statement_%s.xlsx", time.Now().Format("20060102_150405")))
}

func (h *ReportHandler) sendWorkbook(c *gin.Context, f *excelize.File, filename string) {
	buffer, err := f.WriteToBuffer()
	if err != nil {
		h.logger.Error("Failed to serialize workbook", "error", err)
		RespondInternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, reports.ContentTypeXLSX, buffer.Bytes())
}
