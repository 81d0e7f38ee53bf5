// Package reports renders back-office data as Excel workbooks for download.
package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/akrgroup/backoffice/internal/domain/fuellog"
	"github.com/akrgroup/backoffice/internal/domain/wallet"
)

const (
	// ContentTypeXLSX is the MIME type for generated workbooks
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	dateFormat = "2006-01-02"
)

// minorToMajor converts minor currency units to a display value
func minorToMajor(v int64) float64 {
	return float64(v) / 100
}

// newWorkbook creates a single-sheet workbook with a title row and a styled
// header row starting at row 4, mirroring the layout of the manual exports
// the office already uses.
func newWorkbook(title string, headers []string) (*excelize.File, string, error) {
	f := excelize.NewFile()
	sheetName := "Report"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", err
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", title)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)

	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	return f, sheetName, nil
}

// BuildFuelLogReport renders fuel log entries as a workbook, one row per
// fueling event with the derived cost and settlement columns.
func BuildFuelLogReport(entries []*fuellog.Entry) (*excelize.File, error) {
	headers := []string{
		"Date", "Vehicle", "Employee", "Liters", "Price/L", "Total Cost",
		"Paid", "Overall Paid", "Remaining", "Distance (km)", "km/L", "Payment Status",
	}

	f, sheetName, err := newWorkbook("Fuel Log Report", headers)
	if err != nil {
		return nil, err
	}

	for rowIdx, e := range entries {
		row := rowIdx + 5
		values := []interface{}{
			e.Date.Format(dateFormat),
			e.VehicleID,
			e.EmployeeName,
			e.FuelAmount,
			minorToMajor(e.FuelPrice),
			minorToMajor(e.TotalCost),
			minorToMajor(e.PaidAmount),
			minorToMajor(e.OverallPaidAmount),
			minorToMajor(e.RemainingAmount),
			e.DistanceTraveled,
			e.FuelEfficiency,
			string(e.PaymentStatus),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	return f, nil
}

// BuildWalletStatement renders a shed wallet's projected ledger as a
// statement with a running balance column. Entries are expected oldest first.
func BuildWalletStatement(w *wallet.Wallet, txs []*wallet.Transaction) (*excelize.File, error) {
	headers := []string{
		"Date", "Type", "Method", "Reference", "Amount", "Running Balance", "Status", "Processed By",
	}

	f, sheetName, err := newWorkbook(fmt.Sprintf("Wallet Statement - %s", w.Name), headers)
	if err != nil {
		return nil, err
	}

	var running int64
	for rowIdx, tx := range txs {
		running += tx.Amount
		row := rowIdx + 5
		values := []interface{}{
			tx.CreatedAt.Format(dateFormat),
			string(tx.Type),
			string(tx.Method),
			tx.Reference,
			minorToMajor(tx.Amount),
			minorToMajor(running),
			string(tx.Status),
			tx.ProcessedBy,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	// Summary row comparing the ledger total with the cached balance
	summaryRow := len(txs) + 6
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	f.SetCellValue(sheetName, cell, "Cached balance")
	cell, _ = excelize.CoordinatesToCellName(5, summaryRow)
	f.SetCellValue(sheetName, cell, minorToMajor(w.CurrentBalance))

	return f, nil
}
