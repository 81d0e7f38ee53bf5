package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akrgroup/backoffice/internal/domain/booking"
	"github.com/akrgroup/backoffice/internal/domain/books"
	"github.com/akrgroup/backoffice/internal/domain/catalog"
	"github.com/akrgroup/backoffice/internal/domain/fuellog"
	"github.com/akrgroup/backoffice/internal/domain/supplier"
	"github.com/akrgroup/backoffice/internal/domain/wallet"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
	maxPerPage     = 100
)

// parsePagination extracts page and per_page query parameters with defaults
func parsePagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}

	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return page, perPage
}

// LoginRequest represents an admin login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the admin's profile
type LoginResponse struct {
	Token string         `json:"token"`
	Admin *AdminResponse `json:"admin"`
}

// AdminResponse represents an admin account in API responses
type AdminResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// CreateProductRequest represents a product creation payload
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Price       int64  `json:"price" binding:"gte=0"`
	Category    string `json:"category"`
}

// UpdateProductRequest represents a product update payload
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Price       int64  `json:"price" binding:"gte=0"`
	Category    string `json:"category"`
}

// ProductResponse represents a catalog product in API responses
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Price       int64  `json:"price"`
	Category    string `json:"category,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// BookEntryRequest represents a manual bookkeeping payload, shared by the
// revenue and cost ledgers.
type BookEntryRequest struct {
	Category    string    `json:"category" binding:"required"`
	Amount      int64     `json:"amount" binding:"gte=0"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
}

// BookEntryResponse represents a bookkeeping entry in API responses
type BookEntryResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Category    string `json:"category"`
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	RecordedBy  string `json:"recorded_by"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CreateFuelLogRequest represents a fuel log creation payload. Odometer
// readings are optional but must not run backwards.
type CreateFuelLogRequest struct {
	VehicleID    string    `json:"vehicle_id" binding:"required"`
	Date         time.Time `json:"date" binding:"required"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	FuelAmount   float64   `json:"fuel_amount" binding:"required,gt=0"`
	FuelPrice    int64     `json:"fuel_price" binding:"required,gt=0"`
	StartKm      float64   `json:"start_km" binding:"gte=0"`
	EndKm        float64   `json:"end_km" binding:"omitempty,gtefield=StartKm"`
	PaidAmount   int64     `json:"paid_amount" binding:"gte=0"`
}

// UpdateFuelLogRequest represents a fuel log update payload
type UpdateFuelLogRequest struct {
	VehicleID    string    `json:"vehicle_id" binding:"required"`
	Date         time.Time `json:"date" binding:"required"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	FuelAmount   float64   `json:"fuel_amount" binding:"required,gt=0"`
	FuelPrice    int64     `json:"fuel_price" binding:"required,gt=0"`
	StartKm      float64   `json:"start_km" binding:"gte=0"`
	EndKm        float64   `json:"end_km" binding:"omitempty,gtefield=StartKm"`
	PaidAmount   int64     `json:"paid_amount" binding:"gte=0"`
}

// FuelLogResponse represents a fuel log entry in API responses
type FuelLogResponse struct {
	ID               string  `json:"id"`
	VehicleID        string  `json:"vehicle_id"`
	Date             string  `json:"date"`
	EmployeeID       string  `json:"employee_id,omitempty"`
	EmployeeName     string  `json:"employee_name,omitempty"`
	FuelAmount       float64 `json:"fuel_amount"`
	FuelPrice        int64   `json:"fuel_price"`
	StartKm          float64 `json:"start_km,omitempty"`
	EndKm            float64 `json:"end_km,omitempty"`
	PaidAmount       int64   `json:"paid_amount"`
	OverallPaid      int64   `json:"overall_paid_amount"`
	DistanceTraveled float64 `json:"distance_traveled"`
	FuelEfficiency   float64 `json:"fuel_efficiency"`
	TotalCost        int64   `json:"total_cost"`
	RemainingAmount  int64   `json:"remaining_amount"`
	PaymentStatus    string  `json:"payment_status"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// CreateWalletRequest represents a shed wallet creation payload
type CreateWalletRequest struct {
	Name         string `json:"name" binding:"required"`
	Location     string `json:"location"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
}

// WalletResponse represents a shed wallet in API responses
type WalletResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Location        string `json:"location,omitempty"`
	ContactName     string `json:"contact_name,omitempty"`
	ContactPhone    string `json:"contact_phone,omitempty"`
	CurrentBalance  int64  `json:"current_balance"`
	PendingTransfer int64  `json:"pending_transfer"`
	TotalReceived   int64  `json:"total_received"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// CreateWalletTransactionRequest represents a shed ledger append payload.
// Amount is the unsigned magnitude except for adjustments, which keep their
// sign.
type CreateWalletTransactionRequest struct {
	Type       string   `json:"type" binding:"required"`
	Amount     int64    `json:"amount" binding:"required"`
	Method     string   `json:"method"`
	FuelLogIDs []string `json:"fuel_log_ids"`
	Reference  string   `json:"reference"`
	Notes      string   `json:"notes"`
}

// WalletTransactionResponse represents a shed ledger entry in API responses
type WalletTransactionResponse struct {
	ID            string   `json:"id"`
	WalletID      string   `json:"wallet_id"`
	Type          string   `json:"type"`
	Amount        int64    `json:"amount"`
	FuelLogIDs    []string `json:"fuel_log_ids,omitempty"`
	Method        string   `json:"method"`
	Status        string   `json:"status"`
	Reference     string   `json:"reference,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	ProcessedBy   string   `json:"processed_by"`
	BalanceAfter  int64    `json:"balance_after"`
	CreatedAt     string   `json:"created_at"`
}

// CreateSupplierRequest represents a supplier creation payload
type CreateSupplierRequest struct {
	Name         string   `json:"name" binding:"required"`
	ContactName  string   `json:"contact_name"`
	ContactPhone string   `json:"contact_phone"`
	ContactEmail string   `json:"contact_email" binding:"omitempty,email"`
	Categories   []string `json:"categories"`
}

// UpdateSupplierRequest represents a supplier profile replacement payload
type UpdateSupplierRequest struct {
	Name         string   `json:"name" binding:"required"`
	ContactName  string   `json:"contact_name"`
	ContactPhone string   `json:"contact_phone"`
	ContactEmail string   `json:"contact_email" binding:"omitempty,email"`
	Categories   []string `json:"categories"`
	Status       string   `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ContactName   string   `json:"contact_name,omitempty"`
	ContactPhone  string   `json:"contact_phone,omitempty"`
	ContactEmail  string   `json:"contact_email,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	WalletBalance int64    `json:"wallet_balance"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// CreateSupplierTransactionRequest represents a supplier ledger append payload
type CreateSupplierTransactionRequest struct {
	Type      string `json:"type" binding:"required"`
	Amount    int64  `json:"amount" binding:"required"`
	Method    string `json:"method"`
	FuelLogID string `json:"fuel_log_id"`
	Notes     string `json:"notes"`
}

// SupplierTransactionResponse represents a supplier ledger entry in API responses
type SupplierTransactionResponse struct {
	ID           string `json:"id"`
	SupplierID   string `json:"supplier_id"`
	Type         string `json:"type"`
	Amount       int64  `json:"amount"`
	FuelLogID    string `json:"fuel_log_id,omitempty"`
	Method       string `json:"method"`
	Status       string `json:"status"`
	Notes        string `json:"notes,omitempty"`
	ProcessedBy  string `json:"processed_by"`
	BalanceAfter int64  `json:"balance_after"`
	CreatedAt    string `json:"created_at"`
}

// ReconciliationResponse reports a ledger-versus-cache comparison
type ReconciliationResponse struct {
	AccountID     string `json:"account_id"`
	CachedBalance int64  `json:"cached_balance"`
	LedgerBalance int64  `json:"ledger_balance"`
	Drift         int64  `json:"drift"`
	Repaired      bool   `json:"repaired"`
}

// CreateBookingRequest represents a public booking request payload
type CreateBookingRequest struct {
	GuestName  string    `json:"guest_name" binding:"required"`
	GuestEmail string    `json:"guest_email" binding:"omitempty,email"`
	GuestPhone string    `json:"guest_phone"`
	RoomID     string    `json:"room_id" binding:"required,uuid"`
	RoomName   string    `json:"room_name" binding:"required"`
	NightRate  int64     `json:"night_rate" binding:"required,gt=0"`
	CheckIn    time.Time `json:"check_in" binding:"required"`
	CheckOut   time.Time `json:"check_out" binding:"required,gtfield=CheckIn"`
	Notes      string    `json:"notes"`
}

// RecordPaymentRequest represents a booking payment payload
type RecordPaymentRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID            string `json:"id"`
	Reference     string `json:"reference"`
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email,omitempty"`
	GuestPhone    string `json:"guest_phone,omitempty"`
	RoomID        string `json:"room_id"`
	RoomName      string `json:"room_name"`
	NightRate     int64  `json:"night_rate"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Nights        int    `json:"nights"`
	TotalAmount   int64  `json:"total_amount"`
	AmountPaid    int64  `json:"amount_paid"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// UploadResponse carries the public URL of a stored image
type UploadResponse struct {
	URL string `json:"url"`
}

func mapProductToResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func mapBookEntryToResponse(e *books.Entry) *BookEntryResponse {
	return &BookEntryResponse{
		ID:          e.ID.String(),
		Kind:        string(e.Kind),
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date.Format(time.RFC3339),
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

func mapFuelLogToResponse(e *fuellog.Entry) *FuelLogResponse {
	return &FuelLogResponse{
		ID:               e.ID.String(),
		VehicleID:        e.VehicleID,
		Date:             e.Date.Format(time.RFC3339),
		EmployeeID:       e.EmployeeID,
		EmployeeName:     e.EmployeeName,
		FuelAmount:       e.FuelAmount,
		FuelPrice:        e.FuelPrice,
		StartKm:          e.StartKm,
		EndKm:            e.EndKm,
		PaidAmount:       e.PaidAmount,
		OverallPaid:      e.OverallPaidAmount,
		DistanceTraveled: e.DistanceTraveled,
		FuelEfficiency:   e.FuelEfficiency,
		TotalCost:        e.TotalCost,
		RemainingAmount:  e.RemainingAmount,
		PaymentStatus:    string(e.PaymentStatus),
		Status:           string(e.Status),
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        e.UpdatedAt.Format(time.RFC3339),
	}
}

func mapWalletToResponse(w *wallet.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:              w.ID.String(),
		Name:            w.Name,
		Location:        w.Location,
		ContactName:     w.ContactName,
		ContactPhone:    w.ContactPhone,
		CurrentBalance:  w.CurrentBalance,
		PendingTransfer: w.PendingTransfer,
		TotalReceived:   w.TotalReceived,
		Status:          string(w.Status),
		CreatedAt:       w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       w.UpdatedAt.Format(time.RFC3339),
	}
}

func mapWalletTxToResponse(tx *wallet.Transaction) *WalletTransactionResponse {
	var fuelLogIDs []string
	for _, id := range tx.FuelLogIDs {
		fuelLogIDs = append(fuelLogIDs, id.String())
	}

	return &WalletTransactionResponse{
		ID:           tx.ID.String(),
		WalletID:     tx.WalletID.String(),
		Type:         string(tx.Type),
		Amount:       tx.Amount,
		FuelLogIDs:   fuelLogIDs,
		Method:       string(tx.Method),
		Status:       string(tx.Status),
		Reference:    tx.Reference,
		Notes:        tx.Notes,
		ProcessedBy:  tx.ProcessedBy,
		BalanceAfter: tx.BalanceAfter,
		CreatedAt:    tx.CreatedAt.Format(time.RFC3339),
	}
}

func mapSupplierToResponse(s *supplier.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		ContactName:   s.ContactName,
		ContactPhone:  s.ContactPhone,
		ContactEmail:  s.ContactEmail,
		Categories:    s.Categories,
		WalletBalance: s.WalletBalance,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	}
}

func mapSupplierTxToResponse(tx *supplier.Transaction) *SupplierTransactionResponse {
	var fuelLogID string
	if tx.FuelLogID != nil {
		fuelLogID = tx.FuelLogID.String()
	}

	return &SupplierTransactionResponse{
		ID:           tx.ID.String(),
		SupplierID:   tx.SupplierID.String(),
		Type:         string(tx.Type),
		Amount:       tx.Amount,
		FuelLogID:    fuelLogID,
		Method:       string(tx.Method),
		Status:       string(tx.Status),
		Notes:        tx.Notes,
		ProcessedBy:  tx.ProcessedBy,
		BalanceAfter: tx.BalanceAfter,
		CreatedAt:    tx.CreatedAt.Format(time.RFC3339),
	}
}

func mapBookingToResponse(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID.String(),
		Reference:     b.Reference,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		GuestPhone:    b.GuestPhone,
		RoomID:        b.Room.RoomID.String(),
		RoomName:      b.Room.Name,
		NightRate:     b.Room.NightRate,
		CheckIn:       b.CheckIn.Format(time.RFC3339),
		CheckOut:      b.CheckOut.Format(time.RFC3339),
		Nights:        b.Nights,
		TotalAmount:   b.TotalAmount,
		AmountPaid:    b.AmountPaid,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}

// parseUUIDParam reads a path parameter as a UUID
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondBadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
