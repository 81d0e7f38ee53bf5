// Package service contains the API's business logic between the HTTP handlers
// and the persistence and messaging layers.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/akrgroup/backoffice/internal/domain/admin"
	"github.com/akrgroup/backoffice/internal/domain/booking"
	"github.com/akrgroup/backoffice/internal/domain/books"
	"github.com/akrgroup/backoffice/internal/domain/catalog"
	"github.com/akrgroup/backoffice/internal/domain/fuellog"
	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/supplier"
	"github.com/akrgroup/backoffice/internal/domain/wallet"
)

// AuthService handles admin authentication
type AuthService interface {
	// Login verifies credentials and returns a signed session token
	Login(ctx context.Context, email, password string) (string, *admin.Admin, error)
}

// CatalogService manages the public product catalog
type CatalogService interface {
	CreateProduct(ctx context.Context, name, description, imageURL, category string, price int64) (*catalog.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	ListProducts(ctx context.Context, category string, page, perPage int) ([]*catalog.Product, int64, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, name, description, imageURL, category string, price int64) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// BooksService manages the manual revenue and cost ledgers
type BooksService interface {
	CreateEntry(ctx context.Context, kind books.Kind, category string, amount int64, description string, date time.Time, recordedBy string) (*books.Entry, error)
	GetEntry(ctx context.Context, kind books.Kind, id uuid.UUID) (*books.Entry, error)
	ListEntries(ctx context.Context, kind books.Kind, filter books.ListFilter, page, perPage int) ([]*books.Entry, int64, error)
	UpdateEntry(ctx context.Context, kind books.Kind, id uuid.UUID, category string, amount int64, description string, date time.Time) (*books.Entry, error)
	DeleteEntry(ctx context.Context, kind books.Kind, id uuid.UUID) error
}

// FuelLogInput carries the raw fields of a fuel log write. Derived fields are
// always recomputed server-side.
type FuelLogInput struct {
	VehicleID    string
	Date         time.Time
	EmployeeID   string
	EmployeeName string
	FuelAmount   float64
	FuelPrice    int64
	StartKm      float64
	EndKm        float64
	PaidAmount   int64
}

// FuelLogService manages vehicle fuel logs
type FuelLogService interface {
	CreateEntry(ctx context.Context, input FuelLogInput) (*fuellog.Entry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*fuellog.Entry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, input FuelLogInput) (*fuellog.Entry, error)
	ListEntries(ctx context.Context, filter fuellog.ListFilter, page, perPage int) ([]*fuellog.Entry, int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// AppendWalletTransactionInput carries a shed ledger append request
type AppendWalletTransactionInput struct {
	WalletID      uuid.UUID
	Type          wallet.TxType
	Amount        int64
	Method        shared.PaymentMethod
	FuelLogIDs    []uuid.UUID
	Reference     string
	Notes         string
	ProcessedBy   string
	CorrelationID string
}

// ReconciliationResult reports a ledger-versus-cache comparison for one account
type ReconciliationResult struct {
	AccountID     uuid.UUID
	CachedBalance int64
	LedgerBalance int64
	Drift         int64
	Repaired      bool
}

// WalletService manages shed wallets and their ledgers
type WalletService interface {
	CreateWallet(ctx context.Context, name, location, contactName, contactPhone string) (*wallet.Wallet, error)
	GetWallet(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error)
	ListWallets(ctx context.Context, page, perPage int) ([]*wallet.Wallet, int64, error)

	// AppendTransaction atomically applies a balance mutation and records the
	// ledger entry in the transactional outbox.
	AppendTransaction(ctx context.Context, input AppendWalletTransactionInput) (*wallet.Transaction, error)
	ListTransactions(ctx context.Context, walletID uuid.UUID, filter wallet.TransactionFilter, page, perPage int) ([]*wallet.Transaction, int64, error)

	// Reconcile compares the cached balance against the projected ledger sum,
	// optionally repairing the cache from the ledger.
	Reconcile(ctx context.Context, walletID uuid.UUID, repair bool) (*ReconciliationResult, error)
}

// AppendSupplierTransactionInput carries a supplier ledger append request
type AppendSupplierTransactionInput struct {
	SupplierID    uuid.UUID
	Type          supplier.TxType
	Amount        int64
	Method        shared.PaymentMethod
	FuelLogID     *uuid.UUID
	Notes         string
	ProcessedBy   string
	CorrelationID string
}

// UpdateSupplierInput carries a full supplier profile replacement. An empty
// Status keeps the current lifecycle state.
type UpdateSupplierInput struct {
	Name         string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Categories   []string
	Status       shared.RecordStatus
}

// SupplierService manages supplier accounts and their ledgers
type SupplierService interface {
	CreateSupplier(ctx context.Context, name, contactName, contactPhone, contactEmail string, categories []string) (*supplier.Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error)
	ListSuppliers(ctx context.Context, page, perPage int) ([]*supplier.Supplier, int64, error)
	UpdateSupplier(ctx context.Context, id uuid.UUID, input UpdateSupplierInput) (*supplier.Supplier, error)

	AppendTransaction(ctx context.Context, input AppendSupplierTransactionInput) (*supplier.Transaction, error)
	ListTransactions(ctx context.Context, supplierID uuid.UUID, filter supplier.TransactionFilter, page, perPage int) ([]*supplier.Transaction, int64, error)

	Reconcile(ctx context.Context, supplierID uuid.UUID, repair bool) (*ReconciliationResult, error)
}

// CreateBookingInput carries a public booking request
type CreateBookingInput struct {
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	Room          booking.RoomSnapshot
	CheckIn       time.Time
	CheckOut      time.Time
	Notes         string
	CorrelationID string
}

// BookingService manages hotel bookings and their notification events
type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListBookings(ctx context.Context, filter booking.ListFilter, page, perPage int) ([]*booking.Booking, int64, error)
	ConfirmBooking(ctx context.Context, id uuid.UUID, correlationID string) (*booking.Booking, error)
	RecordPayment(ctx context.Context, id uuid.UUID, amount int64, correlationID string) (*booking.Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID, correlationID string) (*booking.Booking, error)
	SendReviewInvitation(ctx context.Context, id uuid.UUID, reminder bool, correlationID string) (*booking.Booking, error)
}
