package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akrgroup/backoffice/internal/domain/supplier"
	"github.com/akrgroup/backoffice/internal/platform/persistence"
)

// SupplierRepository implements the supplier.Repository interface for PostgreSQL
type SupplierRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewSupplierRepository creates a new PostgreSQL supplier repository
func NewSupplierRepository(logger *slog.Logger, db *persistence.PostgresDB) supplier.Repository {
	return &SupplierRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *SupplierRepository) WithTx(tx pgx.Tx) supplier.Repository {
	return &SupplierRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *SupplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact_name, contact_phone, contact_email, categories, wallet_balance, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.querier.Exec(ctx, query,
		s.ID,
		s.Name,
		s.ContactName,
		s.ContactPhone,
		s.ContactEmail,
		s.Categories,
		s.WalletBalance,
		s.Status,
		s.Version,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create supplier", "error", err)
		return fmt.Errorf("failed to create supplier: %w", err)
	}

	return nil
}

func (r *SupplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	query := `
		SELECT id, name, contact_name, contact_phone, contact_email, categories, wallet_balance, status, version, created_at, updated_at
		FROM suppliers
		WHERE id = $1
	`

	s, err := r.scanSupplier(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, supplier.ErrSupplierNotFound{SupplierID: id}
		}
		r.logger.Error("Failed to get supplier", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	return s, nil
}

func (r *SupplierRepository) List(ctx context.Context, limit, offset int) ([]*supplier.Supplier, error) {
	query := `
		SELECT id, name, contact_name, contact_phone, contact_email, categories, wallet_balance, status, version, created_at, updated_at
		FROM suppliers
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.querier.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list suppliers", "error", err)
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*supplier.Supplier
	for rows.Next() {
		s, err := r.scanSupplier(rows)
		if err != nil {
			r.logger.Error("Failed to scan supplier", "error", err)
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over suppliers: %w", err)
	}

	return suppliers, nil
}

func (r *SupplierRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.querier.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count suppliers", "error", err)
		return 0, fmt.Errorf("failed to count suppliers: %w", err)
	}
	return count, nil
}

// Update updates supplier details and the cached payable balance using
// optimistic locking.
func (r *SupplierRepository) Update(ctx context.Context, s *supplier.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, contact_name = $2, contact_phone = $3, contact_email = $4, categories = $5, wallet_balance = $6, status = $7, version = $8, updated_at = $9
		WHERE id = $10 AND version = $11
	`

	result, err := r.querier.Exec(ctx, query,
		s.Name,
		s.ContactName,
		s.ContactPhone,
		s.ContactEmail,
		s.Categories,
		s.WalletBalance,
		s.Status,
		s.Version,
		s.UpdatedAt,
		s.ID,
		s.Version-1, // Check previous version for optimistic locking
	)
	if err != nil {
		r.logger.Error("Failed to update supplier", "id", s.ID.String(), "error", err)
		return fmt.Errorf("failed to update supplier: %w", err)
	}

	if result.RowsAffected() == 0 {
		return supplier.ErrConcurrentModification{SupplierID: s.ID}
	}

	return nil
}

// SetBalance overwrites the cached payable balance, used by reconciliation
// repair after comparing against the projected ledger.
func (r *SupplierRepository) SetBalance(ctx context.Context, id uuid.UUID, balance int64, version int) error {
	query := `
		UPDATE suppliers
		SET wallet_balance = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3
	`

	result, err := r.querier.Exec(ctx, query, balance, id, version)
	if err != nil {
		r.logger.Error("Failed to set supplier balance", "id", id.String(), "error", err)
		return fmt.Errorf("failed to set supplier balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return supplier.ErrConcurrentModification{SupplierID: id}
	}

	return nil
}

// LockForUpdate obtains a pessimistic lock on the supplier row and returns
// its current state. Must be called within a transaction.
func (r *SupplierRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	query := `
		SELECT id, name, contact_name, contact_phone, contact_email, categories, wallet_balance, status, version, created_at, updated_at
		FROM suppliers
		WHERE id = $1
		FOR UPDATE
	`

	s, err := r.scanSupplier(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, supplier.ErrSupplierNotFound{SupplierID: id}
		}
		r.logger.Error("Failed to lock supplier for update", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to lock supplier for update: %w", err)
	}

	return s, nil
}

func (r *SupplierRepository) scanSupplier(row pgx.Row) (*supplier.Supplier, error) {
	var s supplier.Supplier
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.ContactName,
		&s.ContactPhone,
		&s.ContactEmail,
		&s.Categories,
		&s.WalletBalance,
		&s.Status,
		&s.Version,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
