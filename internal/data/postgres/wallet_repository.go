// Package postgres provides PostgreSQL implementations of the account-side
// repositories: shed wallets, suppliers, admin accounts and the transactional
// outbox. Balance mutations and outbox appends share a single transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akrgroup/backoffice/internal/domain/wallet"
	"github.com/akrgroup/backoffice/internal/platform/persistence"
)

// WalletRepository implements the wallet.Repository interface for PostgreSQL
type WalletRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewWalletRepository creates a new PostgreSQL shed wallet repository
func NewWalletRepository(logger *slog.Logger, db *persistence.PostgresDB) wallet.Repository {
	return &WalletRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls.
func (r *WalletRepository) WithTx(tx pgx.Tx) wallet.Repository {
	return &WalletRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *WalletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	query := `
		INSERT INTO shed_wallets (id, name, location, contact_name, contact_phone, current_balance, pending_transfer, total_received, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.querier.Exec(ctx, query,
		w.ID,
		w.Name,
		w.Location,
		w.ContactName,
		w.ContactPhone,
		w.CurrentBalance,
		w.PendingTransfer,
		w.TotalReceived,
		w.Status,
		w.Version,
		w.CreatedAt,
		w.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create shed wallet", "error", err)
		return fmt.Errorf("failed to create shed wallet: %w", err)
	}

	return nil
}

func (r *WalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	query := `
		SELECT id, name, location, contact_name, contact_phone, current_balance, pending_transfer, total_received, status, version, created_at, updated_at
		FROM shed_wallets
		WHERE id = $1
	`

	w, err := r.scanWallet(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wallet.ErrWalletNotFound{WalletID: id}
		}
		r.logger.Error("Failed to get shed wallet", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get shed wallet: %w", err)
	}

	return w, nil
}

func (r *WalletRepository) List(ctx context.Context, limit, offset int) ([]*wallet.Wallet, error) {
	query := `
		SELECT id, name, location, contact_name, contact_phone, current_balance, pending_transfer, total_received, status, version, created_at, updated_at
		FROM shed_wallets
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.querier.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list shed wallets", "error", err)
		return nil, fmt.Errorf("failed to list shed wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*wallet.Wallet
	for rows.Next() {
		w, err := r.scanWallet(rows)
		if err != nil {
			r.logger.Error("Failed to scan shed wallet", "error", err)
			return nil, fmt.Errorf("failed to scan shed wallet: %w", err)
		}
		wallets = append(wallets, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over shed wallets: %w", err)
	}

	return wallets, nil
}

func (r *WalletRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.querier.QueryRow(ctx, `SELECT COUNT(*) FROM shed_wallets`).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count shed wallets", "error", err)
		return 0, fmt.Errorf("failed to count shed wallets: %w", err)
	}
	return count, nil
}

// Update updates wallet details and cached balances using optimistic locking.
// Returns ErrConcurrentModification if the wallet changed underneath.
func (r *WalletRepository) Update(ctx context.Context, w *wallet.Wallet) error {
	query := `
		UPDATE shed_wallets
		SET name = $1, location = $2, contact_name = $3, contact_phone = $4, current_balance = $5, pending_transfer = $6, total_received = $7, status = $8, version = $9, updated_at = $10
		WHERE id = $11 AND version = $12
	`

	result, err := r.querier.Exec(ctx, query,
		w.Name,
		w.Location,
		w.ContactName,
		w.ContactPhone,
		w.CurrentBalance,
		w.PendingTransfer,
		w.TotalReceived,
		w.Status,
		w.Version,
		w.UpdatedAt,
		w.ID,
		w.Version-1, // Check previous version for optimistic locking
	)
	if err != nil {
		r.logger.Error("Failed to update shed wallet", "id", w.ID.String(), "error", err)
		return fmt.Errorf("failed to update shed wallet: %w", err)
	}

	if result.RowsAffected() == 0 {
		return wallet.ErrConcurrentModification{WalletID: w.ID}
	}

	return nil
}

// SetBalances overwrites the cached balance fields, used by reconciliation
// repair after comparing against the projected ledger.
func (r *WalletRepository) SetBalances(ctx context.Context, id uuid.UUID, currentBalance, pendingTransfer, totalReceived int64, version int) error {
	query := `
		UPDATE shed_wallets
		SET current_balance = $1, pending_transfer = $2, total_received = $3, version = version + 1, updated_at = NOW()
		WHERE id = $4 AND version = $5
	`

	result, err := r.querier.Exec(ctx, query, currentBalance, pendingTransfer, totalReceived, id, version)
	if err != nil {
		r.logger.Error("Failed to set shed wallet balances", "id", id.String(), "error", err)
		return fmt.Errorf("failed to set shed wallet balances: %w", err)
	}

	if result.RowsAffected() == 0 {
		return wallet.ErrConcurrentModification{WalletID: id}
	}

	return nil
}

// ReleasePendingTransfer atomically clears a projected payment_sent earmark.
// Clamped at zero so a projection replay cannot drive the earmark negative.
func (r *WalletRepository) ReleasePendingTransfer(ctx context.Context, id uuid.UUID, amount int64) error {
	query := `
		UPDATE shed_wallets
		SET pending_transfer = GREATEST(pending_transfer - $1, 0), updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.querier.Exec(ctx, query, amount, id)
	if err != nil {
		r.logger.Error("Failed to release pending transfer", "id", id.String(), "amount", amount, "error", err)
		return fmt.Errorf("failed to release pending transfer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return wallet.ErrWalletNotFound{WalletID: id}
	}

	return nil
}

// LockForUpdate obtains a pessimistic lock on the wallet row and returns its
// current state. Must be called within a transaction.
func (r *WalletRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*wallet.Wallet, error) {
	query := `
		SELECT id, name, location, contact_name, contact_phone, current_balance, pending_transfer, total_received, status, version, created_at, updated_at
		FROM shed_wallets
		WHERE id = $1
		FOR UPDATE
	`

	w, err := r.scanWallet(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wallet.ErrWalletNotFound{WalletID: id}
		}
		r.logger.Error("Failed to lock shed wallet for update", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to lock shed wallet for update: %w", err)
	}

	return w, nil
}

func (r *WalletRepository) scanWallet(row pgx.Row) (*wallet.Wallet, error) {
	var w wallet.Wallet
	err := row.Scan(
		&w.ID,
		&w.Name,
		&w.Location,
		&w.ContactName,
		&w.ContactPhone,
		&w.CurrentBalance,
		&w.PendingTransfer,
		&w.TotalReceived,
		&w.Status,
		&w.Version,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
