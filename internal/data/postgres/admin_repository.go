package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/akrgroup/backoffice/internal/domain/admin"
	"github.com/akrgroup/backoffice/internal/platform/persistence"
)

// AdminRepository implements the admin.Repository interface for PostgreSQL
type AdminRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewAdminRepository creates a new PostgreSQL admin account repository
func NewAdminRepository(logger *slog.Logger, db *persistence.PostgresDB) admin.Repository {
	return &AdminRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	query := `
		INSERT INTO admins (id, email, name, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query,
		a.ID,
		a.Email,
		a.Name,
		a.PasswordHash,
		a.Role,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return admin.ErrDuplicateEmail{Email: a.Email}
		}
		r.logger.Error("Failed to create admin account", "error", err)
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*admin.Admin, error) {
	query := `
		SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM admins
		WHERE id = $1
	`

	a, err := r.scanAdmin(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admin.ErrAdminNotFound{}
		}
		r.logger.Error("Failed to get admin account", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get admin account: %w", err)
	}

	return a, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	query := `
		SELECT id, email, name, password_hash, role, created_at, updated_at
		FROM admins
		WHERE email = $1
	`

	a, err := r.scanAdmin(r.querier.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admin.ErrAdminNotFound{Email: email}
		}
		r.logger.Error("Failed to get admin account by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get admin account by email: %w", err)
	}

	return a, nil
}

func (r *AdminRepository) scanAdmin(row pgx.Row) (*admin.Admin, error) {
	var a admin.Admin
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.PasswordHash,
		&a.Role,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
