package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akrgroup/backoffice/internal/domain/books"
)

// BooksServiceImpl implements the BooksService interface
type BooksServiceImpl struct {
	logger    *slog.Logger
	booksRepo books.Repository
}

// NewBooksService creates a new bookkeeping service
func NewBooksService(logger *slog.Logger, booksRepo books.Repository) BooksService {
	return &BooksServiceImpl{
		logger:    logger,
		booksRepo: booksRepo,
	}
}

// CreateEntry records a manual revenue or cost item
func (s *BooksServiceImpl) CreateEntry(ctx context.Context, kind books.Kind, category string, amount int64, description string, date time.Time, recordedBy string) (*books.Entry, error) {
	e, err := books.NewEntry(kind, category, amount, description, date, recordedBy)
	if err != nil {
		return nil, err
	}

	if err := s.booksRepo.Create(ctx, e); err != nil {
		s.logger.Error("Failed to create bookkeeping entry", "kind", string(kind), "category", category, "error", err)
		return nil, err
	}

	s.logger.Info("Bookkeeping entry created", "entry_id", e.ID, "kind", string(kind), "amount", amount)
	return e, nil
}

// GetEntry retrieves a bookkeeping entry by ID
func (s *BooksServiceImpl) GetEntry(ctx context.Context, kind books.Kind, id uuid.UUID) (*books.Entry, error) {
	return s.booksRepo.GetByID(ctx, kind, id)
}

// ListEntries retrieves a paginated bookkeeping listing
func (s *BooksServiceImpl) ListEntries(ctx context.Context, kind books.Kind, filter books.ListFilter, page, perPage int) ([]*books.Entry, int64, error) {
	offset := (page - 1) * perPage

	entries, err := s.booksRepo.List(ctx, kind, filter, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.booksRepo.Count(ctx, kind, filter)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// UpdateEntry replaces a bookkeeping entry's mutable fields
func (s *BooksServiceImpl) UpdateEntry(ctx context.Context, kind books.Kind, id uuid.UUID, category string, amount int64, description string, date time.Time) (*books.Entry, error) {
	if amount < 0 {
		return nil, books.ErrNegativeAmount
	}
	if category == "" {
		return nil, books.ErrEmptyCategory
	}

	e, err := s.booksRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	e.Category = category
	e.Amount = amount
	e.Description = description
	e.Date = date
	e.UpdatedAt = time.Now()

	if err := s.booksRepo.Update(ctx, e); err != nil {
		s.logger.Error("Failed to update bookkeeping entry", "entry_id", id, "error", err)
		return nil, err
	}

	return e, nil
}

// DeleteEntry removes a bookkeeping entry
func (s *BooksServiceImpl) DeleteEntry(ctx context.Context, kind books.Kind, id uuid.UUID) error {
	if err := s.booksRepo.Delete(ctx, kind, id); err != nil {
		return err
	}

	s.logger.Info("Bookkeeping entry deleted", "entry_id", id, "kind", string(kind))
	return nil
}
