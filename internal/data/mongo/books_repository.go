package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akrgroup/backoffice/internal/domain/books"
)

// The two manual ledgers live in separate collections so their indexes and
// exports stay independent.
const (
	RevenueBookCollectionName = "book_revenue"
	CostBookCollectionName    = "book_costs"
)

// BooksRepository implements the books.Repository interface for MongoDB
type BooksRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewBooksRepository creates a new MongoDB bookkeeping repository
func NewBooksRepository(logger *slog.Logger, db *mongo.Database) books.Repository {
	return &BooksRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BooksRepository) collection(kind books.Kind) *mongo.Collection {
	if kind == books.KindCost {
		return r.db.Collection(CostBookCollectionName)
	}
	return r.db.Collection(RevenueBookCollectionName)
}

func (r *BooksRepository) Create(ctx context.Context, e *books.Entry) error {
	_, err := r.collection(e.Kind).InsertOne(ctx, e)
	if err != nil {
		r.logger.Error("Failed to create bookkeeping entry",
			"id", e.ID.String(),
			"kind", string(e.Kind),
			"error", err)
		return fmt.Errorf("failed to create bookkeeping entry: %w", err)
	}

	return nil
}

func (r *BooksRepository) GetByID(ctx context.Context, kind books.Kind, id uuid.UUID) (*books.Entry, error) {
	var e books.Entry
	err := r.collection(kind).FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, books.ErrEntryNotFound{ID: id}
		}
		r.logger.Error("Failed to get bookkeeping entry",
			"id", id.String(),
			"kind", string(kind),
			"error", err)
		return nil, fmt.Errorf("failed to get bookkeeping entry: %w", err)
	}

	return &e, nil
}

// List retrieves paginated entries from one ledger, newest date first
func (r *BooksRepository) List(ctx context.Context, kind books.Kind, filter books.ListFilter, limit, offset int) ([]*books.Entry, error) {
	opts := options.Find().
		SetSort(bson.M{"date": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection(kind).Find(ctx, buildBooksFilter(filter), opts)
	if err != nil {
		r.logger.Error("Failed to list bookkeeping entries", "kind", string(kind), "error", err)
		return nil, fmt.Errorf("failed to list bookkeeping entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*books.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode bookkeeping entries", "kind", string(kind), "error", err)
		return nil, fmt.Errorf("failed to decode bookkeeping entries: %w", err)
	}

	return entries, nil
}

func (r *BooksRepository) Count(ctx context.Context, kind books.Kind, filter books.ListFilter) (int64, error) {
	count, err := r.collection(kind).CountDocuments(ctx, buildBooksFilter(filter))
	if err != nil {
		r.logger.Error("Failed to count bookkeeping entries", "kind", string(kind), "error", err)
		return 0, fmt.Errorf("failed to count bookkeeping entries: %w", err)
	}

	return count, nil
}

func (r *BooksRepository) Update(ctx context.Context, e *books.Entry) error {
	result, err := r.collection(e.Kind).ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		r.logger.Error("Failed to update bookkeeping entry",
			"id", e.ID.String(),
			"kind", string(e.Kind),
			"error", err)
		return fmt.Errorf("failed to update bookkeeping entry: %w", err)
	}

	if result.MatchedCount == 0 {
		return books.ErrEntryNotFound{ID: e.ID}
	}

	return nil
}

func (r *BooksRepository) Delete(ctx context.Context, kind books.Kind, id uuid.UUID) error {
	result, err := r.collection(kind).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete bookkeeping entry",
			"id", id.String(),
			"kind", string(kind),
			"error", err)
		return fmt.Errorf("failed to delete bookkeeping entry: %w", err)
	}

	if result.DeletedCount == 0 {
		return books.ErrEntryNotFound{ID: id}
	}

	return nil
}

func buildBooksFilter(filter books.ListFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	dateRange := bson.M{}
	if !filter.From.IsZero() {
		dateRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		dateRange["$lte"] = filter.To
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}
	return query
}
