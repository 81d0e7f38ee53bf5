// Package mongo provides MongoDB implementations of the document-side
// repositories: fuel logs, projected transaction ledgers, products, manual
// bookkeeping and hotel bookings.
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

	"github.com/akrgroup/backoffice/internal/domain/fuellog"
	"github.com/akrgroup/backoffice/internal/domain/shared"
)

const (
	// FuelLogCollectionName is the name of the fuel log collection in MongoDB
	FuelLogCollectionName = "fuel_logs"
)

// FuelLogRepository implements the fuellog.Repository interface for MongoDB
type FuelLogRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewFuelLogRepository creates a new MongoDB fuel log repository
func NewFuelLogRepository(logger *slog.Logger, db *mongo.Database) fuellog.Repository {
	return &FuelLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FuelLogRepository) Create(ctx context.Context, entry *fuellog.Entry) error {
	collection := r.db.Collection(FuelLogCollectionName)

	_, err := collection.InsertOne(ctx, entry)
	if err != nil {
		r.logger.Error("Failed to create fuel log entry",
			"id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create fuel log entry: %w", err)
	}

	return nil
}

func (r *FuelLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*fuellog.Entry, error) {
	collection := r.db.Collection(FuelLogCollectionName)

	var entry fuellog.Entry
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fuellog.ErrEntryNotFound{ID: id}
		}
		r.logger.Error("Failed to get fuel log entry",
			"id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get fuel log entry: %w", err)
	}

	return &entry, nil
}

// Update replaces the whole document. Derived fields are recomputed by the
// domain before the entry reaches this method.
func (r *FuelLogRepository) Update(ctx context.Context, entry *fuellog.Entry) error {
	collection := r.db.Collection(FuelLogCollectionName)

	result, err := collection.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry)
	if err != nil {
		r.logger.Error("Failed to update fuel log entry",
			"id", entry.ID.String(),
			"error", err)
		return fmt.Errorf("failed to update fuel log entry: %w", err)
	}

	if result.MatchedCount == 0 {
		return fuellog.ErrEntryNotFound{ID: entry.ID}
	}

	return nil
}

// List retrieves paginated fuel log entries matching the filter.
// Results are sorted by fill date in descending order (newest first).
func (r *FuelLogRepository) List(ctx context.Context, filter fuellog.ListFilter, limit, offset int) ([]*fuellog.Entry, error) {
	collection := r.db.Collection(FuelLogCollectionName)

	opts := options.Find().
		SetSort(bson.M{"date": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, buildFuelLogFilter(filter), opts)
	if err != nil {
		r.logger.Error("Failed to list fuel log entries", "error", err)
		return nil, fmt.Errorf("failed to list fuel log entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*fuellog.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode fuel log entries", "error", err)
		return nil, fmt.Errorf("failed to decode fuel log entries: %w", err)
	}

	return entries, nil
}

func (r *FuelLogRepository) Count(ctx context.Context, filter fuellog.ListFilter) (int64, error) {
	collection := r.db.Collection(FuelLogCollectionName)

	count, err := collection.CountDocuments(ctx, buildFuelLogFilter(filter))
	if err != nil {
		r.logger.Error("Failed to count fuel log entries", "error", err)
		return 0, fmt.Errorf("failed to count fuel log entries: %w", err)
	}

	return count, nil
}

// UpdateStatus flips the soft-delete flag.
// Returns ErrEntryNotFound if the entry doesn't exist.
func (r *FuelLogRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status shared.RecordStatus) error {
	collection := r.db.Collection(FuelLogCollectionName)

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		r.logger.Error("Failed to update fuel log entry status",
			"id", id.String(),
			"status", string(status),
			"error", err)
		return fmt.Errorf("failed to update fuel log entry status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fuellog.ErrEntryNotFound{ID: id}
	}

	return nil
}

func buildFuelLogFilter(filter fuellog.ListFilter) bson.M {
	query := bson.M{}
	if filter.VehicleID != "" {
		query["vehicle_id"] = filter.VehicleID
	}
	if filter.PaymentStatus != "" {
		query["payment_status"] = filter.PaymentStatus
	}
	if filter.Status != "" {
		query["status"] = filter.Status
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
