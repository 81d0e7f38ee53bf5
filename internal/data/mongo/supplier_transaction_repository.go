package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akrgroup/backoffice/internal/domain/shared"
	"github.com/akrgroup/backoffice/internal/domain/supplier"
)

const (
	// SupplierTransactionCollectionName is the name of the supplier ledger collection
	SupplierTransactionCollectionName = "supplier_transactions"
)

// SupplierTransactionRepository implements supplier.TransactionRepository for
// MongoDB. It holds the projected supplier ledger written by the outbox poller.
type SupplierTransactionRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewSupplierTransactionRepository creates a new MongoDB supplier ledger repository
func NewSupplierTransactionRepository(logger *slog.Logger, db *mongo.Database) supplier.TransactionRepository {
	return &SupplierTransactionRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a projected ledger entry. The transaction ID is the document
// _id, so a replayed projection trips the primary key and maps to
// ErrDuplicateTransaction regardless of how many pollers run.
func (r *SupplierTransactionRepository) Create(ctx context.Context, tx *supplier.Transaction) error {
	collection := r.db.Collection(SupplierTransactionCollectionName)

	_, err := collection.InsertOne(ctx, tx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return supplier.ErrDuplicateTransaction{ID: tx.ID}
		}
		r.logger.Error("Failed to create supplier transaction",
			"id", tx.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create supplier transaction: %w", err)
	}

	return nil
}

func (r *SupplierTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*supplier.Transaction, error) {
	collection := r.db.Collection(SupplierTransactionCollectionName)

	var tx supplier.Transaction
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, supplier.ErrTransactionNotFound{ID: id}
		}
		r.logger.Error("Failed to get supplier transaction",
			"id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get supplier transaction: %w", err)
	}

	return &tx, nil
}

// ListBySupplier retrieves paginated ledger entries for a supplier.
// Results are sorted by creation time in descending order (newest first).
func (r *SupplierTransactionRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter supplier.TransactionFilter, limit, offset int) ([]*supplier.Transaction, error) {
	collection := r.db.Collection(SupplierTransactionCollectionName)

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, buildSupplierTxFilter(supplierID, filter), opts)
	if err != nil {
		r.logger.Error("Failed to list supplier transactions",
			"supplier_id", supplierID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list supplier transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txs []*supplier.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		r.logger.Error("Failed to decode supplier transactions",
			"supplier_id", supplierID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode supplier transactions: %w", err)
	}

	return txs, nil
}

func (r *SupplierTransactionRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID, filter supplier.TransactionFilter) (int64, error) {
	collection := r.db.Collection(SupplierTransactionCollectionName)

	count, err := collection.CountDocuments(ctx, buildSupplierTxFilter(supplierID, filter))
	if err != nil {
		r.logger.Error("Failed to count supplier transactions",
			"supplier_id", supplierID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count supplier transactions: %w", err)
	}

	return count, nil
}

// SumBySupplier folds the signed amounts of all completed ledger entries for
// a supplier. This is the authoritative payable balance for reconciliation.
func (r *SupplierTransactionRepository) SumBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	collection := r.db.Collection(SupplierTransactionCollectionName)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"supplier_id": supplierID,
			"status":      shared.TxStatusCompleted,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to sum supplier transactions",
			"supplier_id", supplierID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to sum supplier transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode supplier transaction sum: %w", err)
	}
	if len(results) == 0 {
		return 0, nil // No completed entries yet
	}

	return results[0].Total, nil
}

// UpdateStatus updates the entry's status and touch timestamp.
// Returns ErrTransactionNotFound if the entry doesn't exist.
func (r *SupplierTransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status shared.TxStatus) error {
	collection := r.db.Collection(SupplierTransactionCollectionName)

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		r.logger.Error("Failed to update supplier transaction status",
			"id", id.String(),
			"status", string(status),
			"error", err)
		return fmt.Errorf("failed to update supplier transaction status: %w", err)
	}

	if result.MatchedCount == 0 {
		return supplier.ErrTransactionNotFound{ID: id}
	}

	return nil
}

func buildSupplierTxFilter(supplierID uuid.UUID, filter supplier.TransactionFilter) bson.M {
	query := bson.M{"supplier_id": supplierID}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}
