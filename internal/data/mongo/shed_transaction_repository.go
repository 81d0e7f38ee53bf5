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
	"github.com/akrgroup/backoffice/internal/domain/wallet"
)

const (
	// ShedTransactionCollectionName is the name of the shed wallet ledger collection
	ShedTransactionCollectionName = "shed_transactions"
)

// ShedTransactionRepository implements wallet.TransactionRepository for MongoDB.
// It holds the projected shed wallet ledger written by the outbox poller.
type ShedTransactionRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewShedTransactionRepository creates a new MongoDB shed ledger repository
func NewShedTransactionRepository(logger *slog.Logger, db *mongo.Database) wallet.TransactionRepository {
	return &ShedTransactionRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a projected ledger entry. The transaction ID is the document
// _id, so a replayed projection trips the primary key and maps to
// ErrDuplicateTransaction regardless of how many pollers run.
func (r *ShedTransactionRepository) Create(ctx context.Context, tx *wallet.Transaction) error {
	collection := r.db.Collection(ShedTransactionCollectionName)

	_, err := collection.InsertOne(ctx, tx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return wallet.ErrDuplicateTransaction{ID: tx.ID}
		}
		r.logger.Error("Failed to create shed transaction",
			"id", tx.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create shed transaction: %w", err)
	}

	return nil
}

func (r *ShedTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*wallet.Transaction, error) {
	collection := r.db.Collection(ShedTransactionCollectionName)

	var tx wallet.Transaction
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, wallet.ErrTransactionNotFound{ID: id}
		}
		r.logger.Error("Failed to get shed transaction",
			"id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get shed transaction: %w", err)
	}

	return &tx, nil
}

// ListByWallet retrieves paginated ledger entries for a wallet.
// Results are sorted by creation time in descending order (newest first).
func (r *ShedTransactionRepository) ListByWallet(ctx context.Context, walletID uuid.UUID, filter wallet.TransactionFilter, limit, offset int) ([]*wallet.Transaction, error) {
	collection := r.db.Collection(ShedTransactionCollectionName)

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, buildShedTxFilter(walletID, filter), opts)
	if err != nil {
		r.logger.Error("Failed to list shed transactions",
			"wallet_id", walletID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list shed transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txs []*wallet.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		r.logger.Error("Failed to decode shed transactions",
			"wallet_id", walletID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode shed transactions: %w", err)
	}

	return txs, nil
}

func (r *ShedTransactionRepository) CountByWallet(ctx context.Context, walletID uuid.UUID, filter wallet.TransactionFilter) (int64, error) {
	collection := r.db.Collection(ShedTransactionCollectionName)

	count, err := collection.CountDocuments(ctx, buildShedTxFilter(walletID, filter))
	if err != nil {
		r.logger.Error("Failed to count shed transactions",
			"wallet_id", walletID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count shed transactions: %w", err)
	}

	return count, nil
}

// SumByWallet folds the signed amounts of all completed ledger entries for a
// wallet. This is the authoritative balance used by reconciliation.
func (r *ShedTransactionRepository) SumByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	collection := r.db.Collection(ShedTransactionCollectionName)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"wallet_id": walletID,
			"status":    shared.TxStatusCompleted,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to sum shed transactions",
			"wallet_id", walletID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to sum shed transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode shed transaction sum: %w", err)
	}
	if len(results) == 0 {
		return 0, nil // No completed entries yet
	}

	return results[0].Total, nil
}

// UpdateStatus updates the entry's status and touch timestamp.
// Returns ErrTransactionNotFound if the entry doesn't exist.
func (r *ShedTransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status shared.TxStatus) error {
	collection := r.db.Collection(ShedTransactionCollectionName)

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		r.logger.Error("Failed to update shed transaction status",
			"id", id.String(),
			"status", string(status),
			"error", err)
		return fmt.Errorf("failed to update shed transaction status: %w", err)
	}

	if result.MatchedCount == 0 {
		return wallet.ErrTransactionNotFound{ID: id}
	}

	return nil
}

func buildShedTxFilter(walletID uuid.UUID, filter wallet.TransactionFilter) bson.M {
	query := bson.M{"wallet_id": walletID}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}
