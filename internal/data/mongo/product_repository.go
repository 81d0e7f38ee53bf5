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

	"github.com/akrgroup/backoffice/internal/domain/catalog"
)

const (
	// ProductCollectionName is the name of the product catalog collection
	ProductCollectionName = "products"
)

// ProductRepository implements the catalog.Repository interface for MongoDB
type ProductRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewProductRepository creates a new MongoDB product catalog repository
func NewProductRepository(logger *slog.Logger, db *mongo.Database) catalog.Repository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	collection := r.db.Collection(ProductCollectionName)

	_, err := collection.InsertOne(ctx, p)
	if err != nil {
		r.logger.Error("Failed to create product", "id", p.ID.String(), "error", err)
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	collection := r.db.Collection(ProductCollectionName)

	var p catalog.Product
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrProductNotFound{ID: id}
		}
		r.logger.Error("Failed to get product", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// List retrieves paginated products, optionally filtered by category.
// Results are sorted by name for stable catalog pages.
func (r *ProductRepository) List(ctx context.Context, category string, limit, offset int) ([]*catalog.Product, error) {
	collection := r.db.Collection(ProductCollectionName)

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().
		SetSort(bson.M{"name": 1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list products", "error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*catalog.Product
	if err := cursor.All(ctx, &products); err != nil {
		r.logger.Error("Failed to decode products", "error", err)
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Count(ctx context.Context, category string) (int64, error) {
	collection := r.db.Collection(ProductCollectionName)

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count products", "error", err)
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	collection := r.db.Collection(ProductCollectionName)

	result, err := collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		r.logger.Error("Failed to update product", "id", p.ID.String(), "error", err)
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.MatchedCount == 0 {
		return catalog.ErrProductNotFound{ID: p.ID}
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	collection := r.db.Collection(ProductCollectionName)

	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete product", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return catalog.ErrProductNotFound{ID: id}
	}

	return nil
}
