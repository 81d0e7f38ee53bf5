package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akrgroup/backoffice/internal/domain/catalog"
)

// CatalogServiceImpl implements the CatalogService interface
type CatalogServiceImpl struct {
	logger      *slog.Logger
	productRepo catalog.Repository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(logger *slog.Logger, productRepo catalog.Repository) CatalogService {
	return &CatalogServiceImpl{
		logger:      logger,
		productRepo: productRepo,
	}
}

// CreateProduct adds a product to the catalog
func (s *CatalogServiceImpl) CreateProduct(ctx context.Context, name, description, imageURL, category string, price int64) (*catalog.Product, error) {
	p, err := catalog.NewProduct(name, description, imageURL, category, price)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create product", "name", name, "error", err)
		return nil, err
	}

	s.logger.Info("Product created", "product_id", p.ID, "name", p.Name)
	return p, nil
}

// GetProduct retrieves a product by ID
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// ListProducts retrieves a paginated product listing, optionally by category
func (s *CatalogServiceImpl) ListProducts(ctx context.Context, category string, page, perPage int) ([]*catalog.Product, int64, error) {
	offset := (page - 1) * perPage

	products, err := s.productRepo.List(ctx, category, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, category)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// UpdateProduct replaces a product's mutable fields
func (s *CatalogServiceImpl) UpdateProduct(ctx context.Context, id uuid.UUID, name, description, imageURL, category string, price int64) (*catalog.Product, error) {
	if name == "" {
		return nil, catalog.ErrEmptyName
	}

	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = name
	p.Description = description
	p.ImageURL = imageURL
	p.Category = category
	p.Price = price
	p.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update product", "product_id", id, "error", err)
		return nil, err
	}

	return p, nil
}

// DeleteProduct removes a product from the catalog
func (s *CatalogServiceImpl) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", "product_id", id)
	return nil
}
