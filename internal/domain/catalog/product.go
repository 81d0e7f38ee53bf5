package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyName = errors.New("product name cannot be empty")

// Product is a catalog row shown on the public site
type Product struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Price       int64     `json:"price" bson:"price"` // minor units
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// NewProduct creates a catalog row
func NewProduct(name, description, imageURL, category string, price int64) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		Price:       price,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
