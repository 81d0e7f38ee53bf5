package books

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount = errors.New("bookkeeping amount must not be negative")
	ErrEmptyCategory  = errors.New("bookkeeping category cannot be empty")
)

// Kind separates the two manual ledgers
type Kind string

const (
	KindRevenue Kind = "REVENUE"
	KindCost    Kind = "COST"
)

// Entry is a flat manual bookkeeping row: a revenue or cost item recorded by
// an admin outside any workflow. No derived fields, no cross-entity links.
type Entry struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Kind        Kind      `json:"kind" bson:"kind"`
	Category    string    `json:"category" bson:"category"`
	Amount      int64     `json:"amount" bson:"amount"` // minor units, >= 0
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Date        time.Time `json:"date" bson:"date"`
	RecordedBy  string    `json:"recorded_by" bson:"recorded_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// NewEntry creates a manual bookkeeping entry
func NewEntry(kind Kind, category string, amount int64, description string, date time.Time, recordedBy string) (*Entry, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	if category == "" {
		return nil, ErrEmptyCategory
	}

	now := time.Now()
	return &Entry{
		ID:          uuid.New(),
		Kind:        kind,
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        date,
		RecordedBy:  recordedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
