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

	"github.com/akrgroup/backoffice/internal/domain/booking"
)

const (
	// BookingCollectionName is the name of the hotel booking collection
	BookingCollectionName = "bookings"
)

// BookingRepository implements the booking.Repository interface for MongoDB
type BookingRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewBookingRepository creates a new MongoDB booking repository
func NewBookingRepository(logger *slog.Logger, db *mongo.Database) booking.Repository {
	return &BookingRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureIndexes creates the unique index on the reference code. Without it two
// same-day bookings could share a human-quotable reference.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(BookingCollectionName)

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		r.logger.Error("Failed to create booking indexes", "error", err)
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	return nil
}

// Create stores a booking. A reference collision surfaces as
// ErrDuplicateReference so the caller can draw a fresh code.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	collection := r.db.Collection(BookingCollectionName)

	_, err := collection.InsertOne(ctx, b)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return booking.ErrDuplicateReference{Reference: b.Reference}
		}
		r.logger.Error("Failed to create booking",
			"id", b.ID.String(),
			"reference", b.Reference,
			"error", err)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	collection := r.db.Collection(BookingCollectionName)

	var b booking.Booking
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, booking.ErrBookingNotFound{ID: id}
		}
		r.logger.Error("Failed to get booking", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &b, nil
}

// GetByReference looks up a booking by its human-quotable reference code
func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*booking.Booking, error) {
	collection := r.db.Collection(BookingCollectionName)

	var b booking.Booking
	err := collection.FindOne(ctx, bson.M{"reference": reference}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, booking.ErrBookingNotFound{}
		}
		r.logger.Error("Failed to get booking by reference", "reference", reference, "error", err)
		return nil, fmt.Errorf("failed to get booking by reference: %w", err)
	}

	return &b, nil
}

// List retrieves paginated bookings matching the filter, newest first
func (r *BookingRepository) List(ctx context.Context, filter booking.ListFilter, limit, offset int) ([]*booking.Booking, error) {
	collection := r.db.Collection(BookingCollectionName)

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, buildBookingFilter(filter), opts)
	if err != nil {
		r.logger.Error("Failed to list bookings", "error", err)
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*booking.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		r.logger.Error("Failed to decode bookings", "error", err)
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *BookingRepository) Count(ctx context.Context, filter booking.ListFilter) (int64, error) {
	collection := r.db.Collection(BookingCollectionName)

	count, err := collection.CountDocuments(ctx, buildBookingFilter(filter))
	if err != nil {
		r.logger.Error("Failed to count bookings", "error", err)
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	collection := r.db.Collection(BookingCollectionName)

	result, err := collection.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		r.logger.Error("Failed to update booking", "id", b.ID.String(), "error", err)
		return fmt.Errorf("failed to update booking: %w", err)
	}

	if result.MatchedCount == 0 {
		return booking.ErrBookingNotFound{ID: b.ID}
	}

	return nil
}

func buildBookingFilter(filter booking.ListFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.GuestName != "" {
		// Case-insensitive substring match for admin search
		query["guest_name"] = bson.M{"$regex": filter.GuestName, "$options": "i"}
	}
	return query
}
