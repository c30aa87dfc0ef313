package mongodb

import (
	"context"
	"fmt"
	"time"

	"clinicbook/internal/models"
	"clinicbook/internal/repositories/interfaces"
	"clinicbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewBookingRepository(db *mongo.Database, cache CacheService) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
		cache:      cache,
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	r.cacheBooking(ctx, booking)

	return nil
}

// GetByID returns the booking even when it is soft-deleted; direct lookups
// remain possible after deletion.
func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if booking := r.getBookingFromCache(ctx, id.Hex()); booking != nil {
		return booking, nil
	}

	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	r.cacheBooking(ctx, &booking)

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateBookingCache(ctx, id.Hex())

	return nil
}

func (r *bookingRepository) ListByAccount(ctx context.Context, accountID primitive.ObjectID) ([]*models.Booking, error) {
	filter := bson.M{
		"account_id": accountID,
		"deleted":    false,
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	filter := bson.M{"deleted": false}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, 0, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, total, nil
}

func (r *bookingRepository) CountByAccount(ctx context.Context, accountID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"account_id": accountID,
		"deleted":    false,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count account bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// Cache operations
func (r *bookingRepository) cacheBooking(ctx context.Context, booking *models.Booking) {
	if r.cache != nil {
		cacheKey := utils.CacheBookingPrefix + booking.ID.Hex()
		r.cache.Set(ctx, cacheKey, booking, utils.CacheTTL)
	}
}

func (r *bookingRepository) getBookingFromCache(ctx context.Context, bookingID string) *models.Booking {
	if r.cache == nil {
		return nil
	}

	cacheKey := utils.CacheBookingPrefix + bookingID
	var booking models.Booking
	if err := r.cache.Get(ctx, cacheKey, &booking); err != nil {
		return nil
	}

	return &booking
}

func (r *bookingRepository) invalidateBookingCache(ctx context.Context, bookingID string) {
	if r.cache != nil {
		cacheKey := utils.CacheBookingPrefix + bookingID
		r.cache.Delete(ctx, cacheKey)
	}
}
