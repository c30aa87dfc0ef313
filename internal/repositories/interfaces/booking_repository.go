package interfaces

import (
	"context"

	"clinicbook/internal/models"
	"clinicbook/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Listings exclude soft-deleted bookings; GetByID does not.
	ListByAccount(ctx context.Context, accountID primitive.ObjectID) ([]*models.Booking, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	// Counts used for first-visit detection and booking numbering.
	CountByAccount(ctx context.Context, accountID primitive.ObjectID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}
