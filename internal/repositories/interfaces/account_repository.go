package interfaces

import (
	"context"

	"clinicbook/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AccountRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Referral operations
	GetByReferralCode(ctx context.Context, code string) (*models.Account, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)

	// Reward ledger operations
	// AppendReward pushes a reward and its referral-made history entry onto
	// the referrer's account in one update.
	AppendReward(ctx context.Context, referrerID primitive.ObjectID, reward *models.Reward, made *models.ReferralMade) error
	AppendUsedReferralCode(ctx context.Context, accountID primitive.ObjectID, used *models.UsedReferralCode) error
	// ReplaceRewards writes the whole rewards array back, as review does.
	ReplaceRewards(ctx context.Context, accountID primitive.ObjectID, rewards []models.Reward) error
	ListWithRewards(ctx context.Context) ([]*models.Account, error)
}
