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
)

type accountRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewAccountRepository(db *mongo.Database, cache CacheService) interfaces.AccountRepository {
	return &accountRepository{
		collection: db.Collection("accounts"),
		cache:      cache,
	}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	account.ID = primitive.NewObjectID()
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	if account.UsedReferralCodes == nil {
		account.UsedReferralCodes = []models.UsedReferralCode{}
	}
	if account.ReferralsMade == nil {
		account.ReferralsMade = []models.ReferralMade{}
	}
	if account.Rewards == nil {
		account.Rewards = []models.Reward{}
	}

	_, err := r.collection.InsertOne(ctx, account)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	r.cacheAccount(ctx, account)

	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	if account := r.getAccountFromCache(ctx, id.Hex()); account != nil {
		return account, nil
	}

	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	r.cacheAccount(ctx, &account)

	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateAccountCache(ctx, id.Hex())

	return nil
}

func (r *accountRepository) GetByReferralCode(ctx context.Context, code string) (*models.Account, error) {
	cacheKey := utils.CacheReferralCodePrefix + code
	if r.cache != nil {
		var account models.Account
		if err := r.cache.Get(ctx, cacheKey, &account); err == nil {
			return &account, nil
		}
	}

	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"referral_code": code}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by referral code: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, account, utils.CacheTTL)
	}

	return &account, nil
}

func (r *accountRepository) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"referral_code": code})
	if err != nil {
		return false, fmt.Errorf("failed to check referral code: %w", err)
	}
	return count > 0, nil
}

func (r *accountRepository) AppendReward(ctx context.Context, referrerID primitive.ObjectID, reward *models.Reward, made *models.ReferralMade) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": referrerID},
		bson.M{
			"$push": bson.M{
				"rewards":        reward,
				"referrals_made": made,
			},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to append reward: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateAccountCache(ctx, referrerID.Hex())

	return nil
}

func (r *accountRepository) AppendUsedReferralCode(ctx context.Context, accountID primitive.ObjectID, used *models.UsedReferralCode) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": accountID},
		bson.M{
			"$push": bson.M{"used_referral_codes": used},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to append used referral code: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateAccountCache(ctx, accountID.Hex())

	return nil
}

// ReplaceRewards overwrites the whole rewards array. Concurrent reviews of two
// different rewards on the same account can lose one update (last writer
// wins); kept to match the reference read-modify-write semantics.
func (r *accountRepository) ReplaceRewards(ctx context.Context, accountID primitive.ObjectID, rewards []models.Reward) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": accountID},
		bson.M{"$set": bson.M{
			"rewards":    rewards,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to replace rewards: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateAccountCache(ctx, accountID.Hex())

	return nil
}

func (r *accountRepository) ListWithRewards(ctx context.Context) ([]*models.Account, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"rewards.0": bson.M{"$exists": true}})
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts with rewards: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []*models.Account
	for cursor.Next(ctx) {
		var account models.Account
		if err := cursor.Decode(&account); err != nil {
			return nil, fmt.Errorf("failed to decode account: %w", err)
		}
		accounts = append(accounts, &account)
	}

	return accounts, nil
}

// Cache operations
func (r *accountRepository) cacheAccount(ctx context.Context, account *models.Account) {
	if r.cache != nil {
		cacheKey := utils.CacheAccountPrefix + account.ID.Hex()
		r.cache.Set(ctx, cacheKey, account, utils.CacheTTL)

		if account.ReferralCode != "" {
			codeKey := utils.CacheReferralCodePrefix + account.ReferralCode
			r.cache.Set(ctx, codeKey, account, utils.CacheTTL)
		}
	}
}

func (r *accountRepository) getAccountFromCache(ctx context.Context, accountID string) *models.Account {
	if r.cache == nil {
		return nil
	}

	cacheKey := utils.CacheAccountPrefix + accountID
	var account models.Account
	if err := r.cache.Get(ctx, cacheKey, &account); err != nil {
		return nil
	}

	return &account
}

func (r *accountRepository) invalidateAccountCache(ctx context.Context, accountID string) {
	if r.cache != nil {
		cacheKey := utils.CacheAccountPrefix + accountID
		r.cache.Delete(ctx, cacheKey)
	}
}
