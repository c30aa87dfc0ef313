package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"clinicbook/internal/models"
	"clinicbook/internal/repositories/interfaces"
	"clinicbook/internal/utils"
	"clinicbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RewardService interface {
	// List flattens every account's reward ledger into admin review views,
	// optionally filtered by status. Stats are computed over all rewards
	// regardless of the filter.
	List(ctx context.Context, statusFilter models.RewardStatus) ([]models.RewardView, *models.RewardStats, error)
	// Review approves or rejects a pending reward. A reward that has
	// already been processed is not reviewable again; the first decision
	// stands.
	Review(ctx context.Context, referrerID primitive.ObjectID, bookingID primitive.ObjectID, decision models.RewardStatus, adminID primitive.ObjectID) (*models.Reward, error)
}

type rewardService struct {
	accountRepo interfaces.AccountRepository
	bookingRepo interfaces.BookingRepository
	logger      *logger.Logger
}

func NewRewardService(
	accountRepo interfaces.AccountRepository,
	bookingRepo interfaces.BookingRepository,
	log *logger.Logger,
) RewardService {
	return &rewardService{
		accountRepo: accountRepo,
		bookingRepo: bookingRepo,
		logger:      log,
	}
}

// List fans out one booking lookup per reward to fetch the live booking
// status. That is O(n) remote reads; acceptable at review volumes but worth
// knowing before pointing a dashboard at it.
func (s *rewardService) List(ctx context.Context, statusFilter models.RewardStatus) ([]models.RewardView, *models.RewardStats, error) {
	if statusFilter != "" && !statusFilter.Valid() {
		return nil, nil, NewValidationError("invalid status filter", map[string]string{
			"status": "status must be one of pending, approved, rejected",
		})
	}

	accounts, err := s.accountRepo.ListWithRewards(ctx)
	if err != nil {
		return nil, nil, err
	}

	stats := &models.RewardStats{}
	views := []models.RewardView{}

	for _, account := range accounts {
		for _, reward := range account.Rewards {
			stats.Total++
			switch reward.Status {
			case models.RewardStatusPending:
				stats.Pending++
			case models.RewardStatusApproved:
				stats.Approved++
				stats.ApprovedTotal = utils.RoundCurrency(stats.ApprovedTotal + reward.RewardAmount)
			case models.RewardStatusRejected:
				stats.Rejected++
			}

			if statusFilter != "" && reward.Status != statusFilter {
				continue
			}

			view := models.RewardView{
				Reward:            reward,
				ReferrerAccountID: account.ID,
				ReferrerName:      account.FullName(),
				ReferrerEmail:     account.Email,
			}

			if booking, err := s.bookingRepo.GetByID(ctx, reward.BookingID); err == nil {
				view.BookingStatus = booking.Status
			} else {
				s.logger.WithError(err).WithField("booking_id", reward.BookingID.Hex()).Warn("Failed to load booking for reward view")
			}

			views = append(views, view)
		}
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})

	return views, stats, nil
}

func (s *rewardService) Review(ctx context.Context, referrerID primitive.ObjectID, bookingID primitive.ObjectID, decision models.RewardStatus, adminID primitive.ObjectID) (*models.Reward, error) {
	if decision != models.RewardStatusApproved && decision != models.RewardStatusRejected {
		return nil, NewValidationError("invalid decision", map[string]string{
			"decision": "decision must be approved or rejected",
		})
	}

	account, err := s.accountRepo.GetByID(ctx, referrerID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewServiceError(utils.CodeNotFound, utils.ErrAccountNotFound)
		}
		return nil, err
	}

	reward := account.FindReward(bookingID)
	if reward == nil {
		return nil, NewServiceError(utils.CodeNotFound, utils.ErrRewardNotFound)
	}
	if reward.Processed() {
		return nil, NewValidationError("reward has already been processed", map[string]string{
			"status": "reward is already " + string(reward.Status),
		})
	}

	now := time.Now()
	reward.Status = decision
	reward.ProcessedAt = &now
	reward.ProcessedBy = &adminID

	// The whole rewards array is written back, mirroring the reference
	// read-modify-write. Concurrent reviews on the same account can race;
	// see ReplaceRewards.
	if err := s.accountRepo.ReplaceRewards(ctx, account.ID, account.Rewards); err != nil {
		return nil, err
	}

	s.logger.LogReferralEvent(referrerID, "reward_reviewed", map[string]interface{}{
		"booking_id": bookingID.Hex(),
		"decision":   string(decision),
		"admin_id":   adminID.Hex(),
	})

	rewardCopy := *reward
	return &rewardCopy, nil
}
