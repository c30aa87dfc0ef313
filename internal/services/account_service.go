package services

import (
	"context"
	"errors"
	"fmt"

	"clinicbook/internal/models"
	"clinicbook/internal/repositories/interfaces"
	"clinicbook/internal/utils"
	"clinicbook/internal/validators"
	"clinicbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AccountService interface {
	CreateAccount(ctx context.Context, request *models.CreateAccountRequest) (*models.Account, error)
	GetAccount(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	GetReferralSummary(ctx context.Context, id primitive.ObjectID) (*models.ReferralSummary, error)
}

type accountService struct {
	accountRepo interfaces.AccountRepository
	logger      *logger.Logger
}

func NewAccountService(accountRepo interfaces.AccountRepository, log *logger.Logger) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		logger:      log,
	}
}

func (s *accountService) CreateAccount(ctx context.Context, request *models.CreateAccountRequest) (*models.Account, error) {
	if validationErrors := validators.ValidateCreateAccount(request); len(validationErrors) > 0 {
		return nil, NewValidationError(utils.ErrValidationFailed, validationErrors)
	}

	if _, err := s.accountRepo.GetByEmail(ctx, request.Email); err == nil {
		return nil, NewValidationError("email is already registered", map[string]string{
			"email": "an account with this email already exists",
		})
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	code, err := s.uniqueReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	role := request.Role
	if role == "" {
		role = models.AccountRolePatient
	}

	account := &models.Account{
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		Email:        request.Email,
		Phone:        request.Phone,
		Role:         role,
		ReferralCode: code,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.WithAccountID(account.ID).WithField("referral_code", code).Info("Account created")

	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewServiceError(utils.CodeNotFound, utils.ErrAccountNotFound)
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetReferralSummary(ctx context.Context, id primitive.ObjectID) (*models.ReferralSummary, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &models.ReferralSummary{
		ReferralCode:      account.ReferralCode,
		UsedReferralCodes: account.UsedReferralCodes,
		ReferralsMade:     account.ReferralsMade,
		Rewards:           account.Rewards,
	}
	for _, reward := range account.Rewards {
		switch reward.Status {
		case models.RewardStatusPending:
			summary.PendingTotal = utils.RoundCurrency(summary.PendingTotal + reward.RewardAmount)
		case models.RewardStatusApproved:
			summary.ApprovedTotal = utils.RoundCurrency(summary.ApprovedTotal + reward.RewardAmount)
		}
	}

	return summary, nil
}

// uniqueReferralCode generates a code and retries on the rare collision.
func (s *accountService) uniqueReferralCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < utils.ReferralCodeAttempts; attempt++ {
		code := utils.GenerateReferralCode()

		exists, err := s.accountRepo.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check referral code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("could not generate a unique referral code after %d attempts", utils.ReferralCodeAttempts)
}
