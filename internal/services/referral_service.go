package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinicbook/internal/models"
	"clinicbook/internal/repositories/interfaces"
	"clinicbook/internal/utils"
	"clinicbook/pkg/logger"
)

// ReferralResolution is the outcome of a successful code lookup.
type ReferralResolution struct {
	Referrer *models.Account
	Code     string
}

type ReferralService interface {
	// Resolve validates a raw referral code for the given referee. A blank
	// code resolves to (nil, nil): the booking proceeds without a
	// referral. Rejections are ServiceErrors; Resolve never writes.
	Resolve(ctx context.Context, rawCode string, referee *models.Account) (*ReferralResolution, error)
}

type referralService struct {
	accountRepo interfaces.AccountRepository
	logger      *logger.Logger
}

func NewReferralService(accountRepo interfaces.AccountRepository, log *logger.Logger) ReferralService {
	return &referralService{
		accountRepo: accountRepo,
		logger:      log,
	}
}

func (s *referralService) Resolve(ctx context.Context, rawCode string, referee *models.Account) (*ReferralResolution, error) {
	code := strings.ToUpper(strings.TrimSpace(rawCode))
	if code == "" {
		return nil, nil
	}

	if code == referee.ReferralCode {
		return nil, NewServiceError(utils.CodeInvalidReferralCode, "you cannot use your own referral code")
	}

	if referee.HasUsedReferralCode(code) {
		return nil, NewServiceError(utils.CodeReferralCodeAlreadyUsed,
			fmt.Sprintf("referral code %s has already been used", code))
	}

	referrer, err := s.accountRepo.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewServiceError(utils.CodeInvalidReferralCode, "invalid referral code")
		}
		return nil, fmt.Errorf("failed to resolve referral code: %w", err)
	}

	s.logger.WithAccountID(referee.ID).WithField("referral_code", code).Debug("Referral code resolved")

	return &ReferralResolution{
		Referrer: referrer,
		Code:     code,
	}, nil
}
