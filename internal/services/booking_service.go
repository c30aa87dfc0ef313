package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicbook/internal/models"
	"clinicbook/internal/repositories/interfaces"
	"clinicbook/internal/utils"
	"clinicbook/internal/validators"
	"clinicbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	// Create validates the request, resolves any referral code, computes
	// pricing, persists the booking and then records the referral
	// bookkeeping best-effort: a bookkeeping failure is logged and the
	// booking still succeeds, with ReferralProcessed=false on the result.
	Create(ctx context.Context, request *models.CreateBookingRequest) (*models.CreateBookingResult, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	ListForAccount(ctx context.Context, accountID primitive.ObjectID) ([]*models.Booking, error)
	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type bookingService struct {
	bookingRepo     interfaces.BookingRepository
	accountRepo     interfaces.AccountRepository
	referralService ReferralService
	logger          *logger.Logger
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	accountRepo interfaces.AccountRepository,
	referralService ReferralService,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo:     bookingRepo,
		accountRepo:     accountRepo,
		referralService: referralService,
		logger:          log,
	}
}

func (s *bookingService) Create(ctx context.Context, request *models.CreateBookingRequest) (*models.CreateBookingResult, error) {
	if validationErrors := validators.ValidateCreateBooking(request); len(validationErrors) > 0 {
		return nil, NewValidationError(utils.ErrValidationFailed, validationErrors)
	}

	account, err := s.accountRepo.GetByID(ctx, request.AccountID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewServiceError(utils.CodeNotFound, utils.ErrAccountNotFound)
		}
		return nil, err
	}

	// The referral code must be fully validated before anything is
	// written; a rejection aborts the whole submission.
	resolution, err := s.referralService.Resolve(ctx, request.ReferralCode, account)
	if err != nil {
		return nil, err
	}

	originalPrice, parseErr := utils.ParseCurrencyAmount(request.Price)
	if parseErr != nil {
		s.logger.WithAccountID(account.ID).WithError(parseErr).Warn("Unparseable treatment price, pricing as zero")
		originalPrice = 0
	}

	pricing := CalculateReferralPricing(originalPrice, resolution != nil)

	// Read-count-then-write: both the first-visit flag and the booking
	// number can collide under concurrent creation. The number is display
	// only and not guaranteed unique.
	existing, err := s.bookingRepo.CountByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	totalBookings, err := s.bookingRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	status := models.BookingStatusPending
	if request.Status != "" {
		status = request.Status
	}

	booking := &models.Booking{
		AccountID:       account.ID,
		BookingNumber:   totalBookings + 1,
		Treatment:       request.Treatment,
		TreatmentOption: request.TreatmentOption,
		Name:            request.Name,
		Email:           request.Email,
		Phone:           request.Phone,
		PreferredDate:   request.PreferredDate,
		Notes:           request.Notes,
		Status:          status,
		FirstVisit:      existing == 0,
		OriginalPrice:   pricing.OriginalPrice,
		DiscountAmount:  pricing.DiscountAmount,
		FinalPrice:      pricing.FinalPrice,
	}
	if resolution != nil {
		booking.ReferralCode = resolution.Code
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(booking.ID, "booking_created", map[string]interface{}{
		"account_id":     account.ID.Hex(),
		"booking_number": booking.BookingNumber,
		"treatment":      booking.Treatment,
		"final_price":    booking.FinalPrice,
	})

	result := &models.CreateBookingResult{
		Booking:         booking,
		DiscountAmount:  pricing.DiscountAmount,
		FinalPrice:      pricing.FinalPrice,
		ReferralApplied: resolution != nil && pricing.RewardAmount > 0,
	}

	if result.ReferralApplied {
		// Best-effort from here on. The booking is already persisted;
		// a failure in the reward bookkeeping must not fail it.
		if err := s.recordReferral(ctx, account, booking, resolution, pricing); err != nil {
			s.logger.WithBookingID(booking.ID).WithError(err).Error("Referral bookkeeping failed after booking creation")
		} else {
			result.ReferralProcessed = true
			booking.ReferralProcessed = true
			if err := s.bookingRepo.Update(ctx, booking.ID, map[string]interface{}{"referral_processed": true}); err != nil {
				s.logger.WithBookingID(booking.ID).WithError(err).Warn("Failed to flag booking referral_processed")
			}
		}
	}

	return result, nil
}

// recordReferral appends the pending reward and referral-made entry on the
// referrer and the used-code record on the referee.
func (s *bookingService) recordReferral(
	ctx context.Context,
	referee *models.Account,
	booking *models.Booking,
	resolution *ReferralResolution,
	pricing ReferralPricing,
) error {
	now := time.Now()
	referrer := resolution.Referrer

	reward := &models.Reward{
		ID:                fmt.Sprintf("%s_%s", referrer.ID.Hex(), booking.ID.Hex()),
		ReferredAccountID: referee.ID,
		ReferredName:      referee.FullName(),
		ReferredEmail:     referee.Email,
		BookingID:         booking.ID,
		Treatment:         booking.Treatment,
		OriginalPrice:     pricing.OriginalPrice,
		RewardAmount:      pricing.RewardAmount,
		Status:            models.RewardStatusPending,
		CreatedAt:         now,
	}
	made := &models.ReferralMade{
		Code:              resolution.Code,
		ReferredAccountID: referee.ID,
		BookingID:         booking.ID,
		CreatedAt:         now,
	}

	if err := s.accountRepo.AppendReward(ctx, referrer.ID, reward, made); err != nil {
		return err
	}

	used := &models.UsedReferralCode{
		Code:           resolution.Code,
		BookingID:      booking.ID,
		DiscountAmount: pricing.DiscountAmount,
		RewardAmount:   pricing.RewardAmount,
		UsedAt:         now,
	}
	if err := s.accountRepo.AppendUsedReferralCode(ctx, referee.ID, used); err != nil {
		return err
	}

	s.logger.LogReferralEvent(referrer.ID, "reward_recorded", map[string]interface{}{
		"booking_id":    booking.ID.Hex(),
		"reward_amount": pricing.RewardAmount,
	})

	return nil
}

func (s *bookingService) Get(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, NewServiceError(utils.CodeNotFound, utils.ErrBookingNotFound)
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListForAccount(ctx context.Context, accountID primitive.ObjectID) ([]*models.Booking, error) {
	return s.bookingRepo.ListByAccount(ctx, accountID)
}

func (s *bookingService) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.ListAll(ctx, params)
}

// UpdateStatus sets any of the allowed statuses regardless of the current one.
// The loose transitions are intentional: staff use this to fix mistakes.
func (s *bookingService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	if !status.Valid() {
		return nil, NewValidationError("invalid booking status", map[string]string{
			"status": "status must be one of pending, confirmed, completed, cancelled",
		})
	}

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, id, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	booking.Status = status

	s.logger.LogBookingEvent(id, "status_updated", map[string]interface{}{"status": string(status)})

	return booking, nil
}

func (s *bookingService) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if booking.Deleted {
		return NewServiceError(utils.CodeAlreadyDeleted, "booking already deleted")
	}

	now := time.Now()
	if err := s.bookingRepo.Update(ctx, id, map[string]interface{}{
		"deleted":    true,
		"deleted_at": now,
	}); err != nil {
		return err
	}

	s.logger.LogBookingEvent(id, "booking_deleted", nil)

	return nil
}
