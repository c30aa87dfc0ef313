package services

import (
	"context"
	"testing"

	"clinicbook/internal/models"
	"clinicbook/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bookingFixture struct {
	accountRepo *fakeAccountRepo
	bookingRepo *fakeBookingRepo
	service     BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	accountRepo := newFakeAccountRepo()
	bookingRepo := newFakeBookingRepo()
	log := newTestLogger(t)
	referral := NewReferralService(accountRepo, log)

	return &bookingFixture{
		accountRepo: accountRepo,
		bookingRepo: bookingRepo,
		service:     NewBookingService(bookingRepo, accountRepo, referral, log),
	}
}

func validRequest(accountID primitive.ObjectID) *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		AccountID:     accountID,
		Treatment:     "Dermal Fillers",
		Name:          "Una Test",
		Email:         "una@example.com",
		Phone:         "07700900000",
		PreferredDate: "2026-09-15",
		Price:         "£200",
	}
}

func TestCreateBookingMissingFields(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.Create(context.Background(), &models.CreateBookingRequest{})
	require.Error(t, err)

	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeValidationError, svcErr.Code)

	// Every missing field is reported at once.
	for _, field := range []string{"account_id", "treatment", "name", "email", "phone", "preferred_date"} {
		assert.Contains(t, svcErr.Details, field)
	}
}

func TestCreateBookingWithoutReferral(t *testing.T) {
	f := newBookingFixture(t)
	account := seedAccount(f.accountRepo, "Una", "una@example.com", "UREF2345")

	result, err := f.service.Create(context.Background(), validRequest(account.ID))
	require.NoError(t, err)

	assert.False(t, result.ReferralApplied)
	assert.False(t, result.ReferralProcessed)
	assert.InDelta(t, 200.0, result.Booking.OriginalPrice, 1e-9)
	assert.InDelta(t, 0.0, result.Booking.DiscountAmount, 1e-9)
	assert.InDelta(t, 200.0, result.Booking.FinalPrice, 1e-9)
	assert.Equal(t, models.BookingStatusPending, result.Booking.Status)
	assert.True(t, result.Booking.FirstVisit)
	assert.Equal(t, int64(1), result.Booking.BookingNumber)
}

func TestCreateBookingWithReferral(t *testing.T) {
	f := newBookingFixture(t)
	referrer := seedAccount(f.accountRepo, "Rita", "rita@example.com", "ABCD2345")
	referee := seedAccount(f.accountRepo, "Una", "una@example.com", "UREF2345")

	request := validRequest(referee.ID)
	request.ReferralCode = "abcd2345"

	result, err := f.service.Create(context.Background(), request)
	require.NoError(t, err)

	// £200 at 5%: £10 off for the referee, £10 pending for the referrer.
	assert.True(t, result.ReferralApplied)
	assert.True(t, result.ReferralProcessed)
	assert.InDelta(t, 10.0, result.DiscountAmount, 1e-9)
	assert.InDelta(t, 190.0, result.FinalPrice, 1e-9)
	assert.Equal(t, "ABCD2345", result.Booking.ReferralCode)

	stored, err := f.bookingRepo.GetByID(context.Background(), result.Booking.ID)
	require.NoError(t, err)
	assert.True(t, stored.ReferralProcessed)

	updatedReferrer, err := f.accountRepo.GetByID(context.Background(), referrer.ID)
	require.NoError(t, err)
	require.Len(t, updatedReferrer.Rewards, 1)
	reward := updatedReferrer.Rewards[0]
	assert.Equal(t, models.RewardStatusPending, reward.Status)
	assert.InDelta(t, 10.0, reward.RewardAmount, 1e-9)
	assert.Equal(t, result.Booking.ID, reward.BookingID)
	assert.Equal(t, referee.ID, reward.ReferredAccountID)
	require.Len(t, updatedReferrer.ReferralsMade, 1)
	assert.Equal(t, "ABCD2345", updatedReferrer.ReferralsMade[0].Code)

	updatedReferee, err := f.accountRepo.GetByID(context.Background(), referee.ID)
	require.NoError(t, err)
	require.Len(t, updatedReferee.UsedReferralCodes, 1)
	used := updatedReferee.UsedReferralCodes[0]
	assert.Equal(t, "ABCD2345", used.Code)
	assert.Equal(t, result.Booking.ID, used.BookingID)
	assert.InDelta(t, 10.0, used.DiscountAmount, 1e-9)
}

func TestCreateBookingReusedCodeRejected(t *testing.T) {
	f := newBookingFixture(t)
	referrer := seedAccount(f.accountRepo, "Rita", "rita@example.com", "ABCD2345")
	referee := seedAccount(f.accountRepo, "Una", "una@example.com", "UREF2345")

	request := validRequest(referee.ID)
	request.ReferralCode = "ABCD2345"
	_, err := f.service.Create(context.Background(), request)
	require.NoError(t, err)

	// Second booking with the same code must fail outright.
	second := validRequest(referee.ID)
	second.ReferralCode = "ABCD2345"
	_, err = f.service.Create(context.Background(), second)
	require.Error(t, err)

	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeReferralCodeAlreadyUsed, svcErr.Code)

	// No new booking, no second reward, no second used-code entry.
	count, _ := f.bookingRepo.CountAll(context.Background())
	assert.Equal(t, int64(1), count)

	updatedReferrer, _ := f.accountRepo.GetByID(context.Background(), referrer.ID)
	assert.Len(t, updatedReferrer.Rewards, 1)

	updatedReferee, _ := f.accountRepo.GetByID(context.Background(), referee.ID)
	assert.Len(t, updatedReferee.UsedReferralCodes, 1)
}

func TestCreateBookingSelfReferralRejected(t *testing.T) {
	f := newBookingFixture(t)
	referee := seedAccount(f.accountRepo, "Una", "una@example.com", "UREF2345")

	request := validRequest(referee.ID)
	request.ReferralCode = "UREF2345"

	_, err := f.service.Create(context.Background(), request)
	require.Error(t, err)

	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidReferralCode, svcErr.Code)

	count, _ := f.bookingRepo.CountAll(context.Background())
	assert.Equal(t, int64(0), count)
}

func TestCreateBookingSurvivesRewardBookkeepingFailure(t *testing.T) {
	f := newBookingFixture(t)
	referrer := seedAccount(f.accountRepo, "Rita", "rita@example.com", "ABCD2345")
	referee := seedAccount(f.accountRepo, "Una", "una@example.com", "UREF2345")
	f.accountRepo.failAppendReward = true

	request := validRequest(referee.ID)
	request.ReferralCode = "ABCD2345"

	// The booking write already happened; reward bookkeeping failure must
	// not surface as an error.
	result, err := f.service.Create(context.Background(), request)
	require.NoError(t, err)

	assert.True(t, result.ReferralApplied)
	assert.False(t, result.ReferralProcessed)
	assert.InDelta(t, 190.0, result.FinalPrice, 1e-9)

	count, _ := f.bookingRepo.CountAll(context.Background())
	assert.Equal(t, int64(1), count)

	updatedReferrer, _ := f.accountRepo.GetByID(context.Background(), referrer.ID)
	assert.Empty(t, updatedReferrer.Rewards)
}

func TestCreateBookingUnparseablePrice(t *testing.T) {
	f := newBookingFixture(t)
	seedAccount(f.accountRepo, "Rita", "rita@example.com", "ABCD2345")
	referee := seedAccount(f.accountRepo, "Una", "una@example.com", "UREF2345")

	request := validRequest(referee.ID)
	request.Price = "call us"
	request.ReferralCode = "ABCD2345"

	result, err := f.service.Create(context.Background(), request)
	require.NoError(t, err)

	// Zero price means zero amounts; no reward is recorded.
	assert.InDelta(t, 0.0, result.Booking.OriginalPrice, 1e-9)
	assert.InDelta(t, 0.0, result.DiscountAmount, 1e-9)
	assert.False(t, result.ReferralApplied)
}

func TestCreateBookingFirstVisitFlag(t *testing.T) {
	f := newBookingFixture(t)
	account := seedAccount(f.accountRepo, "Una", "una@example.com", "UREF2345")

	first, err := f.service.Create(context.Background(), validRequest(account.ID))
	require.NoError(t, err)
	assert.True(t, first.Booking.FirstVisit)

	second, err := f.service.Create(context.Background(), validRequest(account.ID))
	require.NoError(t, err)
	assert.False(t, second.Booking.FirstVisit)
	assert.Equal(t, int64(2), second.Booking.BookingNumber)
}

func TestUpdateStatus(t *testing.T) {
	f := newBookingFixture(t)
	account := seedAccount(f.accountRepo, "Una", "una@example.com", "UREF2345")
	result, err := f.service.Create(context.Background(), validRequest(account.ID))
	require.NoError(t, err)

	booking, err := f.service.UpdateStatus(context.Background(), result.Booking.ID, models.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

	// Any status is settable from any other, including backwards.
	booking, err = f.service.UpdateStatus(context.Background(), result.Booking.ID, models.BookingStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, booking.Status)

	// Pricing is untouched by status changes.
	stored, _ := f.bookingRepo.GetByID(context.Background(), result.Booking.ID)
	assert.InDelta(t, result.Booking.OriginalPrice, stored.OriginalPrice, 1e-9)
	assert.InDelta(t, result.Booking.FinalPrice, stored.FinalPrice, 1e-9)
}

func TestUpdateStatusInvalid(t *testing.T) {
	f := newBookingFixture(t)
	account := seedAccount(f.accountRepo, "Una", "una@example.com", "UREF2345")
	result, err := f.service.Create(context.Background(), validRequest(account.ID))
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(context.Background(), result.Booking.ID, "archived")
	require.Error(t, err)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeValidationError, svcErr.Code)
}

func TestUpdateStatusNotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.UpdateStatus(context.Background(), primitive.NewObjectID(), models.BookingStatusConfirmed)
	require.Error(t, err)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotFound, svcErr.Code)
}

func TestSoftDeleteIsOneWay(t *testing.T) {
	f := newBookingFixture(t)
	account := seedAccount(f.accountRepo, "Una", "una@example.com", "UREF2345")
	result, err := f.service.Create(context.Background(), validRequest(account.ID))
	require.NoError(t, err)
	bookingID := result.Booking.ID

	require.NoError(t, f.service.SoftDelete(context.Background(), bookingID))

	// Deleted bookings disappear from listings but stay reachable by id.
	listed, err := f.service.ListForAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	all, _, err := f.service.ListAll(context.Background(), &utils.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, all)

	got, err := f.service.Get(context.Background(), bookingID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
	assert.NotNil(t, got.DeletedAt)

	// Re-deleting is a rejected operation, not a no-op.
	err = f.service.SoftDelete(context.Background(), bookingID)
	require.Error(t, err)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeAlreadyDeleted, svcErr.Code)
}

func TestSoftDeleteNotFound(t *testing.T) {
	f := newBookingFixture(t)

	err := f.service.SoftDelete(context.Background(), primitive.NewObjectID())
	require.Error(t, err)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotFound, svcErr.Code)
}

func TestCreateBookingUnknownAccount(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.Create(context.Background(), validRequest(primitive.NewObjectID()))
	require.Error(t, err)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotFound, svcErr.Code)
}
