package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"clinicbook/internal/models"
	"clinicbook/internal/repositories/interfaces"
	"clinicbook/internal/utils"
	"clinicbook/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stderr",
	})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

// fakeAccountRepo is an in-memory AccountRepository. Reads hand out copies so
// callers cannot mutate the store without going through a write method.
type fakeAccountRepo struct {
	accounts map[primitive.ObjectID]*models.Account

	failAppendReward bool
	failAppendUsed   bool
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[primitive.ObjectID]*models.Account)}
}

func copyAccount(a *models.Account) *models.Account {
	cp := *a
	cp.UsedReferralCodes = append([]models.UsedReferralCode(nil), a.UsedReferralCodes...)
	cp.ReferralsMade = append([]models.ReferralMade(nil), a.ReferralsMade...)
	cp.Rewards = append([]models.Reward(nil), a.Rewards...)
	return &cp
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *models.Account) error {
	account.ID = primitive.NewObjectID()
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	f.accounts[account.ID] = copyAccount(account)
	return nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return copyAccount(account), nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			return copyAccount(account), nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeAccountRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, ok := f.accounts[id]; !ok {
		return interfaces.ErrNotFound
	}
	return nil
}

func (f *fakeAccountRepo) GetByReferralCode(ctx context.Context, code string) (*models.Account, error) {
	for _, account := range f.accounts {
		if account.ReferralCode == code {
			return copyAccount(account), nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeAccountRepo) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	for _, account := range f.accounts {
		if account.ReferralCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountRepo) AppendReward(ctx context.Context, referrerID primitive.ObjectID, reward *models.Reward, made *models.ReferralMade) error {
	if f.failAppendReward {
		return errors.New("append reward failed")
	}
	account, ok := f.accounts[referrerID]
	if !ok {
		return interfaces.ErrNotFound
	}
	account.Rewards = append(account.Rewards, *reward)
	account.ReferralsMade = append(account.ReferralsMade, *made)
	return nil
}

func (f *fakeAccountRepo) AppendUsedReferralCode(ctx context.Context, accountID primitive.ObjectID, used *models.UsedReferralCode) error {
	if f.failAppendUsed {
		return errors.New("append used code failed")
	}
	account, ok := f.accounts[accountID]
	if !ok {
		return interfaces.ErrNotFound
	}
	account.UsedReferralCodes = append(account.UsedReferralCodes, *used)
	return nil
}

func (f *fakeAccountRepo) ReplaceRewards(ctx context.Context, accountID primitive.ObjectID, rewards []models.Reward) error {
	account, ok := f.accounts[accountID]
	if !ok {
		return interfaces.ErrNotFound
	}
	account.Rewards = append([]models.Reward(nil), rewards...)
	return nil
}

func (f *fakeAccountRepo) ListWithRewards(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	for _, account := range f.accounts {
		if len(account.Rewards) > 0 {
			accounts = append(accounts, copyAccount(account))
		}
	}
	return accounts, nil
}

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	bookings map[primitive.ObjectID]*models.Booking

	failCreate bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if f.failCreate {
		return errors.New("insert failed")
	}
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *booking
	return &cp, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	booking, ok := f.bookings[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "status":
			booking.Status = value.(models.BookingStatus)
		case "deleted":
			booking.Deleted = value.(bool)
		case "deleted_at":
			at := value.(time.Time)
			booking.DeletedAt = &at
		case "referral_processed":
			booking.ReferralProcessed = value.(bool)
		}
	}
	booking.UpdatedAt = time.Now()
	return nil
}

func (f *fakeBookingRepo) ListByAccount(ctx context.Context, accountID primitive.ObjectID) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for _, booking := range f.bookings {
		if booking.AccountID == accountID && !booking.Deleted {
			cp := *booking
			bookings = append(bookings, &cp)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (f *fakeBookingRepo) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	for _, booking := range f.bookings {
		if !booking.Deleted {
			cp := *booking
			bookings = append(bookings, &cp)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, int64(len(bookings)), nil
}

func (f *fakeBookingRepo) CountByAccount(ctx context.Context, accountID primitive.ObjectID) (int64, error) {
	var count int64
	for _, booking := range f.bookings {
		if booking.AccountID == accountID && !booking.Deleted {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.bookings)), nil
}
