package services

import (
	"context"
	"testing"
	"time"

	"clinicbook/internal/models"
	"clinicbook/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccountAssignsReferralCode(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, newTestLogger(t))

	account, err := svc.CreateAccount(context.Background(), &models.CreateAccountRequest{
		FirstName: "Una",
		LastName:  "Test",
		Email:     "una@example.com",
	})
	require.NoError(t, err)

	assert.Len(t, account.ReferralCode, utils.ReferralCodeLength)
	// Ambiguous glyphs are never issued.
	assert.NotContains(t, account.ReferralCode, "0")
	assert.NotContains(t, account.ReferralCode, "O")
	assert.NotContains(t, account.ReferralCode, "I")
	assert.NotContains(t, account.ReferralCode, "L")
	assert.Equal(t, models.AccountRolePatient, account.Role)
	assert.False(t, account.ID.IsZero())
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, newTestLogger(t))
	seedAccount(repo, "Una", "una@example.com", "UREF2345")

	_, err := svc.CreateAccount(context.Background(), &models.CreateAccountRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "una@example.com",
	})
	require.Error(t, err)

	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeValidationError, svcErr.Code)
}

func TestCreateAccountMissingFields(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, newTestLogger(t))

	_, err := svc.CreateAccount(context.Background(), &models.CreateAccountRequest{Email: "not-an-email"})
	require.Error(t, err)

	svcErr, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeValidationError, svcErr.Code)
	assert.Contains(t, svcErr.Details, "first_name")
	assert.Contains(t, svcErr.Details, "last_name")
	assert.Contains(t, svcErr.Details, "email")
}

func TestGetReferralSummaryTotals(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAccountService(repo, newTestLogger(t))
	account := seedAccount(repo, "Rita", "rita@example.com", "ABCD2345")

	stored := repo.accounts[account.ID]
	stored.Rewards = []models.Reward{
		{RewardAmount: 10, Status: models.RewardStatusPending, CreatedAt: time.Now()},
		{RewardAmount: 7.5, Status: models.RewardStatusApproved, CreatedAt: time.Now()},
		{RewardAmount: 5, Status: models.RewardStatusApproved, CreatedAt: time.Now()},
		{RewardAmount: 3, Status: models.RewardStatusRejected, CreatedAt: time.Now()},
	}

	summary, err := svc.GetReferralSummary(context.Background(), account.ID)
	require.NoError(t, err)

	assert.Equal(t, "ABCD2345", summary.ReferralCode)
	assert.InDelta(t, 10.0, summary.PendingTotal, 1e-9)
	assert.InDelta(t, 12.5, summary.ApprovedTotal, 1e-9)
	assert.Len(t, summary.Rewards, 4)
}
