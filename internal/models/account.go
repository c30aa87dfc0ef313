package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AccountRole string

const (
	AccountRolePatient AccountRole = "patient"
	AccountRoleAdmin   AccountRole = "admin"
)

type Account struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName         string             `json:"first_name" bson:"first_name" validate:"required,min=2,max=50"`
	LastName          string             `json:"last_name" bson:"last_name" validate:"required,min=2,max=50"`
	Email             string             `json:"email" bson:"email" validate:"required,email"`
	Phone             string             `json:"phone" bson:"phone"`
	Role              AccountRole        `json:"role" bson:"role" default:"patient"`
	ReferralCode      string             `json:"referral_code" bson:"referral_code"`
	UsedReferralCodes []UsedReferralCode `json:"used_referral_codes" bson:"used_referral_codes"`
	ReferralsMade     []ReferralMade     `json:"referrals_made" bson:"referrals_made"`
	Rewards           []Reward           `json:"rewards" bson:"rewards"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// UsedReferralCode records one redemption of another account's code by this
// account. A code value appears at most once per account.
type UsedReferralCode struct {
	Code           string             `json:"code" bson:"code"`
	BookingID      primitive.ObjectID `json:"booking_id" bson:"booking_id"`
	DiscountAmount float64            `json:"discount_amount" bson:"discount_amount"`
	RewardAmount   float64            `json:"reward_amount" bson:"reward_amount"`
	UsedAt         time.Time          `json:"used_at" bson:"used_at"`
}

type CreateAccountRequest struct {
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Role      AccountRole `json:"role"`
}

// ReferralSummary is the account-facing view of its own referral activity.
type ReferralSummary struct {
	ReferralCode      string             `json:"referral_code"`
	UsedReferralCodes []UsedReferralCode `json:"used_referral_codes"`
	ReferralsMade     []ReferralMade     `json:"referrals_made"`
	Rewards           []Reward           `json:"rewards"`
	PendingTotal      float64            `json:"pending_total"`
	ApprovedTotal     float64            `json:"approved_total"`
}

// ReferralMade is the referrer-side history entry written alongside each
// reward, recording that this account's code was redeemed.
type ReferralMade struct {
	Code              string             `json:"code" bson:"code"`
	ReferredAccountID primitive.ObjectID `json:"referred_account_id" bson:"referred_account_id"`
	BookingID         primitive.ObjectID `json:"booking_id" bson:"booking_id"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
}

func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

func (a *Account) IsAdmin() bool {
	return a.Role == AccountRoleAdmin
}

// HasUsedReferralCode reports whether this account already redeemed the given
// normalized code.
func (a *Account) HasUsedReferralCode(code string) bool {
	for _, used := range a.UsedReferralCodes {
		if used.Code == code {
			return true
		}
	}
	return false
}

// FindReward returns the reward linked to the given booking, or nil.
func (a *Account) FindReward(bookingID primitive.ObjectID) *Reward {
	for i := range a.Rewards {
		if a.Rewards[i].BookingID == bookingID {
			return &a.Rewards[i]
		}
	}
	return nil
}
