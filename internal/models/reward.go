package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RewardStatus string

const (
	RewardStatusPending  RewardStatus = "pending"
	RewardStatusApproved RewardStatus = "approved"
	RewardStatusRejected RewardStatus = "rejected"
)

func (s RewardStatus) Valid() bool {
	switch s {
	case RewardStatusPending, RewardStatusApproved, RewardStatusRejected:
		return true
	}
	return false
}

// Reward is one ledger entry on the referrer's account, created when a
// referee's booking redeems the referrer's code. Status moves from pending to
// approved or rejected exactly once.
type Reward struct {
	ID                string              `json:"id" bson:"id"`
	ReferredAccountID primitive.ObjectID  `json:"referred_account_id" bson:"referred_account_id"`
	ReferredName      string              `json:"referred_name" bson:"referred_name"`
	ReferredEmail     string              `json:"referred_email" bson:"referred_email"`
	BookingID         primitive.ObjectID  `json:"booking_id" bson:"booking_id"`
	Treatment         string              `json:"treatment" bson:"treatment"`
	OriginalPrice     float64             `json:"original_price" bson:"original_price"`
	RewardAmount      float64             `json:"reward_amount" bson:"reward_amount"`
	Status            RewardStatus        `json:"status" bson:"status" default:"pending"`
	CreatedAt         time.Time           `json:"created_at" bson:"created_at"`
	ProcessedAt       *time.Time          `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
	ProcessedBy       *primitive.ObjectID `json:"processed_by,omitempty" bson:"processed_by,omitempty"`
}

func (r *Reward) Processed() bool {
	return r.Status != RewardStatusPending
}

// RewardView is the admin-facing projection of a reward, enriched with the
// linked booking's current status and the referrer's summary.
type RewardView struct {
	Reward
	ReferrerAccountID primitive.ObjectID `json:"referrer_account_id"`
	ReferrerName      string             `json:"referrer_name"`
	ReferrerEmail     string             `json:"referrer_email"`
	BookingStatus     BookingStatus      `json:"booking_status"`
}

// RewardStats aggregates across all accounts' reward lists. ApprovedTotal sums
// reward amounts of approved entries only.
type RewardStats struct {
	Total         int     `json:"total"`
	Pending       int     `json:"pending"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
	ApprovedTotal float64 `json:"approved_total"`
}

type ReviewRewardRequest struct {
	Decision RewardStatus `json:"decision"`
}
