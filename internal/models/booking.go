package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AccountID       primitive.ObjectID `json:"account_id" bson:"account_id" validate:"required"`
	BookingNumber   int64              `json:"booking_number" bson:"booking_number"`
	Treatment       string             `json:"treatment" bson:"treatment" validate:"required"`
	TreatmentOption string             `json:"treatment_option" bson:"treatment_option"`
	Name            string             `json:"name" bson:"name" validate:"required"`
	Email           string             `json:"email" bson:"email" validate:"required,email"`
	Phone           string             `json:"phone" bson:"phone" validate:"required"`
	PreferredDate   string             `json:"preferred_date" bson:"preferred_date" validate:"required"`
	Notes           string             `json:"notes" bson:"notes"`
	Status          BookingStatus      `json:"status" bson:"status" default:"pending"`
	Deleted         bool               `json:"deleted" bson:"deleted"`
	DeletedAt       *time.Time         `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	ReferralCode    string             `json:"referral_code,omitempty" bson:"referral_code,omitempty"`
	FirstVisit      bool               `json:"first_visit" bson:"first_visit"`

	// Pricing is computed once at creation and never recalculated.
	OriginalPrice  float64 `json:"original_price" bson:"original_price"`
	DiscountAmount float64 `json:"discount_amount" bson:"discount_amount"`
	FinalPrice     float64 `json:"final_price" bson:"final_price"`

	// ReferralProcessed is false when a valid code was supplied but the
	// reward bookkeeping on the referrer's account failed after the
	// booking itself was persisted.
	ReferralProcessed bool `json:"referral_processed" bson:"referral_processed"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type CreateBookingRequest struct {
	AccountID       primitive.ObjectID `json:"account_id"`
	Treatment       string             `json:"treatment"`
	TreatmentOption string             `json:"treatment_option"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone"`
	PreferredDate   string             `json:"preferred_date"`
	Notes           string             `json:"notes"`
	Price           string             `json:"price"`
	ReferralCode    string             `json:"referral_code"`
	Status          BookingStatus      `json:"status"`
}

// CreateBookingResult is returned by booking creation. ReferralProcessed
// distinguishes "booking stored, reward bookkeeping failed" from full success.
type CreateBookingResult struct {
	Booking           *Booking `json:"booking"`
	DiscountAmount    float64  `json:"discount_amount"`
	FinalPrice        float64  `json:"final_price"`
	ReferralApplied   bool     `json:"referral_applied"`
	ReferralProcessed bool     `json:"referral_processed"`
}

type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status"`
}
