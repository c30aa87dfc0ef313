package services

import "clinicbook/internal/utils"

// ReferralPricing holds the amounts computed for one booking. Discount goes to
// the referee, reward to the referrer; both are the same fixed share of the
// original price.
type ReferralPricing struct {
	OriginalPrice  float64 `json:"original_price"`
	DiscountAmount float64 `json:"discount_amount"`
	RewardAmount   float64 `json:"reward_amount"`
	FinalPrice     float64 `json:"final_price"`
}

// CalculateReferralPricing computes discount and reward for a treatment price.
// Amounts are rounded to the cent, half up. Without a resolved referral, or
// for a non-positive price, both amounts are zero and the final price equals
// the original.
func CalculateReferralPricing(originalPrice float64, referralApplied bool) ReferralPricing {
	if !referralApplied || originalPrice <= 0 {
		return ReferralPricing{
			OriginalPrice: originalPrice,
			FinalPrice:    originalPrice,
		}
	}

	discount := utils.RoundCurrency(originalPrice * utils.ReferralDiscountRate)
	reward := utils.RoundCurrency(originalPrice * utils.ReferralRewardRate)

	return ReferralPricing{
		OriginalPrice:  originalPrice,
		DiscountAmount: discount,
		RewardAmount:   reward,
		FinalPrice:     utils.RoundCurrency(originalPrice - discount),
	}
}
