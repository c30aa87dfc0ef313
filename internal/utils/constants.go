package utils

import "time"

// Application Constants
const (
	AppName    = "ClinicBook"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "GBP"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour

	// Referral
	// Discount for the referee and reward for the referrer are both a
	// fixed share of the treatment's original price.
	ReferralDiscountRate = 0.05
	ReferralRewardRate   = 0.05
	ReferralCodeLength   = 8
	ReferralCodeAttempts = 5
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Codes
const (
	CodeValidationError         = "VALIDATION_ERROR"
	CodeInvalidReferralCode     = "INVALID_REFERRAL_CODE"
	CodeReferralCodeAlreadyUsed = "REFERRAL_CODE_ALREADY_USED"
	CodeNotFound                = "NOT_FOUND"
	CodeAlreadyDeleted          = "ALREADY_DELETED"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeForbidden               = "FORBIDDEN"
	CodeInternal                = "INTERNAL"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrAccountNotFound    = "account not found"
	ErrBookingNotFound    = "booking not found"
	ErrRewardNotFound     = "reward not found"
	ErrInvalidToken       = "invalid token"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrValidationFailed   = "validation failed"
)

// Cache Keys
const (
	CacheAccountPrefix      = "account:"
	CacheReferralCodePrefix = "referral_code:"
	CacheBookingPrefix      = "booking:"
	CacheTTL                = 15 * time.Minute
)
