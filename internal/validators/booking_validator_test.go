package validators

import (
	"testing"

	"clinicbook/internal/models"

	"github.com/stretchr/testify/assert"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateCreateBookingAllMissing(t *testing.T) {
	errors := ValidateCreateBooking(&models.CreateBookingRequest{})

	for _, field := range []string{"account_id", "treatment", "name", "email", "phone", "preferred_date"} {
		assert.Contains(t, errors, field)
	}
}

func TestValidateCreateBookingValid(t *testing.T) {
	errors := ValidateCreateBooking(&models.CreateBookingRequest{
		AccountID:     primitive.NewObjectID(),
		Treatment:     "Microneedling",
		Name:          "Una Test",
		Email:         "una@example.com",
		Phone:         "07700900000",
		PreferredDate: "2026-09-15",
	})

	assert.Empty(t, errors)
}

func TestValidateCreateBookingBadEmail(t *testing.T) {
	errors := ValidateCreateBooking(&models.CreateBookingRequest{
		AccountID:     primitive.NewObjectID(),
		Treatment:     "Microneedling",
		Name:          "Una Test",
		Email:         "not-an-email",
		Phone:         "07700900000",
		PreferredDate: "2026-09-15",
	})

	assert.Contains(t, errors, "email")
	assert.Len(t, errors, 1)
}

func TestValidateCreateBookingBadStatus(t *testing.T) {
	errors := ValidateCreateBooking(&models.CreateBookingRequest{
		AccountID:     primitive.NewObjectID(),
		Treatment:     "Microneedling",
		Name:          "Una Test",
		Email:         "una@example.com",
		Phone:         "07700900000",
		PreferredDate: "2026-09-15",
		Status:        "archived",
	})

	assert.Contains(t, errors, "status")
}

func TestValidateCreateBookingWhitespaceOnly(t *testing.T) {
	errors := ValidateCreateBooking(&models.CreateBookingRequest{
		AccountID:     primitive.NewObjectID(),
		Treatment:     "   ",
		Name:          "\t",
		Email:         "una@example.com",
		Phone:         "07700900000",
		PreferredDate: "2026-09-15",
	})

	assert.Contains(t, errors, "treatment")
	assert.Contains(t, errors, "name")
}
