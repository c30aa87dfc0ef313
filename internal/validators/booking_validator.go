package validators

import (
	"strings"

	"clinicbook/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateCreateBooking checks the request's required fields and returns one
// entry per problem so the caller sees every missing field at once. An empty
// map means the request is valid.
func ValidateCreateBooking(req *models.CreateBookingRequest) map[string]string {
	errors := make(map[string]string)

	if req.AccountID.IsZero() {
		errors["account_id"] = "account id is required"
	}
	if strings.TrimSpace(req.Treatment) == "" {
		errors["treatment"] = "treatment is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if validate.Var(req.Email, "email") != nil {
		errors["email"] = "email is not valid"
	}
	if strings.TrimSpace(req.Phone) == "" {
		errors["phone"] = "phone is required"
	}
	if strings.TrimSpace(req.PreferredDate) == "" {
		errors["preferred_date"] = "preferred date is required"
	}
	if req.Status != "" && !req.Status.Valid() {
		errors["status"] = "status must be one of pending, confirmed, completed, cancelled"
	}

	return errors
}

// ValidateCreateAccount checks account signup fields.
func ValidateCreateAccount(req *models.CreateAccountRequest) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(req.FirstName) == "" {
		errors["first_name"] = "first name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		errors["last_name"] = "last name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if validate.Var(req.Email, "email") != nil {
		errors["email"] = "email is not valid"
	}

	return errors
}
