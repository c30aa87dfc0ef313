package services

import (
	"errors"

	"clinicbook/internal/utils"
)

// ServiceError is a user-facing failure with a stable error code. Handlers map
// the code to an HTTP status; anything else that escapes a service is treated
// as internal.
type ServiceError struct {
	Code    string
	Message string
	Details map[string]string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

func NewValidationError(message string, details map[string]string) *ServiceError {
	return &ServiceError{Code: utils.CodeValidationError, Message: message, Details: details}
}

// AsServiceError unwraps err into a *ServiceError if it is one.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}
