package validator

import (
	"sync"

	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest runs struct-tag validation on a request object and
// converts failures into validation errors naming the offending field.
func ValidateRequest(req interface{}) error {
	if err := getValidator().Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return ierr.WithError(err).
				WithHint("Request validation failed").
				Mark(ierr.ErrValidation)
		}

		details := make(map[string]interface{}, len(validationErrors))
		for _, fieldErr := range validationErrors {
			details[fieldErr.Field()] = fieldErr.Tag()
		}

		return ierr.NewError("request validation failed").
			WithHint("One or more fields failed validation").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}
