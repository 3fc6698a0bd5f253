package service

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
)

// custom function for translating validation error into user readable errors
func translateValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("at least one %s is required", e.Field())
		}
		return fmt.Sprintf("%s is required", e.Field())
	case "slug":
		return fmt.Sprintf("%s must be lowercase words separated by hyphens (e.g. two-sum)", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param())
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
		}
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s items", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", e.Field(), e.Param())
		}
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s items", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid url", e.Field())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", e.Field())
	default:
		return fmt.Sprintf("Validation failed for %s with rule %s", e.Field(), e.Tag())
	}
}

// ValidateInput validates the input struct using the shared validator instance.
// If validation fails, it logs and returns the first user-friendly error message.
// Returns nil if input is valid.
func ValidateInput(inp any) error {
	InitializeServices()
	if err := validate.Struct(inp); err != nil {
		var validationErrors validator.ValidationErrors
		// Check if the error is a set of validation errors
		if errors.As(err, &validationErrors) {
			if len(validationErrors) > 0 {
				// Grab and translate the first validation error for user feedback
				errorMessage := translateValidationError(validationErrors[0])
				log.Error(errorMessage)
				// Wrap the error with a custom invalid input error
				return fmt.Errorf("%w, %s", algo_errors.ErrInvalidInput, errorMessage)
			}
		}
		return fmt.Errorf("%w, %w", algo_errors.ErrInvalidInput, err)
	}
	// All good, input is valid
	return nil
}

// ValidateVar validates a single value against a tag, e.g. "required,max=50".
func ValidateVar(field string, value any, tag string) error {
	InitializeServices()
	if err := validate.Var(value, tag); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			msg := translateValidationError(fe)
			// Var errors carry no field name
			if fe.Field() == "" {
				msg = field + msg
			}
			return fmt.Errorf("%w, %s", algo_errors.ErrInvalidInput, msg)
		}
		return fmt.Errorf("%w, %w", algo_errors.ErrInvalidInput, err)
	}
	return nil
}
