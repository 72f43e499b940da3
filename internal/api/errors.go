package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/users-api/internal/api/shared"
	"github.com/phrazzld/users-api/internal/domain"
	"github.com/phrazzld/users-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Request parsing errors
	case errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &validationErrs):
		return http.StatusUnprocessableEntity

	// Store errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid request format"

	case errors.Is(err, domain.ErrValidation):
		return SanitizeValidationError(err)

	case store.IsDuplicateError(err):
		return "User identifier already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return SanitizeValidationError(err)
		}
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validation failures into a message naming
// only the offending field and rule.
func SanitizeValidationError(err error) string {
	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		if fieldErr.Field == "" {
			return "Validation error: " + fieldErr.Message
		}
		return fmt.Sprintf("Validation error: %s %s", fieldErr.Field, fieldErr.Message)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		first := validationErrs[0]
		if first.Tag() == "required" {
			return fmt.Sprintf("Validation error: %s is required", first.Field())
		}
		return fmt.Sprintf("Validation error: %s is invalid", first.Field())
	}

	return "Validation error"
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted cause. defaultMsg replaces the generic message for errors that
// map to 500.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	statusCode := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if statusCode == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, statusCode, message, err)
}
