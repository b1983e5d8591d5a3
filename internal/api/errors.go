package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/nutrisnap/internal/api/shared"
	"github.com/phrazzld/nutrisnap/internal/domain"
	"github.com/phrazzld/nutrisnap/internal/service"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrObservationNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrAlreadyOnboarded):
		return http.StatusConflict

	// Precondition errors
	case errors.Is(err, service.ErrNotOnboarded):
		return http.StatusPreconditionFailed

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest

	// Configuration errors surfaced to the caller
	case errors.Is(err, domain.ErrInvalidConfiguration):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		return "Meal entry not found"

	case errors.Is(err, service.ErrObservationNotFound):
		return "Weight observation not found"

	case errors.Is(err, service.ErrAlreadyOnboarded):
		return "Onboarding already completed"

	case errors.Is(err, service.ErrNotOnboarded):
		return "Onboarding has not completed"

	case errors.Is(err, domain.ErrInvalidInput):
		return "Invalid input: " + err.Error()

	case errors.Is(err, domain.ErrInvalidConfiguration):
		return "Invalid configuration: " + err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// respondWithMappedError is the common error path for handlers.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
