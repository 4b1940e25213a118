package handler

import (
	"errors"
	"net/http"

	"github.com/Temutjin2k/batoda/internal/domain/types"
)

func errorResponse(w http.ResponseWriter, status int, message any) {
	env := envelope{"error": message}

	if err := writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// failedValidationResponse answers 422: the request was well-formed but the
// values were rejected. Repeating it unchanged fails again.
func failedValidationResponse(w http.ResponseWriter, errors map[string]string) {
	errorResponse(w, http.StatusUnprocessableEntity, errors)
}

func badRequestResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusBadRequest, message)
}

func internalErrorResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusInternalServerError, message)
}

func unauthorizedResponse(w http.ResponseWriter) {
	errorResponse(w, http.StatusUnauthorized, "authorization required")
}

// serviceErrorResponse maps a service error to its status and message.
// Unknown errors are not echoed to the client.
func serviceErrorResponse(w http.ResponseWriter, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		failedValidationResponse(w, map[string]string{verr.Field: verr.Message})
		return
	}

	code := GetCode(err)
	switch {
	case code == http.StatusInternalServerError:
		internalErrorResponse(w, "the server encountered a problem and could not process your request")
	case errors.Is(err, types.ErrAuthentication):
		errorResponse(w, code, types.ErrAuthentication.Error())
	default:
		errorResponse(w, code, rootMessage(err))
	}
}

// rootMessage returns the message of the innermost domain error.
func rootMessage(err error) string {
	for _, target := range []error{
		types.ErrInvalidTransition,
		types.ErrBookingInProgress,
		types.ErrDriverNotFound,
		types.ErrLocationNotFound,
		types.ErrUserNotFound,
		types.ErrNotFound,
		types.ErrFlowDisposed,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}
