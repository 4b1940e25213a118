package types

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrAuthentication    = errors.New("wrong number or password")
	ErrInvalidTransition = errors.New("operation not allowed in the current booking state")
	ErrBookingInProgress = errors.New("booking is already being submitted")
	ErrFlowDisposed      = errors.New("booking flow is closed")

	ErrNotFound         = errors.New("requested item not found")
	ErrDriverNotFound   = errors.New("driver not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrAccountExists    = errors.New("account already exists")
)

// ValidationError is a non-fatal, user-facing input problem. The state it was
// raised against is left unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is makes errors.Is(err, ErrValidation) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
