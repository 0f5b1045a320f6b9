package models

import "errors"

// Error categories shared by every service. Service-specific errors wrap one
// of these so callers at the edges can classify with errors.Is.
var (
	// ErrUnauthenticated means no valid session accompanied the call
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrValidation marks a request that failed input validation
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the row is absent or not owned by the caller
	ErrNotFound = errors.New("not found")
)

// ValidationError builds a validation error with a user-facing message
func ValidationError(message string) error {
	return &validationError{message: message}
}

type validationError struct {
	message string
}

func (e *validationError) Error() string { return e.message }

func (e *validationError) Unwrap() error { return ErrValidation }
