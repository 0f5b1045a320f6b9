package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// ExitError carries the process exit code of a failed command. The error has
// already been reported to the user when it is returned.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// UsageError marks bad command usage such as a missing argument
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// Usagef builds a UsageError
func Usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// DataError marks input that could not be decoded
type DataError struct {
	Err error
}

func (e *DataError) Error() string { return fmt.Sprintf("invalid input: %v", e.Err) }

func (e *DataError) Unwrap() error { return e.Err }

// Classify maps an error onto an error code for the formatter and an exit code
func Classify(err error) (code string, exit int) {
	var usage *UsageError
	var data *DataError
	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return "ERROR", exitErr.Code
	case errors.As(err, &usage):
		return "USAGE", ExitUsage
	case errors.As(err, &data):
		return "INVALID_INPUT", ExitDataErr
	case errors.Is(err, models.ErrUnauthenticated):
		return "UNAUTHENTICATED", ExitAuth
	case errors.Is(err, models.ErrNotFound):
		return "NOT_FOUND", ExitNotFound
	case errors.Is(err, models.ErrValidation):
		return "VALIDATION_ERROR", ExitValidation
	default:
		return "ERROR", ExitGeneral
	}
}

// suggestionFor returns a hint shown under the error message, if any
func suggestionFor(code string) string {
	switch code {
	case "UNAUTHENTICATED":
		return "Set auth.token in the config file or export ROLODEX_TOKEN"
	case "NOT_FOUND":
		return "Use the list commands to see available ids"
	case "USAGE":
		return "Run the command with --help for usage"
	default:
		return ""
	}
}
