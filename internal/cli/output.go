package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"

	"github.com/thenoetrevino/rolodex/internal/models"
)

// Renderer is implemented by results with a human-readable form
type Renderer interface {
	Render(w io.Writer) error
}

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	// Out and Err default to the process stdout and stderr
	Out io.Writer
	Err io.Writer
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.Err == nil {
		return os.Stderr
	}
	return f.Err
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		// Extract IDs if possible
		switch v := data.(type) {
		case interface{ GetID() string }:
			_, err := fmt.Fprintln(f.out(), v.GetID())
			return err
		case interface{ IDs() []string }:
			for _, id := range v.IDs() {
				if _, err := fmt.Fprintln(f.out(), id); err != nil {
					return err
				}
			}
			return nil
		}
	}

	if f.JSON {
		return f.encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return f.encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(f.errOut(), "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.errOut(), "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err to the user and returns an ExitError carrying the exit
// code for its category
func (f *OutputFormatter) Fail(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	code, exit := Classify(err)
	if fmtErr := f.ErrorWithSuggestion(code, userMessage(err), suggestionFor(code)); fmtErr != nil {
		return errors.Join(err, fmtErr)
	}
	return &ExitError{Code: exit, Err: err}
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	if r, ok := data.(Renderer); ok {
		return r.Render(f.out())
	}
	_, err := fmt.Fprintf(f.out(), "%+v\n", data)
	return err
}

func (f *OutputFormatter) encode(v any) error {
	return sonic.ConfigStd.NewEncoder(f.out()).Encode(v)
}

// userMessage drops the wrapping of validation errors so the user sees the
// rule that failed
func userMessage(err error) string {
	if !errors.Is(err, models.ErrValidation) {
		return err.Error()
	}
	for {
		next := errors.Unwrap(err)
		if next == nil || next == models.ErrValidation {
			return err.Error()
		}
		err = next
	}
}

func marshal(v any) ([]byte, error) {
	return sonic.ConfigStd.Marshal(v)
}
