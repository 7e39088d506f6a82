package encoding

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports a submitted value the encoder cannot accept.
// Accepted is the full class list for categorical fields and empty otherwise.
type ValidationError struct {
	Field    string
	Value    any
	Accepted []string
	Reason   string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ValidationError) Error() string {
	if len(e.Accepted) > 0 {
		return fmt.Sprintf("value %q is not a known category for field %q; choose one of: [%s]",
			fmt.Sprint(e.Value), e.Field, strings.Join(e.Accepted, ", "))
	}
	if e.Reason != "" {
		return fmt.Sprintf("invalid value %v for field %q: %s", e.Value, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid value %v for field %q", e.Value, e.Field)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StatusCode maps validation failures to 422.
func (e *ValidationError) StatusCode() int { return http.StatusUnprocessableEntity }

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
