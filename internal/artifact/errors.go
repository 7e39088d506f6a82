package artifact

import (
	"errors"
	"fmt"
	"net/http"
)

// LoadError reports a model or encoder artifact that could not be read or
// decoded. No prediction may run against a partially loaded artifact set.
type LoadError struct {
	Kind string // "model" or "encoders"
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s artifact %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// StatusCode maps load failures to 503: the service cannot predict at all.
func (e *LoadError) StatusCode() int { return http.StatusServiceUnavailable }

// IsLoadError reports whether err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
