package predictor

import (
	"errors"
	"fmt"
	"net/http"
)

// PredictionError reports that the assembled row did not fit the model or the
// model failed to score it.
type PredictionError struct {
	Op  string // "assemble" or "predict"
	Err error
}

func (e *PredictionError) Error() string { return fmt.Sprintf("prediction %s: %v", e.Op, e.Err) }

func (e *PredictionError) Unwrap() error { return e.Err }

func (e *PredictionError) StatusCode() int { return http.StatusInternalServerError }

// IsPrediction reports whether err is or wraps a *PredictionError.
func IsPrediction(err error) bool {
	var pe *PredictionError
	return errors.As(err, &pe)
}
