package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"scored/internal/encoding"
	"scored/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeErrorResponse(w, types.ErrorResponse{Error: msg, Code: status})
}

// writeServiceError writes err with its mapped status. Validation failures
// carry the offending field, value and accepted values.
func writeServiceError(w http.ResponseWriter, err error) int {
	resp := types.ErrorResponse{Error: err.Error(), Code: statusFor(err)}
	var ve *encoding.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
		resp.Value = ve.Value
		resp.Accepted = ve.Accepted
	}
	writeErrorResponse(w, resp)
	return resp.Code
}

func writeErrorResponse(w http.ResponseWriter, resp types.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)
	_ = json.NewEncoder(w).Encode(resp)
}
