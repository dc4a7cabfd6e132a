package xrhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// errWriteResponse marks failures after the status line was sent.
var errWriteResponse = errors.New("write response")

// Envelope is the body of every JSON response.
type Envelope struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		return fmt.Errorf("%w: %w", errWriteResponse, err)
	}
	return nil
}

// errorToDetail maps err to a status and an error body. Errors that do not
// wrap an HTTPError become internal errors with a generic message.
func errorToDetail(err error) (int, *ErrorDetail) {
	var httpErr HTTPError
	if !errors.As(err, &httpErr) {
		return http.StatusInternalServerError, &ErrorDetail{
			Code:    ErrInternal.Code,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}

	message := err.Error()
	if message == httpErr.Code {
		message = http.StatusText(httpErr.Status)
	}
	return httpErr.Status, &ErrorDetail{Code: httpErr.Code, Message: message}
}
