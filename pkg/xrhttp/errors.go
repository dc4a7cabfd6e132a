package xrhttp

import (
	"errors"
	"net/http"
)

// HTTPError is an error with an HTTP status and a stable machine-readable code.
type HTTPError struct {
	Status int
	Code   string
}

// Error implements the error interface.
func (e HTTPError) Error() string { return e.Code }

var (
	ErrBadRequest       = HTTPError{Status: http.StatusBadRequest, Code: "bad_request"}
	ErrNotFound         = HTTPError{Status: http.StatusNotFound, Code: "not_found"}
	ErrMethodNotAllowed = HTTPError{Status: http.StatusMethodNotAllowed, Code: "method_not_allowed"}
	ErrPayloadTooLarge  = HTTPError{Status: http.StatusRequestEntityTooLarge, Code: "payload_too_large"}
	ErrUnprocessable    = HTTPError{Status: http.StatusUnprocessableEntity, Code: "unprocessable_entity"}
	ErrInternal         = HTTPError{Status: http.StatusInternalServerError, Code: "internal_error"}
)

// Report decoding failures. They are wrapped with the matching HTTPError.
var (
	ErrMalformedReport = errors.New("malformed capability report")
	ErrTooManyDevices  = errors.New("capability report lists too many media devices")
	ErrUnknownDevice   = errors.New("device is not in the catalog")
)

// statusError attaches an HTTPError to a descriptive cause.
type statusError struct {
	status HTTPError
	cause  error
}

func withStatus(status HTTPError, cause error) error {
	return statusError{status: status, cause: cause}
}

func (e statusError) Error() string   { return e.cause.Error() }
func (e statusError) Unwrap() []error { return []error{e.status, e.cause} }
