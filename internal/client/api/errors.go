package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx answer from the API. Message is the server's
// "message" field when present, otherwise the status text.
type APIError struct {
	Status  int
	Message string

	// err is ErrUnauthorized or ErrUnavailable for the statuses that map to
	// them, nil otherwise.
	err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.err
}

func newAPIError(status int, message string) *APIError {
	if message == "" {
		message = http.StatusText(status)
	}

	e := &APIError{Status: status, Message: message}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		e.err = ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		e.err = ErrUnavailable
	}
	return e
}

// StatusCode extracts the HTTP status from an error returned by Client, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
