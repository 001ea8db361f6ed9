package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrDisabled is returned by every call while the adapter is switched off.
	ErrDisabled = errors.New("workflow: adapter disabled")
	// ErrMissingBaseURL is returned when the adapter is enabled without a base URL.
	ErrMissingBaseURL = errors.New("workflow: missing base URL")
)

// HTTPError reports a non-2xx response.
type HTTPError struct {
	Operation     string
	StatusCode    int
	CorrelationID string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("workflow: %s: HTTP %d", e.Operation, e.StatusCode)
}

// PayloadError reports a request payload rejected by the contract schema
// before anything was sent.
type PayloadError struct {
	Operation string
	Err       error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("workflow: %s: invalid payload: %v", e.Operation, e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// CorrelationID extracts the correlation id carried by err, if any.
func CorrelationID(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.CorrelationID
	}
	return ""
}
