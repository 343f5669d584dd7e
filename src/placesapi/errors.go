package placesapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error variables
var (
	// ErrTimeout indicates a timeout occurred
	ErrTimeout = errors.New("operation timed out")

	// ErrServiceUnavailable indicates the service could not be reached
	ErrServiceUnavailable = errors.New("suggestion service unavailable")
)

// errorResponse matches the service's flat error format: {"error":"..."}.
type errorResponse struct {
	Error string `json:"error"`
}

// APIError represents an error response from the suggestion service.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("places API error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error is retryable.
func (e *APIError) IsRetryable() bool {
	if e.StatusCode >= 500 && e.StatusCode < 600 {
		return true
	}
	return e.StatusCode == http.StatusTooManyRequests
}

// IsNotFound returns true if the service has no data for the requested
// city/category pair.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsBadRequest returns true if the service rejected the request shape.
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}
