package client

import (
	"errors"
	"fmt"
)

// APIError is the normalized failure value for every request the client
// makes. Status mirrors the HTTP status code; Status 0 means the request
// never produced an HTTP response (DNS failure, refused connection,
// timeout).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return "network: " + e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an APIError with
// the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == code
	}
	return false
}

// IsNetwork returns true when err is a network-level failure, meaning no
// response was received at all.
func IsNetwork(err error) bool {
	return IsStatus(err, 0)
}
