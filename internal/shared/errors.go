package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Connectivity and catalog errors
	ErrNotConnected       = fmt.Errorf("service not connected")
	ErrTimeout            = fmt.Errorf("operation timed out")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// StatusError reports a non-2xx response from an external catalog.
// Catalog clients convert HTTP failures to this type so callers can
// classify them without seeing URLs, headers, or response bodies.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}
