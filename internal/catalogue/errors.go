package catalogue

import (
	"errors"
	"fmt"
)

var (
	// Sentinel errors for errors.Is checks at the boundary.
	ErrNotFound           = errors.New("catalogue: resource not found")
	ErrCollectionNotFound = errors.New("catalogue: collection not found")
	ErrUnavailable        = errors.New("catalogue: host unreachable or transport failure")
	ErrServerError        = errors.New("catalogue: internal error (5xx)")
	ErrBadResponse        = errors.New("catalogue: invalid response format or malformed data")
	ErrCountMissing       = errors.New("catalogue: total result count not present in response")
	ErrIndexOutOfRange    = errors.New("catalogue: product index out of range")
	ErrRetriesExhausted   = errors.New("catalogue: retries exhausted")
	ErrCircuitOpen        = errors.New("catalogue: circuit breaker is open")
)

// APIError wraps a sentinel error with request context.
type APIError struct {
	Sentinel  error
	Operation string
	Status    int
	Body      string
	Err       error // nested lower-level error (e.g. net.Error)
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Operation, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Sentinel
}
