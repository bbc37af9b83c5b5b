package webclient

import (
	"errors"
	"fmt"
)

// TransportError is the uniform failure reported for any I/O, cancellation,
// serialization, or execution failure during a request. The original cause
// is preserved and can be inspected with errors.As/Is.
type TransportError struct {
	// Op is the HTTP method or operation that failed.
	Op string
	// URL is the request target.
	URL string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("webclient: %s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("webclient: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError checks whether err is (or wraps) a TransportError.
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}
