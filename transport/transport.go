package transport

import "io"

// Transport serializes request entities and deserializes response bodies.
// Implementations must be safe for concurrent use.
type Transport interface {
	// ContentType returns the MIME type this transport produces, used as the
	// default Content-Type header for requests carrying a body.
	ContentType() string

	// Out serializes v into w.
	Out(w io.Writer, v any) error

	// In deserializes r into v, which must be a pointer.
	In(r io.Reader, v any) error
}
