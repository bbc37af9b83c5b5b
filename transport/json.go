package transport

import (
	"encoding/json"
	"io"
)

// JSONTransport serializes entities as JSON.
type JSONTransport struct{}

// NewJSON creates a JSON transport.
func NewJSON() *JSONTransport {
	return &JSONTransport{}
}

// ContentType returns "application/json".
func (t *JSONTransport) ContentType() string {
	return "application/json"
}

// Out writes v as JSON.
func (t *JSONTransport) Out(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// In decodes JSON into v.
func (t *JSONTransport) In(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
