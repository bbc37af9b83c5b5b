package transport

import (
	"encoding/xml"
	"io"
)

// XMLTransport serializes entities as XML.
type XMLTransport struct{}

// NewXML creates an XML transport.
func NewXML() *XMLTransport {
	return &XMLTransport{}
}

// ContentType returns "application/xml".
func (t *XMLTransport) ContentType() string {
	return "application/xml"
}

// Out writes v as XML.
func (t *XMLTransport) Out(w io.Writer, v any) error {
	return xml.NewEncoder(w).Encode(v)
}

// In decodes XML into v.
func (t *XMLTransport) In(r io.Reader, v any) error {
	return xml.NewDecoder(r).Decode(v)
}
