package transport

import (
	"fmt"
	"io"
)

// TextTransport serializes entities as plain text. Strings, byte slices and
// readers are written as-is; other values go through fmt.
type TextTransport struct{}

// NewText creates a plain text transport.
func NewText() *TextTransport {
	return &TextTransport{}
}

// ContentType returns "text/plain".
func (t *TextTransport) ContentType() string {
	return "text/plain"
}

// Out writes v as text.
func (t *TextTransport) Out(w io.Writer, v any) error {
	switch val := v.(type) {
	case string:
		_, err := io.WriteString(w, val)
		return err
	case []byte:
		_, err := w.Write(val)
		return err
	case io.Reader:
		_, err := io.Copy(w, val)
		return err
	default:
		_, err := fmt.Fprint(w, val)
		return err
	}
}

// In reads the body into v, which must be *string or *[]byte.
func (t *TextTransport) In(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	switch target := v.(type) {
	case *string:
		*target = string(data)
	case *[]byte:
		*target = data
	default:
		return fmt.Errorf("transport: text transport cannot decode into %T", v)
	}
	return nil
}
