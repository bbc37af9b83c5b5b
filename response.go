package webclient

import (
	"bytes"
	"net/http"

	"github.com/kbukum/webclient/engine"
	"github.com/kbukum/webclient/transport"
)

// Response is the result of an executed request. The body has been fully
// read; To decodes it through the client's transport.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Status is the HTTP status line text.
	Status string
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte

	transport transport.Transport
}

func newResponse(result *engine.Result, t transport.Transport) *Response {
	return &Response{
		StatusCode: result.StatusCode,
		Status:     result.Status,
		Headers:    flattenHeaders(result.Header),
		Body:       result.Body,
		transport:  t,
	}
}

// To decodes the response body into v using the client's transport.
func (r *Response) To(v any) error {
	if err := r.transport.In(bytes.NewReader(r.Body), v); err != nil {
		return &TransportError{Op: "decode", Err: err}
	}
	return nil
}

// Header returns a single response header value.
func (r *Response) Header(name string) string {
	return r.Headers[http.CanonicalHeaderKey(name)]
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
