package webclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/kbukum/webclient/engine"
	"github.com/kbukum/webclient/logger"
	"github.com/kbukum/webclient/transport"
)

// Web is a long-lived handle wrapping one configured HTTP engine. It is safe
// for concurrent use by multiple callers; typed clients created from it share
// the engine.
type Web struct {
	config Config
	engine *engine.Engine
	log    *logger.Logger
}

// New creates a Web handle from the given configuration.
func New(cfg Config) (*Web, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		if cfg.Logging != nil {
			log = logger.New(*cfg.Logging, cfg.Name)
		} else {
			log = logger.NewDefault(cfg.Name)
		}
	}

	eng, err := engine.New(engine.Config{
		Timeout:          cfg.Timeout,
		Realm:            cfg.Realm,
		TLS:              cfg.TLS,
		CookieJar:        cfg.CookieJar,
		DisableRedirects: cfg.DisableRedirects,
		Logger:           log.WithComponent("engine"),
	})
	if err != nil {
		return nil, err
	}

	return &Web{config: cfg, engine: eng, log: log}, nil
}

// Engine returns the wrapped engine for advanced use cases.
func (w *Web) Engine() *engine.Engine {
	return w.engine
}

// Close tears down the wrapped engine. It is a one-shot, caller-triggered
// operation; the handle must not be used afterwards.
func (w *Web) Close() error {
	return w.engine.Close()
}

// ClientOption configures a typed client at construction time.
type ClientOption func(*clientOptions)

type clientOptions struct {
	headers   map[string]string
	transport transport.Transport
}

// WithHeaders adds headers to every request the client issues.
func WithHeaders(headers map[string]string) ClientOption {
	return func(o *clientOptions) {
		for k, v := range headers {
			setHeader(o.headers, k, v)
		}
	}
}

// WithHeader adds a single header to every request the client issues.
func WithHeader(key, value string) ClientOption {
	return func(o *clientOptions) {
		setHeader(o.headers, key, value)
	}
}

// setHeader records a header, replacing any existing key that differs only in
// letter case so that later additions win deterministically.
func setHeader(headers map[string]string, key, value string) {
	for k := range headers {
		if k != key && strings.EqualFold(k, key) {
			delete(headers, k)
		}
	}
	headers[key] = value
}

// WithTransport selects the entity transport. Defaults to JSON.
func WithTransport(t transport.Transport) ClientOption {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// Client is a typed client bound to a single URL. Entities of type T are
// serialized into request bodies through the transport. Headers are captured
// at construction and immutable afterwards.
type Client[T any] struct {
	web       *Web
	url       string
	headers   map[string]string
	transport transport.Transport
}

// ClientOf creates a typed client for the given URL. Headers from the Web
// configuration are merged with client options, options winning.
func ClientOf[T any](w *Web, url string, opts ...ClientOption) *Client[T] {
	o := clientOptions{
		headers:   make(map[string]string),
		transport: transport.NewJSON(),
	}
	for k, v := range w.config.Headers {
		setHeader(o.headers, k, v)
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client[T]{
		web:       w,
		url:       url,
		headers:   o.headers,
		transport: o.transport,
	}
}

// URL returns the bound request target.
func (c *Client[T]) URL() string {
	return c.url
}

// Get issues a GET request and blocks until the response resolves.
func (c *Client[T]) Get(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, nil)
}

// Delete issues a DELETE request and blocks until the response resolves.
func (c *Client[T]) Delete(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodDelete, nil)
}

// Post serializes entity through the transport and issues a POST request.
func (c *Client[T]) Post(ctx context.Context, entity T) (*Response, error) {
	return c.do(ctx, http.MethodPost, &entity)
}

// Put serializes entity through the transport and issues a PUT request.
func (c *Client[T]) Put(ctx context.Context, entity T) (*Response, error) {
	return c.do(ctx, http.MethodPut, &entity)
}

// Patch serializes entity through the transport and issues a PATCH request.
func (c *Client[T]) Patch(ctx context.Context, entity T) (*Response, error) {
	return c.do(ctx, http.MethodPatch, &entity)
}

// do builds the request, executes it on the engine and blocks for the result.
func (c *Client[T]) do(ctx context.Context, method string, entity *T) (*Response, error) {
	req, err := c.newRequest(ctx, method, entity)
	if err != nil {
		return nil, err
	}

	result, err := c.web.engine.Execute(req).Get(ctx)
	if err != nil {
		return nil, &TransportError{Op: method, URL: c.url, Err: err}
	}
	return newResponse(result, c.transport), nil
}

// newRequest constructs the HTTP request with the merged header set and the
// serialized entity body.
func (c *Client[T]) newRequest(ctx context.Context, method string, entity *T) (*http.Request, error) {
	var body io.Reader
	if entity != nil {
		reader, err := c.entityReader(*entity)
		if err != nil {
			return nil, &TransportError{Op: method, URL: c.url, Err: err}
		}
		body = reader
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url, body)
	if err != nil {
		return nil, &TransportError{Op: method, URL: c.url, Err: err}
	}

	c.applyHeaders(req)
	return req, nil
}

// applyHeaders merges the captured headers onto the request. A user-supplied
// Content-Type (any letter case) wins over the transport default; otherwise
// the transport default is applied exactly once.
func (c *Client[T]) applyHeaders(req *http.Request) {
	contentTypeOverridden := false
	for k, v := range c.headers {
		if strings.EqualFold(k, "Content-Type") {
			contentTypeOverridden = true
		}
		req.Header.Set(k, v)
	}
	if !contentTypeOverridden {
		req.Header.Set("Content-Type", c.transport.ContentType())
	}
}

// entityReader produces the request body for an entity. Byte streams are
// passed through without re-serialization.
func (c *Client[T]) entityReader(entity T) (io.Reader, error) {
	switch v := any(entity).(type) {
	case io.Reader:
		return v, nil
	case []byte:
		return bytes.NewReader(v), nil
	}

	var buf bytes.Buffer
	if err := c.transport.Out(&buf, entity); err != nil {
		return nil, err
	}
	return &buf, nil
}
