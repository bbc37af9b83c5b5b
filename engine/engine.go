package engine

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/publicsuffix"

	"github.com/kbukum/webclient/logger"
)

const tracerName = "github.com/kbukum/webclient/engine"

// Engine executes HTTP requests asynchronously and resolves them through
// response futures. It is safe for concurrent use by multiple callers.
type Engine struct {
	client *http.Client
	config Config
	log    *logger.Logger
	tracer trace.Tracer
}

// New creates an engine with the given configuration.
func New(cfg Config) (*Engine, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	var rt http.RoundTripper = transport
	if cfg.Realm != nil {
		rt = newAuthRoundTripper(*cfg.Realm, rt)
	}

	client := &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
	}

	if cfg.CookieJar {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, err
		}
		client.Jar = jar
	}

	if cfg.DisableRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.NewDefault("webclient").WithComponent("engine")
	}

	return &Engine{
		client: client,
		config: cfg,
		log:    log,
		tracer: otel.Tracer(tracerName),
	}, nil
}

// Execute sends the request on a background goroutine and returns a future
// that resolves once the full response body has been read.
func (e *Engine) Execute(req *http.Request) *ResponseFuture {
	future := newResponseFuture()
	go e.run(req, future)
	return future
}

func (e *Engine) run(req *http.Request, future *ResponseFuture) {
	reqID := uuid.NewString()
	start := time.Now()

	ctx, span := e.tracer.Start(req.Context(), "HTTP "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL.String()),
		),
	)
	defer span.End()
	req = req.WithContext(ctx)

	e.log.Debug("request started", map[string]any{
		"req_id": reqID,
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := e.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		e.log.WithError(err).Debug("request failed", map[string]any{"req_id": reqID})
		future.resolve(nil, err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		e.log.WithError(err).Debug("read response body failed", map[string]any{"req_id": reqID})
		future.resolve(nil, err)
		return
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, resp.Status)
	}

	e.log.Debug("request completed", map[string]any{
		"req_id":   reqID,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	future.resolve(&Result{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil)
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (e *Engine) Unwrap() *http.Client {
	return e.client
}

// Close releases resources held by the engine. It is a one-shot,
// caller-triggered teardown; the engine must not be used afterwards.
func (e *Engine) Close() error {
	e.client.CloseIdleConnections()
	return nil
}
