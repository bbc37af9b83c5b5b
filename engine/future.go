package engine

import (
	"context"
	"net/http"
	"sync"
)

// Result is the resolved outcome of an executed request. The body has been
// fully read by the time the future resolves.
type Result struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Status is the HTTP status line text.
	Status string
	// Header holds the response headers.
	Header http.Header
	// Body is the complete response body.
	Body []byte
}

type listener struct {
	fn   func()
	exec Executor
}

// ResponseFuture is the engine's handle for an in-flight request. It resolves
// exactly once, either with a Result or an error.
type ResponseFuture struct {
	mu        sync.Mutex
	done      chan struct{}
	resolved  bool
	result    *Result
	err       error
	listeners []listener
}

func newResponseFuture() *ResponseFuture {
	return &ResponseFuture{done: make(chan struct{})}
}

// resolve records the outcome and fires registered listeners. Later calls
// are ignored.
func (f *ResponseFuture) resolve(result *Result, err error) {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		return
	}
	f.resolved = true
	f.result = result
	f.err = err
	pending := f.listeners
	f.listeners = nil
	close(f.done)
	f.mu.Unlock()

	for _, l := range pending {
		l.exec.Execute(l.fn)
	}
}

// Get blocks until the future resolves or ctx is done.
func (f *ResponseFuture) Get(ctx context.Context) (*Result, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed when the future resolves.
func (f *ResponseFuture) Done() <-chan struct{} {
	return f.done
}

// AddListener registers fn to run on exec once the future resolves. If the
// future already resolved, fn is submitted immediately. Each listener runs
// exactly once.
func (f *ResponseFuture) AddListener(fn func(), exec Executor) {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		exec.Execute(fn)
		return
	}
	f.listeners = append(f.listeners, listener{fn: fn, exec: exec})
	f.mu.Unlock()
}
