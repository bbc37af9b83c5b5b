// Package engine wraps net/http with the asynchronous execution model used
// by the webclient facade.
//
// An Engine executes requests on background goroutines and hands back a
// ResponseFuture that can be awaited or observed through a listener running
// on a caller-supplied Executor. Realm authentication (basic and digest),
// TLS, cookies and per-request tracing live here so the facade stays a thin
// request builder.
package engine
