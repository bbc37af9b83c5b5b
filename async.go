package webclient

import (
	"context"
	"net/http"
)

// GetAsync issues a GET request and returns immediately. The future resolves
// on the supplied executor once the engine completes the request.
func (c *Client[T]) GetAsync(ctx context.Context, exec Executor) *Future[*Response] {
	return c.doAsync(ctx, http.MethodGet, nil, exec)
}

// DeleteAsync issues a DELETE request and returns immediately.
func (c *Client[T]) DeleteAsync(ctx context.Context, exec Executor) *Future[*Response] {
	return c.doAsync(ctx, http.MethodDelete, nil, exec)
}

// PostAsync serializes entity and issues a POST request, returning
// immediately.
func (c *Client[T]) PostAsync(ctx context.Context, entity T, exec Executor) *Future[*Response] {
	return c.doAsync(ctx, http.MethodPost, &entity, exec)
}

// PutAsync serializes entity and issues a PUT request, returning immediately.
func (c *Client[T]) PutAsync(ctx context.Context, entity T, exec Executor) *Future[*Response] {
	return c.doAsync(ctx, http.MethodPut, &entity, exec)
}

// PatchAsync serializes entity and issues a PATCH request, returning
// immediately.
func (c *Client[T]) PatchAsync(ctx context.Context, entity T, exec Executor) *Future[*Response] {
	return c.doAsync(ctx, http.MethodPatch, &entity, exec)
}

// doAsync bridges the engine's response future into the caller-visible
// future. Request construction failures resolve the future immediately; the
// completion callback runs exactly once, on exec.
func (c *Client[T]) doAsync(ctx context.Context, method string, entity *T, exec Executor) *Future[*Response] {
	future := newFuture[*Response]()

	req, err := c.newRequest(ctx, method, entity)
	if err != nil {
		future.set(nil, err)
		return future
	}

	responseFuture := c.web.engine.Execute(req)
	responseFuture.AddListener(func() {
		// The engine future has resolved by the time the listener runs.
		result, err := responseFuture.Get(context.Background())
		if err != nil {
			future.set(nil, &TransportError{Op: method, URL: c.url, Err: err})
			return
		}
		future.set(newResponse(result, c.transport), nil)
	}, exec)

	return future
}
