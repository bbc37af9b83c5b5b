package webclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/webclient/transport"
)

type order struct {
	ID   string `json:"id"`
	Item string `json:"item"`
}

func newTestWeb(t *testing.T, cfg Config) *Web {
	t.Helper()
	web, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { web.Close() })
	return web
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(order{ID: "42", Item: "book"})
	}))
	defer srv.Close()

	web := newTestWeb(t, Config{})
	client := ClientOf[order](web, srv.URL)

	resp, err := client.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got %d", resp.StatusCode)
	}

	var got order
	if err := resp.To(&got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "42" {
		t.Errorf("order id = %q, want %q", got.ID, "42")
	}
}

func TestClient_Post_SerializesEntity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		values := r.Header.Values("Content-Type")
		if len(values) != 1 || values[0] != "application/json" {
			t.Errorf("expected single application/json Content-Type, got %v", values)
		}
		var got order
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if got.Item != "lamp" {
			t.Errorf("item = %q, want %q", got.Item, "lamp")
		}
		w.WriteHeader(201)
	}))
	defer srv.Close()

	web := newTestWeb(t, Config{})
	client := ClientOf[order](web, srv.URL)

	resp, err := client.Post(context.Background(), order{ID: "1", Item: "lamp"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestClient_Methods(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(200)
	}))
	defer srv.Close()

	web := newTestWeb(t, Config{})
	client := ClientOf[order](web, srv.URL)
	ctx := context.Background()
	entity := order{ID: "7"}

	calls := []struct {
		want string
		call func() (*Response, error)
	}{
		{http.MethodGet, func() (*Response, error) { return client.Get(ctx) }},
		{http.MethodDelete, func() (*Response, error) { return client.Delete(ctx) }},
		{http.MethodPost, func() (*Response, error) { return client.Post(ctx, entity) }},
		{http.MethodPut, func() (*Response, error) { return client.Put(ctx, entity) }},
		{http.MethodPatch, func() (*Response, error) { return client.Patch(ctx, entity) }},
	}
	for _, tc := range calls {
		if _, err := tc.call(); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.want, err)
		}
		if gotMethod != tc.want {
			t.Errorf("method = %q, want %q", gotMethod, tc.want)
		}
	}
}

func TestClient_ContentTypeOverride(t *testing.T) {
	for _, key := range []string{"Content-Type", "content-type", "CONTENT-TYPE"} {
		t.Run(key, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				values := r.Header.Values("Content-Type")
				if len(values) != 1 {
					t.Errorf("expected exactly one Content-Type, got %v", values)
				}
				if got := r.Header.Get("Content-Type"); got != "application/vnd.custom" {
					t.Errorf("Content-Type = %q, want override", got)
				}
				w.WriteHeader(200)
			}))
			defer srv.Close()

			web := newTestWeb(t, Config{})
			client := ClientOf[order](web, srv.URL, WithHeader(key, "application/vnd.custom"))

			if _, err := client.Post(context.Background(), order{}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestClient_HeaderCaseFoldMerge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values := r.Header.Values("Content-Type")
		if len(values) != 1 || values[0] != "application/vnd.option" {
			t.Errorf("Content-Type = %v, want the client option value only", values)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	// The Web default and the client option spell the key differently; the
	// later addition must win regardless of map iteration order.
	web := newTestWeb(t, Config{Headers: map[string]string{"content-type": "application/vnd.config"}})
	client := ClientOf[order](web, srv.URL, WithHeader("Content-Type", "application/vnd.option"))

	if _, err := client.Post(context.Background(), order{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_TransportDefaultAppliedOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values := r.Header.Values("Content-Type")
		if len(values) != 1 || values[0] != "application/xml" {
			t.Errorf("expected single application/xml Content-Type, got %v", values)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	web := newTestWeb(t, Config{})
	client := ClientOf[order](web, srv.URL, WithTransport(transport.NewXML()))

	if _, err := client.Post(context.Background(), order{ID: "9"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// countingTransport records Out calls so tests can assert that byte streams
// bypass serialization.
type countingTransport struct {
	outCalls int
}

func (c *countingTransport) ContentType() string { return "application/octet-stream" }

func (c *countingTransport) Out(w io.Writer, v any) error {
	c.outCalls++
	return nil
}

func (c *countingTransport) In(r io.Reader, v any) error { return nil }

func TestClient_ByteSlicePassthrough(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	counting := &countingTransport{}
	web := newTestWeb(t, Config{})
	client := ClientOf[[]byte](web, srv.URL, WithTransport(counting))

	if _, err := client.Post(context.Background(), []byte("raw payload")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counting.outCalls != 0 {
		t.Errorf("transport.Out called %d times for byte slice entity", counting.outCalls)
	}
	if string(gotBody) != "raw payload" {
		t.Errorf("body = %q, want %q", gotBody, "raw payload")
	}
}

func TestClient_ReaderPassthrough(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	counting := &countingTransport{}
	web := newTestWeb(t, Config{})
	client := ClientOf[io.Reader](web, srv.URL, WithTransport(counting))

	if _, err := client.Post(context.Background(), strings.NewReader("streamed")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counting.outCalls != 0 {
		t.Errorf("transport.Out called %d times for reader entity", counting.outCalls)
	}
	if string(gotBody) != "streamed" {
		t.Errorf("body = %q, want %q", gotBody, "streamed")
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	web := newTestWeb(t, Config{})
	client := ClientOf[order](web, srv.URL)

	_, err := client.Get(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsTransportError(err) {
		t.Errorf("expected TransportError, got %T: %v", err, err)
	}
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("errors.As failed for %v", err)
	}
	if te.Err == nil {
		t.Error("expected the original cause to be preserved")
	}
}

func TestClient_DefaultHeadersMerged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Tenant"); got != "acme" {
			t.Errorf("X-Tenant = %q, want %q", got, "acme")
		}
		if got := r.Header.Get("X-Trace"); got != "on" {
			t.Errorf("X-Trace = %q, want %q", got, "on")
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	web := newTestWeb(t, Config{Headers: map[string]string{"X-Tenant": "acme"}})
	client := ClientOf[order](web, srv.URL, WithHeader("X-Trace", "on"))

	if _, err := client.Get(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_ConcurrentCallers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Digest ") {
			w.Header().Set("WWW-Authenticate", `Digest realm="api@test", qop="auth", nonce="n1"`)
			w.WriteHeader(401)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(order{ID: "1"})
	}))
	defer srv.Close()

	// A digest realm keeps the shared challenge cache in play across callers.
	web := newTestWeb(t, Config{Realm: DigestRealm("alice", "secret", true)})
	client := ClientOf[order](web, srv.URL)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			if _, err := client.Get(ctx); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := client.Post(ctx, order{ID: "2"}); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := client.GetAsync(ctx, GoExecutor{}).Get(ctx); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClient_BasicRealmPreemptive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "secret" {
			w.WriteHeader(401)
			return
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	web := newTestWeb(t, Config{Realm: BasicRealm("alice", "secret", true)})
	client := ClientOf[order](web, srv.URL)

	resp, err := client.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
