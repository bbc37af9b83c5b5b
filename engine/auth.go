package engine

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// authRoundTripper applies realm authentication to outgoing requests,
// answering basic and digest challenges on 401 responses.
type authRoundTripper struct {
	realm Realm
	next  http.RoundTripper

	mu        sync.Mutex
	challenge *digestChallenge
	nc        uint64
}

func newAuthRoundTripper(realm Realm, next http.RoundTripper) *authRoundTripper {
	return &authRoundTripper{realm: realm, next: next}
}

// RoundTrip implements http.RoundTripper.
func (a *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	switch a.realm.Scheme {
	case SchemeDigest:
		return a.roundTripDigest(req)
	default:
		return a.roundTripBasic(req)
	}
}

func (a *authRoundTripper) roundTripBasic(req *http.Request) (*http.Response, error) {
	if a.realm.Preemptive {
		authed := req.Clone(req.Context())
		authed.SetBasicAuth(a.realm.Principal, a.realm.Credential)
		return a.next.RoundTrip(authed)
	}

	resp, err := a.next.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode != http.StatusUnauthorized || !hasChallenge(resp, "Basic") {
		return resp, nil
	}

	drain(resp)
	retry, err := cloneRequest(req)
	if err != nil {
		return nil, err
	}
	retry.SetBasicAuth(a.realm.Principal, a.realm.Credential)
	return a.next.RoundTrip(retry)
}

func (a *authRoundTripper) roundTripDigest(req *http.Request) (*http.Response, error) {
	attempt := req.Clone(req.Context())

	// Preemptive digest reuses the last challenge when one was seen.
	a.mu.Lock()
	cached := a.challenge
	a.mu.Unlock()
	if a.realm.Preemptive && cached != nil {
		header, err := a.authorization(cached, req.Method, req.URL.RequestURI())
		if err == nil {
			attempt.Header.Set("Authorization", header)
		}
	}

	resp, err := a.next.RoundTrip(attempt)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	challenge := parseDigestChallenge(resp.Header.Values("WWW-Authenticate"))
	if challenge == nil {
		return resp, nil
	}

	a.mu.Lock()
	// nc counts requests sent with a given nonce, so it restarts whenever
	// the server rotates the nonce.
	if a.challenge == nil || a.challenge.nonce != challenge.nonce {
		a.nc = 0
	}
	a.challenge = challenge
	a.mu.Unlock()

	header, err := a.authorization(challenge, req.Method, req.URL.RequestURI())
	if err != nil {
		// Unsupported algorithm or qop; hand the 401 back untouched.
		return resp, nil
	}

	drain(resp)
	retry, err := cloneRequest(req)
	if err != nil {
		return nil, err
	}
	retry.Header.Set("Authorization", header)
	return a.next.RoundTrip(retry)
}

// authorization builds a Digest Authorization header for the challenge.
func (a *authRoundTripper) authorization(ch *digestChallenge, method, uri string) (string, error) {
	a.mu.Lock()
	a.nc++
	nc := a.nc
	a.mu.Unlock()

	cnonce := strings.ReplaceAll(uuid.NewString(), "-", "")
	return digestAuthorization(ch, a.realm.Principal, a.realm.Credential, method, uri, nc, cnonce)
}

// digestChallenge holds the parameters of a WWW-Authenticate: Digest header.
type digestChallenge struct {
	realm     string
	nonce     string
	opaque    string
	algorithm string
	qop       string
}

// parseDigestChallenge extracts the first Digest challenge from the
// WWW-Authenticate header values. Returns nil if none is present.
func parseDigestChallenge(values []string) *digestChallenge {
	for _, v := range values {
		if len(v) < 7 || !strings.EqualFold(v[:7], "Digest ") {
			continue
		}
		params := parseAuthParams(v[7:])
		ch := &digestChallenge{
			realm:     params["realm"],
			nonce:     params["nonce"],
			opaque:    params["opaque"],
			algorithm: params["algorithm"],
			qop:       params["qop"],
		}
		if ch.nonce == "" {
			continue
		}
		return ch
	}
	return nil
}

// parseAuthParams parses comma-separated name=value pairs, with values
// optionally double-quoted.
func parseAuthParams(s string) map[string]string {
	params := make(map[string]string)
	for _, part := range splitAuthParams(s) {
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}
		params[name] = value
	}
	return params
}

// splitAuthParams splits on commas that are outside quoted strings.
func splitAuthParams(s string) []string {
	var parts []string
	var inQuotes bool
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// digestAuthorization computes the Authorization header value for a digest
// challenge per RFC 7616. Only qop=auth (and the legacy no-qop form) is
// supported.
func digestAuthorization(ch *digestChallenge, username, password, method, uri string, nc uint64, cnonce string) (string, error) {
	newHash, algorithm, err := digestHash(ch.algorithm)
	if err != nil {
		return "", err
	}

	h := func(data string) string {
		hasher := newHash()
		io.WriteString(hasher, data)
		return hex.EncodeToString(hasher.Sum(nil))
	}

	ha1 := h(username + ":" + ch.realm + ":" + password)
	ha2 := h(method + ":" + uri)

	qop, err := digestQop(ch.qop)
	if err != nil {
		return "", err
	}

	var response string
	if qop == "auth" {
		response = h(fmt.Sprintf("%s:%s:%08x:%s:%s:%s", ha1, ch.nonce, nc, cnonce, qop, ha2))
	} else {
		response = h(ha1 + ":" + ch.nonce + ":" + ha2)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Digest username=%q, realm=%q, nonce=%q, uri=%q, response=%q`,
		username, ch.realm, ch.nonce, uri, response)
	if algorithm != "" {
		fmt.Fprintf(&b, `, algorithm=%s`, algorithm)
	}
	if qop == "auth" {
		fmt.Fprintf(&b, `, qop=auth, nc=%08x, cnonce=%q`, nc, cnonce)
	}
	if ch.opaque != "" {
		fmt.Fprintf(&b, `, opaque=%q`, ch.opaque)
	}
	return b.String(), nil
}

// digestHash selects the hash for the challenge algorithm. An empty
// algorithm means MD5 per RFC 7616.
func digestHash(algorithm string) (func() hash.Hash, string, error) {
	switch strings.ToUpper(algorithm) {
	case "", "MD5":
		return md5.New, algorithm, nil
	case "SHA-256":
		return sha256.New, "SHA-256", nil
	default:
		return nil, "", fmt.Errorf("engine: unsupported digest algorithm %q", algorithm)
	}
}

// digestQop picks a supported qop from the challenge's offered list.
func digestQop(offered string) (string, error) {
	if offered == "" {
		return "", nil
	}
	for _, q := range strings.Split(offered, ",") {
		if strings.TrimSpace(q) == "auth" {
			return "auth", nil
		}
	}
	return "", fmt.Errorf("engine: no supported qop in %q", offered)
}

// hasChallenge reports whether the response carries a challenge for the
// given scheme.
func hasChallenge(resp *http.Response, scheme string) bool {
	for _, v := range resp.Header.Values("WWW-Authenticate") {
		if len(v) >= len(scheme) && strings.EqualFold(v[:len(scheme)], scheme) {
			return true
		}
	}
	return false
}

// cloneRequest copies the request with a replayable body so it can be
// retried after a challenge.
func cloneRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			return nil, fmt.Errorf("engine: request body is not replayable")
		}
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	return clone, nil
}

// drain discards and closes the response body so the connection can be
// reused for the retry.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
