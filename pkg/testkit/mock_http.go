package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	saborhttp "github.com/shashiranjanraj/saborexpress/pkg/http"
)

// ─── MockTransport ────────────────────────────────────────────────────────────

// MockTransport implements http.RoundTripper.
// It matches outgoing requests against registered routes and returns
// synthetic responses instead of making real network calls.
//
//	mt := testkit.Install(t)
//	mt.On("GET", "/items").Reply(200, []models.Item{pizza})
//	// ... run test ...
//	mt.AssertAllCalled(t)
type MockTransport struct {
	mu     sync.Mutex
	routes []*Route
	calls  []Call
}

// Call is one request seen by the transport.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// JSON decodes the recorded request body into dest.
func (c Call) JSON(dest any) error {
	return json.Unmarshal(c.Body, dest)
}

// Route is a registered method and path with its canned reply.
type Route struct {
	method string
	path   string
	status int
	body   []byte
	err    error
	calls  int
}

// NewMockTransport returns an empty transport. Unmatched calls fail with a
// transport error.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Install puts a new MockTransport on the shared HTTP client and restores the
// real transport when the test ends.
func Install(t testing.TB) *MockTransport {
	t.Helper()
	mt := NewMockTransport()
	saborhttp.DefaultClient.Transport = mt
	t.Cleanup(saborhttp.ResetTransport)
	return mt
}

// On registers a route. path is matched against the full request path, so
// point the client under test at a base URL without a path ("http://api.test").
// Later registrations win over earlier ones for the same route.
func (mt *MockTransport) On(method, path string) *Route {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	r := &Route{method: method, path: path, status: http.StatusOK}
	mt.routes = append([]*Route{r}, mt.routes...)
	return r
}

// Reply sets the status and JSON body. body may be a string or []byte sent
// verbatim, or any value marshalled to JSON.
func (r *Route) Reply(status int, body any) *Route {
	r.status = status
	switch v := body.(type) {
	case nil:
		r.body = nil
	case string:
		r.body = []byte(v)
	case []byte:
		r.body = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			panic(fmt.Sprintf("testkit: marshal reply: %v", err))
		}
		r.body = b
	}
	return r
}

// Fail makes the route return err as a transport failure.
func (r *Route) Fail(err error) *Route {
	r.err = err
	return r
}

// RoundTrip intercepts the outgoing request and returns a synthetic response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.calls = append(mt.calls, Call{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.Query(),
		Body:   body,
	})

	for _, r := range mt.routes {
		if r.method != req.Method || !pathMatches(req.URL.Path, r.path) {
			continue
		}
		r.calls++
		if r.err != nil {
			return nil, r.err
		}
		return buildHTTPResponse(req, r.status, r.body), nil
	}

	return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call %s %s", req.Method, req.URL)
}

// Calls returns every request seen so far, oldest first.
func (mt *MockTransport) Calls() []Call {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return append([]Call(nil), mt.calls...)
}

// Last returns the most recent call to method and path.
func (mt *MockTransport) Last(method, path string) (Call, bool) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for i := len(mt.calls) - 1; i >= 0; i-- {
		c := mt.calls[i]
		if c.Method == method && pathMatches(c.Path, path) {
			return c, true
		}
	}
	return Call{}, false
}

// Count returns how many calls matched method and path.
func (mt *MockTransport) Count(method, path string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	n := 0
	for _, c := range mt.calls {
		if c.Method == method && pathMatches(c.Path, path) {
			n++
		}
	}
	return n
}

// AssertAllCalled fails t for every registered route that was never hit.
func (mt *MockTransport) AssertAllCalled(t assert.TestingT) bool {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	ok := true
	for _, r := range mt.routes {
		if r.calls == 0 {
			ok = assert.Fail(t, fmt.Sprintf("testkit: route %s %s was never called", r.method, r.path)) && ok
		}
	}
	return ok
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// pathMatches compares paths ignoring a trailing slash.
func pathMatches(candidate, pattern string) bool {
	return strings.TrimSuffix(candidate, "/") == strings.TrimSuffix(pattern, "/")
}

func buildHTTPResponse(req *http.Request, code int, body []byte) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}
}
