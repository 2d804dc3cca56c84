// Package api is the typed client of the restaurant REST API.
//
// Every call is a single attempt with the shared HTTP client's timeout.
// Failures come back as one of:
//
//	errors.Is(err, api.ErrTransport)   // no response (DNS, refused, timeout)
//	errors.As(err, &apiErr)            // *api.Error, non-2xx with the server message
//	errors.Is(err, api.ErrDecode)      // 2xx whose body is not the expected JSON
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	saborhttp "github.com/shashiranjanraj/saborexpress/pkg/http"
)

var (
	// ErrTransport wraps failures where no HTTP response was received.
	ErrTransport = errors.New("api: transport failure")
	// ErrDecode wraps 2xx responses whose body could not be decoded.
	ErrDecode = errors.New("api: undecodable response")
)

// Error is a non-2xx response. Message is the server's "message" (or
// "error") field and may be empty.
type Error struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// IsConflict reports whether err is an HTTP 409, the API's answer to a
// duplicate registration.
func IsConflict(err error) bool { return statusIs(err, http.StatusConflict) }

// IsNotFound reports whether err is an HTTP 404.
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

func statusIs(err error, status int) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == status
}

// Message returns the server-supplied message carried by err, or fallback.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// Client calls the API rooted at a base URL such as
// "http://localhost:8080/api".
type Client struct {
	base string
}

// New returns a client for baseURL.
func New(baseURL string) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.base }

// call describes one request.
type call struct {
	op     string
	method string
	path   string
	query  [][2]string
	body   any
}

// seg escapes one path segment.
func seg(s string) string { return url.PathEscape(s) }

func (c *Client) do(ctx context.Context, cl call, dest any) error {
	var req *saborhttp.Request
	target := c.base + cl.path
	switch cl.method {
	case http.MethodGet:
		req = saborhttp.Get(target)
	case http.MethodPost:
		req = saborhttp.Post(target)
	case http.MethodPut:
		req = saborhttp.Put(target)
	case http.MethodDelete:
		req = saborhttp.Delete(target)
	default:
		return fmt.Errorf("api: unsupported method %s", cl.method)
	}

	req = req.Name(cl.op).WithContext(ctx)
	for _, kv := range cl.query {
		req = req.Query(kv[0], kv[1])
	}
	if cl.body != nil {
		req = req.Body(cl.body)
	}

	resp, err := req.Send()
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, cl.method, cl.path, err)
	}

	if !resp.OK() {
		return &Error{
			Status:  resp.StatusCode,
			Message: serverMessage(resp.Raw),
			Method:  cl.method,
			Path:    cl.path,
		}
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Raw, dest); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, cl.method, cl.path, err)
	}
	return nil
}

// serverMessage extracts "message", or failing that "error", from a JSON
// error body. Anything else yields "".
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
