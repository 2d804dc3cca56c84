// Package http is the fluent HTTP client for calls to the restaurant API.
// Each request is sent exactly once: a transport failure is returned to the
// caller and a non-2xx status is handed back as a Response.
//
// Usage:
//
//	resp, err := http.Get(base+"/items/buscar").
//	    Name("items.search").
//	    Query("nombre", "pizza").
//	    WithContext(ctx).
//	    Send()
//
//	// POST JSON body
//	resp, err := http.Post(base+"/pedidos").
//	    Body(order).
//	    Send()
//
// Every call is traced, carries the request ID of ctx and is recorded in the
// upstream metrics under its Name.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shashiranjanraj/saborexpress/pkg/logger"
	"github.com/shashiranjanraj/saborexpress/pkg/metrics"
	"github.com/shashiranjanraj/saborexpress/pkg/reqid"
	"github.com/shashiranjanraj/saborexpress/pkg/telemetry"
)

// defaultTransport is the high-performance connection-pooled transport used in
// production.  Tests can replace DefaultClient.Transport to inject mocks.
var defaultTransport = &gohttp.Transport{
	MaxIdleConns:        200,
	MaxIdleConnsPerHost: 100,
	IdleConnTimeout:     90 * time.Second,
	DisableCompression:  false,
}

// DefaultClient is the shared HTTP client used by all outgoing requests.
// Tests can swap DefaultClient.Transport to intercept calls:
//
//	http.DefaultClient.Transport = myMockTransport
//	defer http.ResetTransport()
var DefaultClient = &gohttp.Client{
	Transport: defaultTransport,
}

// ResetTransport restores the production transport on DefaultClient.
// Call via defer after injecting a test transport.
func ResetTransport() {
	DefaultClient.Transport = defaultTransport
}

// ------------------- Request -------------------

// Request is a fluent HTTP request builder.
type Request struct {
	method string
	url    string
	name   string
	query  url.Values
	body   any
	ctx    context.Context
}

// requestTimeout bounds a single call, including reading the body.
const requestTimeout = 30 * time.Second

// Get starts a GET request.
func Get(rawURL string) *Request { return newRequest(gohttp.MethodGet, rawURL) }

// Post starts a POST request.
func Post(rawURL string) *Request { return newRequest(gohttp.MethodPost, rawURL) }

// Put starts a PUT request.
func Put(rawURL string) *Request { return newRequest(gohttp.MethodPut, rawURL) }

// Delete starts a DELETE request.
func Delete(rawURL string) *Request { return newRequest(gohttp.MethodDelete, rawURL) }

func newRequest(method, rawURL string) *Request {
	return &Request{
		method: method,
		url:    rawURL,
		name:   method,
		query:  url.Values{},
		ctx:    context.Background(),
	}
}

// Name labels the call for tracing and metrics ("orders.create").
func (r *Request) Name(op string) *Request {
	r.name = op
	return r
}

// Query adds a query string parameter. Values are escaped on Send.
func (r *Request) Query(key, value string) *Request {
	r.query.Add(key, value)
	return r
}

// Body sets the request body, marshalled to JSON on Send.
func (r *Request) Body(v any) *Request {
	r.body = v
	return r
}

// WithContext sets a custom context.
func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// ------------------- Send -------------------

// Send executes the request and returns a Response. A non-2xx status is not
// an error; only transport failures are.
func (r *Request) Send() (*Response, error) {
	target := r.target()
	start := time.Now()

	ctx, span := telemetry.Tracer().Start(r.ctx, "upstream "+r.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", r.method),
			attribute.String("http.url", target),
		),
	)
	defer span.End()

	resp, err := r.do(ctx, target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.ObserveUpstream(r.name, 0, start)
		logger.WithCtx(ctx).Warn("http: upstream call failed",
			"operation", r.name, "url", target, "error", err)
		return nil, fmt.Errorf("http: %s %s: %w", r.method, target, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= 500 {
		span.SetStatus(codes.Error, gohttp.StatusText(resp.StatusCode))
	}
	metrics.ObserveUpstream(r.name, resp.StatusCode, start)
	logger.WithCtx(ctx).Debug("http: upstream call",
		"operation", r.name, "status", resp.StatusCode, "duration", time.Since(start))
	return resp, nil
}

func (r *Request) target() string {
	if len(r.query) == 0 {
		return r.url
	}
	u, err := url.Parse(r.url)
	if err != nil {
		return r.url + "?" + r.query.Encode()
	}
	q := u.Query()
	for k, vs := range r.query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (r *Request) do(parent context.Context, target string) (*Response, error) {
	body, err := r.buildBody()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(parent, requestTimeout)
	defer cancel()

	req, err := gohttp.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("http: build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := reqid.FromCtx(parent); id != "" {
		req.Header.Set(reqid.Header, id)
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: send: %w", err)
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("http: read body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Raw: raw}, nil
}

func (r *Request) buildBody() (io.Reader, error) {
	if r.body == nil {
		return nil, nil
	}
	b, err := json.Marshal(r.body)
	if err != nil {
		return nil, fmt.Errorf("http: marshal body: %w", err)
	}
	return bytes.NewReader(b), nil
}

// ------------------- Response -------------------

// Response is a completed call with its body already read.
type Response struct {
	StatusCode int
	Raw        []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
