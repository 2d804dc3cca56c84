// Package ctx provides a single-argument request context for storefront
// handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a *Context with helpers for params, binding and the JSON envelope:
//
//	func ShowItem(c *ctx.Context) {
//	    item, err := api.GetItem(c.Context(), c.Param("key"))
//	    ...
//	    c.Success(item)
//	}
//
//	router.Get("/menu/{key}", "menu.show", ctx.Wrap(ShowItem))
package ctx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/saborexpress/pkg/bind"
	"github.com/shashiranjanraj/saborexpress/pkg/logger"
	"github.com/shashiranjanraj/saborexpress/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int // written status code (0 = not written yet)
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/orders/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamInt returns a URL path parameter parsed as an int.
func (c *Context) ParamInt(key string) (int, error) {
	v := c.Param(key)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("ctx: path parameter %s=%q is not a number", key, v)
	}
	return n, nil
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// Header returns the value of a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// FormFile returns the uploaded file for a multipart field, reading at most
// maxMemory bytes into memory.
func (c *Context) FormFile(field string, maxMemory int64) (multipart.File, *multipart.FileHeader, error) {
	if err := c.R.ParseMultipartForm(maxMemory); err != nil {
		return nil, nil, fmt.Errorf("ctx: parse multipart form: %w", err)
	}
	return c.R.FormFile(field)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Log returns the request-scoped logger.
func (c *Context) Log() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation.
// On validation failure it automatically sends a 422 response and returns false.
// On JSON decode error it sends a 400 and returns false.
//
//	var input LoginInput
//	if !c.BindJSON(&input) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	return c.handleBind(bind.JSON(c.R, dest))
}

// BindQuery fills dest from the query string and validates it, answering
// 400/422 like BindJSON.
func (c *Context) BindQuery(dest any) bool {
	return c.handleBind(bind.Query(c.R, dest))
}

func (c *Context) handleBind(errs map[string]string, err error) bool {
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if len(errs) > 0 {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes a JSON response with the given status code.
func (c *Context) JSON(code int, v any) {
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	c.status = code
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

// Success sends a 200 JSON envelope: {"status":200,"data":...}
func (c *Context) Success(data any) {
	c.status = http.StatusOK
	response.Success(c.W, data)
}

// Message sends a 200 envelope carrying a user-facing message.
func (c *Context) Message(message string, data any) {
	c.status = http.StatusOK
	response.Message(c.W, message, data)
}

// Created sends a 201 JSON envelope.
func (c *Context) Created(data any) {
	c.status = http.StatusCreated
	response.Created(c.W, data)
}

// Error sends a JSON error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

// ValidationError sends a 422 Unprocessable Entity with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.status = http.StatusUnprocessableEntity
	response.ValidationError(c.W, errs)
}

// Redirect sends a 303 See Other envelope pointing at location.
func (c *Context) Redirect(location, message string) {
	c.status = http.StatusSeeOther
	response.Redirect(c.W, location, message)
}

// NotFound sends a 404.
func (c *Context) NotFound(message ...string) {
	msg := "Recurso no encontrado"
	if len(message) > 0 {
		msg = message[0]
	}
	c.Error(http.StatusNotFound, msg)
}

// WrittenStatus returns the HTTP status code that was written to the response,
// or 0 if no response has been written yet.
func (c *Context) WrittenStatus() int { return c.status }
