// Package session identifies a browser with a signed cookie and hands each
// request a slot store scoped to that browser.
//
// Usage (middleware):
//
//	r.Use(session.Middleware(signer, store, session.DefaultOptions()))
//
// Usage (handler):
//
//	sess := session.FromCtx(r.Context())
//	_ = kv.SetJSON(ctx, sess.Slots(), "cart", lines)
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/saborexpress/pkg/auth"
	"github.com/shashiranjanraj/saborexpress/pkg/kv"
	"github.com/shashiranjanraj/saborexpress/pkg/logger"
)

// Options configures the session cookie.
type Options struct {
	CookieName string
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CookieName: "sabor_session",
		HTTPOnly:   true,
		Secure:     false, // set true in production
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// Session is one browser's handle for the duration of a request.
type Session struct {
	id    string
	store kv.Store
	slots kv.Store
	fresh bool

	// issue sends the cookie for a new id; nil outside an HTTP request.
	issue func(id string) error
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Slots is the browser's slot store. Keys written here never collide with
// another browser's, and the store follows the session across Renew.
func (s *Session) Slots() kv.Store { return liveSlots{s} }

// Renew moves the session to a fresh ID, carrying keys over, and reissues the
// cookie. The old ID keeps none of the moved keys.
func (s *Session) Renew(ctx context.Context, keys ...string) error {
	id := uuid.NewString()
	next := kv.Namespace(s.store, Prefix(id))

	for _, key := range keys {
		raw, err := s.slots.Get(ctx, key)
		if errors.Is(err, kv.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("session: renew: read %s: %w", key, err)
		}
		if err := next.Set(ctx, key, raw); err != nil {
			return fmt.Errorf("session: renew: write %s: %w", key, err)
		}
	}
	if s.issue != nil {
		if err := s.issue(id); err != nil {
			return fmt.Errorf("session: renew: sign cookie: %w", err)
		}
	}

	prev := s.slots
	s.id, s.slots = id, next
	for _, key := range keys {
		if err := prev.Remove(ctx, key); err != nil {
			logger.WithCtx(ctx).Warn("session: renew: drop old slot", "key", key, "error", err)
		}
	}
	return nil
}

// liveSlots resolves the current namespace on every call.
type liveSlots struct{ s *Session }

func (v liveSlots) Get(ctx context.Context, key string) ([]byte, error) {
	return v.s.slots.Get(ctx, key)
}

func (v liveSlots) Set(ctx context.Context, key string, value []byte) error {
	return v.s.slots.Set(ctx, key, value)
}

func (v liveSlots) Remove(ctx context.Context, key string) error {
	return v.s.slots.Remove(ctx, key)
}

// Fresh reports whether the session was created by this request.
func (s *Session) Fresh() bool { return s.fresh }

// Prefix is the slot key prefix of session id.
func Prefix(id string) string { return "sabor:session:" + id + ":" }

// New returns a session over store with the given id. Used by tests and
// command-line tooling that act outside an HTTP request.
func New(id string, store kv.Store) *Session {
	return &Session{id: id, store: store, slots: kv.Namespace(store, Prefix(id))}
}

// Middleware resolves the session from the cookie, or starts a new one, and
// injects it into the request context. The cookie is reissued for new
// sessions and once less than half of its lifetime is left.
func Middleware(signer *auth.Signer, store kv.Store, opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.WithCtx(ctx)

			var (
				id      string
				reissue bool
			)
			if c, err := r.Cookie(opts.CookieName); err == nil {
				claims, perr := signer.Parse(c.Value)
				switch {
				case perr != nil:
					log.Debug("session: rejected cookie", "error", perr)
				default:
					id = claims.SessionID
					reissue = signer.NeedsRefresh(claims)
				}
			}

			sess := &Session{id: id, store: store}
			if id == "" {
				sess.id = uuid.NewString()
				sess.fresh = true
				reissue = true
			}
			sess.slots = kv.Namespace(store, Prefix(sess.id))
			sess.issue = func(id string) error { return writeCookie(w, signer, opts, id) }

			if reissue {
				if err := writeCookie(w, signer, opts, sess.id); err != nil {
					log.Error("session: sign cookie", "error", err)
				}
			}

			ctx = context.WithValue(ctx, ctxKey{}, sess)
			ctx = logger.InjectLogger(ctx, log.With("session_id", sess.id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeCookie sets the session cookie, replacing one already set on w.
func writeCookie(w http.ResponseWriter, signer *auth.Signer, opts Options, id string) error {
	token, err := signer.Sign(id)
	if err != nil {
		return err
	}
	h := w.Header()
	kept := h.Values("Set-Cookie")[:0:0]
	for _, line := range h.Values("Set-Cookie") {
		if c, err := http.ParseSetCookie(line); err == nil && c.Name == opts.CookieName {
			continue
		}
		kept = append(kept, line)
	}
	h.Del("Set-Cookie")
	for _, line := range kept {
		h.Add("Set-Cookie", line)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    token,
		Path:     opts.Path,
		MaxAge:   int(signer.TTL() / time.Second),
		HttpOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
	return nil
}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromCtx retrieves the session from ctx, or nil when none is present.
func FromCtx(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
