// Package stores holds the per-browser state of the storefront: the cart and
// the signed-in user. Both live in the browser session's kv slots and are
// built fresh for every request by Middleware:
//
//	r.Use(session.Middleware(signer, store, opts), stores.Middleware(client))
//
//	func (ctl *CartController) Show(c *ctx.Context) {
//	    cart := stores.CartFrom(c.Context())
//	    ...
//	}
package stores

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/saborexpress/pkg/logger"
	"github.com/shashiranjanraj/saborexpress/pkg/rbac"
	"github.com/shashiranjanraj/saborexpress/pkg/session"
)

type ctxKey struct{}

// bundle builds each store on first use within a request.
type bundle struct {
	accounts Accounts
	sess     *session.Session
	session  *Session
	cart     *Cart
}

// Middleware attaches lazily built stores for the request's browser session.
// It must run after session.Middleware.
func Middleware(accounts Accounts) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromCtx(r.Context())
			if sess == nil {
				panic("stores: session.Middleware must run before stores.Middleware")
			}
			ctx := WithStores(r.Context(), accounts, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithStores returns a copy of ctx carrying stores over sess.
func WithStores(ctx context.Context, accounts Accounts, sess *session.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, &bundle{accounts: accounts, sess: sess})
}

func from(ctx context.Context) *bundle {
	b, ok := ctx.Value(ctxKey{}).(*bundle)
	if !ok {
		panic("stores: no stores in context")
	}
	return b
}

// SessionFrom returns the request's session store.
func SessionFrom(ctx context.Context) *Session {
	b := from(ctx)
	if b.session == nil {
		b.session = NewSession(b.accounts, b.sess.Slots())
	}
	return b.session
}

// CartFrom returns the request's cart, hydrating it on first use.
func CartFrom(ctx context.Context) *Cart {
	b := from(ctx)
	if b.cart == nil {
		b.cart = NewCart(ctx, b.sess.Slots())
	}
	return b.cart
}

// Renew moves the request's browser session to a fresh ID, carrying the
// signed-in user and the cart over. Call it after sign-in.
func Renew(ctx context.Context) error {
	return from(ctx).sess.Renew(ctx, UserSlot, CartSlot)
}

// Identity resolves the guard identity of a request. A store that cannot be
// read leaves the session unhydrated, which the guard answers with Loading.
func Identity(r *http.Request) rbac.Identity {
	s := SessionFrom(r.Context())
	if err := s.Hydrate(r.Context()); err != nil {
		logger.WithCtx(r.Context()).Warn("session: hydrate for guard", "error", err)
	}
	return s
}
