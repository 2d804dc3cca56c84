// Package rbac guards routes by sign-in state and role.
//
// A guard resolves the caller's Identity for the request and decides:
//
//	not hydrated yet     → Loading        (503, retry shortly)
//	not signed in        → RedirectLogin  (303 to Policy.LoginPath)
//	missing a role       → RedirectMenu   (303 to Policy.FallbackPath)
//	otherwise            → Allow
//
// The decision is taken on every request, so a logout or role change applies
// to the very next navigation.
package rbac

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/saborexpress/pkg/logger"
	"github.com/shashiranjanraj/saborexpress/pkg/response"
)

// Identity is what a guard needs to know about the caller.
type Identity interface {
	// Hydrated reports whether persisted sign-in state has been read.
	Hydrated() bool
	Authenticated() bool
	HasRole(role string) bool
}

// Decision is the outcome of a guard check.
type Decision int

const (
	Allow Decision = iota
	Loading
	RedirectLogin
	RedirectMenu
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect_login"
	case RedirectMenu:
		return "redirect_menu"
	}
	return "decision(" + strconv.Itoa(int(d)) + ")"
}

// Decide applies the guard rules. With no roles any signed-in caller passes;
// otherwise the caller needs at least one of them.
func Decide(id Identity, roles ...string) Decision {
	if id == nil || !id.Hydrated() {
		return Loading
	}
	if !id.Authenticated() {
		return RedirectLogin
	}
	if len(roles) == 0 {
		return Allow
	}
	for _, role := range roles {
		if id.HasRole(role) {
			return Allow
		}
	}
	return RedirectMenu
}

// Resolver returns the caller's identity for r.
type Resolver func(r *http.Request) Identity

// Policy configures Require.
type Policy struct {
	Roles        []string
	LoginPath    string
	FallbackPath string
}

// DefaultPolicy sends anonymous callers to /login and callers lacking a role
// to /menu.
func DefaultPolicy(roles ...string) Policy {
	return Policy{Roles: roles, LoginPath: "/login", FallbackPath: "/menu"}
}

// Require returns middleware enforcing p for every request.
func Require(resolve Resolver, p Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Decide(resolve(r), p.Roles...)
			if d != Allow {
				logger.WithCtx(r.Context()).Debug("rbac: request stopped",
					"path", r.URL.Path, "decision", d.String())
			}

			switch d {
			case Allow:
				next.ServeHTTP(w, r)
			case Loading:
				w.Header().Set("Retry-After", "1")
				response.Error(w, http.StatusServiceUnavailable, "Cargando sesión, intenta de nuevo")
			case RedirectLogin:
				response.Redirect(w, p.LoginPath, "Inicia sesión para continuar")
			case RedirectMenu:
				response.Redirect(w, p.FallbackPath, "No tienes permisos para acceder a esta sección")
			}
		})
	}
}
