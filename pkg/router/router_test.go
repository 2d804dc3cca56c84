package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/saborexpress/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }

func TestGroupMiddlewareAndNames(t *testing.T) {
	var hits int
	count := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			next.ServeHTTP(w, r)
		})
	}

	r := router.New()
	r.Get("/menu", "menu.index", ok)
	admin := r.Group("/admin", count)
	admin.Put("/orders/{id}/status", "admin.orders.status", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin/orders/3/status", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, hits)

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/menu", nil))
	assert.Equal(t, 1, hits, "group middleware must not run outside the group")

	url, err := r.URL("admin.orders.status", map[string]string{"id": "3"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/orders/3/status", url)

	_, err = r.URL("admin.orders.status", nil)
	assert.Error(t, err)
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	g := r.Group("/cart")
	g.Delete("/items/{index}", "cart.remove", ok)
	g.Get("/", "cart.show", ok)
	g.Patch("/items/{index}", "cart.adjust", ok)

	assert.Equal(t, []router.RouteInfo{
		{Method: http.MethodGet, Path: "/cart", Name: "cart.show"},
		{Method: http.MethodDelete, Path: "/cart/items/{index}", Name: "cart.remove"},
		{Method: http.MethodPatch, Path: "/cart/items/{index}", Name: "cart.adjust"},
	}, r.Routes())
}
