package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/app/routes"
	"github.com/shashiranjanraj/saborexpress/app/stores"
	"github.com/shashiranjanraj/saborexpress/pkg/kv"
	"github.com/shashiranjanraj/saborexpress/pkg/router"
	"github.com/shashiranjanraj/saborexpress/pkg/session"
	"github.com/shashiranjanraj/saborexpress/pkg/storage"
	"github.com/shashiranjanraj/saborexpress/pkg/testkit"
	"github.com/shashiranjanraj/saborexpress/pkg/workerpool"
)

const apiBase = "http://api.test"

var (
	ana   = models.User{ID: "u1", Nombre: "Ana", Gmail: "ana@example.com", Rol: models.RoleCustomer}
	admin = models.User{ID: "a1", Nombre: "Root", Gmail: "root@example.com", Rol: models.RoleAdmin}

	pizza = models.Item{ID: "7", Nombre: "Pizza Margarita", Categoria: models.CategoryMain, Precio: 1699, Disponibilidad: true}
)

// storefront serves the full route table for one browser session, with the
// restaurant API mocked.
type storefront struct {
	t    *testing.T
	api  *testkit.MockTransport
	sess *session.Session
	disk *storage.Local
	h    http.Handler
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()
	return newStorefrontOver(t, kv.NewMemory())
}

// newStorefrontOver is newStorefront with the session slots kept in store.
func newStorefrontOver(t *testing.T, store kv.Store) *storefront {
	t.Helper()

	mt := testkit.Install(t)
	client := api.New(apiBase)
	sess := session.New("browser-1", store)
	pool := workerpool.New(4)
	t.Cleanup(pool.Shutdown)
	disk := storage.NewLocal(t.TempDir(), "http://localhost:3000/storage")

	r := router.New()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(session.WithSession(req.Context(), sess)))
		})
	})
	r.Use(stores.Middleware(client))
	routes.RegisterWeb(r, routes.Deps{API: client, Pool: pool, Disk: disk})

	return &storefront{t: t, api: mt, sess: sess, disk: disk, h: r.Handler()}
}

func (s *storefront) signIn(u models.User) {
	s.t.Helper()
	require.NoError(s.t, kv.SetJSON(s.t.Context(), s.sess.Slots(), stores.UserSlot, u))
}

func (s *storefront) fillCart(items ...models.Item) {
	s.t.Helper()
	cart := stores.NewCart(s.t.Context(), s.sess.Slots())
	for _, it := range items {
		require.NoError(s.t, cart.Add(s.t.Context(), it))
	}
}

func (s *storefront) cartLines() []models.OrderLine {
	return stores.NewCart(s.t.Context(), s.sess.Slots()).Lines()
}

func (s *storefront) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

func (s *storefront) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}
