package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/saborexpress/pkg/auth"
	"github.com/shashiranjanraj/saborexpress/pkg/kv"
	"github.com/shashiranjanraj/saborexpress/pkg/session"
)

func setup(t *testing.T) (*auth.Signer, *kv.Memory, http.Handler, *string) {
	t.Helper()
	signer, err := auth.NewSigner("test-key", time.Hour)
	require.NoError(t, err)
	store := kv.NewMemory()

	var seen string
	h := session.Middleware(signer, store, session.DefaultOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r.Context())
		seen = sess.ID()
		_ = sess.Slots().Set(r.Context(), "cart", []byte(`[]`))
	}))
	return signer, store, h, &seen
}

func TestNewBrowserGetsCookie(t *testing.T) {
	signer, store, h, seen := setup(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sabor_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := signer.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, *seen, claims.SessionID)
	assert.Equal(t, []string{session.Prefix(*seen) + "cart"}, store.Keys())
}

func TestReturningBrowserKeepsSession(t *testing.T) {
	signer, _, h, seen := setup(t)

	tok, err := signer.Sign("known-session")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sabor_session", Value: tok})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "known-session", *seen)
	assert.Empty(t, rec.Result().Cookies(), "fresh cookie is not reissued")
}

func TestTamperedCookieStartsNewSession(t *testing.T) {
	_, _, h, seen := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sabor_session", Value: "not-a-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEmpty(t, *seen)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestSessionsAreIsolated(t *testing.T) {
	store := kv.NewMemory()
	ctx := t.Context()

	a := session.New("a", store)
	b := session.New("b", store)
	require.NoError(t, a.Slots().Set(ctx, "usuario", []byte(`{}`)))

	_, err := b.Slots().Get(ctx, "usuario")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestRenewMovesSlotsAndReissuesCookie(t *testing.T) {
	signer, err := auth.NewSigner("test-key", time.Hour)
	require.NoError(t, err)
	store := kv.NewMemory()

	var before, after string
	h := session.Middleware(signer, store, session.DefaultOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := session.FromCtx(ctx)
		slots := sess.Slots()
		before = sess.ID()
		require.NoError(t, slots.Set(ctx, "usuario", []byte(`{"idUsuario":"u1"}`)))
		require.NoError(t, slots.Set(ctx, "cart", []byte(`[]`)))

		require.NoError(t, sess.Renew(ctx, "usuario", "cart", "missing"))
		after = sess.ID()

		raw, err := slots.Get(ctx, "usuario")
		require.NoError(t, err)
		assert.JSONEq(t, `{"idUsuario":"u1"}`, string(raw))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEqual(t, before, after)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1, "the cookie of the new session replaces the first one")
	claims, err := signer.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, after, claims.SessionID)

	assert.ElementsMatch(t, []string{
		session.Prefix(after) + "cart",
		session.Prefix(after) + "usuario",
	}, store.Keys())
}

func TestRenewWithoutRequest(t *testing.T) {
	ctx := t.Context()
	store := kv.NewMemory()
	sess := session.New("planted", store)
	require.NoError(t, sess.Slots().Set(ctx, "cart", []byte(`[1]`)))

	require.NoError(t, sess.Renew(ctx, "cart"))
	assert.NotEqual(t, "planted", sess.ID())

	_, err := session.New("planted", store).Slots().Get(ctx, "cart")
	assert.ErrorIs(t, err, kv.ErrNotFound)
	raw, err := session.New(sess.ID(), store).Slots().Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(raw))
}
