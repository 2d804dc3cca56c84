package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/app/stores"
	"github.com/shashiranjanraj/saborexpress/pkg/kv"
	"github.com/shashiranjanraj/saborexpress/pkg/testkit"
)

func TestLoginSignsSessionIn(t *testing.T) {
	s := newStorefront(t)
	withPassword := admin
	withPassword.Password = "secreto"
	s.api.On(http.MethodPost, "/usuarios/login").Reply(http.StatusOK, withPassword)

	rec := s.do(http.MethodPost, "/login", `{"email":"root@example.com","password":"secreto"}`)
	testkit.AssertStatus(t, rec, http.StatusOK)

	var body struct {
		Usuario  models.User `json:"usuario"`
		Redirect string      `json:"redirect"`
	}
	env := testkit.DecodeData(t, rec, &body)
	assert.Equal(t, "Bienvenido, Root", env.Message)
	assert.Equal(t, "/admin/orders", body.Redirect)
	assert.Empty(t, body.Usuario.Password)

	var stored models.User
	require.NoError(t, kv.GetJSON(t.Context(), s.sess.Slots(), stores.UserSlot, &stored))
	assert.Equal(t, "a1", stored.ID)
	assert.Empty(t, stored.Password)

	s.api.On(http.MethodGet, "/facturas").Reply(http.StatusOK, `[]`)
	rec = s.do(http.MethodGet, "/admin/invoices", "")
	testkit.AssertStatus(t, rec, http.StatusOK)
}

func TestLoginRenewsSessionID(t *testing.T) {
	s := newStorefront(t)
	s.fillCart(pizza, pizza)
	planted := s.sess.ID()
	s.api.On(http.MethodPost, "/usuarios/login").Reply(http.StatusOK, ana)

	rec := s.do(http.MethodPost, "/login", `{"email":"ana@example.com","password":"secreto"}`)
	testkit.AssertStatus(t, rec, http.StatusOK)

	assert.NotEqual(t, planted, s.sess.ID())
	lines := s.cartLines()
	require.Len(t, lines, 1, "cart follows the renewed session")
	assert.Equal(t, 2, lines[0].Cantidad)

	var stored models.User
	require.NoError(t, kv.GetJSON(t.Context(), s.sess.Slots(), stores.UserSlot, &stored))
	assert.Equal(t, "u1", stored.ID)
}

func TestLoginFailureKeepsSessionID(t *testing.T) {
	s := newStorefront(t)
	planted := s.sess.ID()
	s.api.On(http.MethodPost, "/usuarios/login").Reply(http.StatusUnauthorized, `{}`)

	rec := s.do(http.MethodPost, "/login", `{"email":"ana@example.com","password":"x"}`)
	testkit.AssertStatus(t, rec, http.StatusUnauthorized)
	assert.Equal(t, planted, s.sess.ID())
}

func TestLoginErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		upstream int
		want     int
		message  string
	}{
		{"bad credentials", http.StatusBadRequest, http.StatusUnauthorized, "Credenciales incorrectas. Verifica tu correo y contraseña."},
		{"unknown user", http.StatusNotFound, http.StatusNotFound, "Usuario no encontrado. ¿Necesitas registrarte?"},
		{"api down", http.StatusServiceUnavailable, http.StatusBadGateway, "Error al iniciar sesión. Intenta de nuevo."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStorefront(t)
			s.api.On(http.MethodPost, "/usuarios/login").Reply(tc.upstream, `{}`)

			rec := s.do(http.MethodPost, "/login", `{"email":"ana@example.com","password":"x"}`)
			testkit.AssertStatus(t, rec, tc.want)
			assert.Equal(t, tc.message, testkit.Decode(t, rec).Message)

			_, err := s.sess.Slots().Get(t.Context(), stores.UserSlot)
			assert.ErrorIs(t, err, kv.ErrNotFound)
		})
	}
}

func TestLoginValidatesEmail(t *testing.T) {
	s := newStorefront(t)

	rec := s.do(http.MethodPost, "/login", `{"email":"ana","password":"x"}`)
	testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
	assert.Equal(t, "Por favor ingresa un correo electrónico válido", testkit.Decode(t, rec).Errors["email"])
	assert.Empty(t, s.api.Calls())
}

func TestRegister(t *testing.T) {
	t.Run("confirmation mismatch", func(t *testing.T) {
		s := newStorefront(t)
		rec := s.do(http.MethodPost, "/register", `{"nombre":"Ana","email":"ana@example.com","password":"secreto","password_confirmation":"otro"}`)
		testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
		assert.Equal(t, "Las contraseñas no coinciden", testkit.Decode(t, rec).Errors["password_confirmation"])
		assert.Empty(t, s.api.Calls())
	})

	t.Run("short password", func(t *testing.T) {
		s := newStorefront(t)
		rec := s.do(http.MethodPost, "/register", `{"nombre":"Ana","email":"ana@example.com","password":"abc","password_confirmation":"abc"}`)
		testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
		assert.Equal(t, "La contraseña debe tener al menos 6 caracteres", testkit.Decode(t, rec).Errors["password"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := newStorefront(t)
		s.api.On(http.MethodPost, "/usuarios/registro").Reply(http.StatusConflict, `{}`)
		rec := s.do(http.MethodPost, "/register", `{"nombre":"Ana","email":"ana@example.com","password":"secreto","password_confirmation":"secreto"}`)
		testkit.AssertStatus(t, rec, http.StatusConflict)
		assert.Equal(t, "Ya existe una cuenta con ese correo", testkit.Decode(t, rec).Message)
	})

	t.Run("success signs in as customer", func(t *testing.T) {
		s := newStorefront(t)
		planted := s.sess.ID()
		s.api.On(http.MethodPost, "/usuarios/registro").Reply(http.StatusCreated, ana)
		rec := s.do(http.MethodPost, "/register", `{"nombre":"Ana","email":"ana@example.com","password":"secreto","password_confirmation":"secreto"}`)
		testkit.AssertStatus(t, rec, http.StatusCreated)

		call, ok := s.api.Last(http.MethodPost, "/usuarios/registro")
		require.True(t, ok)
		var sent models.User
		require.NoError(t, call.JSON(&sent))
		assert.Equal(t, models.RoleCustomer, sent.Rol)
		assert.Equal(t, "secreto", sent.Password)

		var stored models.User
		require.NoError(t, kv.GetJSON(t.Context(), s.sess.Slots(), stores.UserSlot, &stored))
		assert.Equal(t, "u1", stored.ID)
		assert.NotEqual(t, planted, s.sess.ID())
	})
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	s := newStorefront(t)
	s.signIn(ana)
	s.api.On(http.MethodPost, "/usuarios/logout/u1").Reply(http.StatusInternalServerError, `{}`)

	rec := s.do(http.MethodPost, "/logout", "")
	testkit.AssertStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Sesión cerrada", testkit.Decode(t, rec).Message)

	rec = s.do(http.MethodGet, "/orders", "")
	testkit.AssertRedirect(t, rec, "/login")
}

func TestRecoverPassword(t *testing.T) {
	s := newStorefront(t)
	s.api.On(http.MethodPost, "/usuarios/recuperar").Reply(http.StatusOK, `{}`)

	rec := s.do(http.MethodPost, "/password/recover", `{"email":"ana@example.com"}`)
	testkit.AssertStatus(t, rec, http.StatusOK)

	call, ok := s.api.Last(http.MethodPost, "/usuarios/recuperar")
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", call.Query.Get("gmail"))
}
