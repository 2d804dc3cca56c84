package controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/pkg/testkit"
)

func TestAdminRoutesGuarded(t *testing.T) {
	s := newStorefront(t)

	rec := s.do(http.MethodGet, "/admin/orders", "")
	testkit.AssertRedirect(t, rec, "/login")

	s.signIn(ana)
	rec = s.do(http.MethodGet, "/admin/orders", "")
	testkit.AssertRedirect(t, rec, "/menu")
	assert.Empty(t, s.api.Calls())
}

func TestAdminOrdersFetchTotalsConcurrently(t *testing.T) {
	s := newStorefront(t)
	s.signIn(admin)
	s.api.On(http.MethodGet, "/pedidos").Reply(http.StatusOK, []models.Order{
		{Codigo: 1, Usuario: ana, Fecha: at(t, "2024-03-01T12:00:00"), Estado: models.StatusPending},
		{Codigo: 2, Usuario: ana, Fecha: at(t, "2024-03-02T12:00:00"), Estado: models.StatusInProgress},
		{Codigo: 3, Usuario: ana, Fecha: at(t, "2024-03-03T12:00:00"), Estado: models.StatusDelivered},
	})
	s.api.On(http.MethodGet, "/pedidos/1/total").Reply(http.StatusOK, `10.00`)
	s.api.On(http.MethodGet, "/pedidos/2/total").Reply(http.StatusInternalServerError, `{}`)
	s.api.On(http.MethodGet, "/pedidos/3/total").Reply(http.StatusOK, `38.98`)

	rec := s.do(http.MethodGet, "/admin/orders", "")
	testkit.AssertStatus(t, rec, http.StatusOK)

	var body struct {
		Orders  []models.Order `json:"orders"`
		Estados []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"estados"`
	}
	testkit.DecodeData(t, rec, &body)
	require.Len(t, body.Orders, 3)
	assert.Len(t, body.Estados, 5)

	assert.Equal(t, 3, body.Orders[0].Codigo)
	require.NotNil(t, body.Orders[0].Total)
	assert.Equal(t, models.Money(3898), *body.Orders[0].Total)

	assert.Equal(t, 2, body.Orders[1].Codigo)
	assert.Nil(t, body.Orders[1].Total, "a failed total leaves the order without one")

	require.NotNil(t, body.Orders[2].Total)
	assert.Equal(t, models.Money(1000), *body.Orders[2].Total)
}

func TestAdminOrdersByStatus(t *testing.T) {
	s := newStorefront(t)
	s.signIn(admin)
	s.api.On(http.MethodGet, "/pedidos/estado/PREPARADO").Reply(http.StatusOK, `[]`)

	rec := s.do(http.MethodGet, "/admin/orders?estado=PREPARADO", "")
	testkit.AssertStatus(t, rec, http.StatusOK)
	assert.Equal(t, 1, s.api.Count(http.MethodGet, "/pedidos/estado/PREPARADO"))

	rec = s.do(http.MethodGet, "/admin/orders?estado=LISTO", "")
	testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestAdminUpdateStatus(t *testing.T) {
	s := newStorefront(t)
	s.signIn(admin)
	s.api.On(http.MethodPut, "/pedidos/4/estado").Reply(http.StatusOK, models.Order{Codigo: 4, Estado: models.StatusInProgress})

	rec := s.do(http.MethodPut, "/admin/orders/4/status", `{"estado":"EN_PROCESO"}`)
	testkit.AssertStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Estado actualizado a En Proceso", testkit.Decode(t, rec).Message)

	call, ok := s.api.Last(http.MethodPut, "/pedidos/4/estado")
	require.True(t, ok)
	testkit.AssertJSONBody(t, `{"estado":"EN_PROCESO"}`, call.Body)
}

func TestAdminUpdateStatusRejected(t *testing.T) {
	s := newStorefront(t)
	s.signIn(admin)
	s.api.On(http.MethodPut, "/pedidos/4/estado").Reply(http.StatusBadRequest, `{"message":"Transición no permitida"}`)

	rec := s.do(http.MethodPut, "/admin/orders/4/status", `{"estado":"PENDIENTE"}`)
	testkit.AssertStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Transición no permitida", testkit.Decode(t, rec).Message)
}

func TestAdminMenuStoreValidatesPrice(t *testing.T) {
	s := newStorefront(t)
	s.signIn(admin)

	rec := s.do(http.MethodPost, "/admin/menu", `{"nombre":"Flan","categoria":"POSTRES","precio":-1}`)
	testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
	assert.Equal(t, "El precio no puede ser negativo", testkit.Decode(t, rec).Errors["precio"])
	assert.Zero(t, s.api.Count(http.MethodPost, "/items"))

	s.api.On(http.MethodPost, "/items").Reply(http.StatusCreated, models.Item{ID: "8", Nombre: "Agua", Categoria: models.CategoryDrink})
	rec = s.do(http.MethodPost, "/admin/menu", `{"nombre":"Agua","categoria":"BEBIDAS","precio":0}`)
	testkit.AssertStatus(t, rec, http.StatusCreated)

	call, ok := s.api.Last(http.MethodPost, "/items")
	require.True(t, ok)
	var sent models.Item
	require.NoError(t, call.JSON(&sent))
	assert.Zero(t, sent.Precio)

	s.api.On(http.MethodPost, "/items").Reply(http.StatusCreated, models.Item{ID: "9", Nombre: "Flan", Categoria: models.CategoryDessert, Precio: 450})
	rec = s.do(http.MethodPost, "/admin/menu", `{"nombre":"Flan","categoria":"POSTRES","precio":4.5}`)
	testkit.AssertStatus(t, rec, http.StatusCreated)

	call, ok = s.api.Last(http.MethodPost, "/items")
	require.True(t, ok)
	require.NoError(t, call.JSON(&sent))
	assert.Equal(t, models.Money(450), sent.Precio)
}

func TestAdminToggleAvailability(t *testing.T) {
	s := newStorefront(t)
	s.signIn(admin)
	s.api.On(http.MethodGet, "/items/7").Reply(http.StatusOK, pizza)
	s.api.On(http.MethodPut, "/items/7/disponibilidad").Reply(http.StatusOK, models.Item{ID: "7", Nombre: pizza.Nombre})

	rec := s.do(http.MethodPut, "/admin/menu/7/availability", "")
	testkit.AssertStatus(t, rec, http.StatusOK)

	call, ok := s.api.Last(http.MethodPut, "/items/7/disponibilidad")
	require.True(t, ok)
	testkit.AssertJSONBody(t, `{"disponibilidad":false}`, call.Body)
}

func imageUpload(t *testing.T, target, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="imagen"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAdminImageUpload(t *testing.T) {
	s := newStorefront(t)
	s.signIn(admin)
	s.api.On(http.MethodGet, "/items/7").Reply(http.StatusOK, pizza)
	s.api.On(http.MethodPut, "/items/7").Reply(http.StatusOK, pizza)

	rec := s.serve(imageUpload(t, "/admin/menu/7/image", "pizza.JPG", "image/jpeg", []byte("jpeg-bytes")))
	testkit.AssertStatus(t, rec, http.StatusOK)

	call, ok := s.api.Last(http.MethodPut, "/items/7")
	require.True(t, ok)
	var sent models.Item
	require.NoError(t, call.JSON(&sent))
	require.True(t, strings.HasPrefix(sent.Imagen, "http://localhost:3000/storage/items/"), sent.Imagen)
	assert.True(t, strings.HasSuffix(sent.Imagen, ".jpg"))

	stored := strings.TrimPrefix(sent.Imagen, "http://localhost:3000/storage/")
	data, err := os.ReadFile(filepath.Join(s.disk.Root(), filepath.FromSlash(stored)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestAdminImageUploadRejectsNonImages(t *testing.T) {
	s := newStorefront(t)
	s.signIn(admin)

	rec := s.serve(imageUpload(t, "/admin/menu/7/image", "menu.pdf", "application/pdf", []byte("%PDF")))
	testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
	assert.Equal(t, "El archivo debe ser una imagen", testkit.Decode(t, rec).Errors["imagen"])
	assert.Empty(t, s.api.Calls())
}

func TestAdminImageUploadRemovesFileWhenUpdateFails(t *testing.T) {
	s := newStorefront(t)
	s.signIn(admin)
	s.api.On(http.MethodGet, "/items/7").Reply(http.StatusOK, pizza)
	s.api.On(http.MethodPut, "/items/7").Reply(http.StatusInternalServerError, `{}`)

	rec := s.serve(imageUpload(t, "/admin/menu/7/image", "pizza.png", "image/png", []byte("png")))
	testkit.AssertStatus(t, rec, http.StatusBadGateway)

	entries, err := os.ReadDir(filepath.Join(s.disk.Root(), "items"))
	if err == nil {
		assert.Empty(t, entries)
	}
}
