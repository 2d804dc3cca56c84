package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/pkg/kv"
	"github.com/shashiranjanraj/saborexpress/pkg/testkit"
)

type cartBody struct {
	Lines        []models.OrderLine `json:"lines"`
	Count        int                `json:"count"`
	Total        models.Money       `json:"total"`
	DeliveryFee  models.Money       `json:"delivery_fee"`
	PayableTotal models.Money       `json:"payable_total"`
}

func TestCartAddSameItemTwice(t *testing.T) {
	s := newStorefront(t)
	s.api.On(http.MethodGet, "/items/7").Reply(http.StatusOK, pizza)

	s.do(http.MethodPost, "/cart/items", `{"item_id":"7"}`)
	rec := s.do(http.MethodPost, "/cart/items", `{"item_id":"7"}`)
	testkit.AssertStatus(t, rec, http.StatusOK)

	var body cartBody
	env := testkit.DecodeData(t, rec, &body)
	assert.Equal(t, "Pizza Margarita agregado al carrito", env.Message)
	require.Len(t, body.Lines, 1)
	assert.Equal(t, 2, body.Lines[0].Cantidad)
	assert.Equal(t, models.Money(3398), body.Total)
	assert.Equal(t, models.Money(500), body.DeliveryFee)
	assert.Equal(t, models.Money(3898), body.PayableTotal)
	assert.Contains(t, rec.Body.String(), `"payable_total":38.98`)

	assert.Len(t, s.cartLines(), 1, "cart persisted in the session slot")
}

func TestCartRejectsUnavailableItem(t *testing.T) {
	s := newStorefront(t)
	soldOut := pizza
	soldOut.Disponibilidad = false
	s.api.On(http.MethodGet, "/items/7").Reply(http.StatusOK, soldOut)

	rec := s.do(http.MethodPost, "/cart/items", `{"item_id":"7"}`)
	testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
	assert.Equal(t, "El producto no está disponible", testkit.Decode(t, rec).Message)
	assert.Empty(t, s.cartLines())
}

func TestCartAddUnknownItem(t *testing.T) {
	s := newStorefront(t)
	s.api.On(http.MethodGet, "/items/99").Reply(http.StatusNotFound, `{}`)

	rec := s.do(http.MethodPost, "/cart/items", `{"item_id":"99"}`)
	testkit.AssertStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, "Producto no encontrado", testkit.Decode(t, rec).Message)
}

func TestCartAddRequiresItemID(t *testing.T) {
	s := newStorefront(t)

	rec := s.do(http.MethodPost, "/cart/items", `{}`)
	testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
	assert.Contains(t, testkit.Decode(t, rec).Errors, "item_id")
	assert.Empty(t, s.api.Calls())
}

func TestCartAdjustNotesAndRemove(t *testing.T) {
	s := newStorefront(t)
	s.fillCart(pizza, pizza)

	rec := s.do(http.MethodPatch, "/cart/items/0", `{"delta":-5}`)
	testkit.AssertStatus(t, rec, http.StatusOK)
	var body cartBody
	testkit.DecodeData(t, rec, &body)
	assert.Equal(t, 1, body.Lines[0].Cantidad, "quantity never drops below one")

	rec = s.do(http.MethodPut, "/cart/items/0/notes", `{"notes":"sin albahaca"}`)
	testkit.AssertStatus(t, rec, http.StatusOK)
	assert.Equal(t, "sin albahaca", s.cartLines()[0].Observaciones)

	rec = s.do(http.MethodDelete, "/cart/items/3", "")
	testkit.AssertStatus(t, rec, http.StatusNotFound)
	assert.Equal(t, "El producto no está en el carrito", testkit.Decode(t, rec).Message)

	rec = s.do(http.MethodDelete, "/cart/items/0", "")
	testkit.AssertStatus(t, rec, http.StatusOK)
	assert.Empty(t, s.cartLines())
}

func TestCartBadIndex(t *testing.T) {
	s := newStorefront(t)

	rec := s.do(http.MethodPatch, "/cart/items/first", `{"delta":1}`)
	testkit.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestCartShowAndClear(t *testing.T) {
	s := newStorefront(t)

	rec := s.do(http.MethodGet, "/cart", "")
	testkit.AssertStatus(t, rec, http.StatusOK)
	var body cartBody
	testkit.DecodeData(t, rec, &body)
	assert.NotNil(t, body.Lines)
	assert.Equal(t, models.Money(500), body.PayableTotal, "an empty cart still pays delivery")

	s.fillCart(pizza)
	rec = s.do(http.MethodDelete, "/cart", "")
	testkit.AssertStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Carrito vaciado", testkit.Decode(t, rec).Message)
	assert.Empty(t, s.cartLines())
}

// flakyStore fails every read while down is set.
type flakyStore struct {
	kv.Store
	down bool
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.down {
		return nil, errors.New("redis: i/o timeout")
	}
	return f.Store.Get(ctx, key)
}

func TestCartUnreadableStoreAnswersUnavailable(t *testing.T) {
	store := &flakyStore{Store: kv.NewMemory()}
	s := newStorefrontOver(t, store)
	s.api.On(http.MethodGet, "/items/7").Reply(http.StatusOK, pizza)
	s.fillCart(pizza, pizza)

	store.down = true
	rec := s.do(http.MethodPost, "/cart/items", `{"item_id":"7"}`)
	testkit.AssertStatus(t, rec, http.StatusServiceUnavailable)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	testkit.AssertStatus(t, s.do(http.MethodGet, "/cart", ""), http.StatusServiceUnavailable)

	store.down = false
	lines := s.cartLines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Cantidad)
}
