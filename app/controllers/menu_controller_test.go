package controllers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/pkg/testkit"
)

type menuBody struct {
	Items      []models.Item `json:"items"`
	Categorias []struct {
		Value string `json:"value"`
		Label string `json:"label"`
	} `json:"categorias"`
}

func TestMenuFiltersCategoryLocally(t *testing.T) {
	s := newStorefront(t)
	s.api.On(http.MethodGet, "/items").Reply(http.StatusOK, []models.Item{
		pizza,
		{Nombre: "Flan", Categoria: models.CategoryDessert, Precio: 450, Disponibilidad: true},
	})

	rec := s.do(http.MethodGet, "/menu?categoria=POSTRES", "")
	testkit.AssertStatus(t, rec, http.StatusOK)
	var body menuBody
	testkit.DecodeData(t, rec, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Flan", body.Items[0].Nombre)
	assert.Equal(t, "Flan", body.Items[0].Key(), "items without id are keyed by name")
	assert.Len(t, body.Categorias, 4)
	assert.Equal(t, "Plato Principal", body.Categorias[1].Label)
}

func TestMenuSearchCallsAPI(t *testing.T) {
	s := newStorefront(t)
	s.api.On(http.MethodGet, "/items/buscar").Reply(http.StatusOK, []models.Item{pizza})

	rec := s.do(http.MethodGet, "/menu?q=pizza", "")
	testkit.AssertStatus(t, rec, http.StatusOK)

	call, ok := s.api.Last(http.MethodGet, "/items/buscar")
	require.True(t, ok)
	assert.Equal(t, "pizza", call.Query.Get("nombre"))
}

func TestMenuUnknownCategory(t *testing.T) {
	s := newStorefront(t)

	rec := s.do(http.MethodGet, "/menu?categoria=SOPAS", "")
	testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestMenuAPIUnreachable(t *testing.T) {
	s := newStorefront(t)
	s.api.On(http.MethodGet, "/items").Fail(errors.New("connection refused"))

	rec := s.do(http.MethodGet, "/menu", "")
	testkit.AssertStatus(t, rec, http.StatusBadGateway)
	assert.Equal(t, "Error al cargar el menú. Intenta de nuevo.", testkit.Decode(t, rec).Message)
}

func TestMenuShow(t *testing.T) {
	s := newStorefront(t)
	s.api.On(http.MethodGet, "/items/7").Reply(http.StatusOK, pizza)

	rec := s.do(http.MethodGet, "/menu/7", "")
	testkit.AssertStatus(t, rec, http.StatusOK)
	var item models.Item
	testkit.DecodeData(t, rec, &item)
	assert.Equal(t, models.Money(1699), item.Precio)
}
