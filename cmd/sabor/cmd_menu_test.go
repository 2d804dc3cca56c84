package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/saborexpress/app/models"
)

func TestPrintMenu(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printMenu(&out, []models.Item{
		{ID: "7", Nombre: "Pizza Margarita", Categoria: models.CategoryMain, Precio: 1699, Disponibilidad: true},
		{Nombre: "Flan", Categoria: models.CategoryDessert, Precio: 450},
	}))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Contains(t, string(lines[2]), "16.99")
	assert.Contains(t, string(lines[2]), "sí")
	assert.Contains(t, string(lines[3]), "Flan")
	assert.Contains(t, string(lines[3]), "4.50")
}

func TestPrintMenuEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printMenu(&out, nil))
	assert.Equal(t, "The menu is empty.\n", out.String())
}
