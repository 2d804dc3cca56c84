package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/saborexpress/app/models"
)

func TestMoneyIsExact(t *testing.T) {
	price := models.NewMoney(16.99)
	sub := price.Times(2)

	assert.Equal(t, models.Money(3398), sub)
	assert.Equal(t, "33.98", sub.String())
	assert.Equal(t, "38.98", (sub + models.NewMoney(5)).String())
	assert.Equal(t, "-0.05", models.Money(-5).String())
}

func TestMoneyJSON(t *testing.T) {
	var item models.Item
	require.NoError(t, json.Unmarshal([]byte(`{"nombre":"Pizza","precio":16.99}`), &item))
	assert.Equal(t, models.Money(1699), item.Precio)

	require.NoError(t, json.Unmarshal([]byte(`{"precio":"7.5"}`), &item))
	assert.Equal(t, models.Money(750), item.Precio)

	require.NoError(t, json.Unmarshal([]byte(`{"precio":null}`), &item))
	assert.Equal(t, models.Money(0), item.Precio)

	assert.Error(t, json.Unmarshal([]byte(`{"precio":"abc"}`), &item))

	out, err := json.Marshal(struct {
		Total models.Money `json:"total"`
	}{models.Money(3898)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":38.98}`, string(out))
}

func TestTimestampLayouts(t *testing.T) {
	for _, in := range []string{
		"2024-03-01T12:30:00",
		"2024-03-01T12:30:00.123",
		"2024-03-01T12:30:00Z",
		"2024-03-01T12:30:00.123-05:00",
		"2024-03-01",
	} {
		ts, err := models.ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.Equal(t, 2024, ts.Year(), in)
		assert.Equal(t, time.March, ts.Month(), in)
	}

	_, err := models.ParseTimestamp("01/03/2024")
	assert.Error(t, err)
}

func TestTimestampJSON(t *testing.T) {
	var o models.Order
	require.NoError(t, json.Unmarshal([]byte(`{"codigoPedido":4,"fecha":"2024-03-01T12:30:00","estado":"PENDIENTE"}`), &o))
	assert.Equal(t, 12, o.Fecha.Hour())
	assert.Nil(t, o.Total)
	assert.True(t, o.Cancellable())

	out, err := json.Marshal(o.Fecha)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01T12:30:00.000Z"`, string(out))

	out, err = json.Marshal(models.Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestUserPublicDropsPassword(t *testing.T) {
	u := models.User{ID: "u1", Nombre: "Ana", Apellido: "Ruiz", Gmail: "ana@example.com", Password: "secret", Rol: models.RoleAdmin}

	out, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "contraseña")
	assert.Equal(t, "Ana Ruiz", u.FullName())
	assert.True(t, u.IsAdmin())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "En Proceso", models.StatusInProgress.Label())
	assert.Equal(t, "Plato Principal", models.CategoryMain.Label())
	assert.False(t, models.Status("PERDIDO").Valid())
	assert.Equal(t, "Pizza", models.Item{Nombre: "Pizza"}.Key())
	assert.Equal(t, "i-7", models.Item{ID: "i-7", Nombre: "Pizza"}.Key())
}
