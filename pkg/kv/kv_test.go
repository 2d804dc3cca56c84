package kv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/saborexpress/pkg/kv"
)

func TestMemoryGetSetRemove(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()

	_, err := m.Get(ctx, "cart")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, m.Set(ctx, "cart", []byte(`[]`)))
	got, err := m.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, m.Remove(ctx, "cart"))
	_, err = m.Get(ctx, "cart")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	// Removing an absent key is not an error.
	assert.NoError(t, m.Remove(ctx, "cart"))
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()

	in := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", in))
	in[0] = 'z'

	out, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	out[1] = 'z'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestNamespaceIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()

	a := kv.Namespace(m, "s:a:")
	b := kv.Namespace(m, "s:b:")

	require.NoError(t, a.Set(ctx, "usuario", []byte(`{"nombre":"Ana"}`)))

	_, err := b.Get(ctx, "usuario")
	assert.ErrorIs(t, err, kv.ErrNotFound)
	assert.Equal(t, []string{"s:a:usuario"}, m.Keys())

	nested := kv.Namespace(a, "inner:")
	require.NoError(t, nested.Set(ctx, "x", []byte("1")))
	assert.Equal(t, []string{"s:a:inner:x", "s:a:usuario"}, m.Keys())
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()

	type line struct {
		Name string `json:"nombre"`
		Qty  int    `json:"cantidad"`
	}

	require.NoError(t, kv.SetJSON(ctx, m, "cart", []line{{"Pizza", 2}}))

	var out []line
	require.NoError(t, kv.GetJSON(ctx, m, "cart", &out))
	assert.Equal(t, []line{{"Pizza", 2}}, out)

	var missing []line
	assert.ErrorIs(t, kv.GetJSON(ctx, m, "nope", &missing), kv.ErrNotFound)

	require.NoError(t, m.Set(ctx, "broken", []byte("{not json")))
	err := kv.GetJSON(ctx, m, "broken", &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, kv.ErrNotFound)
	assert.ErrorIs(t, err, kv.ErrCorrupt)
}
