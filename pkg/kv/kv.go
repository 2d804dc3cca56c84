// Package kv is the key-value slot storage the storefront keeps per-browser
// state in: the signed-in user and the cart.
//
// A Store has three operations, Get, Set and Remove. Drivers:
//
//	kv.NewMemory()               // process-local, used by tests and single-node runs
//	kv.NewRedis(client, ttl)     // go-redis, sliding expiry
//	kv.NewDatabase(db)           // any gorm dialector, table kv_slots
//
// Wrap a driver with Namespace to scope it to one browser session:
//
//	slots := kv.Namespace(store, "sabor:session:"+id+":")
//	_ = kv.SetJSON(ctx, slots, "cart", lines)
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("kv: key not found")
	// ErrCorrupt is returned by GetJSON when the stored value does not decode.
	ErrCorrupt = errors.New("kv: corrupt value")
)

// Store is a persisted key-value slot capability.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// GetJSON reads key and unmarshals it into dest. It returns ErrNotFound for an
// absent key and ErrCorrupt for a value that is not valid JSON for dest.
func GetJSON(ctx context.Context, s Store, key string, dest any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCorrupt, key, err)
	}
	return nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv: encode %q: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

type namespaced struct {
	inner  Store
	prefix string
}

// Namespace returns a Store that prefixes every key with prefix.
func Namespace(s Store, prefix string) Store {
	if ns, ok := s.(*namespaced); ok {
		return &namespaced{inner: ns.inner, prefix: ns.prefix + prefix}
	}
	return &namespaced{inner: s, prefix: prefix}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Remove(ctx context.Context, key string) error {
	return n.inner.Remove(ctx, n.prefix+key)
}
