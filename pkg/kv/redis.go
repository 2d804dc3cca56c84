package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/saborexpress/pkg/metrics"
)

// Redis stores slots as plain strings. With a positive ttl every read and
// write pushes the expiry forward, so abandoned sessions age out.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// ConnectRedis opens a client and verifies it with a ping.
func ConnectRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("kv: redis ping %s: %w", addr, err)
	}
	return client, nil
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	var cmd *redis.StringCmd
	if r.ttl > 0 {
		cmd = r.client.GetEx(ctx, key, r.ttl)
	} else {
		cmd = r.client.Get(ctx, key)
	}

	val, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ObserveSlotMiss("redis")
		return nil, ErrNotFound
	}
	metrics.ObserveSlot("redis", "get", err)
	if err != nil {
		return nil, fmt.Errorf("kv: redis get %q: %w", key, err)
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	err := r.client.Set(ctx, key, value, r.ttl).Err()
	metrics.ObserveSlot("redis", "set", err)
	if err != nil {
		return fmt.Errorf("kv: redis set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	metrics.ObserveSlot("redis", "remove", err)
	if err != nil {
		return fmt.Errorf("kv: redis del %q: %w", key, err)
	}
	return nil
}
