// Package cache wraps a redis client behind a small JSON get/set API. The
// cache is strictly best-effort: when redis is not configured or unreachable
// every call degrades to a miss instead of failing the request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
}

// NewRedis connects to the given address. An empty address or a failed ping
// yields a bypassing cache rather than an error.
func NewRedis(addr, password string) *Redis {
	if addr == "" {
		return &Redis{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, bypassing cache: %v", err)
		_ = client.Close()
		return &Redis{}
	}

	return &Redis{client: client}
}

// GetJSON reports whether the key was present and, if so, unmarshals the
// stored value into out.
func (r *Redis) GetJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	if r == nil || r.client == nil {
		return false, nil
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores the value under key for the given TTL.
func (r *Redis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r == nil || r.client == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, ttl).Err()
}

// Close releases the underlying client, if any.
func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
