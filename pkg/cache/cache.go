// Package cache is a thin read-through cache used by the product
// listing. Backed by redis when an address is configured, otherwise a
// no-op so the service runs without one.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get returns "" on a miss; errors are reserved for transport failures.
	Get(ctx context.Context, key string) (string, error)
}

type redisCache struct {
	client *redis.Client
	prefix string
}

func NewRedis(addr, prefix string) Cache {
	return &redisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
	}
}

func (r *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+":"+key, value, ttl).Err()
}

func (r *redisCache) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.prefix+":"+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Key builds a cache key from query parts.
func Key(parts ...any) string {
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += fmt.Sprint(p)
	}
	return key
}

type noop struct{}

func NewNoop() Cache { return noop{} }

func (noop) Set(context.Context, string, string, time.Duration) error { return nil }
func (noop) Get(context.Context, string) (string, error)              { return "", nil }
