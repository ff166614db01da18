package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// JSONCache stores JSON documents under a key prefix with a fixed TTL.
// A nil *JSONCache or a cache without a client behaves as always-miss.
type JSONCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewJSONCache(rdb *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *JSONCache) enabled() bool { return c != nil && c.rdb != nil }

func (c *JSONCache) key(id string) string { return c.prefix + id }

// Get decodes the cached value for id into dest and reports whether it was present.
func (c *JSONCache) Get(ctx context.Context, id string, dest any) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	res, err := c.rdb.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *JSONCache) Set(ctx context.Context, id string, value any) error {
	if !c.enabled() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(id), b, c.ttl).Err()
}

func (c *JSONCache) Del(ctx context.Context, id string) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Del(ctx, c.key(id)).Err()
}
