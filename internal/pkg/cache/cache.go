// Package cache provides a small JSON read cache on top of Redis for the
// public content endpoints. When no Redis address is configured the cache is
// disabled and every call is a no-op.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "nccairwing:"

// Cache wraps a Redis client with JSON marshalling and a fixed TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// New creates a Cache. A nil client yields a disabled cache.
func New(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Enabled reports whether the cache is backed by a live Redis client.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get loads the cached JSON value under key into dest. It returns false on a
// miss or any Redis/unmarshal failure; a failing cache never fails the read.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache payload unmarshal failed")
		return false
	}

	return true
}

// Set stores value under key as JSON with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if !c.Enabled() {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache payload marshal failed")
		return
	}

	if err := c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Delete removes the given keys from the cache.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		c.logger.Warn().Err(err).Strs("keys", keys).Msg("Cache delete failed")
	}
}
