package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/streamgrab/internal/domain/model"
)

const (
	// extractionKeyPrefix is the prefix for extraction cache keys in Redis.
	extractionKeyPrefix = "extraction:"
)

// RedisExtractionCache implements ExtractionCache using Redis as the backing
// store. TTL expiry is handled by Redis itself, so eviction is lazy from the
// caller's point of view.
type RedisExtractionCache struct {
	client *redis.Client
}

var _ ExtractionCache = (*RedisExtractionCache)(nil)

// NewRedisExtractionCache creates a new Redis-backed extraction cache.
func NewRedisExtractionCache(client *redis.Client) *RedisExtractionCache {
	return &RedisExtractionCache{
		client: client,
	}
}

// Get retrieves an extraction from Redis cache.
// Returns nil, nil on cache miss.
func (c *RedisExtractionCache) Get(ctx context.Context, key string) (*model.Extraction, error) {
	data, err := c.client.Get(ctx, c.buildKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var extraction model.Extraction
	if err := json.Unmarshal(data, &extraction); err != nil {
		return nil, fmt.Errorf("deserialize extraction: %w", err)
	}

	return &extraction, nil
}

// Set stores an extraction in Redis cache with the specified TTL.
func (c *RedisExtractionCache) Set(ctx context.Context, key string, extraction *model.Extraction, ttl time.Duration) error {
	data, err := json.Marshal(extraction)
	if err != nil {
		return fmt.Errorf("serialize extraction: %w", err)
	}

	if err := c.client.Set(ctx, c.buildKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Delete removes an extraction from Redis cache.
func (c *RedisExtractionCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.buildKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}

// buildKey constructs the Redis key for a fingerprint.
func (c *RedisExtractionCache) buildKey(key string) string {
	return extractionKeyPrefix + key
}
