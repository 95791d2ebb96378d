package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/database"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// ProductCacheTTL keeps shop listings warm between catalog edits.
	// The leaderboard is deliberately never cached: each view must be a
	// fresh snapshot of the stats.
	ProductCacheTTL = 10 * time.Minute
)

// CacheService provides Redis-backed caching for read-heavy data.
type CacheService struct{}

// Get retrieves a value from cache.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	cacheKey := CacheKeyPrefix + key

	val, err := database.RedisClient.Get(ctx, cacheKey).Result()
	if err != nil {
		return false, nil // cache miss, not an error
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}

	return true, nil
}

// Set stores a value in cache with the given TTL.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	cacheKey := CacheKeyPrefix + key

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return database.RedisClient.Set(ctx, cacheKey, data, ttl).Err()
}

// Invalidate removes a cached value.
func (c *CacheService) Invalidate(ctx context.Context, key string) error {
	return database.RedisClient.Del(ctx, CacheKeyPrefix+key).Err()
}
