package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const searchCacheTTL = 5 * time.Minute

// InitRedis initializes the Redis client used for the item-search
// cache. The cache is optional: when Redis is unreachable every
// lookup is a miss and writes are skipped.
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	RedisClient = client
	return nil
}

// GetCachedSearch returns a cached search response body, if any.
func GetCachedSearch(ctx context.Context, text string, from, size int) ([]byte, bool) {
	if RedisClient == nil {
		return nil, false
	}
	data, err := RedisClient.Get(ctx, searchKey(text, from, size)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheSearch stores a serialized search response with a TTL.
func CacheSearch(ctx context.Context, text string, from, size int, payload []byte) {
	if RedisClient == nil {
		return
	}
	RedisClient.Set(ctx, searchKey(text, from, size), payload, searchCacheTTL)
}

// InvalidateSearchCache drops every cached search page. Called after
// item writes so stale availability never leaks out of the cache.
func InvalidateSearchCache(ctx context.Context) {
	if RedisClient == nil {
		return
	}
	iter := RedisClient.Scan(ctx, 0, "items:search:*", 0).Iterator()
	for iter.Next(ctx) {
		RedisClient.Del(ctx, iter.Val())
	}
}

func searchKey(text string, from, size int) string {
	return fmt.Sprintf("items:search:%s:%d:%d", text, from, size)
}
