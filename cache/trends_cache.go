package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Hammad1029/trend-finder/dataforseo"
)

// TrendsCache caches search-interest lookups. Trend responses change slowly,
// so re-running an analysis within the TTL reuses the same series instead of
// burning API credits.
type TrendsCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewTrendsCache creates a trends cache with the given TTL
func NewTrendsCache(redis *RedisClient, ttl time.Duration) *TrendsCache {
	return &TrendsCache{redis: redis, ttl: ttl}
}

// Get retrieves a cached response for a keyword set. Returns nil and false
// on a miss or when Redis is unavailable.
func (c *TrendsCache) Get(ctx context.Context, keywords []string) (*dataforseo.ExploreResponse, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	var res dataforseo.ExploreResponse
	if err := c.redis.Get(ctx, keywordsKey(keywords), &res); err != nil {
		return nil, false
	}
	return &res, true
}

// Set caches a response for a keyword set
func (c *TrendsCache) Set(ctx context.Context, keywords []string, res *dataforseo.ExploreResponse) error {
	if c == nil || c.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	return c.redis.Set(ctx, keywordsKey(keywords), res, c.ttl)
}

// keywordsKey hashes the keyword set order-insensitively, so the same
// cluster keywords hit the same entry regardless of ranking jitter.
func keywordsKey(keywords []string) string {
	sorted := make([]string, len(keywords))
	copy(sorted, keywords)
	sort.Strings(sorted)

	payload, _ := json.Marshal(strings.Join(sorted, "|"))
	return fmt.Sprintf("trends:explore:%x", md5.Sum(payload))
}
