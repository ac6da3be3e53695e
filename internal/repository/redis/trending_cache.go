package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"myStoreCloud/domain"

	"github.com/redis/go-redis/v9"
)

// TrendingCache stores the full trending ranking per tenant. The
// ranking is identical for every visitor of a store, so a short TTL
// saves one aggregate query per recommendation request.
type TrendingCache struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultTrendingTTL = 5 * time.Minute

func NewTrendingCache(client *redis.Client, ttl time.Duration) *TrendingCache {
	if ttl <= 0 {
		ttl = defaultTrendingTTL
	}

	return &TrendingCache{
		client: client,
		ttl:    ttl,
	}
}

func trendingKey(tenantID string) string {
	return fmt.Sprintf("trending:%s", tenantID)
}

// Get returns the cached ranking, or (nil, nil) on a cache miss.
func (c *TrendingCache) Get(ctx context.Context, tenantID string) ([]domain.RecommendationResult, error) {
	val, err := c.client.Get(ctx, trendingKey(tenantID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trending ranking from Redis: %w", err)
	}

	var results []domain.RecommendationResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trending ranking: %w", err)
	}

	return results, nil
}

func (c *TrendingCache) Set(ctx context.Context, tenantID string, results []domain.RecommendationResult) error {
	jsonData, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal trending ranking: %w", err)
	}

	err = c.client.Set(ctx, trendingKey(tenantID), jsonData, c.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store trending ranking in Redis: %w", err)
	}

	return nil
}
