package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/ndrewpacheco/warbler/internal/model"
)

// StatsCache keeps per-user profile counters in redis. Entries expire after
// ttl and are dropped whenever a message or follow edge changes.
type StatsCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewStatsCache(client *redisv9.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &StatsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *StatsCache) GetStats(ctx context.Context, userID uint) (model.UserStats, bool, error) {
	raw, err := c.client.Get(ctx, c.statsKey(userID)).Result()
	if err == redisv9.Nil {
		return model.UserStats{}, false, nil
	}
	if err != nil {
		return model.UserStats{}, false, fmt.Errorf("redis get stats failed: %w", err)
	}

	var stats model.UserStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return model.UserStats{}, false, fmt.Errorf("unmarshal cached stats failed: %w", err)
	}
	return stats, true, nil
}

func (c *StatsCache) SetStats(ctx context.Context, userID uint, stats model.UserStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.statsKey(userID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set stats failed: %w", err)
	}
	return nil
}

func (c *StatsCache) Invalidate(ctx context.Context, userIDs ...uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, c.statsKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete stats failed: %w", err)
	}
	return nil
}

func (c *StatsCache) statsKey(userID uint) string {
	return fmt.Sprintf("warbler:stats:%d", userID)
}
