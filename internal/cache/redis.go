package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	contextKey    = "assistant:context"
	unansweredKey = "assistant:unanswered"
)

// RedisCache stores context stats as a JSON blob with a TTL and tracks
// unanswered questions in a sorted set keyed by ask count.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(ctx context.Context, addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetContext(ctx context.Context) (map[string]any, error) {
	raw, err := c.client.Get(ctx, contextKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get context: %w", err)
	}
	var stats map[string]any
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("decode context: %w", err)
	}
	return stats, nil
}

func (c *RedisCache) SetContext(ctx context.Context, stats map[string]any, ttl time.Duration) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}
	if err := c.client.Set(ctx, contextKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("set context: %w", err)
	}
	return nil
}

func (c *RedisCache) RecordUnanswered(ctx context.Context, question string) error {
	if err := c.client.ZIncrBy(ctx, unansweredKey, 1, question).Err(); err != nil {
		return fmt.Errorf("record unanswered: %w", err)
	}
	return nil
}

func (c *RedisCache) TopUnanswered(ctx context.Context, limit int) ([]UnansweredQuestion, error) {
	if limit <= 0 {
		limit = 10
	}
	members, err := c.client.ZRevRangeWithScores(ctx, unansweredKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("top unanswered: %w", err)
	}
	out := make([]UnansweredQuestion, 0, len(members))
	for _, m := range members {
		q, ok := m.Member.(string)
		if !ok {
			continue
		}
		out = append(out, UnansweredQuestion{Question: q, Count: int64(m.Score)})
	}
	return out, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
