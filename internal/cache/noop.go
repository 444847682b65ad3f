package cache

import (
	"context"
	"time"
)

// NoopCache is used when Redis is not configured. Context lookups always
// miss and unanswered-question tracking is dropped.
type NoopCache struct{}

func (NoopCache) GetContext(ctx context.Context) (map[string]any, error) { return nil, nil }

func (NoopCache) SetContext(ctx context.Context, stats map[string]any, ttl time.Duration) error {
	return nil
}

func (NoopCache) RecordUnanswered(ctx context.Context, question string) error { return nil }

func (NoopCache) TopUnanswered(ctx context.Context, limit int) ([]UnansweredQuestion, error) {
	return nil, nil
}

func (NoopCache) Close() error { return nil }
