package cache

import (
	"context"
	"time"
)

// UnansweredQuestion is a question the assistant could not answer, with the
// number of times it has been asked.
type UnansweredQuestion struct {
	Question string `json:"question"`
	Count    int64  `json:"count"`
}

// Cache holds short-lived conversation context stats and a running tally of
// unanswered questions. A nil map from GetContext means a miss, not an error.
type Cache interface {
	GetContext(ctx context.Context) (map[string]any, error)
	SetContext(ctx context.Context, stats map[string]any, ttl time.Duration) error
	RecordUnanswered(ctx context.Context, question string) error
	TopUnanswered(ctx context.Context, limit int) ([]UnansweredQuestion, error)
	Close() error
}
