package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"actms-assistant/internal/retry"
)

// Event types emitted by the assistant for the platform audit log.
const (
	TypeResolved = "assistant.resolved"
	TypeFAQAdded = "assistant.faq_added"
)

// Event records an assistant action for audit consumers.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Question   string    `json:"question"`
	Source     string    `json:"source"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publisher exposes a minimal contract to emit audit events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// PublishWithRetry attempts to publish with retries and exponential backoff.
func PublishWithRetry(ctx context.Context, p Publisher, ev Event, attempts int, base time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if err := p.Publish(ctx, ev); err == nil {
			return nil
		} else if attempt == attempts-1 {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retry.ExponentialBackoff(attempt, base)):
		}
	}
	return nil
}
