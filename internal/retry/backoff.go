package retry

import "time"

// MaxDelay caps the computed backoff so late attempts do not stall callers.
const MaxDelay = 30 * time.Second

// ExponentialBackoff returns the delay for an attempt number, clamped to
// MaxDelay. The delay doubles with each attempt: base * 2^attempt.
func ExponentialBackoff(attempt int, base time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := base * (1 << attempt)
	if d > MaxDelay || d <= 0 { // overflow guard for large attempts
		return MaxDelay
	}
	return d
}
