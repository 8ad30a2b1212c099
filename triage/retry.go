package triage

import (
	"context"
	"time"
)

// RetryPolicy retries an operation a fixed number of times with a constant
// delay between attempts.
type RetryPolicy struct {
	// Attempts is the total number of attempts, including the first.
	Attempts int

	// Delay is the pause between consecutive attempts.
	Delay time.Duration
}

// DefaultRetryPolicy matches the classifier's historical behavior: three
// attempts two seconds apart.
var DefaultRetryPolicy = RetryPolicy{
	Attempts: 3,
	Delay:    2 * time.Second,
}

// Do runs fn until it succeeds, the attempts are exhausted, or retryable
// returns false for the error. Returns the last error on failure.
// The delay honors context cancellation.
func (p RetryPolicy) Do(ctx context.Context, retryable func(error) bool, fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			timer := time.NewTimer(p.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}
