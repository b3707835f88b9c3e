// Package retry provides a single configurable retry policy with exponential
// backoff. Every outbound HTTP call in the dashboard goes through it, so
// transient upstream failures are handled the same way everywhere.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy holds the retry parameters: how many retries, how long to back off,
// and how the backoff grows between attempts.
type Policy struct {
	// MaxRetries is the number of retry attempts after the initial call.
	MaxRetries int

	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration

	// MaxBackoff caps the exponential growth.
	MaxBackoff time.Duration

	// Factor is the multiplier applied to the backoff after each retry.
	Factor float64
}

// DefaultPolicy matches the upstream rate-limit guidance: three retries with
// backoff doubling from one second.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:     3,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
		Factor:         2.0,
	}
}

// IsRetryableFunc decides whether an error is transient.
type IsRetryableFunc func(error) bool

// OnRetryFunc is called before each backoff sleep. attempt is 1-indexed.
type OnRetryFunc func(attempt int, err error, wait time.Duration)

// Do runs fn, retrying transient failures per the policy. The function is
// called at least once. The last error is returned once the budget is
// exhausted or isRetryable reports a permanent failure.
func Do[T any](
	ctx context.Context,
	p Policy,
	isRetryable IsRetryableFunc,
	onRetry OnRetryFunc,
	fn func() (T, error),
) (T, error) {
	var zero T
	var lastErr error

	if p.Factor <= 0 {
		p.Factor = 2.0
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = time.Second
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = 30 * time.Second
	}

	backoff := p.InitialBackoff

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			if onRetry != nil {
				onRetry(attempt, lastErr, backoff)
			}

			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("retry interrupted: %w", ctx.Err())
			case <-time.After(backoff):
			}

			backoff = time.Duration(float64(backoff) * p.Factor)
			if backoff > p.MaxBackoff {
				backoff = p.MaxBackoff
			}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if isRetryable != nil && !isRetryable(err) {
			return zero, err
		}
	}

	return zero, fmt.Errorf("giving up after %d retries: %w", p.MaxRetries, lastErr)
}
