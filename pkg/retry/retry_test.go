package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(maxRetries int) Policy {
	return Policy{
		MaxRetries:     maxRetries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Factor:         2.0,
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), fastPolicy(3), nil, nil, func() (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesTransientFailures(t *testing.T) {
	calls := 0
	sleeps := 0
	onRetry := func(attempt int, err error, wait time.Duration) { sleeps++ }

	result, err := Do(context.Background(), fastPolicy(3), nil, onRetry, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, sleeps, "two failures should mean exactly two backoff sleeps")
}

func TestDoExhaustsBudget(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastPolicy(2), nil, nil, func() (int, error) {
		calls++
		return 0, errors.New("still broken")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")
	assert.ErrorContains(t, err, "giving up after 2 retries")
}

func TestDoStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0
	isRetryable := func(err error) bool { return !errors.Is(err, permanent) }

	_, err := Do(context.Background(), fastPolicy(5), isRetryable, nil, func() (int, error) {
		calls++
		return 0, permanent
	})

	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := Policy{MaxRetries: 5, InitialBackoff: time.Minute, MaxBackoff: time.Minute, Factor: 2.0}
	done := make(chan error, 1)
	go func() {
		_, err := Do(ctx, p, nil, nil, func() (int, error) {
			return 0, errors.New("transient")
		})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Do did not return after context cancellation")
	}
}

func TestBackoffGrowthIsCapped(t *testing.T) {
	var waits []time.Duration
	onRetry := func(attempt int, err error, wait time.Duration) { waits = append(waits, wait) }

	p := Policy{MaxRetries: 4, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond, Factor: 2.0}
	_, _ = Do(context.Background(), p, nil, onRetry, func() (int, error) {
		return 0, errors.New("transient")
	})

	require.Len(t, waits, 4)
	assert.Equal(t, time.Millisecond, waits[0])
	for _, w := range waits[1:] {
		assert.Equal(t, 2*time.Millisecond, w)
	}
}
