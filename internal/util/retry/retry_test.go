package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_SucceedsAfterTransientErrors(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("503 service unavailable")
		}
		return nil
	}, WithInitialDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()
	attempts := 0
	cause := errors.New("persistent")

	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return cause
	}, WithMaxAttempts(4), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 4, attempts)
	assert.Contains(t, err.Error(), "4 attempts")
}

func TestDo_SingleAttemptDisablesRetry(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return errors.New("boom")
	}, WithMaxAttempts(1))

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_FatalStopsImmediately(t *testing.T) {
	t.Parallel()
	attempts := 0
	cause := errors.New("401 unauthorized")

	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return Fatal(cause)
	}, WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, attempts)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	attempts := 0

	err := Do(ctx, func(context.Context) error {
		attempts++
		return errors.New("transient")
	}, WithInitialDelay(time.Second), WithMaxAttempts(10))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, attempts)
}

func TestDo_OnRetryHook(t *testing.T) {
	t.Parallel()
	var delays []time.Duration

	_ = Do(context.Background(), func(context.Context) error {
		return errors.New("transient")
	},
		WithMaxAttempts(4),
		WithInitialDelay(time.Millisecond),
		WithMaxDelay(3*time.Millisecond),
		WithOnRetry(func(_ int, d time.Duration, _ error) {
			delays = append(delays, d)
		}))

	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond}, delays)
}

func TestFatal(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, Fatal(nil))
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		t.Parallel()
		sentinel := errors.New("sentinel")
		wrapped := fmt.Errorf("context: %w", Fatal(sentinel))

		assert.True(t, IsFatal(wrapped))
		assert.ErrorIs(t, wrapped, sentinel)
		assert.Equal(t, "context: sentinel", wrapped.Error())
	})

	t.Run("plain error is not fatal", func(t *testing.T) {
		t.Parallel()
		assert.False(t, IsFatal(errors.New("plain")))
	})
}
