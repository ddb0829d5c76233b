package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesapp/internal/notes/resilience"
)

var errBackend = errors.New("backend unavailable")

func failing() error { return errBackend }

func succeeding() error { return nil }

func TestCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	cfg := resilience.CircuitBreakerConfig{
		ErrorThreshold:   2,
		Timeout:          30 * time.Millisecond,
		SuccessThreshold: 1,
	}

	t.Run("trips after threshold and rejects", func(t *testing.T) {
		cb := resilience.NewCircuitBreaker("test", cfg)

		assert.ErrorIs(t, cb.Execute(ctx, failing), errBackend)
		assert.Equal(t, resilience.StateClosed, cb.State())
		assert.ErrorIs(t, cb.Execute(ctx, failing), errBackend)
		assert.Equal(t, resilience.StateOpen, cb.State())

		called := false
		err := cb.Execute(ctx, func() error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
		assert.False(t, called)
	})

	t.Run("half-open trial closes on success", func(t *testing.T) {
		cb := resilience.NewCircuitBreaker("test", cfg)
		_ = cb.Execute(ctx, failing)
		_ = cb.Execute(ctx, failing)
		require.Equal(t, resilience.StateOpen, cb.State())

		time.Sleep(2 * cfg.Timeout)

		require.NoError(t, cb.Execute(ctx, succeeding))
		assert.Equal(t, resilience.StateClosed, cb.State())
	})

	t.Run("half-open trial reopens on failure", func(t *testing.T) {
		cb := resilience.NewCircuitBreaker("test", cfg)
		_ = cb.Execute(ctx, failing)
		_ = cb.Execute(ctx, failing)

		time.Sleep(2 * cfg.Timeout)

		assert.ErrorIs(t, cb.Execute(ctx, failing), errBackend)
		assert.Equal(t, resilience.StateOpen, cb.State())
	})

	t.Run("success resets failure count", func(t *testing.T) {
		cb := resilience.NewCircuitBreaker("test", cfg)
		_ = cb.Execute(ctx, failing)
		require.NoError(t, cb.Execute(ctx, succeeding))
		_ = cb.Execute(ctx, failing)

		assert.Equal(t, resilience.StateClosed, cb.State())
	})
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", resilience.StateClosed.String())
	assert.Equal(t, "open", resilience.StateOpen.String())
	assert.Equal(t, "half-open", resilience.StateHalfOpen.String())
	assert.Equal(t, "unknown", resilience.CircuitState(42).String())
}
