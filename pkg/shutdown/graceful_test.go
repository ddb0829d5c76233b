package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesapp/pkg/shutdown"
)

var errHook = errors.New("hook failed")

func TestWait(t *testing.T) {
	t.Run("runs hooks after context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls atomic.Int32
		err := shutdown.Wait(ctx, time.Second,
			func(ctx context.Context) error {
				calls.Add(1)
				return ctx.Err()
			},
			func(context.Context) error {
				calls.Add(1)
				return nil
			},
		)

		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestRun(t *testing.T) {
	t.Run("collects hook errors", func(t *testing.T) {
		err := shutdown.Run(context.Background(), time.Second,
			func(context.Context) error { return errHook },
			func(context.Context) error { return nil },
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errHook)
	})

	t.Run("returns deadline error on slow hook", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		err := shutdown.Run(context.Background(), 20*time.Millisecond,
			func(context.Context) error {
				<-release
				return nil
			},
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("no hooks", func(t *testing.T) {
		assert.NoError(t, shutdown.Run(context.Background(), time.Second))
	})
}
