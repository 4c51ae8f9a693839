package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_TicksUntilCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())

	var ticks, failing atomic.Int32

	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, nil,
			Job{
				Name:     "count",
				Interval: 5 * time.Millisecond,
				Fn: func(context.Context) error {
					ticks.Add(1)
					return nil
				},
			},
			Job{
				Name:     "fail",
				Interval: 5 * time.Millisecond,
				Fn: func(context.Context) error {
					failing.Add(1)
					return errors.New("boom")
				},
			},
		)
	}()

	require.Eventually(t, func() bool {
		return ticks.Load() >= 3 && failing.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_RunAtStart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	started := make(chan struct{}, 1)

	go func() {
		_ = Run(ctx, nil, Job{
			Name:       "refresh",
			Interval:   time.Hour,
			RunAtStart: true,
			Fn: func(context.Context) error {
				started <- struct{}{}
				return nil
			},
		})
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run at start")
	}
}

func TestRun_PanicDoesNotKillJob(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var calls atomic.Int32

	go func() {
		_ = Run(ctx, nil, Job{
			Name:     "panicky",
			Interval: 5 * time.Millisecond,
			Fn: func(context.Context) error {
				calls.Add(1)
				panic("bad job")
			},
		})
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestRun_RejectsBadInterval(t *testing.T) {
	t.Parallel()

	err := Run(t.Context(), nil, Job{Name: "bad", Fn: func(context.Context) error { return nil }})
	require.Error(t, err)
}
