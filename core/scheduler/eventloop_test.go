package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactive/core/scheduler"
)

func TestEventLoop_RunsInOrder(t *testing.T) {
	t.Parallel()

	loop := scheduler.NewEventLoop(scheduler.WithLogger(slogt.New(t)))

	var (
		mu    sync.Mutex
		order []int
	)
	for i := range 100 {
		loop.Schedule(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}

	require.NoError(t, loop.Close(context.Background()))

	require.Len(t, order, 100)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
	assert.Equal(t, int64(100), loop.Stats().Executed)
}

func TestEventLoop_CancelledWorkSkipped(t *testing.T) {
	t.Parallel()

	loop := scheduler.NewEventLoop()
	gate := make(chan struct{})
	loop.Schedule(func() { <-gate })

	var ran bool
	handle := loop.Schedule(func() { ran = true })
	handle.Unsubscribe()
	close(gate)

	require.NoError(t, loop.Close(context.Background()))
	assert.False(t, ran)
}

func TestEventLoop_ScheduleAfter(t *testing.T) {
	t.Parallel()

	loop := scheduler.NewEventLoop()
	defer loop.Close(context.Background())

	done := make(chan time.Time, 1)
	start := time.Now()
	loop.ScheduleAfter(20*time.Millisecond, func() { done <- time.Now() })

	select {
	case at := <-done:
		assert.GreaterOrEqual(t, at.Sub(start), 20*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("delayed work did not run")
	}
}

func TestEventLoop_PanicIsRecovered(t *testing.T) {
	t.Parallel()

	loop := scheduler.NewEventLoop(scheduler.WithLogger(slogt.New(t)))

	loop.Schedule(func() { panic("boom") })
	var ran bool
	loop.Schedule(func() { ran = true })

	require.NoError(t, loop.Close(context.Background()))
	assert.True(t, ran)

	stats := loop.Stats()
	assert.Equal(t, int64(1), stats.Panicked)
	assert.Equal(t, int64(2), stats.Executed)
	assert.False(t, stats.IsRunning)
}

func TestEventLoop_ScheduleAfterClose(t *testing.T) {
	t.Parallel()

	loop := scheduler.NewEventLoop()
	require.NoError(t, loop.Close(context.Background()))

	handle := loop.Schedule(func() { t.Error("must not run") })
	assert.True(t, handle.IsUnsubscribed())
	assert.ErrorIs(t, loop.Close(context.Background()), scheduler.ErrSchedulerClosed)
}

func TestEventLoop_ShutdownTimeout(t *testing.T) {
	t.Parallel()

	loop := scheduler.NewEventLoop(scheduler.WithShutdownTimeout(20 * time.Millisecond))
	gate := make(chan struct{})
	defer close(gate)

	loop.Schedule(func() { <-gate })

	err := loop.Close(context.Background())
	assert.ErrorIs(t, err, scheduler.ErrShutdownTimeout)
}

func TestNewEventLoopFromConfig(t *testing.T) {
	t.Parallel()

	loop := scheduler.NewEventLoopFromConfig(scheduler.Config{})
	require.NotNil(t, loop)
	require.NoError(t, loop.Close(context.Background()))

	loop = scheduler.NewEventLoopFromConfig(scheduler.DefaultConfig(), scheduler.WithLogger(slogt.New(t)))
	require.NoError(t, loop.Close(context.Background()))
}
