package blocking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactive/core/rx"
	"github.com/dmitrymomot/reactive/pkg/blocking"
)

func TestToFuture(t *testing.T) {
	t.Parallel()

	f := blocking.ToFuture(rx.Just(1, 2, 3))
	assert.True(t, f.IsComplete())

	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = blocking.ToFuture(rx.Empty[int]()).Await()
	assert.ErrorIs(t, err, blocking.ErrEmpty)
}

func TestFuture_ResolvesLater(t *testing.T) {
	t.Parallel()

	s := rx.NewPublishSubject[string]()
	f := blocking.ToFuture[string](s)
	assert.False(t, f.IsComplete())

	_, err := f.AwaitWithTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, blocking.ErrTimeout)

	go func() {
		s.OnNext("done")
		s.OnCompleted()
	}()

	v, err := f.AwaitWithTimeout(5 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "done", v)
}

func TestFuture_Cancel(t *testing.T) {
	t.Parallel()

	s := rx.NewPublishSubject[int]()
	f := blocking.ToFuture[int](s)
	f.Cancel()

	_, err := f.Await()
	assert.ErrorIs(t, err, blocking.ErrCancelled)
	assert.False(t, s.HasObservers())

	s.OnNext(1)
	s.OnCompleted()
	_, err = f.Await()
	assert.ErrorIs(t, err, blocking.ErrCancelled)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	values, err := blocking.WaitAll(
		blocking.ToFuture(rx.Just(1)),
		blocking.ToFuture(rx.Just(2)),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, values)

	values, err = blocking.WaitAll(
		blocking.ToFuture(rx.Just(1)),
		blocking.ToFuture(rx.Throw[int](errBoom)),
		blocking.ToFuture(rx.Just(3)),
	)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []int{1}, values)
}
