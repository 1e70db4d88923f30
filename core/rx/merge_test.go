package rx_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactive/core/rx"
)

func TestMerge_InterleavesAndCompletesAfterAll(t *testing.T) {
	t.Parallel()

	a := rx.NewPublishSubject[string]()
	b := rx.NewPublishSubject[string]()

	rec := &recorder[string]{}
	rx.Merge[string](a, b).Subscribe(rec)

	a.OnNext("a1")
	b.OnNext("b1")
	a.OnNext("a2")
	a.OnCompleted()
	assert.False(t, rec.Completed())

	b.OnNext("b2")
	b.OnCompleted()

	assert.Equal(t, []string{"a1", "b1", "a2", "b2"}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestMerge_FirstErrorCancelsOthers(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	a := rx.NewPublishSubject[int]()
	b := rx.NewPublishSubject[int]()

	rec := &recorder[int]{}
	rx.Merge[int](a, b).Subscribe(rec)
	require.True(t, b.HasObservers())

	a.OnError(errBoom)
	b.OnNext(1)

	assert.ErrorIs(t, rec.Err(), errBoom)
	assert.Empty(t, rec.Values())
	assert.False(t, b.HasObservers())
}

func TestMerge_UnsubscribeDetachesEverySource(t *testing.T) {
	t.Parallel()

	a := rx.NewPublishSubject[int]()
	b := rx.NewPublishSubject[int]()

	sub := rx.Merge[int](a, b).Subscribe(&recorder[int]{})
	sub.Unsubscribe()
	sub.Unsubscribe()

	assert.False(t, a.HasObservers())
	assert.False(t, b.HasObservers())
}

func TestMergeDelayError_DeliversOtherValuesFirst(t *testing.T) {
	t.Parallel()

	errA := errors.New("a failed")
	a := rx.Concat(rx.Just(1), rx.Throw[int](errA))
	b := rx.Just(10, 20, 30)

	rec := collect(t, rx.MergeDelayError(a, b))

	assert.Equal(t, []int{1, 10, 20, 30}, rec.Values())
	assert.ErrorIs(t, rec.Err(), errA)
	assert.Equal(t, 1, rec.Terminals())
}

func TestMergeDelayError_JoinsErrors(t *testing.T) {
	t.Parallel()

	errA := errors.New("a")
	errB := errors.New("b")
	rec := collect(t, rx.MergeDelayError(rx.Throw[int](errA), rx.Just(1), rx.Throw[int](errB)))

	assert.Equal(t, []int{1}, rec.Values())
	assert.ErrorIs(t, rec.Err(), errA)
	assert.ErrorIs(t, rec.Err(), errB)
}

func TestFlatMap(t *testing.T) {
	t.Parallel()

	rec := collect(t, rx.FlatMap(rx.Range(1, 3), func(v int) rx.Observable[int] {
		return rx.Just(v, v*10)
	}))
	assert.Equal(t, []int{1, 10, 2, 20, 3, 30}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestMerge_Empty(t *testing.T) {
	t.Parallel()

	rec := collect(t, rx.Merge[int]())
	assert.True(t, rec.Completed())
}
