package rx_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactive/core/rx"
	"github.com/dmitrymomot/reactive/core/subscription"
)

func TestOnErrorResumeNext_ContinuesWithFallback(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	src := rx.Concat(rx.Just(1, 2), rx.Throw[int](errBoom))
	rec := collect(t, rx.OnErrorResumeNext(src, rx.Just(10, 11)))

	assert.Equal(t, []int{1, 2, 10, 11}, rec.Values())
	assert.NoError(t, rec.Err())
	assert.True(t, rec.Completed())
}

func TestOnErrorResumeNext_PassesCompletion(t *testing.T) {
	t.Parallel()

	subscribed := false
	fallback := rx.Defer(func() rx.Observable[int] {
		subscribed = true
		return rx.Just(99)
	})
	rec := collect(t, rx.OnErrorResumeNext(rx.Just(1), fallback))

	assert.Equal(t, []int{1}, rec.Values())
	assert.True(t, rec.Completed())
	assert.False(t, subscribed)
}

func TestOnErrorResumeNext_UnsubscribeReachesFallback(t *testing.T) {
	t.Parallel()

	primary := rx.NewPublishSubject[int]()
	fallback := rx.NewPublishSubject[int]()

	rec := &recorder[int]{}
	sub := rx.OnErrorResumeNext[int](primary, fallback).Subscribe(rec)
	primary.OnNext(1)
	primary.OnError(errors.New("boom"))
	require.True(t, fallback.HasObservers())
	fallback.OnNext(2)

	sub.Unsubscribe()
	assert.False(t, fallback.HasObservers())
	fallback.OnNext(3)
	assert.Equal(t, []int{1, 2}, rec.Values())
}

func TestCatch_NilHandlerResultPassesError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	rec := collect(t, rx.Catch(rx.Throw[int](errBoom), func(error) rx.Observable[int] { return nil }))
	assert.ErrorIs(t, rec.Err(), errBoom)
}

func TestCatch_HandlerPanicJoinsErrors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	rec := collect(t, rx.Catch(rx.Throw[int](errBoom), func(error) rx.Observable[int] { panic("handler") }))

	require.Error(t, rec.Err())
	assert.ErrorIs(t, rec.Err(), errBoom)
	var pe *rx.PanicError
	assert.ErrorAs(t, rec.Err(), &pe)
}

func TestOnErrorReturn(t *testing.T) {
	t.Parallel()

	src := rx.Concat(rx.Just(1), rx.Throw[int](errors.New("boom")))
	rec := collect(t, rx.OnErrorReturn(src, func(error) int { return -1 }))

	assert.Equal(t, []int{1, -1}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestRetry(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	attempts := 0
	src := rx.Create(func(o rx.Observer[int]) subscription.Subscription {
		attempts++
		o.OnNext(attempts)
		if attempts < 3 {
			o.OnError(errBoom)
			return subscription.Empty()
		}
		o.OnCompleted()
		return subscription.Empty()
	})

	rec := collect(t, rx.Retry(src, 5))
	assert.Equal(t, []int{1, 2, 3}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestRetry_GivesUp(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	attempts := 0
	src := rx.Defer(func() rx.Observable[int] {
		attempts++
		return rx.Throw[int](errBoom)
	})

	rec := collect(t, rx.Retry(src, 2))
	assert.ErrorIs(t, rec.Err(), errBoom)
	assert.Equal(t, 3, attempts)
}
