package rx

import (
	"context"

	"github.com/dmitrymomot/reactive/core/subscription"
)

// Just emits the given values in order, then completes.
func Just[T any](values ...T) Observable[T] {
	return FromSlice(values)
}

// FromSlice emits the items of a slice synchronously, then completes. The
// loop stops as soon as the subscriber is gone.
func FromSlice[T any](items []T) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		for _, v := range items {
			if isUnsubscribed(o) {
				return subscription.Empty()
			}
			o.OnNext(v)
		}
		if !isUnsubscribed(o) {
			o.OnCompleted()
		}
		return subscription.Empty()
	})
}

// Range emits count consecutive integers starting at start.
func Range(start, count int) Observable[int] {
	return newObservable(func(o Observer[int]) subscription.Subscription {
		for i := range count {
			if isUnsubscribed(o) {
				return subscription.Empty()
			}
			o.OnNext(start + i)
		}
		if !isUnsubscribed(o) {
			o.OnCompleted()
		}
		return subscription.Empty()
	})
}

// Empty completes immediately.
func Empty[T any]() Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		o.OnCompleted()
		return subscription.Empty()
	})
}

// Never emits nothing and never terminates.
func Never[T any]() Observable[T] {
	return newObservable(func(Observer[T]) subscription.Subscription {
		return subscription.NewBoolean()
	})
}

// Throw terminates immediately with err.
func Throw[T any](err error) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		o.OnError(err)
		return subscription.Empty()
	})
}

// Defer calls factory for every subscription and subscribes to the
// Observable it returns. A panicking factory surfaces as an error signal.
func Defer[T any](factory func() Observable[T]) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		src, err := call(func() (Observable[T], error) { return factory(), nil })
		if err != nil {
			o.OnError(err)
			return subscription.Empty()
		}
		return subscribeTo(src, o)
	})
}

// FromFunc calls fn on subscription and emits its result.
func FromFunc[T any](fn func() (T, error)) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		v, err := call(fn)
		if err != nil {
			o.OnError(err)
			return subscription.Empty()
		}
		o.OnNext(v)
		o.OnCompleted()
		return subscription.Empty()
	})
}

// FromChannel emits the values received from ch on a dedicated goroutine.
// It completes when ch is closed and fails with ctx.Err() when ctx is done.
func FromChannel[T any](ctx context.Context, ch <-chan T) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		stop := make(chan struct{})
		sub := subscription.New(func() { close(stop) })
		go func() {
			for {
				select {
				case <-stop:
					return
				case <-ctx.Done():
					o.OnError(ctx.Err())
					return
				case v, ok := <-ch:
					if !ok {
						o.OnCompleted()
						return
					}
					o.OnNext(v)
				}
			}
		}()
		return sub
	})
}
