package rx

import "github.com/dmitrymomot/reactive/core/subscription"

// Reduce folds the values of src with fn and emits the result on completion.
func Reduce[T, A any](src Observable[T], seed A, fn func(A, T) A) Observable[A] {
	return newObservable(func(o Observer[A]) subscription.Subscription {
		upstream := subscription.NewSerial()
		acc := seed
		var in *sink[T]
		in = newSink(o, func(v T) {
			next, err := call(func() (A, error) { return fn(acc, v), nil })
			if err != nil {
				abort(in, upstream, o, err)
				return
			}
			acc = next
		}, o.OnError, func() {
			o.OnNext(acc)
			o.OnCompleted()
		})
		upstream.Set(subscribeTo(src, in))
		return upstream
	})
}

// Count emits the number of values src produced.
func Count[T any](src Observable[T]) Observable[int] {
	return Reduce(src, 0, func(n int, _ T) int { return n + 1 })
}

// ToSlice emits all values of src as one slice on completion.
func ToSlice[T any](src Observable[T]) Observable[[]T] {
	return Reduce(src, []T(nil), func(acc []T, v T) []T { return append(acc, v) })
}

// First emits the first value of src and completes, or fails with ErrEmpty.
func First[T any](src Observable[T]) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		upstream := subscription.NewSerial()
		var in *sink[T]
		in = newSink(o, func(v T) {
			in.stop()
			upstream.Unsubscribe()
			o.OnNext(v)
			o.OnCompleted()
		}, o.OnError, func() {
			o.OnError(ErrEmpty)
		})
		upstream.Set(subscribeTo(src, in))
		return upstream
	})
}

// Last emits the final value of src on completion, or fails with ErrEmpty.
func Last[T any](src Observable[T]) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		var last T
		has := false
		in := newSink(o, func(v T) {
			last, has = v, true
		}, o.OnError, func() {
			if !has {
				o.OnError(ErrEmpty)
				return
			}
			o.OnNext(last)
			o.OnCompleted()
		})
		return subscribeTo(src, in)
	})
}
