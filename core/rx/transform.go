package rx

import (
	"github.com/dmitrymomot/reactive/core/subscription"
)

// abort stops in, cancels the upstream and reports err downstream.
func abort[T, R any](in *sink[T], upstream subscription.Subscription, o Observer[R], err error) {
	in.stop()
	upstream.Unsubscribe()
	o.OnError(err)
}

// Map transforms every value with fn. A panic in fn becomes an error signal.
func Map[T, R any](src Observable[T], fn func(T) R) Observable[R] {
	return MapErr(src, func(v T) (R, error) { return fn(v), nil })
}

// MapErr transforms every value with fn. An error returned by fn terminates
// the stream with that error.
func MapErr[T, R any](src Observable[T], fn func(T) (R, error)) Observable[R] {
	return newObservable(func(o Observer[R]) subscription.Subscription {
		upstream := subscription.NewSerial()
		var in *sink[T]
		in = newSink(o, func(v T) {
			r, err := call(func() (R, error) { return fn(v) })
			if err != nil {
				abort(in, upstream, o, err)
				return
			}
			o.OnNext(r)
		}, o.OnError, o.OnCompleted)
		upstream.Set(subscribeTo(src, in))
		return upstream
	})
}

// Filter passes the values for which pred returns true.
func Filter[T any](src Observable[T], pred func(T) bool) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		upstream := subscription.NewSerial()
		var in *sink[T]
		in = newSink(o, func(v T) {
			ok, err := call(func() (bool, error) { return pred(v), nil })
			if err != nil {
				abort(in, upstream, o, err)
				return
			}
			if ok {
				o.OnNext(v)
			}
		}, o.OnError, o.OnCompleted)
		upstream.Set(subscribeTo(src, in))
		return upstream
	})
}

// Scan emits every intermediate accumulation of fn over the values of src.
func Scan[T, A any](src Observable[T], seed A, fn func(A, T) A) Observable[A] {
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
			o.OnNext(acc)
		}, o.OnError, o.OnCompleted)
		upstream.Set(subscribeTo(src, in))
		return upstream
	})
}

// Take emits the first n values, then completes and cancels the upstream.
func Take[T any](src Observable[T], n int) Observable[T] {
	if n <= 0 {
		return Empty[T]()
	}
	return newObservable(func(o Observer[T]) subscription.Subscription {
		upstream := subscription.NewSerial()
		remaining := n
		var in *sink[T]
		in = newSink(o, func(v T) {
			remaining--
			if remaining == 0 {
				in.stop()
				upstream.Unsubscribe()
				o.OnNext(v)
				o.OnCompleted()
				return
			}
			o.OnNext(v)
		}, o.OnError, o.OnCompleted)
		upstream.Set(subscribeTo(src, in))
		return upstream
	})
}

// TakeWhile emits values while pred holds and completes on the first value
// for which it does not.
func TakeWhile[T any](src Observable[T], pred func(T) bool) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		upstream := subscription.NewSerial()
		var in *sink[T]
		in = newSink(o, func(v T) {
			ok, err := call(func() (bool, error) { return pred(v), nil })
			if err != nil {
				abort(in, upstream, o, err)
				return
			}
			if !ok {
				in.stop()
				upstream.Unsubscribe()
				o.OnCompleted()
				return
			}
			o.OnNext(v)
		}, o.OnError, o.OnCompleted)
		upstream.Set(subscribeTo(src, in))
		return upstream
	})
}

// Skip drops the first n values.
func Skip[T any](src Observable[T], n int) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		skipped := 0
		in := newSink(o, func(v T) {
			if skipped < n {
				skipped++
				return
			}
			o.OnNext(v)
		}, o.OnError, o.OnCompleted)
		return subscribeTo(src, in)
	})
}

// Distinct drops values already seen during the subscription.
func Distinct[T comparable](src Observable[T]) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		seen := make(map[T]struct{})
		in := newSink(o, func(v T) {
			if _, ok := seen[v]; ok {
				return
			}
			seen[v] = struct{}{}
			o.OnNext(v)
		}, o.OnError, o.OnCompleted)
		return subscribeTo(src, in)
	})
}

// DistinctUntilChanged drops values equal to their predecessor.
func DistinctUntilChanged[T comparable](src Observable[T]) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		var last T
		has := false
		in := newSink(o, func(v T) {
			if has && v == last {
				return
			}
			last, has = v, true
			o.OnNext(v)
		}, o.OnError, o.OnCompleted)
		return subscribeTo(src, in)
	})
}

// Do invokes side-effect callbacks for each signal before forwarding it.
// Nil callbacks are skipped. A panic in onNext becomes an error signal.
func Do[T any](src Observable[T], onNext func(T), onError func(error), onCompleted func()) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		upstream := subscription.NewSerial()
		var in *sink[T]
		in = newSink(o, func(v T) {
			if onNext != nil {
				if _, err := call(func() (struct{}, error) { onNext(v); return struct{}{}, nil }); err != nil {
					abort(in, upstream, o, err)
					return
				}
			}
			o.OnNext(v)
		}, func(err error) {
			if onError != nil {
				onError(err)
			}
			o.OnError(err)
		}, func() {
			if onCompleted != nil {
				onCompleted()
			}
			o.OnCompleted()
		})
		upstream.Set(subscribeTo(src, in))
		return upstream
	})
}

// Finally runs fn once the subscription ends, whether by a terminal signal
// or by cancellation.
func Finally[T any](src Observable[T], fn func()) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		done := subscription.New(fn)
		in := newSink(o, o.OnNext, func(err error) {
			o.OnError(err)
			done.Unsubscribe()
		}, func() {
			o.OnCompleted()
			done.Unsubscribe()
		})
		return subscription.NewComposite(subscribeTo(src, in), done)
	})
}

// StartWith emits values before the values of src.
func StartWith[T any](src Observable[T], values ...T) Observable[T] {
	return Concat(FromSlice(values), src)
}

// DefaultIfEmpty emits v when src completes without emitting anything.
func DefaultIfEmpty[T any](src Observable[T], v T) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		empty := true
		in := newSink(o, func(x T) {
			empty = false
			o.OnNext(x)
		}, o.OnError, func() {
			if empty {
				o.OnNext(v)
			}
			o.OnCompleted()
		})
		return subscribeTo(src, in)
	})
}
