package rx

import (
	"errors"

	"github.com/dmitrymomot/reactive/core/subscription"
)

// OnErrorResumeNext mirrors src. If src fails, the error is swallowed and
// the result continues with fallback. Completion of src passes through.
func OnErrorResumeNext[T any](src, fallback Observable[T]) Observable[T] {
	return Catch(src, func(error) Observable[T] { return fallback })
}

// Catch mirrors src. If src fails, handler picks the Observable to continue
// with. A nil result passes the original error through; a panicking handler
// fails the result with both errors joined.
func Catch[T any](src Observable[T], handler func(error) Observable[T]) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		serial := subscription.NewSerial()
		primary := subscription.NewSerial()
		serial.Set(primary)
		in := newSink(o, o.OnNext, func(err error) {
			next, herr := call(func() (Observable[T], error) { return handler(err), nil })
			if herr != nil {
				o.OnError(errors.Join(err, herr))
				return
			}
			if next == nil {
				o.OnError(err)
				return
			}
			slot := subscription.NewSerial()
			serial.Set(slot)
			if serial.IsUnsubscribed() {
				return
			}
			slot.Set(subscribeTo(next, o))
		}, o.OnCompleted)
		primary.Set(subscribeTo(src, in))
		return serial
	})
}

// OnErrorReturn replaces an error of src with the value fn derives from it,
// then completes.
func OnErrorReturn[T any](src Observable[T], fn func(error) T) Observable[T] {
	return Catch(src, func(err error) Observable[T] {
		return Just(fn(err))
	})
}

// Retry resubscribes to src after an error, up to n times. A negative n
// retries forever. The last error passes through once attempts run out.
func Retry[T any](src Observable[T], n int) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		serial := subscription.NewSerial()
		var (
			tr       trampoline
			attempts int
			step     func()
		)
		step = func() {
			if serial.IsUnsubscribed() {
				return
			}
			slot := subscription.NewSerial()
			serial.Set(slot)
			in := newSink(o, o.OnNext, func(err error) {
				if n >= 0 && attempts >= n {
					o.OnError(err)
					return
				}
				attempts++
				tr.run(step)
			}, o.OnCompleted)
			slot.Set(subscribeTo(src, in))
		}
		tr.run(step)
		return serial
	})
}
