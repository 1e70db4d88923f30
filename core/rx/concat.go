package rx

import "github.com/dmitrymomot/reactive/core/subscription"

// Concat subscribes to each source in turn, starting the next one when the
// previous completes. An error from any source terminates the result.
func Concat[T any](sources ...Observable[T]) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		serial := subscription.NewSerial()
		var (
			tr   trampoline
			idx  int
			step func()
		)
		step = func() {
			if serial.IsUnsubscribed() {
				return
			}
			if idx == len(sources) {
				o.OnCompleted()
				return
			}
			src := sources[idx]
			idx++
			slot := subscription.NewSerial()
			serial.Set(slot)
			in := newSink(o, o.OnNext, o.OnError, func() { tr.run(step) })
			slot.Set(subscribeTo(src, in))
		}
		tr.run(step)
		return serial
	})
}
