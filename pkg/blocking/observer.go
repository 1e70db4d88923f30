package blocking

import "sync/atomic"

// collector is the observer the adapters attach. It reports cancellation
// through IsUnsubscribed so synchronous producers stop once the adapter has
// what it needs.
type collector[T any] struct {
	next      func(T)
	err       func(error)
	completed func()
	stopped   atomic.Bool
}

func (c *collector[T]) OnNext(v T)        { c.next(v) }
func (c *collector[T]) OnError(err error) { c.err(err) }
func (c *collector[T]) OnCompleted()      { c.completed() }

func (c *collector[T]) stop()                { c.stopped.Store(true) }
func (c *collector[T]) IsUnsubscribed() bool { return c.stopped.Load() }

type outcome[T any] struct {
	value T
	err   error
}
