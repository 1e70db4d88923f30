package blocking

import (
	"sync"
	"time"

	"github.com/dmitrymomot/reactive/core/rx"
	"github.com/dmitrymomot/reactive/core/subscription"
)

// Future holds the eventual last value of an Observable.
type Future[T any] struct {
	value T
	err   error
	once  sync.Once
	done  chan struct{}
	sub   subscription.Subscription
}

// ToFuture subscribes to src and returns a Future that resolves with the
// last value once src completes, with ErrEmpty if it completes without
// values, or with its error.
func ToFuture[T any](src rx.Observable[T]) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	var (
		last T
		has  bool
	)
	c := &collector[T]{}
	c.next = func(v T) { last, has = v, true }
	c.err = func(err error) {
		var zero T
		f.resolve(zero, err)
	}
	c.completed = func() {
		if !has {
			f.resolve(last, ErrEmpty)
			return
		}
		f.resolve(last, nil)
	}

	f.sub = src.Subscribe(c)
	return f
}

func (f *Future[T]) resolve(v T, err error) {
	f.once.Do(func() {
		f.value, f.err = v, err
		close(f.done)
	})
}

// Await waits for the future to resolve.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits at most timeout for the future to resolve and
// returns ErrTimeout otherwise. The subscription stays alive on timeout.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the future has resolved, without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Cancel unsubscribes from the source. An unresolved future resolves with
// ErrCancelled.
func (f *Future[T]) Cancel() {
	f.sub.Unsubscribe()
	var zero T
	f.resolve(zero, ErrCancelled)
}

// WaitAll waits for every future and returns their values in order. It
// stops at the first error.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	out := make([]T, 0, len(futures))
	for _, f := range futures {
		v, err := f.Await()
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}
