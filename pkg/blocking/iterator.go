package blocking

import (
	"context"
	"iter"
	"sync"

	"github.com/dmitrymomot/reactive/core/rx"
	"github.com/dmitrymomot/reactive/core/subscription"
)

// Iterator pulls the values of an Observable one at a time. Values pushed
// faster than they are pulled are buffered.
type Iterator[T any] struct {
	sub  subscription.Subscription
	stop func() bool

	mu         sync.Mutex
	cond       *sync.Cond
	queue      []T
	value      T
	err        error
	terminated bool
}

// Iterate subscribes to src and returns an Iterator over its values. The
// subscription ends when src terminates, when ctx is done or on Close.
func Iterate[T any](ctx context.Context, src rx.Observable[T]) *Iterator[T] {
	it := &Iterator[T]{}
	it.cond = sync.NewCond(&it.mu)

	c := &collector[T]{}
	c.next = func(v T) {
		it.mu.Lock()
		if !it.terminated {
			it.queue = append(it.queue, v)
			it.cond.Signal()
		}
		it.mu.Unlock()
	}
	c.err = func(err error) { it.finish(err) }
	c.completed = func() { it.finish(nil) }

	it.stop = context.AfterFunc(ctx, func() {
		it.mu.Lock()
		if !it.terminated {
			it.terminated = true
			it.err = ctx.Err()
			it.queue = nil
			it.cond.Broadcast()
		}
		it.mu.Unlock()
		c.stop()
		it.unsubscribe()
	})

	sub := src.Subscribe(c)
	it.mu.Lock()
	it.sub = sub
	cancelled := it.terminated && it.err != nil
	it.mu.Unlock()
	if cancelled {
		sub.Unsubscribe()
	}
	return it
}

func (it *Iterator[T]) finish(err error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.terminated {
		return
	}
	it.terminated = true
	it.err = err
	it.cond.Broadcast()
}

func (it *Iterator[T]) unsubscribe() {
	it.mu.Lock()
	sub := it.sub
	it.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

// Next blocks until a value is available or the stream ends. It reports
// whether Value holds a new value.
func (it *Iterator[T]) Next() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	for len(it.queue) == 0 && !it.terminated {
		it.cond.Wait()
	}
	if len(it.queue) == 0 {
		return false
	}
	var zero T
	it.value = it.queue[0]
	it.queue[0] = zero
	it.queue = it.queue[1:]
	return true
}

// Value returns the value produced by the last successful Next.
func (it *Iterator[T]) Value() T {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.value
}

// Err returns the error that ended the stream, or ctx.Err() if the context
// interrupted it. It is nil after a normal completion or Close.
func (it *Iterator[T]) Err() error {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.err
}

// Close cancels the subscription and discards buffered values.
func (it *Iterator[T]) Close() {
	it.stop()
	it.mu.Lock()
	if !it.terminated {
		it.terminated = true
		it.cond.Broadcast()
	}
	it.queue = nil
	it.mu.Unlock()
	it.unsubscribe()
}

// All returns a range-over-func sequence of the values of src. A terminal
// error is yielded once as the final pair with a zero value.
func All[T any](ctx context.Context, src rx.Observable[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := Iterate(ctx, src)
		defer it.Close()
		for it.Next() {
			if !yield(it.Value(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}
