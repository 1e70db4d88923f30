package blocking

import (
	"context"
	"sync"

	"github.com/dmitrymomot/reactive/core/rx"
)

// await subscribes c to src and waits for resolve to be called or ctx to be
// done. The subscription is cancelled before await returns.
func await[T, R any](ctx context.Context, src rx.Observable[T], build func(resolve func(R, error), c *collector[T])) (R, error) {
	res := make(chan outcome[R], 1)
	var once sync.Once
	c := &collector[T]{}
	resolve := func(v R, err error) {
		once.Do(func() {
			c.stop()
			res <- outcome[R]{value: v, err: err}
		})
	}
	build(resolve, c)

	sub := src.Subscribe(c)
	defer sub.Unsubscribe()

	select {
	case r := <-res:
		return r.value, r.err
	default:
	}
	select {
	case r := <-res:
		return r.value, r.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// First returns the first value of src. It fails with ErrEmpty when src
// completes without values, with the stream's error, or with ctx.Err().
func First[T any](ctx context.Context, src rx.Observable[T]) (T, error) {
	return await(ctx, src, func(resolve func(T, error), c *collector[T]) {
		var zero T
		c.next = func(v T) { resolve(v, nil) }
		c.err = func(err error) { resolve(zero, err) }
		c.completed = func() { resolve(zero, ErrEmpty) }
	})
}

// Last returns the final value of src once it completes.
func Last[T any](ctx context.Context, src rx.Observable[T]) (T, error) {
	return await(ctx, src, func(resolve func(T, error), c *collector[T]) {
		var (
			last T
			has  bool
		)
		c.next = func(v T) { last, has = v, true }
		c.err = func(err error) {
			var zero T
			resolve(zero, err)
		}
		c.completed = func() {
			if !has {
				resolve(last, ErrEmpty)
				return
			}
			resolve(last, nil)
		}
	})
}

// Single returns the only value of src. It fails with ErrMoreThanOne as
// soon as a second value arrives.
func Single[T any](ctx context.Context, src rx.Observable[T]) (T, error) {
	return await(ctx, src, func(resolve func(T, error), c *collector[T]) {
		var (
			value T
			has   bool
			zero  T
		)
		c.next = func(v T) {
			if has {
				resolve(zero, ErrMoreThanOne)
				return
			}
			value, has = v, true
		}
		c.err = func(err error) { resolve(zero, err) }
		c.completed = func() {
			if !has {
				resolve(zero, ErrEmpty)
				return
			}
			resolve(value, nil)
		}
	})
}

// ToSlice collects every value of src. On error it returns the values
// received so far together with the error.
func ToSlice[T any](ctx context.Context, src rx.Observable[T]) ([]T, error) {
	var (
		mu     sync.Mutex
		values []T
	)
	collected := func() []T {
		mu.Lock()
		defer mu.Unlock()
		return append([]T(nil), values...)
	}
	out, err := await(ctx, src, func(resolve func([]T, error), c *collector[T]) {
		c.next = func(v T) {
			mu.Lock()
			values = append(values, v)
			mu.Unlock()
		}
		c.err = func(err error) { resolve(collected(), err) }
		c.completed = func() { resolve(collected(), nil) }
	})
	if err != nil && out == nil {
		out = collected()
	}
	return out, err
}

// ForEach calls fn for every value of src on the goroutine that emits it,
// and returns when src terminates. An error from fn stops the stream and is
// returned.
func ForEach[T any](ctx context.Context, src rx.Observable[T], fn func(T) error) error {
	_, err := await(ctx, src, func(resolve func(struct{}, error), c *collector[T]) {
		c.next = func(v T) {
			if err := fn(v); err != nil {
				resolve(struct{}{}, err)
			}
		}
		c.err = func(err error) { resolve(struct{}{}, err) }
		c.completed = func() { resolve(struct{}{}, nil) }
	})
	return err
}
