package rx_test

import (
	"sync"

	"github.com/dmitrymomot/reactive/core/rx"
)

// recorder collects every signal it receives.
type recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	errs      []error
	completed int
}

func (r *recorder[T]) OnNext(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder[T]) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder[T]) OnCompleted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed++
}

func (r *recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

func (r *recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[0]
}

func (r *recorder[T]) Terminals() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs) + r.completed
}

func (r *recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed > 0
}

var _ rx.Observer[int] = (*recorder[int])(nil)

type cancellable interface {
	IsUnsubscribed() bool
}
