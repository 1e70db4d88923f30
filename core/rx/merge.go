package rx

import (
	"sync"

	"github.com/dmitrymomot/reactive/core/logger"
	"github.com/dmitrymomot/reactive/core/subscription"
)

// Merge interleaves the values of all sources. The first error terminates
// the result and cancels every other source. The result completes once
// every source has completed.
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return MergeAll(FromSlice(sources))
}

// MergeDelayError is Merge, except that errors are collected and reported
// only after every source has terminated: a single error as is, several
// joined with errors.Join.
func MergeDelayError[T any](sources ...Observable[T]) Observable[T] {
	return MergeAllDelayError(FromSlice(sources))
}

// MergeAll flattens an Observable of Observables, subscribing to every inner
// Observable as it arrives.
func MergeAll[T any](sources Observable[Observable[T]]) Observable[T] {
	return mergeAll(sources, false)
}

// MergeAllDelayError is MergeAll with the error handling of MergeDelayError.
func MergeAllDelayError[T any](sources Observable[Observable[T]]) Observable[T] {
	return mergeAll(sources, true)
}

// FlatMap maps every value to an Observable and merges the results.
func FlatMap[T, R any](src Observable[T], fn func(T) Observable[R]) Observable[R] {
	return MergeAll(Map(src, fn))
}

type merger[T any] struct {
	delayErrors bool
	out         *serializer[T]
	group       *subscription.Composite

	mu         sync.Mutex
	active     int
	terminated bool
	errs       []error
}

func mergeAll[T any](sources Observable[Observable[T]], delayErrors bool) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		m := &merger[T]{
			delayErrors: delayErrors,
			out:         newSerializer(o),
			group:       subscription.NewComposite(),
			active:      1, // the outer source
		}
		outer := subscription.NewSerial()
		m.group.Add(outer)
		in := newSink(cancelledFunc(m.group.IsUnsubscribed), m.subscribeInner,
			func(err error) { m.fail(outer, err) },
			func() { m.done(outer) },
		)
		outer.Set(subscribeTo(sources, in))
		return m.group
	})
}

func (m *merger[T]) subscribeInner(src Observable[T]) {
	m.mu.Lock()
	if m.terminated {
		m.mu.Unlock()
		return
	}
	m.active++
	m.mu.Unlock()

	slot := subscription.NewSerial()
	m.group.Add(slot)
	in := newSink(cancelledFunc(m.group.IsUnsubscribed), m.out.next,
		func(err error) { m.fail(slot, err) },
		func() { m.done(slot) },
	)
	slot.Set(subscribeTo(src, in))
}

func (m *merger[T]) fail(slot subscription.Subscription, err error) {
	if m.delayErrors {
		m.mu.Lock()
		m.errs = append(m.errs, err)
		m.mu.Unlock()
		m.done(slot)
		return
	}
	m.mu.Lock()
	if m.terminated {
		m.mu.Unlock()
		return
	}
	m.terminated = true
	m.mu.Unlock()
	m.out.error(err)
	m.group.Unsubscribe()
}

func (m *merger[T]) done(slot subscription.Subscription) {
	m.group.Remove(slot)
	m.mu.Lock()
	m.active--
	finish := m.active == 0 && !m.terminated
	if finish {
		m.terminated = true
	}
	errs := m.errs
	m.mu.Unlock()
	if !finish {
		return
	}
	if len(errs) > 0 {
		if len(errs) > 1 {
			log().Debug("rx: delivering delayed errors", logger.Operator("merge"), logger.Errors(errs...))
		}
		m.out.error(joinErrors(errs))
		return
	}
	m.out.completed()
}
