package rx

import "sync/atomic"

// Observer receives the signals of one subscription: zero or more values,
// then at most one terminal signal.
type Observer[T any] interface {
	OnNext(value T)
	OnError(err error)
	OnCompleted()
}

// NewObserver builds an Observer from callbacks. Nil callbacks are no-ops.
func NewObserver[T any](onNext func(T), onError func(error), onCompleted func()) Observer[T] {
	return &funcObserver[T]{next: onNext, err: onError, completed: onCompleted}
}

type funcObserver[T any] struct {
	next      func(T)
	err       func(error)
	completed func()
}

func (o *funcObserver[T]) OnNext(v T) {
	if o.next != nil {
		o.next(v)
	}
}

func (o *funcObserver[T]) OnError(err error) {
	if o.err != nil {
		o.err(err)
	}
}

func (o *funcObserver[T]) OnCompleted() {
	if o.completed != nil {
		o.completed()
	}
}

// canceller is implemented by observers that can tell a synchronous producer
// the session is over.
type canceller interface {
	IsUnsubscribed() bool
}

func isUnsubscribed(v any) bool {
	c, ok := v.(canceller)
	return ok && c.IsUnsubscribed()
}

type cancelledFunc func() bool

func (f cancelledFunc) IsUnsubscribed() bool { return f() }

// trustedObserver marks observers built by this package. They obey the
// grammar, so producers built here may call them without the safe wrapper.
type trustedObserver interface {
	trustedObserver()
}

func isTrustedObserver(v any) bool {
	_, ok := v.(trustedObserver)
	return ok
}

// sink is the observer an operator hands to its upstream. It serves one
// upstream session: once that session terminates or the operator stops it,
// further signals are ignored.
type sink[T any] struct {
	next      func(T)
	err       func(error)
	completed func()
	parent    any
	stopped   atomic.Bool
}

func newSink[T any](parent any, onNext func(T), onError func(error), onCompleted func()) *sink[T] {
	return &sink[T]{parent: parent, next: onNext, err: onError, completed: onCompleted}
}

func (s *sink[T]) OnNext(v T) {
	if s.stopped.Load() {
		return
	}
	s.next(v)
}

func (s *sink[T]) OnError(err error) {
	if s.stopped.Swap(true) {
		return
	}
	s.err(err)
}

func (s *sink[T]) OnCompleted() {
	if s.stopped.Swap(true) {
		return
	}
	s.completed()
}

// stop ends the session from the operator side.
func (s *sink[T]) stop() {
	s.stopped.Store(true)
}

// IsUnsubscribed reports whether the producer feeding s may stop.
func (s *sink[T]) IsUnsubscribed() bool {
	return s.stopped.Load() || isUnsubscribed(s.parent)
}

func (*sink[T]) trustedObserver() {}
