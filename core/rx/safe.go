package rx

import (
	"errors"
	"sync/atomic"

	"github.com/dmitrymomot/reactive/core/logger"
	"github.com/dmitrymomot/reactive/core/subscription"
)

// safeObserver enforces the observer grammar around an observer it does not
// trust, or around one fed by a producer it does not trust:
//
//   - signals are delivered serially, even when they arrive concurrently;
//   - nothing is delivered after a terminal signal or after Unsubscribe;
//   - a panic in the wrapped OnNext becomes one error signal and cancels
//     the upstream;
//   - after a terminal signal is delivered, the upstream is released.
//
// A safeObserver is also the Subscription returned to the caller.
type safeObserver[T any] struct {
	target   Observer[T]
	ser      serializer[T]
	upstream subscription.Serial
	stopped  atomic.Bool
}

func newSafeObserver[T any](target Observer[T]) *safeObserver[T] {
	s := &safeObserver[T]{target: target}
	s.ser.deliver = s.deliver
	return s
}

func (s *safeObserver[T]) OnNext(v T)        { s.accept(NextNotification(v)) }
func (s *safeObserver[T]) OnError(err error) { s.accept(ErrorNotification[T](err)) }
func (s *safeObserver[T]) OnCompleted()      { s.accept(CompletedNotification[T]()) }

func (s *safeObserver[T]) accept(n Notification[T]) {
	if n.IsTerminal() {
		s.stopped.Store(true)
	}
	if !s.ser.accept(n) && !s.ser.isCancelled() {
		log().Debug("rx: signal after terminal dropped", logger.Signal(n.Kind.String()))
	}
}

func (s *safeObserver[T]) deliver(n Notification[T]) {
	switch n.Kind {
	case KindNext:
		if err := s.protect(func() { s.target.OnNext(n.Value) }); err != nil {
			s.ser.cancel()
			s.stopped.Store(true)
			s.upstream.Unsubscribe()
			s.terminal(func() { s.target.OnError(err) })
		}
	case KindError:
		s.terminal(func() { s.target.OnError(n.Err) })
		s.upstream.Unsubscribe()
	case KindCompleted:
		s.terminal(func() { s.target.OnCompleted() })
		s.upstream.Unsubscribe()
	}
}

func (s *safeObserver[T]) protect(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newPanicError(p)
		}
	}()
	fn()
	return nil
}

// terminal runs a terminal callback. There is no signal left to report a
// panic with, so it is logged.
func (s *safeObserver[T]) terminal(fn func()) {
	if err := s.protect(fn); err != nil {
		var trace []byte
		if pe := (*PanicError)(nil); errors.As(err, &pe) {
			trace = pe.Stack
		}
		log().Error("rx: observer panicked in terminal callback", logger.Error(err), logger.Stack(trace))
	}
}

// guard runs a subscribe function, converting a panic into an error signal.
func (s *safeObserver[T]) guard(subscribe func(Observer[T]) subscription.Subscription) (sub subscription.Subscription) {
	defer func() {
		if p := recover(); p != nil {
			s.OnError(newPanicError(p))
			sub = subscription.Empty()
		}
	}()
	return subscribe(s)
}

func (s *safeObserver[T]) setUpstream(sub subscription.Subscription) {
	s.upstream.Set(sub)
}

// Unsubscribe stops delivery and cancels the upstream. Idempotent.
func (s *safeObserver[T]) Unsubscribe() {
	s.ser.cancel()
	s.stopped.Store(true)
	s.upstream.Unsubscribe()
}

// IsUnsubscribed reports whether the session is finished, either by a
// terminal signal or by cancellation.
func (s *safeObserver[T]) IsUnsubscribed() bool {
	return s.stopped.Load() || isUnsubscribed(s.target)
}

func (*safeObserver[T]) trustedObserver() {}
