package rx

import "github.com/dmitrymomot/reactive/core/subscription"

// Observable is a producer of values. Each Subscribe starts an independent
// session unless the producer is explicitly shared through a Subject.
type Observable[T any] interface {
	Subscribe(observer Observer[T]) subscription.Subscription
}

// trustedSource marks producers built by this package. Their Subscribe
// applies the safe wrapper itself wherever it is needed.
type trustedSource interface {
	trustedSource()
}

type observable[T any] struct {
	subscribe func(Observer[T]) subscription.Subscription
	trusted   bool
}

// Create builds an Observable from a caller-supplied subscribe function.
// The function always runs behind the safe wrapper: whatever it emits,
// downstream observers see a valid, serialized sequence, and a panic becomes
// an error signal.
//
// The observer handed to fn implements IsUnsubscribed() bool, which a
// synchronous producer can poll to stop early.
func Create[T any](fn func(observer Observer[T]) subscription.Subscription) Observable[T] {
	return &observable[T]{subscribe: fn}
}

// newObservable builds an Observable for the combinators of this package.
func newObservable[T any](fn func(observer Observer[T]) subscription.Subscription) Observable[T] {
	return &observable[T]{subscribe: fn, trusted: true}
}

func (o *observable[T]) Subscribe(observer Observer[T]) subscription.Subscription {
	if observer == nil {
		observer = NewObserver[T](nil, nil, nil)
	}
	if o.trusted && isTrustedObserver(observer) {
		return o.subscribe(observer)
	}
	return subscribeSafely(o.subscribe, observer)
}

func (*observable[T]) trustedSource() {}

// Subscribe attaches callbacks to src. Nil callbacks are no-ops.
func Subscribe[T any](src Observable[T], onNext func(T), onError func(error), onCompleted func()) subscription.Subscription {
	return src.Subscribe(NewObserver(onNext, onError, onCompleted))
}

// subscribeTo subscribes an operator's observer to src, wrapping the session
// when src was not built by this package.
func subscribeTo[T any](src Observable[T], observer Observer[T]) subscription.Subscription {
	if _, ok := src.(trustedSource); ok {
		return src.Subscribe(observer)
	}
	return subscribeSafely(src.Subscribe, observer)
}

func subscribeSafely[T any](subscribe func(Observer[T]) subscription.Subscription, observer Observer[T]) subscription.Subscription {
	safe := newSafeObserver(observer)
	safe.setUpstream(safe.guard(subscribe))
	return safe
}
