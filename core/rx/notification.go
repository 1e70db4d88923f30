package rx

import (
	"fmt"

	"github.com/dmitrymomot/reactive/core/subscription"
)

// Kind identifies a signal.
type Kind uint8

// The zero Kind is not a valid signal.
const (
	KindNext      Kind = iota + 1 // a value
	KindError                     // termination with an error
	KindCompleted                 // normal termination
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Notification is a signal reified as a value.
type Notification[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// NextNotification returns a value signal carrying v.
func NextNotification[T any](v T) Notification[T] {
	return Notification[T]{Kind: KindNext, Value: v}
}

// ErrorNotification returns an error terminal carrying err.
func ErrorNotification[T any](err error) Notification[T] {
	return Notification[T]{Kind: KindError, Err: err}
}

// CompletedNotification returns a completion terminal.
func CompletedNotification[T any]() Notification[T] {
	return Notification[T]{Kind: KindCompleted}
}

// IsTerminal reports whether n ends a stream.
func (n Notification[T]) IsTerminal() bool {
	return n.Kind == KindError || n.Kind == KindCompleted
}

// Accept delivers n to o.
func (n Notification[T]) Accept(o Observer[T]) {
	switch n.Kind {
	case KindNext:
		o.OnNext(n.Value)
	case KindError:
		o.OnError(n.Err)
	case KindCompleted:
		o.OnCompleted()
	}
}

func (n Notification[T]) String() string {
	switch n.Kind {
	case KindNext:
		return fmt.Sprintf("next(%v)", n.Value)
	case KindError:
		return fmt.Sprintf("error(%v)", n.Err)
	default:
		return n.Kind.String()
	}
}

// Materialize turns every signal of src, including the terminal one, into a
// Notification value. The result completes after the terminal notification.
func Materialize[T any](src Observable[T]) Observable[Notification[T]] {
	return newObservable(func(o Observer[Notification[T]]) subscription.Subscription {
		in := newSink(o,
			func(v T) { o.OnNext(NextNotification(v)) },
			func(err error) {
				o.OnNext(ErrorNotification[T](err))
				o.OnCompleted()
			},
			func() {
				o.OnNext(CompletedNotification[T]())
				o.OnCompleted()
			},
		)
		return subscribeTo(src, in)
	})
}

// Dematerialize reverses Materialize. Values after the first terminal
// notification are ignored.
func Dematerialize[T any](src Observable[Notification[T]]) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		upstream := subscription.NewSerial()
		var in *sink[Notification[T]]
		in = newSink(o,
			func(n Notification[T]) {
				if n.IsTerminal() {
					in.stop()
					upstream.Unsubscribe()
				}
				n.Accept(o)
			},
			o.OnError,
			o.OnCompleted,
		)
		upstream.Set(subscribeTo(src, in))
		return upstream
	})
}
