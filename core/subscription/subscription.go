package subscription

import (
	"sync"
	"sync/atomic"
)

// Subscription is a cancellation handle for one logical session between a
// producer and a consumer.
type Subscription interface {
	// Unsubscribe stops further delivery. Calls after the first are no-ops.
	Unsubscribe()

	// IsUnsubscribed reports whether Unsubscribe has been called.
	IsUnsubscribed() bool
}

// funcSubscription runs a teardown function exactly once.
type funcSubscription struct {
	once sync.Once
	done atomic.Bool
	fn   func()
}

// New returns a Subscription that calls fn on the first Unsubscribe.
// A nil fn yields a plain flag handle.
func New(fn func()) Subscription {
	return &funcSubscription{fn: fn}
}

func (s *funcSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.done.Store(true)
		if s.fn != nil {
			s.fn()
		}
	})
}

func (s *funcSubscription) IsUnsubscribed() bool {
	return s.done.Load()
}

// Empty returns a handle that is already unsubscribed.
// It describes a stream that finished before Subscribe returned.
func Empty() Subscription {
	b := &Boolean{}
	b.done.Store(true)
	return b
}

// Boolean is a handle that only records whether it was unsubscribed.
// The zero value is ready to use.
type Boolean struct {
	done atomic.Bool
}

// NewBoolean returns an active Boolean handle.
func NewBoolean() *Boolean {
	return &Boolean{}
}

// Unsubscribe marks the handle as unsubscribed.
func (b *Boolean) Unsubscribe() {
	b.done.Store(true)
}

// IsUnsubscribed reports whether Unsubscribe has been called.
func (b *Boolean) IsUnsubscribed() bool {
	return b.done.Load()
}

// unsubscribe calls s.Unsubscribe when s is not nil.
func unsubscribe(s Subscription) {
	if s != nil {
		s.Unsubscribe()
	}
}
