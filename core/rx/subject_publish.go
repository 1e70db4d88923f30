package rx

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reactive/core/logger"
	"github.com/dmitrymomot/reactive/core/subscription"
)

// PublishSubject forwards each value to the subscribers attached when the
// value is pushed. A late subscriber sees only later values. After a
// terminal signal every subscriber, including later ones, receives that
// terminal signal and nothing else.
//
// Pushes may come from several goroutines; each subscriber still receives
// its signals serially.
type PublishSubject[T any] struct {
	log *slog.Logger

	mu        sync.Mutex
	observers []*publishEntry[T]
	terminal  Notification[T]
}

type publishEntry[T any] struct {
	id       uuid.UUID
	observer *safeObserver[T]
}

// NewPublishSubject returns an active PublishSubject.
func NewPublishSubject[T any](opts ...SubjectOption) *PublishSubject[T] {
	o := newSubjectOptions(opts)
	return &PublishSubject[T]{log: o.logger.With(logger.Component("publish_subject"))}
}

func (s *PublishSubject[T]) OnNext(v T) {
	s.mu.Lock()
	if s.terminal.Kind != 0 {
		s.mu.Unlock()
		s.log.Debug("rx: value pushed into terminated subject ignored")
		return
	}
	observers := s.observers
	s.mu.Unlock()

	for _, e := range observers {
		e.observer.OnNext(v)
	}
}

func (s *PublishSubject[T]) OnError(err error) {
	s.terminate(ErrorNotification[T](err))
}

func (s *PublishSubject[T]) OnCompleted() {
	s.terminate(CompletedNotification[T]())
}

func (s *PublishSubject[T]) terminate(n Notification[T]) {
	s.mu.Lock()
	if s.terminal.Kind != 0 {
		s.mu.Unlock()
		s.log.Debug("rx: terminal pushed into terminated subject ignored", logger.Signal(n.Kind.String()))
		return
	}
	s.terminal = n
	observers := s.observers
	s.observers = nil
	s.mu.Unlock()

	for _, e := range observers {
		n.Accept(e.observer)
	}
}

// Subscribe attaches o. On a terminated subject the stored terminal signal
// is delivered at once and the returned handle is already finished.
func (s *PublishSubject[T]) Subscribe(o Observer[T]) subscription.Subscription {
	if o == nil {
		o = NewObserver[T](nil, nil, nil)
	}
	safe := newSafeObserver(o)

	s.mu.Lock()
	if s.terminal.Kind != 0 {
		terminal := s.terminal
		s.mu.Unlock()
		terminal.Accept(safe)
		return safe
	}
	entry := &publishEntry[T]{id: uuid.New(), observer: safe}
	s.observers = append(s.observers[:len(s.observers):len(s.observers)], entry)
	s.mu.Unlock()

	s.log.Debug("rx: subscriber attached", logger.SubscriberID(entry.id.String()))
	safe.setUpstream(subscription.New(func() { s.remove(entry) }))
	return safe
}

func (s *PublishSubject[T]) remove(entry *publishEntry[T]) {
	s.mu.Lock()
	s.observers = without(s.observers, entry)
	s.mu.Unlock()
	s.log.Debug("rx: subscriber detached", logger.SubscriberID(entry.id.String()))
}

// HasObservers reports whether any subscriber is attached.
func (s *PublishSubject[T]) HasObservers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers) > 0
}

// IsTerminated reports whether a terminal signal has been pushed.
func (s *PublishSubject[T]) IsTerminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal.Kind != 0
}

func (*PublishSubject[T]) trustedSource() {}
