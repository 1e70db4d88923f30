package rx

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reactive/core/logger"
	"github.com/dmitrymomot/reactive/core/subscription"
)

// ReplaySubject records every value pushed into it and replays the history
// to each new subscriber before live values, followed by the terminal
// signal once one has been pushed. Every subscriber observes the same
// sequence regardless of when it attaches.
type ReplaySubject[T any] struct {
	log   *slog.Logger
	limit int

	mu       sync.Mutex
	history  []T
	offset   int // values trimmed from the front of history
	terminal Notification[T]
	entries  []*replayEntry[T]
}

type replayEntry[T any] struct {
	id       uuid.UUID
	subject  *ReplaySubject[T]
	observer *safeObserver[T]

	mu       sync.Mutex
	emitting bool
	missed   bool
	index    int // absolute position of the next value to deliver
}

// NewReplaySubject returns an active ReplaySubject. By default the history
// is unbounded; see WithReplayLimit.
func NewReplaySubject[T any](opts ...SubjectOption) *ReplaySubject[T] {
	o := newSubjectOptions(opts)
	return &ReplaySubject[T]{log: o.logger.With(logger.Component("replay_subject")), limit: o.replayLimit}
}

func (s *ReplaySubject[T]) OnNext(v T) {
	s.mu.Lock()
	if s.terminal.Kind != 0 {
		s.mu.Unlock()
		s.log.Debug("rx: value pushed into terminated subject ignored")
		return
	}
	s.history = append(s.history, v)
	if s.limit > 0 && len(s.history) > s.limit {
		drop := len(s.history) - s.limit
		s.history = s.history[drop:]
		s.offset += drop
	}
	entries := s.entries
	s.mu.Unlock()

	for _, e := range entries {
		e.replay()
	}
}

func (s *ReplaySubject[T]) OnError(err error) {
	s.terminate(ErrorNotification[T](err))
}

func (s *ReplaySubject[T]) OnCompleted() {
	s.terminate(CompletedNotification[T]())
}

func (s *ReplaySubject[T]) terminate(n Notification[T]) {
	s.mu.Lock()
	if s.terminal.Kind != 0 {
		s.mu.Unlock()
		s.log.Debug("rx: terminal pushed into terminated subject ignored", logger.Signal(n.Kind.String()))
		return
	}
	s.terminal = n
	entries := s.entries
	s.entries = nil
	s.mu.Unlock()

	for _, e := range entries {
		e.replay()
	}
}

// Subscribe replays the retained history to o, then attaches it for live
// values.
func (s *ReplaySubject[T]) Subscribe(o Observer[T]) subscription.Subscription {
	if o == nil {
		o = NewObserver[T](nil, nil, nil)
	}
	e := &replayEntry[T]{id: uuid.New(), subject: s, observer: newSafeObserver(o)}

	s.mu.Lock()
	e.index = s.offset
	if s.terminal.Kind == 0 {
		s.entries = append(s.entries[:len(s.entries):len(s.entries)], e)
	}
	s.mu.Unlock()

	s.log.Debug("rx: subscriber attached", logger.SubscriberID(e.id.String()))
	e.observer.setUpstream(subscription.New(func() { s.remove(e) }))
	e.replay()
	return e.observer
}

func (s *ReplaySubject[T]) remove(e *replayEntry[T]) {
	s.mu.Lock()
	s.entries = without(s.entries, e)
	s.mu.Unlock()
	s.log.Debug("rx: subscriber detached", logger.SubscriberID(e.id.String()))
}

// HasObservers reports whether any subscriber is attached.
func (s *ReplaySubject[T]) HasObservers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) > 0
}

// Values returns a copy of the retained history.
func (s *ReplaySubject[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.history...)
}

func (*ReplaySubject[T]) trustedSource() {}

// replay delivers everything the entry has not seen yet. Only one goroutine
// replays a given entry at a time; a call made meanwhile is picked up by
// the running one.
func (e *replayEntry[T]) replay() {
	e.mu.Lock()
	if e.emitting {
		e.missed = true
		e.mu.Unlock()
		return
	}
	e.emitting = true
	e.mu.Unlock()

	s := e.subject
	for {
		s.mu.Lock()
		start := max(e.index, s.offset)
		values := s.history[start-s.offset:]
		terminal := s.terminal
		s.mu.Unlock()

		for _, v := range values {
			if e.observer.IsUnsubscribed() {
				return
			}
			e.observer.OnNext(v)
		}
		e.index = start + len(values)

		if terminal.Kind != 0 {
			terminal.Accept(e.observer)
			return
		}

		e.mu.Lock()
		if !e.missed {
			e.emitting = false
			e.mu.Unlock()
			return
		}
		e.missed = false
		e.mu.Unlock()
	}
}
