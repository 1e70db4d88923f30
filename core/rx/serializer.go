package rx

import "sync"

// serializer delivers notifications one at a time, in the order they were
// accepted, from whichever goroutine is currently emitting. No lock is held
// while a notification is delivered. Once a terminal notification is
// accepted, later ones are rejected.
type serializer[T any] struct {
	mu         sync.Mutex
	queue      []Notification[T]
	emitting   bool
	terminated bool
	cancelled  bool
	deliver    func(Notification[T])
}

func newSerializer[T any](o Observer[T]) *serializer[T] {
	return &serializer[T]{deliver: func(n Notification[T]) { n.Accept(o) }}
}

// enqueue adds n to the queue. accepted is false when the stream already
// terminated. flush is true when the caller became the emitter and must call
// drain.
func (s *serializer[T]) enqueue(n Notification[T]) (accepted, flush bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminated {
		return false, false
	}
	if n.IsTerminal() {
		s.terminated = true
	}
	s.queue = append(s.queue, n)
	if s.emitting {
		return true, false
	}
	s.emitting = true
	return true, true
}

// drain delivers queued notifications until the queue is empty or the
// serializer is cancelled.
func (s *serializer[T]) drain() {
	finished := false
	defer func() {
		if !finished {
			s.mu.Lock()
			s.emitting = false
			s.mu.Unlock()
		}
	}()
	for {
		s.mu.Lock()
		if len(s.queue) == 0 || s.cancelled {
			s.queue = nil
			s.emitting = false
			s.mu.Unlock()
			finished = true
			return
		}
		n := s.queue[0]
		s.queue[0] = Notification[T]{}
		s.queue = s.queue[1:]
		s.mu.Unlock()
		s.deliver(n)
	}
}

// accept enqueues n and drains if no other goroutine is emitting.
func (s *serializer[T]) accept(n Notification[T]) bool {
	accepted, flush := s.enqueue(n)
	if flush {
		s.drain()
	}
	return accepted
}

func (s *serializer[T]) next(v T)        { s.accept(NextNotification(v)) }
func (s *serializer[T]) error(err error) { s.accept(ErrorNotification[T](err)) }
func (s *serializer[T]) completed()      { s.accept(CompletedNotification[T]()) }

// cancel rejects further notifications and drops queued ones.
func (s *serializer[T]) cancel() {
	s.mu.Lock()
	s.terminated = true
	s.cancelled = true
	s.queue = nil
	s.mu.Unlock()
}

func (s *serializer[T]) isCancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}
