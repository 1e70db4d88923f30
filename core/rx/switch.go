package rx

import (
	"sync"

	"github.com/dmitrymomot/reactive/core/subscription"
)

// Switch mirrors the most recent inner Observable. When a new inner
// Observable arrives, the previous one is cancelled and its later signals
// are dropped. The result completes once the outer source and the current
// inner have both completed. Any error terminates the result.
func Switch[T any](sources Observable[Observable[T]]) Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		s := &switcher[T]{out: newSerializer(o)}
		s.outer = subscription.NewSerial()
		s.inner = subscription.NewSerial()
		handle := subscription.NewComposite(s.outer, s.inner)
		s.handle = handle
		in := newSink(cancelledFunc(handle.IsUnsubscribed), s.next, s.outerError, s.outerCompleted)
		s.outer.Set(subscribeTo(sources, in))
		return handle
	})
}

// SwitchMap maps every value to an Observable and switches to it.
func SwitchMap[T, R any](src Observable[T], fn func(T) Observable[R]) Observable[R] {
	return Switch(Map(src, fn))
}

type switcher[T any] struct {
	out    *serializer[T]
	outer  *subscription.Serial
	inner  *subscription.Serial
	handle *subscription.Composite

	mu         sync.Mutex
	latest     uint64
	hasInner   bool
	outerDone  bool
	terminated bool
}

func (s *switcher[T]) next(src Observable[T]) {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.latest++
	id := s.latest
	s.hasInner = true
	s.mu.Unlock()

	// The slot is installed before subscribing, so a synchronous inner
	// cannot be cancelled by its own installation.
	slot := subscription.NewSerial()
	s.inner.Set(slot)
	in := newSink(cancelledFunc(func() bool { return !s.isLatest(id) }),
		func(v T) { s.innerNext(id, v) },
		func(err error) { s.innerError(id, err) },
		func() { s.innerCompleted(id) },
	)
	slot.Set(subscribeTo(src, in))
}

func (s *switcher[T]) isLatest(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return id == s.latest && !s.terminated
}

func (s *switcher[T]) innerNext(id uint64, v T) {
	s.mu.Lock()
	if id != s.latest || s.terminated {
		s.mu.Unlock()
		return
	}
	_, flush := s.out.enqueue(NextNotification(v))
	s.mu.Unlock()
	if flush {
		s.out.drain()
	}
}

func (s *switcher[T]) innerError(id uint64, err error) {
	s.mu.Lock()
	if id != s.latest || s.terminated {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.terminate(ErrorNotification[T](err))
}

func (s *switcher[T]) innerCompleted(id uint64) {
	s.mu.Lock()
	if id != s.latest || s.terminated {
		s.mu.Unlock()
		return
	}
	s.hasInner = false
	finish := s.outerDone
	s.mu.Unlock()
	if finish {
		s.terminate(CompletedNotification[T]())
	}
}

func (s *switcher[T]) outerError(err error) {
	s.terminate(ErrorNotification[T](err))
}

func (s *switcher[T]) outerCompleted() {
	s.mu.Lock()
	s.outerDone = true
	finish := !s.hasInner
	s.mu.Unlock()
	if finish {
		s.terminate(CompletedNotification[T]())
	}
}

func (s *switcher[T]) terminate(n Notification[T]) {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.terminated = true
	_, flush := s.out.enqueue(n)
	s.mu.Unlock()
	if flush {
		s.out.drain()
	}
	s.handle.Unsubscribe()
}
