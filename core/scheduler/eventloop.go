package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reactive/core/logger"
	"github.com/dmitrymomot/reactive/core/subscription"
)

// EventLoop runs work on a single goroutine in submission order.
type EventLoop struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []*task
	closed bool
	done   chan struct{}

	shutdownTimeout time.Duration
	logger          *slog.Logger

	executed atomic.Int64
	panicked atomic.Int64
}

// EventLoopStats provides observability metrics for monitoring and debugging.
type EventLoopStats struct {
	Executed  int64 // Work units that ran to completion or panicked
	Panicked  int64 // Work units that panicked
	Pending   int   // Work units waiting in the queue
	IsRunning bool  // Whether the loop accepts new work
}

type task struct {
	id        uuid.UUID
	work      func()
	cancelled atomic.Bool
}

func (t *task) Unsubscribe()         { t.cancelled.Store(true) }
func (t *task) IsUnsubscribed() bool { return t.cancelled.Load() }

// NewEventLoop starts an event loop goroutine.
func NewEventLoop(opts ...EventLoopOption) *EventLoop {
	options := &eventLoopOptions{
		shutdownTimeout: 30 * time.Second,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(options)
	}

	el := &EventLoop{
		done:            make(chan struct{}),
		shutdownTimeout: options.shutdownTimeout,
		logger:          options.logger,
	}
	el.cond = sync.NewCond(&el.mu)

	go el.run()

	return el
}

// Schedule queues work. Work submitted after Close is dropped and the
// returned handle is already finished.
func (el *EventLoop) Schedule(work func()) subscription.Subscription {
	t := &task{id: uuid.New(), work: work}
	if !el.enqueue(t) {
		return subscription.Empty()
	}
	return t
}

// ScheduleAfter queues work once delay has elapsed.
func (el *EventLoop) ScheduleAfter(delay time.Duration, work func()) subscription.Subscription {
	if delay <= 0 {
		return el.Schedule(work)
	}

	t := &task{id: uuid.New(), work: work}
	timer := time.AfterFunc(delay, func() {
		el.enqueue(t)
	})

	return subscription.New(func() {
		t.Unsubscribe()
		timer.Stop()
	})
}

// Now returns the wall clock time.
func (el *EventLoop) Now() time.Time {
	return time.Now()
}

// Close stops accepting work, waits for queued work to finish and stops the
// loop goroutine. It must not be called from work running on the loop.
func (el *EventLoop) Close(ctx context.Context) error {
	el.mu.Lock()
	if el.closed {
		el.mu.Unlock()
		return ErrSchedulerClosed
	}
	el.closed = true
	pending := len(el.queue)
	start := time.Now()
	el.cond.Broadcast()
	el.mu.Unlock()

	el.logger.DebugContext(ctx, "event loop stopping, draining queued work",
		logger.Component("scheduler"),
		logger.Count("pending", pending),
		logger.Duration("timeout", el.shutdownTimeout))

	ctx, cancel := context.WithTimeout(ctx, el.shutdownTimeout)
	defer cancel()

	select {
	case <-el.done:
		el.logger.DebugContext(ctx, "event loop stopped cleanly",
			logger.Component("scheduler"),
			logger.Elapsed(start))
		return nil
	case <-ctx.Done():
		el.logger.WarnContext(ctx, "event loop shutdown timeout exceeded",
			logger.Component("scheduler"),
			logger.Duration("timeout", el.shutdownTimeout),
			logger.Elapsed(start))
		return fmt.Errorf("%w after %s", ErrShutdownTimeout, el.shutdownTimeout)
	}
}

// Stats returns current loop statistics.
func (el *EventLoop) Stats() EventLoopStats {
	el.mu.Lock()
	pending := len(el.queue)
	running := !el.closed
	el.mu.Unlock()

	return EventLoopStats{
		Executed:  el.executed.Load(),
		Panicked:  el.panicked.Load(),
		Pending:   pending,
		IsRunning: running,
	}
}

func (el *EventLoop) enqueue(t *task) bool {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.closed {
		el.logger.Warn("work dropped, event loop is closed",
			logger.Component("scheduler"),
			slog.String("task_id", t.id.String()))
		return false
	}

	el.queue = append(el.queue, t)
	el.cond.Signal()
	return true
}

func (el *EventLoop) run() {
	defer close(el.done)

	for {
		el.mu.Lock()
		for len(el.queue) == 0 && !el.closed {
			el.cond.Wait()
		}
		if len(el.queue) == 0 {
			el.mu.Unlock()
			return
		}
		t := el.queue[0]
		el.queue[0] = nil
		el.queue = el.queue[1:]
		el.mu.Unlock()

		el.execute(t)
	}
}

func (el *EventLoop) execute(t *task) {
	if t.cancelled.Load() {
		return
	}

	defer el.executed.Add(1)
	defer func() {
		if r := recover(); r != nil {
			el.panicked.Add(1)
			el.logger.Error("scheduled work panicked",
				logger.Component("scheduler"),
				slog.String("task_id", t.id.String()),
				logger.Panic(r))
		}
	}()

	t.work()
}
