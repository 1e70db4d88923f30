package rx

import (
	"sync"
	"time"

	"github.com/dmitrymomot/reactive/core/scheduler"
	"github.com/dmitrymomot/reactive/core/subscription"
)

func orDefault(s scheduler.Scheduler) scheduler.Scheduler {
	if s == nil {
		return scheduler.NewGoroutine()
	}
	return s
}

// ObserveOn delivers the signals of src on sched, preserving their order.
// A nil scheduler means scheduler.NewGoroutine().
func ObserveOn[T any](src Observable[T], sched scheduler.Scheduler) Observable[T] {
	sched = orDefault(sched)
	return newObservable(func(o Observer[T]) subscription.Subscription {
		q := &observeOn[T]{target: o, sched: sched}
		q.upstream = subscribeTo[T](src, newSink(cancelledFunc(q.cancelled.IsUnsubscribed), q.next, q.error, q.completed))
		return subscription.New(q.unsubscribe)
	})
}

type observeOn[T any] struct {
	target    Observer[T]
	sched     scheduler.Scheduler
	upstream  subscription.Subscription
	cancelled subscription.Boolean
	drainTask subscription.Serial

	mu        sync.Mutex
	queue     []Notification[T]
	scheduled bool
}

func (q *observeOn[T]) next(v T)        { q.push(NextNotification(v)) }
func (q *observeOn[T]) error(err error) { q.push(ErrorNotification[T](err)) }
func (q *observeOn[T]) completed()      { q.push(CompletedNotification[T]()) }

func (q *observeOn[T]) push(n Notification[T]) {
	q.mu.Lock()
	q.queue = append(q.queue, n)
	schedule := !q.scheduled
	q.scheduled = true
	q.mu.Unlock()
	if schedule {
		q.drainTask.Swap(q.sched.Schedule(q.drain))
	}
}

func (q *observeOn[T]) drain() {
	for {
		q.mu.Lock()
		if len(q.queue) == 0 || q.cancelled.IsUnsubscribed() {
			q.queue = nil
			q.scheduled = false
			q.mu.Unlock()
			return
		}
		n := q.queue[0]
		q.queue[0] = Notification[T]{}
		q.queue = q.queue[1:]
		q.mu.Unlock()
		n.Accept(q.target)
	}
}

func (q *observeOn[T]) unsubscribe() {
	q.cancelled.Unsubscribe()
	q.drainTask.Unsubscribe()
	if q.upstream != nil {
		q.upstream.Unsubscribe()
	}
}

// SubscribeOn performs the subscription to src on sched.
// A nil scheduler means scheduler.NewGoroutine().
func SubscribeOn[T any](src Observable[T], sched scheduler.Scheduler) Observable[T] {
	sched = orDefault(sched)
	return newObservable(func(o Observer[T]) subscription.Subscription {
		upstream := subscription.NewSerial()
		task := sched.Schedule(func() {
			upstream.Set(subscribeTo(src, o))
		})
		return subscription.NewComposite(task, upstream)
	})
}

// Timer emits 0 after delay on sched, then completes.
// A nil scheduler means scheduler.NewGoroutine().
func Timer(delay time.Duration, sched scheduler.Scheduler) Observable[int64] {
	sched = orDefault(sched)
	return newObservable(func(o Observer[int64]) subscription.Subscription {
		stop := subscription.NewBoolean()
		task := sched.ScheduleAfter(delay, func() {
			if stop.IsUnsubscribed() {
				return
			}
			o.OnNext(0)
			o.OnCompleted()
		})
		return subscription.NewComposite(stop, task)
	})
}

// Interval emits 0, 1, 2, ... every period on sched until unsubscribed.
// The scheduler must run delayed work asynchronously; a nil scheduler
// means scheduler.NewGoroutine().
func Interval(period time.Duration, sched scheduler.Scheduler) Observable[int64] {
	sched = orDefault(sched)
	return newObservable(func(o Observer[int64]) subscription.Subscription {
		stop := subscription.NewBoolean()
		pending := subscription.NewSerial()
		var (
			n    int64
			tick func()
		)
		tick = func() {
			if stop.IsUnsubscribed() || isUnsubscribed(o) {
				return
			}
			o.OnNext(n)
			n++
			if stop.IsUnsubscribed() {
				return
			}
			// stop ends the chain; pending only releases the next timer early.
			pending.Swap(sched.ScheduleAfter(period, tick))
		}
		pending.Swap(sched.ScheduleAfter(period, tick))
		return subscription.NewComposite(stop, pending)
	})
}
