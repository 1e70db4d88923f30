package scheduler

import (
	"time"

	"github.com/dmitrymomot/reactive/core/subscription"
)

// Scheduler decides which execution context runs a unit of work.
type Scheduler interface {
	// Schedule runs work as soon as possible.
	Schedule(work func()) subscription.Subscription

	// ScheduleAfter runs work once delay has elapsed.
	ScheduleAfter(delay time.Duration, work func()) subscription.Subscription

	// Now returns the scheduler's notion of the current time.
	Now() time.Time
}

type immediate struct{}

// Immediate returns a scheduler that runs work inline on the calling goroutine.
// Delayed work blocks the caller for the delay.
func Immediate() Scheduler {
	return immediate{}
}

func (immediate) Schedule(work func()) subscription.Subscription {
	work()
	return subscription.Empty()
}

func (immediate) ScheduleAfter(delay time.Duration, work func()) subscription.Subscription {
	if delay > 0 {
		time.Sleep(delay)
	}
	work()
	return subscription.Empty()
}

func (immediate) Now() time.Time {
	return time.Now()
}

type goroutine struct{}

// NewGoroutine returns a scheduler that runs each unit of work on a new goroutine.
// Work scheduled separately carries no ordering guarantee.
func NewGoroutine() Scheduler {
	return goroutine{}
}

func (goroutine) Schedule(work func()) subscription.Subscription {
	handle := subscription.NewBoolean()
	go func() {
		if !handle.IsUnsubscribed() {
			work()
		}
	}()
	return handle
}

func (goroutine) ScheduleAfter(delay time.Duration, work func()) subscription.Subscription {
	handle := subscription.NewBoolean()
	timer := time.AfterFunc(delay, func() {
		if !handle.IsUnsubscribed() {
			work()
		}
	})
	return subscription.New(func() {
		handle.Unsubscribe()
		timer.Stop()
	})
}

func (goroutine) Now() time.Time {
	return time.Now()
}
