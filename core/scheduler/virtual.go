package scheduler

import (
	"container/heap"
	"sync"
	"time"

	"github.com/dmitrymomot/reactive/core/subscription"
)

// Virtual is a scheduler whose clock only moves when told to.
// Work runs on the goroutine that advances the clock.
type Virtual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue virtualQueue
}

// NewVirtual returns a virtual scheduler starting at the Unix epoch.
func NewVirtual() *Virtual {
	return &Virtual{now: time.Unix(0, 0).UTC()}
}

// Schedule queues work at the current virtual time.
func (v *Virtual) Schedule(work func()) subscription.Subscription {
	return v.ScheduleAfter(0, work)
}

// ScheduleAfter queues work at the current virtual time plus delay.
func (v *Virtual) ScheduleAfter(delay time.Duration, work func()) subscription.Subscription {
	if delay < 0 {
		delay = 0
	}

	v.mu.Lock()
	v.seq++
	item := &virtualItem{due: v.now.Add(delay), seq: v.seq, work: work}
	heap.Push(&v.queue, item)
	v.mu.Unlock()

	return item
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// AdvanceBy moves the clock forward by d, running everything due on the way.
func (v *Virtual) AdvanceBy(d time.Duration) {
	v.AdvanceTo(v.Now().Add(d))
}

// AdvanceTo moves the clock to t, running everything due on the way in due
// order. Work scheduled by running work is honoured if it falls due by t.
func (v *Virtual) AdvanceTo(t time.Time) {
	for {
		v.mu.Lock()
		if v.queue.Len() == 0 || v.queue[0].due.After(t) {
			if t.After(v.now) {
				v.now = t
			}
			v.mu.Unlock()
			return
		}
		item := heap.Pop(&v.queue).(*virtualItem)
		if item.due.After(v.now) {
			v.now = item.due
		}
		v.mu.Unlock()

		if !item.IsUnsubscribed() {
			item.work()
		}
	}
}

// Pending returns the number of queued work units, cancelled ones included.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.queue.Len()
}

type virtualItem struct {
	subscription.Boolean

	due  time.Time
	seq  uint64
	work func()
}

// virtualQueue orders by due time, then by submission order.
type virtualQueue []*virtualItem

func (q virtualQueue) Len() int { return len(q) }

func (q virtualQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q virtualQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *virtualQueue) Push(x any) { *q = append(*q, x.(*virtualItem)) }

func (q *virtualQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
