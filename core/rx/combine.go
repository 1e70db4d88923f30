package rx

import (
	"slices"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/dmitrymomot/reactive/core/subscription"
)

// CombineLatest emits combiner applied to the latest value of every source,
// each time any source emits, once all of them have emitted at least once.
// It completes when every source has completed, or as soon as a source
// completes without ever emitting. Any error terminates the result.
func CombineLatest[T, R any](sources []Observable[T], combiner func([]T) R) Observable[R] {
	if len(sources) == 0 {
		return Empty[R]()
	}
	return newObservable(func(o Observer[R]) subscription.Subscription {
		c := &combineState[T, R]{
			combine: combiner,
			out:     newSerializer(o),
			group:   subscription.NewComposite(),
			latest:  make([]T, len(sources)),
			has:     bitset.New(uint(len(sources))),
			done:    bitset.New(uint(len(sources))),
		}
		parent := cancelledFunc(c.group.IsUnsubscribed)
		for i, src := range sources {
			if c.group.IsUnsubscribed() {
				break
			}
			idx := i
			slot := subscription.NewSerial()
			c.group.Add(slot)
			in := newSink(parent,
				func(v T) { c.next(idx, v) },
				c.error,
				func() { c.completed(idx) },
			)
			slot.Set(subscribeTo(src, in))
		}
		return c.group
	})
}

type combineState[T, R any] struct {
	combine func([]T) R
	out     *serializer[R]
	group   *subscription.Composite

	mu     sync.Mutex
	latest []T
	has    *bitset.BitSet
	done   *bitset.BitSet
}

func (c *combineState[T, R]) next(i int, v T) {
	c.mu.Lock()
	c.latest[i] = v
	c.has.Set(uint(i))
	if !c.has.All() {
		c.mu.Unlock()
		return
	}
	snapshot := slices.Clone(c.latest)
	r, err := call(func() (R, error) { return c.combine(snapshot), nil })
	var flush bool
	if err != nil {
		_, flush = c.out.enqueue(ErrorNotification[R](err))
	} else {
		_, flush = c.out.enqueue(NextNotification(r))
	}
	c.mu.Unlock()
	if flush {
		c.out.drain()
	}
	if err != nil {
		c.group.Unsubscribe()
	}
}

func (c *combineState[T, R]) error(err error) {
	c.out.error(err)
	c.group.Unsubscribe()
}

func (c *combineState[T, R]) completed(i int) {
	c.mu.Lock()
	c.done.Set(uint(i))
	finish := c.done.All() || !c.has.Test(uint(i))
	c.mu.Unlock()
	if finish {
		c.out.completed()
		c.group.Unsubscribe()
	}
}
