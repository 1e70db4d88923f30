package rx_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/reactive/core/rx"
)

func TestPublishSubject_LateSubscriberSeesOnlyLaterValues(t *testing.T) {
	t.Parallel()

	s := rx.NewPublishSubject[int](rx.WithSubjectLogger(slogt.New(t)))
	early := &recorder[int]{}
	s.Subscribe(early)

	s.OnNext(1)
	late := &recorder[int]{}
	s.Subscribe(late)
	s.OnNext(2)
	s.OnCompleted()

	assert.Equal(t, []int{1, 2}, early.Values())
	assert.Equal(t, []int{2}, late.Values())
	assert.True(t, early.Completed())
	assert.True(t, late.Completed())
}

func TestPublishSubject_SubscribeAfterTerminal(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	s := rx.NewPublishSubject[int]()
	s.OnNext(1)
	s.OnError(errBoom)
	s.OnNext(2)
	s.OnCompleted()

	rec := &recorder[int]{}
	sub := s.Subscribe(rec)

	assert.Empty(t, rec.Values())
	assert.ErrorIs(t, rec.Err(), errBoom)
	assert.Equal(t, 1, rec.Terminals())
	assert.True(t, sub.IsUnsubscribed())
	assert.True(t, s.IsTerminated())
	assert.False(t, s.HasObservers())
}

func TestPublishSubject_Unsubscribe(t *testing.T) {
	t.Parallel()

	s := rx.NewPublishSubject[int]()
	rec := &recorder[int]{}
	sub := s.Subscribe(rec)
	require.True(t, s.HasObservers())

	s.OnNext(1)
	sub.Unsubscribe()
	sub.Unsubscribe()
	s.OnNext(2)

	assert.Equal(t, []int{1}, rec.Values())
	assert.False(t, s.HasObservers())
	assert.True(t, sub.IsUnsubscribed())
}

func TestPublishSubject_UnsubscribeDuringDelivery(t *testing.T) {
	t.Parallel()

	s := rx.NewPublishSubject[int]()
	var values []int
	var sub interface{ Unsubscribe() }
	sub = rx.Subscribe[int](s, func(v int) {
		values = append(values, v)
		sub.Unsubscribe()
	}, nil, nil)
	other := &recorder[int]{}
	s.Subscribe(other)

	s.OnNext(1)
	s.OnNext(2)

	assert.Equal(t, []int{1}, values)
	assert.Equal(t, []int{1, 2}, other.Values())
}

func TestPublishSubject_ConcurrentPushes(t *testing.T) {
	t.Parallel()

	const writers, perWriter = 8, 500
	s := rx.NewPublishSubject[int]()

	var inFlight, overlaps atomic.Int32
	var mu sync.Mutex
	sum, count := 0, 0
	rx.Subscribe[int](s, func(v int) {
		if inFlight.Add(1) > 1 {
			overlaps.Add(1)
		}
		mu.Lock()
		sum += v
		count++
		mu.Unlock()
		inFlight.Add(-1)
	}, nil, nil)

	var g errgroup.Group
	for range writers {
		g.Go(func() error {
			for i := 1; i <= perWriter; i++ {
				s.OnNext(i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	s.OnCompleted()

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, overlaps.Load())
	assert.Equal(t, writers*perWriter, count)
	assert.Equal(t, writers*perWriter*(perWriter+1)/2, sum)
}

func TestReplaySubject_EverySubscriberSeesTheSameSequence(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	s := rx.NewReplaySubject[string](rx.WithSubjectLogger(slogt.New(t)))

	before := &recorder[string]{}
	s.Subscribe(before)
	s.OnNext("a")
	s.OnNext("b")

	middle := &recorder[string]{}
	s.Subscribe(middle)
	s.OnNext("c")
	s.OnError(errBoom)
	s.OnNext("ignored")

	after := &recorder[string]{}
	sub := s.Subscribe(after)

	for _, rec := range []*recorder[string]{before, middle, after} {
		assert.Equal(t, []string{"a", "b", "c"}, rec.Values())
		assert.ErrorIs(t, rec.Err(), errBoom)
		assert.Equal(t, 1, rec.Terminals())
	}
	assert.True(t, sub.IsUnsubscribed())
	assert.Equal(t, []string{"a", "b", "c"}, s.Values())
}

func TestReplaySubject_Limit(t *testing.T) {
	t.Parallel()

	s := rx.NewReplaySubject[int](rx.WithReplayLimit(2))
	for i := range 5 {
		s.OnNext(i)
	}

	rec := &recorder[int]{}
	s.Subscribe(rec)
	s.OnNext(5)

	assert.Equal(t, []int{3, 4, 5}, rec.Values())
	assert.Equal(t, []int{4, 5}, s.Values())
}

func TestReplaySubject_StopsReplayWhenSubscriberLeaves(t *testing.T) {
	t.Parallel()

	s := rx.NewReplaySubject[int]()
	for i := range 10 {
		s.OnNext(i)
	}

	rec := &recorder[int]{}
	rx.Take[int](s, 3).Subscribe(rec)
	assert.Equal(t, []int{0, 1, 2}, rec.Values())
	assert.False(t, s.HasObservers())

	other := &recorder[int]{}
	sub := s.Subscribe(other)
	sub.Unsubscribe()
	s.OnNext(10)
	assert.Len(t, other.Values(), 10)
	assert.False(t, s.HasObservers())
}

func TestReplaySubject_ConcurrentPushesKeepOrder(t *testing.T) {
	t.Parallel()

	const writers, perWriter = 4, 250
	s := rx.NewReplaySubject[int]()
	live := &recorder[int]{}
	s.Subscribe(live)

	var g errgroup.Group
	for w := range writers {
		g.Go(func() error {
			for i := range perWriter {
				s.OnNext(w*perWriter + i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	s.OnCompleted()

	late := &recorder[int]{}
	s.Subscribe(late)

	assert.Len(t, live.Values(), writers*perWriter)
	assert.Equal(t, s.Values(), live.Values())
	assert.Equal(t, s.Values(), late.Values())
	assert.True(t, live.Completed())
	assert.True(t, late.Completed())
}

func TestPublishSubject_AttachRacesTerminal(t *testing.T) {
	t.Parallel()

	const rounds, attachers, pushes = 50, 16, 200
	for range rounds {
		s := rx.NewPublishSubject[int]()
		recs := make([]*recorder[int], attachers)
		for i := range recs {
			recs[i] = &recorder[int]{}
		}

		var g errgroup.Group
		g.Go(func() error {
			for i := range pushes {
				s.OnNext(i)
			}
			s.OnCompleted()
			return nil
		})
		for _, rec := range recs {
			g.Go(func() error {
				s.Subscribe(rec)
				return nil
			})
		}
		require.NoError(t, g.Wait())

		for _, rec := range recs {
			require.Equal(t, 1, rec.Terminals())
			require.True(t, rec.Completed())
			values := rec.Values()
			for i, v := range values {
				require.Equal(t, pushes-len(values)+i, v, "a subscriber sees a gap-free tail of the pushes")
			}
		}
	}
}

func TestReplaySubject_AttachDuringPushes(t *testing.T) {
	t.Parallel()

	const rounds, attachers, pushes = 50, 16, 2000
	want := make([]int, pushes)
	for i := range want {
		want[i] = i
	}

	for range rounds {
		s := rx.NewReplaySubject[int]()
		recs := make([]*recorder[int], attachers)
		for i := range recs {
			recs[i] = &recorder[int]{}
		}

		var g errgroup.Group
		g.Go(func() error {
			for i := range pushes {
				s.OnNext(i)
			}
			s.OnCompleted()
			return nil
		})
		for _, rec := range recs {
			g.Go(func() error {
				s.Subscribe(rec)
				return nil
			})
		}
		require.NoError(t, g.Wait())

		for _, rec := range recs {
			require.Equal(t, want, rec.Values())
			require.Equal(t, 1, rec.Terminals())
			require.True(t, rec.Completed())
		}
	}
}
