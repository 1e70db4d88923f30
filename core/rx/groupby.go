package rx

import (
	"sync"

	"github.com/dmitrymomot/reactive/core/logger"
	"github.com/dmitrymomot/reactive/core/subscription"
)

// GroupedObservable is the sub-stream of one key produced by GroupBy.
type GroupedObservable[K comparable, V any] interface {
	Observable[V]
	Key() K
}

// GroupBy partitions src by key. See GroupByMap.
func GroupBy[T any, K comparable](src Observable[T], key func(T) K) Observable[GroupedObservable[K, T]] {
	return GroupByMap(src, key, func(v T) T { return v })
}

// GroupByMap partitions src by key, emitting one GroupedObservable the
// first time each key is seen. Values are routed to their group after
// being transformed with elem. The group of a key stays open until src
// terminates, until every subscriber of the group has detached, or until
// the upstream is released. When a group's subscribers detach the group
// completes and the next value with that key opens a fresh group.
//
// The upstream subscription outlives the downstream one: it is cancelled
// only after the downstream and every group subscriber have detached. A
// panic in key or elem fails every group and the downstream.
func GroupByMap[T any, K comparable, V any](src Observable[T], key func(T) K, elem func(T) V) Observable[GroupedObservable[K, V]] {
	return newObservable(func(o Observer[GroupedObservable[K, V]]) subscription.Subscription {
		g := &grouper[T, K, V]{
			key:      key,
			elem:     elem,
			out:      o,
			groups:   make(map[K]*group[K, V]),
			upstream: subscription.NewSerial(),
		}
		g.refs = subscription.NewRefCount(subscription.New(g.release))
		in := newSink(cancelledFunc(g.cancelled), g.next, g.error, g.completed)
		g.in = in
		g.upstream.Set(subscribeTo(src, in))
		return subscription.New(g.detachDownstream)
	})
}

type grouper[T any, K comparable, V any] struct {
	key      func(T) K
	elem     func(T) V
	out      Observer[GroupedObservable[K, V]]
	in       *sink[T]
	upstream *subscription.Serial
	refs     *subscription.RefCount

	mu           sync.Mutex
	groups       map[K]*group[K, V]
	noMoreGroups bool
}

type group[K comparable, V any] struct {
	key     K
	subject *PublishSubject[V]
	owner   interface{ detach(*group[K, V]) }
	refs    *subscription.RefCount

	mu       *sync.Mutex // the owner's, guards attached and retired
	attached int
	retired  bool
}

func (g *grouper[T, K, V]) next(v T) {
	k, err := call(func() (K, error) { return g.key(v), nil })
	if err != nil {
		g.fail(err)
		return
	}
	e, err := call(func() (V, error) { return g.elem(v), nil })
	if err != nil {
		g.fail(err)
		return
	}

	g.mu.Lock()
	grp, ok := g.groups[k]
	if !ok && isUnsubscribed(g.out) {
		g.mu.Unlock()
		g.detachDownstream()
		return
	}
	if !ok {
		if g.noMoreGroups {
			g.mu.Unlock()
			return
		}
		grp = &group[K, V]{
			key:     k,
			subject: NewPublishSubject[V](),
			owner:   g,
			refs:    g.refs,
			mu:      &g.mu,
		}
		g.groups[k] = grp
	}
	g.mu.Unlock()

	if !ok {
		g.out.OnNext(grp)
	}
	grp.subject.OnNext(e)
}

func (g *grouper[T, K, V]) fail(err error) {
	g.in.stop()
	g.upstream.Unsubscribe()
	g.error(err)
}

func (g *grouper[T, K, V]) error(err error) {
	for _, grp := range g.closeAll() {
		grp.subject.OnError(err)
	}
	g.out.OnError(err)
}

func (g *grouper[T, K, V]) completed() {
	for _, grp := range g.closeAll() {
		grp.subject.OnCompleted()
	}
	g.out.OnCompleted()
}

func (g *grouper[T, K, V]) closeAll() []*group[K, V] {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*group[K, V], 0, len(g.groups))
	for _, grp := range g.groups {
		grp.retired = true
		out = append(out, grp)
	}
	clear(g.groups)
	g.noMoreGroups = true
	return out
}

// cancelled reports whether a synchronous upstream may stop. A downstream
// that finished on its own counts as detached.
func (g *grouper[T, K, V]) cancelled() bool {
	if !g.refs.IsUnsubscribed() && isUnsubscribed(g.out) {
		g.detachDownstream()
	}
	return g.refs.IsReleased()
}

// release runs once the downstream and every group subscriber are gone.
// Groups that were announced but never subscribed complete here, so a late
// subscriber sees a terminal instead of waiting forever.
func (g *grouper[T, K, V]) release() {
	for _, grp := range g.closeAll() {
		grp.subject.OnCompleted()
	}
	g.upstream.Unsubscribe()
}

// detachDownstream stops announcing new groups and drops the downstream's
// claim on the upstream. Existing groups keep flowing.
func (g *grouper[T, K, V]) detachDownstream() {
	g.mu.Lock()
	g.noMoreGroups = true
	g.mu.Unlock()
	g.refs.Unsubscribe()
}

func (g *grouper[T, K, V]) detach(grp *group[K, V]) {
	g.mu.Lock()
	grp.attached--
	retire := grp.attached == 0 && !grp.retired
	if retire {
		grp.retired = true
		if g.groups[grp.key] == grp {
			delete(g.groups, grp.key)
		}
	}
	g.mu.Unlock()
	if retire {
		log().Debug("rx: group retired", logger.Operator("group_by"), logger.Key("key", grp.key))
		grp.subject.OnCompleted()
	}
}

func (g *group[K, V]) Key() K { return g.key }

func (g *group[K, V]) Subscribe(o Observer[V]) subscription.Subscription {
	g.mu.Lock()
	if g.retired {
		g.mu.Unlock()
		return g.subject.Subscribe(o)
	}
	g.attached++
	g.mu.Unlock()

	claim := g.refs.Get()
	inner := g.subject.Subscribe(o)
	return subscription.New(func() {
		inner.Unsubscribe()
		g.owner.detach(g)
		claim.Unsubscribe()
	})
}

func (*group[K, V]) trustedSource() {}
