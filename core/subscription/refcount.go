package subscription

import "sync"

// RefCount shares one underlying handle between a primary owner and any
// number of dependents. The underlying handle is unsubscribed exactly when the
// primary has been unsubscribed and the dependent count is zero.
//
// The primary is the RefCount itself; dependents come from Get.
type RefCount struct {
	mu         sync.Mutex
	underlying Subscription
	count      int
	primary    bool // primary has been unsubscribed
	released   bool // underlying has been unsubscribed
}

// NewRefCount wraps underlying.
func NewRefCount(underlying Subscription) *RefCount {
	return &RefCount{underlying: underlying}
}

// Get returns a dependent handle. The underlying handle stays alive until
// the dependent is unsubscribed. After the underlying handle has been
// released, Get returns an already-finished handle.
func (r *RefCount) Get() Subscription {
	r.mu.Lock()
	if r.released {
		r.mu.Unlock()
		return Empty()
	}
	r.count++
	r.mu.Unlock()

	return New(r.release)
}

// Count returns the number of live dependents.
func (r *RefCount) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Unsubscribe releases the primary reference.
func (r *RefCount) Unsubscribe() {
	r.mu.Lock()
	if r.primary {
		r.mu.Unlock()
		return
	}
	r.primary = true
	s := r.takeLocked()
	r.mu.Unlock()

	unsubscribe(s)
}

// IsUnsubscribed reports whether the primary reference was released.
func (r *RefCount) IsUnsubscribed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.primary
}

// IsReleased reports whether the underlying handle has been unsubscribed.
func (r *RefCount) IsReleased() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

func (r *RefCount) release() {
	r.mu.Lock()
	r.count--
	s := r.takeLocked()
	r.mu.Unlock()

	unsubscribe(s)
}

// takeLocked returns the underlying handle if it must be released now.
func (r *RefCount) takeLocked() Subscription {
	if !r.primary || r.count > 0 || r.released {
		return nil
	}
	r.released = true
	s := r.underlying
	r.underlying = nil
	return s
}
