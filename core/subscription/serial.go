package subscription

import "sync"

// Serial holds a single current handle that can be swapped while the session
// is live. The zero value is ready to use.
type Serial struct {
	mu      sync.Mutex
	current Subscription
	done    bool
}

// NewSerial returns an empty Serial.
func NewSerial() *Serial {
	return &Serial{}
}

// Set makes s the current handle and unsubscribes the previous one.
// If the Serial is already unsubscribed, s is unsubscribed immediately.
func (ss *Serial) Set(s Subscription) {
	unsubscribe(ss.Swap(s))
}

// Swap makes s the current handle and returns the previous one without
// unsubscribing it. If the Serial is already unsubscribed, s is unsubscribed
// immediately and nil is returned.
func (ss *Serial) Swap(s Subscription) Subscription {
	ss.mu.Lock()
	if ss.done {
		ss.mu.Unlock()
		unsubscribe(s)
		return nil
	}
	prev := ss.current
	ss.current = s
	ss.mu.Unlock()
	return prev
}

// Get returns the current handle, or nil.
func (ss *Serial) Get() Subscription {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.current
}

// Unsubscribe captures and clears the current handle, then unsubscribes
// exactly that handle.
func (ss *Serial) Unsubscribe() {
	ss.mu.Lock()
	if ss.done {
		ss.mu.Unlock()
		return
	}
	ss.done = true
	current := ss.current
	ss.current = nil
	ss.mu.Unlock()

	unsubscribe(current)
}

// IsUnsubscribed reports whether Unsubscribe has been called.
func (ss *Serial) IsUnsubscribed() bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.done
}
