package subscription

import "sync"

// Composite groups handles that are torn down together.
// The zero value is ready to use.
type Composite struct {
	mu    sync.Mutex
	items []Subscription
	done  bool
}

// NewComposite returns a Composite holding subs.
func NewComposite(subs ...Subscription) *Composite {
	c := &Composite{}
	for _, s := range subs {
		c.Add(s)
	}
	return c
}

// Add appends s. If the Composite is already unsubscribed, s is unsubscribed
// immediately instead.
func (c *Composite) Add(s Subscription) {
	if s == nil {
		return
	}

	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		s.Unsubscribe()
		return
	}
	c.items = append(c.items, s)
	c.mu.Unlock()
}

// Remove detaches s from the group and unsubscribes it.
// It reports whether s was a member.
func (c *Composite) Remove(s Subscription) bool {
	if s == nil {
		return false
	}

	c.mu.Lock()
	found := false
	for i, item := range c.items {
		if item == s {
			last := len(c.items) - 1
			c.items[i] = c.items[last]
			c.items[last] = nil
			c.items = c.items[:last]
			found = true
			break
		}
	}
	c.mu.Unlock()

	if found {
		s.Unsubscribe()
	}
	return found
}

// Len returns the number of live members.
func (c *Composite) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Unsubscribe captures and clears all members, then unsubscribes each.
func (c *Composite) Unsubscribe() {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}
	c.done = true
	items := c.items
	c.items = nil
	c.mu.Unlock()

	for _, s := range items {
		s.Unsubscribe()
	}
}

// IsUnsubscribed reports whether Unsubscribe has been called.
func (c *Composite) IsUnsubscribed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}
