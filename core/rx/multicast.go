package rx

import (
	"sync"

	"github.com/dmitrymomot/reactive/core/subscription"
)

// Connectable shares one subscription to a source among many subscribers
// through a Subject. The source is not subscribed until Connect is called.
type Connectable[T any] struct {
	source  Observable[T]
	subject Subject[T]

	mu         sync.Mutex
	connection subscription.Subscription

	refMu   sync.Mutex
	refs    int
	refConn subscription.Subscription
}

// Multicast returns a Connectable that feeds subject from src. The same
// subject serves every connection, so once src terminates the Connectable
// stays terminated.
func Multicast[T any](src Observable[T], subject Subject[T]) *Connectable[T] {
	return &Connectable[T]{source: src, subject: subject}
}

// Publish multicasts src through a PublishSubject.
func Publish[T any](src Observable[T], opts ...SubjectOption) *Connectable[T] {
	return Multicast[T](src, NewPublishSubject[T](opts...))
}

// Replay multicasts src through a ReplaySubject.
func Replay[T any](src Observable[T], opts ...SubjectOption) *Connectable[T] {
	return Multicast[T](src, NewReplaySubject[T](opts...))
}

// Share is Publish(src).RefCount().
func Share[T any](src Observable[T]) Observable[T] {
	return Publish(src).RefCount()
}

// Subscribe attaches o to the subject without connecting.
func (c *Connectable[T]) Subscribe(o Observer[T]) subscription.Subscription {
	return c.subject.Subscribe(o)
}

func (*Connectable[T]) trustedSource() {}

// Connect subscribes the subject to the source. While connected, further
// calls return the same handle. Unsubscribing the handle disconnects.
func (c *Connectable[T]) Connect() subscription.Subscription {
	c.mu.Lock()
	if c.connection != nil {
		conn := c.connection
		c.mu.Unlock()
		return conn
	}
	upstream := subscription.NewSerial()
	var conn subscription.Subscription
	conn = subscription.New(func() {
		c.mu.Lock()
		if c.connection == conn {
			c.connection = nil
		}
		c.mu.Unlock()
		upstream.Unsubscribe()
	})
	c.connection = conn
	c.mu.Unlock()

	upstream.Set(subscribeTo[T](c.source, c.subject))
	return conn
}

// RefCount returns an Observable that connects when its first subscriber
// attaches and disconnects when the last one detaches.
func (c *Connectable[T]) RefCount() Observable[T] {
	return newObservable(func(o Observer[T]) subscription.Subscription {
		inner := c.subject.Subscribe(o)

		c.refMu.Lock()
		c.refs++
		first := c.refs == 1
		c.refMu.Unlock()

		if first {
			conn := c.Connect()
			c.refMu.Lock()
			if c.refs == 0 {
				c.refMu.Unlock()
				conn.Unsubscribe()
			} else {
				c.refConn = conn
				c.refMu.Unlock()
			}
		}

		return subscription.New(func() {
			inner.Unsubscribe()
			c.refMu.Lock()
			c.refs--
			var conn subscription.Subscription
			if c.refs == 0 {
				conn, c.refConn = c.refConn, nil
			}
			c.refMu.Unlock()
			if conn != nil {
				conn.Unsubscribe()
			}
		})
	})
}
