// Package subscription provides cancellation handles and the plumbing used to
// aggregate them across multi-stream operators.
//
// A [Subscription] is a single idempotent Unsubscribe operation. Calling it
// more than once has the same effect as calling it once, and it is safe to
// call from any goroutine, including from inside the callback of the consumer
// that the handle belongs to.
//
// # Handle Types
//
//   - [New]: runs a teardown function exactly once
//   - [Empty]: an already-finished handle for streams that completed before
//     Subscribe returned
//   - [Boolean]: a flag-only handle
//   - [Serial]: holds one swappable handle; Unsubscribe captures and clears the
//     current one before cancelling it, so a cancel racing a handoff never
//     targets a stale handle
//   - [Composite]: a growing and shrinking group torn down together
//   - [RefCount]: tears down its underlying handle only once the primary owner
//     and every dependent have let go
//
// # Usage
//
//	serial := subscription.NewSerial()
//	serial.Set(first)
//
//	// Later, hand off to another stream. first is unsubscribed.
//	serial.Set(second)
//
//	// Cancels whichever handle is current at this moment.
//	serial.Unsubscribe()
//
// Reference counted teardown:
//
//	rc := subscription.NewRefCount(parent)
//	child := rc.Get()
//
//	rc.Unsubscribe()    // parent still alive, child holds a reference
//	child.Unsubscribe() // last reference gone, parent is unsubscribed
//
// # Comparability
//
// [Composite.Remove] identifies handles with ==. Every handle produced by this
// package is a pointer and therefore comparable; custom implementations added
// to a Composite must be comparable too.
package subscription
