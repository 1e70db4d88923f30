// Package blocking bridges push-based rx.Observable streams to ordinary
// blocking Go code.
//
// Every adapter subscribes through the same enforcement wrapper as any other
// caller-supplied observer, so a misbehaving producer cannot deliver signals
// out of grammar. When an adapter has what it needs it cancels its
// subscription; synchronous producers notice through IsUnsubscribed and stop.
//
// # Single Results
//
//	v, err := blocking.First(ctx, src)
//	if errors.Is(err, blocking.ErrEmpty) {
//		// src completed without values
//	}
//
// Last, Single and ToSlice follow the same shape. A done context interrupts
// the wait and its error is returned.
//
// # Iteration
//
//	for v, err := range blocking.All(ctx, src) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(v)
//	}
//
// Iterate exposes the same as an explicit Iterator with Next, Value, Err and
// Close.
//
// # Futures
//
//	f := blocking.ToFuture(src)
//	// Do other work...
//	v, err := f.AwaitWithTimeout(time.Second)
//	if errors.Is(err, blocking.ErrTimeout) {
//		f.Cancel()
//	}
package blocking
