// Package scheduler defines the scheduling collaborator used by the stream
// core and a few reference implementations.
//
// The core never inspects scheduler internals. It only asks a [Scheduler] to
// run a unit of work, optionally after a delay, and receives a cancellation
// handle back.
//
// # Implementations
//
//   - [Immediate]: runs work inline on the calling goroutine
//   - [NewGoroutine]: runs each unit of work on its own goroutine
//   - [NewEventLoop]: a single worker goroutine executing work in FIFO order
//   - [NewVirtual]: virtual time, advanced manually, for deterministic tests
//
// # Event Loop
//
//	loop := scheduler.NewEventLoop(
//		scheduler.WithLogger(log),
//		scheduler.WithShutdownTimeout(5*time.Second),
//	)
//	defer loop.Close(context.Background())
//
//	handle := loop.ScheduleAfter(time.Second, func() {
//		// runs on the loop goroutine
//	})
//	handle.Unsubscribe() // cancels if it has not run yet
//
// Panics raised by work are recovered and logged; the loop keeps running.
//
// Configuration from the environment:
//
//	var cfg scheduler.Config
//	config.MustLoad(&cfg)
//	loop := scheduler.NewEventLoopFromConfig(cfg)
//
// # Virtual Time
//
//	vs := scheduler.NewVirtual()
//	vs.ScheduleAfter(10*time.Second, fn)
//	vs.AdvanceBy(10 * time.Second) // fn runs here, on the calling goroutine
package scheduler
