package scheduler

import "errors"

var (
	// ErrSchedulerClosed is returned when closing a scheduler that is already closed.
	ErrSchedulerClosed = errors.New("scheduler is closed")

	// ErrShutdownTimeout is returned when pending work did not drain in time.
	ErrShutdownTimeout = errors.New("scheduler shutdown timeout exceeded")
)
