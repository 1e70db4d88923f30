package scheduler

import (
	"log/slog"
	"time"
)

// EventLoopOption configures an EventLoop.
type EventLoopOption func(*eventLoopOptions)

type eventLoopOptions struct {
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// WithShutdownTimeout configures how long Close waits for queued work to drain.
func WithShutdownTimeout(d time.Duration) EventLoopOption {
	return func(o *eventLoopOptions) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithLogger configures structured logging for the loop.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(logger *slog.Logger) EventLoopOption {
	return func(o *eventLoopOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
