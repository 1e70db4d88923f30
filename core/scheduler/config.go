package scheduler

import "time"

// Config holds event loop settings.
// Designed for environment-based configuration via the config package.
type Config struct {
	ShutdownTimeout time.Duration `env:"RX_SCHEDULER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig returns the defaults used when no environment is present.
func DefaultConfig() Config {
	return Config{
		ShutdownTimeout: 30 * time.Second,
	}
}

// NewEventLoopFromConfig creates an EventLoop from cfg.
// Additional options override config values; zero values keep the defaults.
func NewEventLoopFromConfig(cfg Config, opts ...EventLoopOption) *EventLoop {
	all := append([]EventLoopOption{
		WithShutdownTimeout(cfg.ShutdownTimeout),
	}, opts...)

	return NewEventLoop(all...)
}
