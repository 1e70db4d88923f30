package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logger settings loaded from the environment.
type Config struct {
	Level  string `env:"RX_LOG_LEVEL" envDefault:"info"`
	Format string `env:"RX_LOG_FORMAT" envDefault:"text"`
}

// Option configures the logger built by New.
type Option func(*options)

type options struct {
	level   slog.Level
	json    bool
	output  io.Writer
	attrs  []slog.Attr
}

// New builds a *slog.Logger. Defaults: text format, info level, stdout.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	ho := slog.HandlerOptions{Level: o.level}

	var h slog.Handler
	if o.json {
		h = slog.NewJSONHandler(o.output, &ho)
	} else {
		h = slog.NewTextHandler(o.output, &ho)
	}
	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}

	return slog.New(h)
}

// NewFromConfig builds a logger from cfg. Additional options override config values.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	all := []Option{WithLevel(ParseLevel(cfg.Level)), WithTextFormatter()}
	if strings.EqualFold(cfg.Format, "json") {
		all = append(all, WithJSONFormatter())
	}
	return New(append(all, opts...)...)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn and error to slog levels.
// Unknown values map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithJSONFormatter selects the JSON handler.
func WithJSONFormatter() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithTextFormatter selects the text handler.
func WithTextFormatter() Option {
	return func(o *options) {
		o.json = false
	}
}

// WithOutput sets the destination writer. Nil is ignored.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// WithDevelopment configures text output at debug level tagged with the service name.
func WithDevelopment(service string) Option {
	return func(o *options) {
		o.level = slog.LevelDebug
		o.json = false
		o.attrs = append(o.attrs, slog.String("service", service))
	}
}
