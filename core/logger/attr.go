package logger

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// slog drops empty attributes, so log.Debug("msg", logger.Error(err)) needs no
// nil check at the call site.

// ============================================================================
// Error Handling
// ============================================================================

// Errors groups multiple non-nil errors under the key "errors".
// Uses index-based keys to preserve error order. Returns empty Attr for all nil errors.
func Errors(errs ...error) slog.Attr {
	count := 0
	for _, err := range errs {
		if err != nil {
			count++
		}
	}
	if count == 0 {
		return slog.Attr{}
	}

	as := make([]slog.Attr, 0, count)
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Panic creates an attribute for a recovered panic value under the key "panic".
// Returns empty Attr for nil values.
func Panic(v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.String("panic", fmt.Sprint(v))
}

// ============================================================================
// Timing
// ============================================================================

// Duration creates a duration attribute under key.
func Duration(key string, d time.Duration) slog.Attr {
	return slog.Duration(key, d)
}

// Elapsed calculates and logs the duration since the start time.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// ============================================================================
// Stream Metadata
// ============================================================================

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Operator creates an attribute naming the stream operator that logged.
func Operator(name string) slog.Attr {
	return slog.String("operator", name)
}

// SubscriberID creates an attribute for the identifier of one attachment.
// Returns empty Attr for an empty id.
func SubscriberID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("subscriber_id", id)
}

// Signal creates an attribute for a signal kind (next, error, completed).
func Signal(kind string) slog.Attr {
	return slog.String("signal", kind)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// ============================================================================
// Debugging
// ============================================================================

// Stack creates an attribute for a captured stack trace.
// Returns empty Attr for an empty trace.
func Stack(trace []byte) slog.Attr {
	if len(trace) == 0 {
		return slog.Attr{}
	}
	return slog.String("stack", string(trace))
}
