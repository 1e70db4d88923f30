package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactive/core/logger"
)

// ============================================================================
// Error Handling Tests
// ============================================================================

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestPanic(t *testing.T) {
	t.Parallel()
	attr := logger.Panic("kaboom")
	require.Equal(t, "panic", attr.Key)
	assert.Equal(t, "kaboom", attr.Value.String())

	empty := logger.Panic(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

// ============================================================================
// Timing Tests
// ============================================================================

func TestDuration(t *testing.T) {
	t.Parallel()
	d := 5 * time.Second
	attr := logger.Duration("timeout", d)
	require.Equal(t, "timeout", attr.Key)
	assert.Equal(t, d, attr.Value.Duration())
}

func TestElapsed(t *testing.T) {
	t.Parallel()
	start := time.Now().Add(-500 * time.Millisecond)
	attr := logger.Elapsed(start)
	require.Equal(t, "elapsed", attr.Key)
	assert.GreaterOrEqual(t, attr.Value.Duration(), 500*time.Millisecond)
}

// ============================================================================
// Stream Metadata Tests
// ============================================================================

func TestStreamAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		attr  slog.Attr
		key   string
		value string
	}{
		{name: "component", attr: logger.Component("rx"), key: "component", value: "rx"},
		{name: "operator", attr: logger.Operator("switch"), key: "operator", value: "switch"},
		{name: "subscriber", attr: logger.SubscriberID("abc"), key: "subscriber_id", value: "abc"},
		{name: "signal", attr: logger.Signal("next"), key: "signal", value: "next"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.value, tt.attr.Value.String())
		})
	}
}

func TestSubscriberID_Empty(t *testing.T) {
	t.Parallel()
	assert.True(t, logger.SubscriberID("").Equal(slog.Attr{}))
}

func TestCount(t *testing.T) {
	t.Parallel()
	attr := logger.Count("observers", 3)
	require.Equal(t, "observers", attr.Key)
	assert.Equal(t, int64(3), attr.Value.Int64())
}

func TestKey(t *testing.T) {
	t.Parallel()

	attr := logger.Key("custom", "value")
	require.Equal(t, "custom", attr.Key)
	assert.Equal(t, "value", attr.Value.Any())

	type testStruct struct {
		Name string
	}
	s := testStruct{Name: "test"}
	attr = logger.Key("data", s)
	require.Equal(t, "data", attr.Key)
	assert.Equal(t, s, attr.Value.Any())

	empty := logger.Key("key", nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

// ============================================================================
// Debugging Tests
// ============================================================================

func TestStack(t *testing.T) {
	t.Parallel()
	attr := logger.Stack([]byte("goroutine 1 [running]:"))
	require.Equal(t, "stack", attr.Key)
	assert.Equal(t, "goroutine 1 [running]:", attr.Value.String())

	assert.True(t, logger.Stack(nil).Equal(slog.Attr{}))
}
