package rx

import (
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/reactive/core/logger"
)

var pkgLog atomic.Pointer[slog.Logger]

func init() {
	pkgLog.Store(logger.Discard())
}

// SetLogger installs the logger used for contract violations and recovered
// panics that cannot be routed to an error signal. A nil logger restores the
// default, which discards everything.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = logger.Discard()
	}
	pkgLog.Store(l)
}

func log() *slog.Logger {
	return pkgLog.Load()
}
