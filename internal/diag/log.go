package diag

import (
	"log/slog"
	"sync/atomic"
)

// logger holds a custom logger set through SetLogger. Nil means fall back to
// the cached default.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches slog.Default() with the component attribute. A later
// slog.SetDefault is only picked up after SetLogger(nil).
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the package-level logger. Safe for concurrent use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := slog.Default().With("component", "vectorx")
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// SetLogger replaces the package-level logger. A nil l resets to
// slog.Default() with the component attribute, re-derived on next use.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
