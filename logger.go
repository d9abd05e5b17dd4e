package xaos

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger shared by xaos and its sub-packages.
// Pass nil to restore the default silent logger.
//
// Log levels used:
//   - [slog.LevelDebug]: per-frame diagnostics (staging reallocation, ignored input)
//   - [slog.LevelInfo]: lifecycle (controller start, stop, dispose)
//   - [slog.LevelWarn]: recoverable failures (a frame that could not be rendered)
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call this instead of
// holding their own copy so that SetLogger takes effect everywhere.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
