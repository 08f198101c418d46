package sprite

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so callers skip
// building attributes for disabled levels.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger returns a logger that writes nothing.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the package logger. SetLogger may race with logging
// from other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger shared by sprite, editor, lsprite and export.
// Nothing is logged until it is called. A nil logger turns logging off
// again.
//
// Levels:
//   - [slog.LevelDebug]: internal diagnostics (history eviction, flatten fast path, fill spans)
//   - [slog.LevelInfo]: document lifecycle (new, open, save, export, tab open/close)
//   - [slog.LevelWarn]: rejected or canceled operations at the I/O edge
//
// For example, spritectl -v installs:
//
//	sprite.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger, or a silent one.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
