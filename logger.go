package flatten

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records, Enabled returns false so that messages are never formatted.
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

// SetLogger sets the logger used by Flatten. By default nothing is logged, pass nil to restore that.
//
// Log levels used:
//   - [slog.LevelDebug]: every flattened element and its transform
//   - [slog.LevelWarn]: elements that cannot be flattened and unresolved references
//   - [slog.LevelError]: elements with malformed attributes or unsupported transforms
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
