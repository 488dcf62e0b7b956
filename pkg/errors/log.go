package errors

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

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by chartkit and all its packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: clock mode selection, dropped ticks, stack push/pop
//   - [slog.LevelWarn]: reported errors
//   - [slog.LevelError]: recovered panics
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LogHandler is an ErrorHandler that writes to [Logger].
type LogHandler struct {
	// Verbose adds stack traces to the records.
	Verbose bool
}

// HandleError logs a ChartError at warn level.
func (h *LogHandler) HandleError(err *ChartError) {
	if err == nil {
		return
	}
	attrs := []any{slog.String("op", err.Op), slog.String("kind", err.Kind.String())}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	Logger().Warn(err.Error(), attrs...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{slog.String("op", err.Op), slog.Any("value", err.Value)}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	Logger().Error("recovered panic", attrs...)
}
