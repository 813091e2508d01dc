package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// DefaultContextProvider supplies the context for logging calls made
// without one.
//
//nolint:gochecknoglobals
var DefaultContextProvider = context.TODO

//nolint:gochecknoglobals
var defaultLog atomic.Pointer[Logger]

func init() {
	l := Make(os.Stderr)
	defaultLog.Store(&l)
}

// Default returns the package-level Logger.
func Default() Logger { return *defaultLog.Load() }

// SetDefault replaces the package-level Logger.
func SetDefault(l Logger) { defaultLog.Store(&l) }

// Config reconfigures the package-level Logger with opts and returns it.
func Config(opts ...Option) Logger {
	l := Default().Wrap(opts...)
	SetDefault(l)

	return l
}

// With returns the package-level Logger with attrs added.
func With(attrs ...slog.Attr) Logger { return Default().With(attrs...) }

func logDefault(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	Default().logDepth(ctx, callerSkip, level, msg, attrs)
}

// TraceContext logs at [LevelTrace] with the package-level Logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelTrace, msg, attrs)
}

// DebugContext logs at [LevelDebug] with the package-level Logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelDebug, msg, attrs)
}

// InfoContext logs at [LevelInfo] with the package-level Logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelInfo, msg, attrs)
}

// WarnContext logs at [LevelWarn] with the package-level Logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelWarn, msg, attrs)
}

// ErrorContext logs at [LevelError] with the package-level Logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelError, msg, attrs)
}

// Trace logs at [LevelTrace] with the package-level Logger.
func Trace(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelTrace, msg, attrs)
}

// Debug logs at [LevelDebug] with the package-level Logger.
func Debug(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelDebug, msg, attrs)
}

// Info logs at [LevelInfo] with the package-level Logger.
func Info(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelInfo, msg, attrs)
}

// Warn logs at [LevelWarn] with the package-level Logger.
func Warn(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelWarn, msg, attrs)
}

// Error logs at [LevelError] with the package-level Logger.
func Error(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelError, msg, attrs)
}
