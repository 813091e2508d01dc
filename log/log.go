package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger writes leveled, structured records.
//
// A Logger is an immutable value and safe for concurrent use. The zero
// Logger discards everything.
type Logger struct {
	handler slog.Handler
	config
}

// Make returns a Logger writing to w, configured by opts applied over
// [WithDefaults].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{handler: cfg.handler(), config: cfg}
}

// Wrap returns a copy of l reconfigured by opts. Attributes added with
// [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := l.config
	if l.handler == nil {
		cfg = makeConfig(nil)
	}

	cfg = apply(cfg, opts...)

	return Logger{handler: cfg.handler(), config: cfg}
}

// With returns a copy of l that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.handler == nil || len(attrs) == 0 {
		return l
	}

	l.handler = l.handler.WithAttrs(attrs)

	return l
}

// Level returns the minimum level written.
func (l Logger) Level() Level {
	if l.handler == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the record encoding.
func (l Logger) Format() Format {
	if l.handler == nil {
		return DefaultFormat
	}

	return l.format
}

// Enabled reports whether a record at level would be written.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	return l.handler != nil && l.handler.Enabled(ctx, slog.Level(level))
}

// Slog returns an [slog.Logger] sharing l's handler.
func (l Logger) Slog() *slog.Logger {
	if l.handler == nil {
		return slog.New(slog.DiscardHandler)
	}

	return slog.New(l.handler)
}

// TraceContext logs at [LevelTrace].
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs)
}

// DebugContext logs at [LevelDebug].
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs)
}

// InfoContext logs at [LevelInfo].
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs)
}

// WarnContext logs at [LevelWarn].
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs)
}

// ErrorContext logs at [LevelError].
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs)
}

// Trace logs at [LevelTrace] using [DefaultContextProvider].
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelTrace, msg, attrs)
}

// Debug logs at [LevelDebug] using [DefaultContextProvider].
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelDebug, msg, attrs)
}

// Info logs at [LevelInfo] using [DefaultContextProvider].
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelInfo, msg, attrs)
}

// Warn logs at [LevelWarn] using [DefaultContextProvider].
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelWarn, msg, attrs)
}

// Error logs at [LevelError] using [DefaultContextProvider].
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelError, msg, attrs)
}

// callerSkip is the number of frames between runtime.Callers and the code
// that called a logging method or package-level function.
const callerSkip = 4

func (l Logger) log(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	l.logDepth(ctx, callerSkip, level, msg, attrs)
}

func (l Logger) logDepth(
	ctx context.Context,
	skip int,
	level Level,
	msg string,
	attrs []slog.Attr,
) {
	if !l.Enabled(ctx, level) {
		return
	}

	var pc uintptr

	if l.caller {
		var pcs [1]uintptr

		runtime.Callers(skip, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pc)
	r.AddAttrs(attrs...)

	_ = l.handler.Handle(ctx, r)
}
