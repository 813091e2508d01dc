// Package log is a small leveled logger over [log/slog].
//
// A [Logger] is an immutable value configured with functional options when
// it is made. The zero Logger discards everything, so structures may embed
// one without initializing it.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("kitchen"))
//
//	logger = logger.With(slog.String("path", path))
//	logger.Debug("reading file")
//
// Attributes are always [slog.Attr] values; there is no key-value shorthand.
//
// # Levels
//
// In addition to slog's four levels the package defines [LevelTrace],
// used for per-item detail that is rarely wanted.
//
// # Formats
//
// [FormatText] and [FormatJSON] use slog's handlers unless pretty output is
// enabled with [WithPretty] (the default). Pretty text is colored when the
// output is a terminal; pretty JSON is indented.
//
// # Package-level logging
//
// Functions such as [Info] and [DebugContext] write to a package-level
// Logger that initially writes text to standard error. Replace it with
// [SetDefault] or reconfigure it in place with [Config].
package log
