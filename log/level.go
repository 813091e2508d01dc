package log

import (
	"iter"
	"log/slog"
	"strconv"
	"strings"
)

// Level is the severity of a log message.
type Level slog.Level

// Trace sits one step below slog's Debug.
const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// DefaultLevel is used when no level, or an unrecognized one, is given.
const DefaultLevel = LevelInfo

var levelName = map[Level]string{
	LevelTrace: "trace",
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// String returns the lower-case name of a defined level, or the slog
// rendering (e.g. "INFO+2") of any other value.
func (l Level) String() string {
	if s, ok := levelName[l]; ok {
		return s
	}

	return slog.Level(l).String()
}

// Levels returns an iterator over the names of all defined levels, from
// most to least verbose.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range []Level{
			LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError,
		} {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel returns the level named by s. Besides "trace" it accepts
// anything [slog.Level.UnmarshalText] does, such as "warn" or "info+2".
// Unrecognized input yields [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "trace") {
		return LevelTrace
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format is the encoding of log records.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is used when no format, or an unrecognized one, is given.
const DefaultFormat = FormatText

// String returns "text" or "json".
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// Formats returns an iterator over the names of all defined formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatText, FormatJSON} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format named by s, ignoring case.
// Unrecognized input yields [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return DefaultFormat
	}
}
