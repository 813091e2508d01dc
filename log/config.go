package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// FormatTime renders a record timestamp. An empty result drops the
// timestamp from the record.
type FormatTime func(time.Time) string

// DefaultTimeLayout is the timestamp layout used unless overridden.
const DefaultTimeLayout = time.RFC3339

const (
	// DefaultCaller disables source locations.
	DefaultCaller = false
	// DefaultPretty enables styled output.
	DefaultPretty = true
)

type config struct {
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// Option modifies a logger configuration.
type Option func(config) config

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

func makeConfig(w io.Writer, opts ...Option) config {
	return apply(config{}, append([]Option{WithDefaults(w)}, opts...)...)
}

// replaceAttr renders timestamps with formatTime and levels by name.
func (c config) replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		if t, ok := a.Value.Any().(time.Time); ok {
			s := c.formatTime(t)
			if s == "" {
				return slog.Attr{}
			}

			a.Value = slog.StringValue(s)
		}

	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(strings.ToUpper(Level(l).String()))
		}
	}

	return a
}

func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	switch {
	case c.pretty && c.format == FormatText:
		return newPrettyTextHandler(c.output, opts)
	case c.pretty && c.format == FormatJSON:
		return newPrettyJSONHandler(c.output, opts)
	case c.format == FormatText:
		return slog.NewTextHandler(c.output, opts)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	default:
		return slog.DiscardHandler
	}
}

// WithDefaults resets every setting and directs output to w
// ([io.Discard] if w is nil).
func WithDefaults(w io.Writer) Option {
	return func(config) config {
		if w == nil {
			w = io.Discard
		}

		return config{
			output:     w,
			formatTime: makeFormatTime(DefaultTimeLayout),
			level:      DefaultLevel,
			format:     DefaultFormat,
			caller:     DefaultCaller,
			pretty:     DefaultPretty,
		}
	}
}

// WithOutput directs output to w ([io.Discard] if w is nil).
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel discards messages below level.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout sets the timestamp layout.
//
// Named layouts from package time are recognized regardless of case and
// punctuation ("RFC3339", "rfc-3339-nano", "kitchen"), as are the short
// names "ms", "us", and "ns". Anything else is passed to [time.Time.Format]
// verbatim. A blank layout, or "none", omits timestamps entirely.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.formatTime = makeFormatTime(layout)

		return c
	}
}

// WithCaller includes the source location of each call.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty enables styled output: colored keys and values for text,
// indented documents for JSON. Colors are only emitted when the output is
// a terminal that supports them.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

//nolint:gochecknoglobals
var timeLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"rfc1123":     time.RFC1123,
	"rfc1123z":    time.RFC1123Z,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"dateonly":    time.DateOnly,
	"timeonly":    time.TimeOnly,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"stampnano":   time.StampNano,
	"ms":          time.StampMilli,
	"us":          time.StampMicro,
	"ns":          time.StampNano,
	"none":        "",
}

func makeFormatTime(layout string) FormatTime {
	key := strings.Map(func(r rune) rune {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			return r
		}

		return -1
	}, strings.ToLower(layout))

	if std, ok := timeLayout[key]; ok {
		layout = std
	} else if key == "" {
		layout = ""
	}

	if layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
