package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/srcfile/log"
)

// logLevel applies itself to the package logger as soon as it is parsed, so
// messages logged while parsing the rest of the command line are filtered.
type logLevel string

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(text))))

	return nil
}

// logFormat applies itself to the package logger as soon as it is parsed.
type logFormat string

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(text))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"${logLevelEnum}"  help:"Minimum level logged (${enum})."`
	Format     logFormat `default:"text"    enum:"${logFormatEnum}" help:"Log record format (${enum})."`
	TimeLayout string    `default:"RFC3339"                         help:"Timestamp layout: a time package constant name, Go layout, or 'none'."`
	Caller     bool      `default:"false"                           help:"Log the source location of each record." negatable:""`
	Pretty     bool      `default:"true"                            help:"Color text records and indent JSON records." negatable:""`
}

func (logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start configures the package logger with every parsed log flag.
func (c *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(c.Level))),
		log.WithFormat(log.ParseFormat(string(c.Format))),
		log.WithTimeLayout(c.TimeLayout),
		log.WithCaller(c.Caller),
		log.WithPretty(c.Pretty),
	)

	log.DebugContext(ctx, "logger configured",
		slog.String("level", string(c.Level)),
		slog.String("format", string(c.Format)),
		slog.String("time_layout", c.TimeLayout),
		slog.Bool("caller", c.Caller),
		slog.Bool("pretty", c.Pretty),
	)
}

// scan applies the log flags in args before kong parses them, so that the
// logger is configured however the flags are ordered. Boolean flags in
// particular never reach an UnmarshalText method.
func (c *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		negated := false
		if n, ok := strings.CutPrefix(name, "--no-log-"); ok {
			name, negated = n, true
		} else if n, ok := strings.CutPrefix(name, "--log-"); ok {
			name = n
		} else {
			continue
		}

		// value returns the flag argument, consuming the next arg if needed.
		next := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		// flag returns the state of a boolean flag, which only takes a value
		// when it is assigned one.
		flag := func() (bool, bool) {
			on := true

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					return false, false
				}

				on = v
			}

			return on != negated, true
		}

		switch name {
		case "level":
			_ = c.Level.UnmarshalText([]byte(next()))

		case "format":
			_ = c.Format.UnmarshalText([]byte(next()))

		case "time-layout":
			c.TimeLayout = next()
			log.Config(log.WithTimeLayout(c.TimeLayout))

		case "caller":
			if on, ok := flag(); ok {
				c.Caller = on
				log.Config(log.WithCaller(on))
			}

		case "pretty":
			if on, ok := flag(); ok {
				c.Pretty = on
				log.Config(log.WithPretty(on))
			}
		}
	}
}
