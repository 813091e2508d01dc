package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/srcfile/log"
	"github.com/ardnew/srcfile/source"
)

// configBooleans types only the literal words true and false as booleans so
// that numeric flag values such as 1 keep their text.
//
//nolint:gochecknoglobals
var configBooleans = source.NewBooleans([]string{"true"}, []string{"false"})

// resolve returns a [kong.ConfigurationLoader] for configuration files in
// the source file format:
//
//	LOG_LEVEL=debug
//	LOG_PRETTY=false
//
// Keys are case-insensitive and use underscores in place of the hyphens in
// flag names. A file that cannot be sourced is logged and ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		res, err := source.Read(ctx, r,
			source.WithLower(true),
			source.WithBooleans(configBooleans),
			source.WithLogger(log.Default()),
		)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file", slog.Any("error", err))

			return config{}, nil
		}

		return config(res.Vars), nil
	}
}

// config is a [kong.Resolver] over sourced configuration variables.
type config source.Vars

func (config) Validate(*kong.Application) error { return nil }

// Resolve returns the configured value of flag, or nil if there is none.
// Boolean flags accept any of [source.DefaultBooleans]; every other value is
// given to kong in its delimited text form, which kong splits for slice and
// map flags.
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	v, ok := c[strings.ReplaceAll(strings.ToLower(flag.Name), "-", "_")]
	if !ok {
		return nil, nil //nolint:nilnil
	}

	if flag.IsBool() {
		if b, ok := v.AsBool(); ok {
			return b, nil
		}

		if b, ok := source.DefaultBooleans.Lookup(v.String()); ok {
			return b, nil
		}
	}

	return v.String(), nil
}
