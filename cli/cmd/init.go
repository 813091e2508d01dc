package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/srcfile/log"
	"github.com/ardnew/srcfile/profile"
	"github.com/ardnew/srcfile/source"
)

// configFileMode is the permission of a written configuration file.
const configFileMode os.FileMode = 0o600

// Init writes the current global flag values to the configuration file.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file." short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Wrap(fmt.Errorf("no command context"))
	}

	path := kongVar(ctx, ConfigIdentifier, "")
	if path == "" {
		return ErrWriteConfig.Wrap(fmt.Errorf("configuration path undefined"))
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !i.Force {
		flag |= os.O_EXCL
	}

	file, err := os.OpenFile(path, flag, configFileMode)
	if err != nil {
		if os.IsExist(err) {
			err = ErrFileExists
		}

		return ErrWriteConfig.
			With(slog.String("path", path)).
			Wrap(err)
	}
	defer file.Close()

	vars := flagVars(ktx)

	if err := vars.FormatEnv(file); err != nil {
		return ErrWriteConfig.
			With(slog.String("path", path)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", path),
		slog.Int("count", len(vars)),
	)

	return nil
}

// configName returns the configuration key of a flag: "log-level" is
// written as LOG_LEVEL and read back as log_level.
func configName(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// flagVars collects the persistent global flags and their current values.
func flagVars(ktx *kong.Context) source.Vars {
	skip := []string{"help", "version", profile.Tag}

	vars := make(source.Vars)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(skip, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val, ok := flagValue(ktx.FlagValue(flag)); ok {
			vars[configName(flag.Name)] = val
		}
	}

	return vars
}

// flagValue converts a parsed flag value. Empty values are omitted.
func flagValue(v any) (source.Value, bool) {
	switch v := v.(type) {
	case nil:
		return source.Value{}, false

	case bool:
		return source.Bool(v), true

	case []string:
		if len(v) == 0 {
			return source.Value{}, false
		}

		elems := make([]source.Value, len(v))
		for i, s := range v {
			elems[i] = source.Text(s)
		}

		return source.List(elems...), true

	default:
		s := fmt.Sprint(v)
		if s == "" {
			return source.Value{}, false
		}

		return source.Text(s), true
	}
}
