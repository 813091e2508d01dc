package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/srcfile/log"
)

// Source prints the typed variables of a source file.
type Source struct {
	Input `embed:""`

	Format string `default:"json" enum:"json,yaml,env" help:"Output format (${enum})."                        short:"o"`
	Indent int    `default:"0"                         help:"Indent width. Zero is compact JSON or flow YAML." short:"i"`
}

// Run executes the source command.
func (s *Source) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	res, err := s.Source(ctx)
	if err != nil {
		return ErrSource.
			With(slog.String("path", s.Path)).
			Wrap(err)
	}

	log.DebugContext(ctx, "formatting variables",
		slog.String("format", s.Format),
		slog.Int("count", len(res.Vars)),
	)

	out := stdoutFrom(ctx)

	switch s.Format {
	case "yaml":
		err = res.FormatYAML(ctx, out, s.Indent)
	case "env":
		err = res.Vars.FormatEnv(out)
	default:
		err = res.FormatJSON(ctx, out, s.Indent)
	}

	if err != nil {
		return ErrFormat.
			With(slog.String("format", s.Format)).
			Wrap(err)
	}

	return nil
}
