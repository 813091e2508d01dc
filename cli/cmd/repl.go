package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/srcfile/cli/cmd/repl"
	"github.com/ardnew/srcfile/log"
	"github.com/ardnew/srcfile/pkg"
	"github.com/ardnew/srcfile/source"
)

// Repl sources a file and starts an interactive expression prompt over its
// variables.
type Repl struct {
	Input `embed:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if r.Path == stdinPath {
		return ErrReplStdin
	}

	load := func(ctx context.Context) (source.Vars, error) {
		res, err := r.Source(ctx)
		if err != nil {
			return nil, ErrSource.
				With(slog.String("path", r.Path)).
				Wrap(err)
		}

		return res.Vars, nil
	}

	return repl.Run(ctx, repl.Session{
		Path:     r.Path,
		Load:     load,
		CacheDir: kongVar(ctx, CacheIdentifier, pkg.CacheDir()),
		Logger:   log.With(slog.String("command", "repl")),
	})
}
