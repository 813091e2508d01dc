package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/srcfile/source"
)

// Eval sources a file and prints the result of an expression over its
// variables.
type Eval struct {
	Input `embed:""`

	Expr string `arg:"" help:"Expression to evaluate; variables are in scope by name." name:"expr"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	res, err := e.Source(ctx)
	if err != nil {
		return ErrSource.
			With(slog.String("path", e.Path)).
			Wrap(err)
	}

	val, err := res.Vars.Evaluate(ctx, e.Expr)
	if err != nil {
		return ErrEvaluate.
			With(slog.String("path", e.Path), slog.String("expr", e.Expr)).
			Wrap(err)
	}

	_, err = fmt.Fprintln(stdoutFrom(ctx), source.FormatResult(val))

	return err
}
