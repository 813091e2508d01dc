package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/srcfile/log"
	"github.com/ardnew/srcfile/source"
)

// stdinPath reads the source from standard input.
const stdinPath = "-"

type (
	kongContextKey struct{}
	stdinKey       struct{}
	stdoutKey      struct{}
)

// WithContext returns ctx carrying the parsed kong context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongContextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(kongContextKey{}).(*kong.Context)

	return ktx
}

// kongVar returns the kong variable name, or fallback if it is undefined.
func kongVar(ctx context.Context, name, fallback string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if v, ok := ktx.Model.Vars()[name]; ok {
			return v
		}
	}

	return fallback
}

// WithStdio returns ctx carrying the streams commands read from and write
// to in place of [os.Stdin] and [os.Stdout]. A nil stream is left unchanged.
func WithStdio(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	if in != nil {
		ctx = context.WithValue(ctx, stdinKey{}, in)
	}

	if out != nil {
		ctx = context.WithValue(ctx, stdoutKey{}, out)
	}

	return ctx
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey{}).(io.Reader); ok {
		return r
	}

	return os.Stdin
}

func stdoutFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey{}).(io.Writer); ok {
		return w
	}

	return os.Stdout
}

// Input selects the file to source and how its variable names are composed.
type Input struct {
	Path   string `arg:"" help:"Source file, or '-' for standard input." name:"path"`
	Prefix string `       help:"Prepend to every variable name."                      short:"p"`
	Lower  bool   `       help:"Lower-case every variable name."                      short:"l"`
}

func (in Input) options() []source.Option {
	return []source.Option{
		source.WithPrefix(in.Prefix),
		source.WithLower(in.Lower),
		source.WithLogger(log.Default()),
	}
}

// Source reads the variables assigned in the selected input.
func (in Input) Source(ctx context.Context) (source.Result, error) {
	if in.Path == stdinPath {
		return source.Read(ctx, stdinFrom(ctx), in.options()...)
	}

	return source.File(ctx, in.Path, in.options()...)
}
