package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/ardnew/srcfile/log"
)

// Vars maps variable names to their typed values.
type Vars map[string]Value

// Keys returns the variable names in sorted order.
func (v Vars) Keys() []string { return slices.Sorted(maps.Keys(v)) }

// Get returns the value of the named variable.
func (v Vars) Get(name string) (Value, bool) {
	val, ok := v[name]

	return val, ok
}

// Native converts every value with [Value.Native].
func (v Vars) Native() map[string]any {
	out := make(map[string]any, len(v))
	for k, val := range v {
		out[k] = val.Native()
	}

	return out
}

// Equal reports whether v and w hold the same names and values.
func (v Vars) Equal(w Vars) bool { return maps.EqualFunc(v, w, Value.Equal) }

// Result is the outcome of sourcing a file.
type Result struct {
	// Vars holds every assignment read, last assignment winning.
	Vars Vars
	// Changed reports whether external state was modified. Sourcing never
	// modifies anything, so it is always false.
	Changed bool
}

type config struct {
	logger log.Logger
	typer  Typer
	prefix string
	lower  bool
}

// Option configures [File] and [Read].
type Option func(config) config

// WithPrefix prepends prefix to every variable name.
// A non-empty prefix must itself be a valid variable name.
func WithPrefix(prefix string) Option {
	return func(c config) config {
		c.prefix = prefix

		return c
	}
}

// WithLower lower-cases every variable name after prefixing.
func WithLower(lower bool) Option {
	return func(c config) config {
		c.lower = lower

		return c
	}
}

// WithBooleans replaces the recognized boolean tokens.
func WithBooleans(b Booleans) Option {
	return func(c config) config {
		c.typer.Booleans = b

		return c
	}
}

// WithLogger sets the logger that traces each assignment.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

func makeConfig(opts ...Option) config {
	var c config

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// File reads the variables assigned in the regular file at path.
//
// It fails with [ErrFileNotFound] or [ErrInvalidPrefix] before reading
// anything, and with [ErrInvalidKey], [ErrMalformedMapping], or
// [ErrReadInput] while reading. Nothing but the error is returned on
// failure.
func File(ctx context.Context, path string, opts ...Option) (Result, error) {
	cfg := makeConfig(opts...)

	info, err := os.Stat(path)
	if err != nil {
		return Result{}, ErrFileNotFound.
			With(slog.String("path", path)).
			Wrap(fmt.Errorf("'%s' does not exist or is not a file: %w", path, err))
	}

	if !info.Mode().IsRegular() {
		return Result{}, ErrFileNotFound.
			With(slog.String("path", path), slog.String("mode", info.Mode().String())).
			Wrap(fmt.Errorf("'%s' does not exist or is not a file", path))
	}

	if err := checkPrefix(cfg.prefix); err != nil {
		return Result{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return Result{}, ErrReadInput.
			With(slog.String("path", path)).
			Wrap(err)
	}
	defer file.Close()

	cfg.logger = cfg.logger.With(slog.String("path", path))

	return cfg.read(ctx, file)
}

// Read reads the variables assigned in r. See [File].
func Read(ctx context.Context, r io.Reader, opts ...Option) (Result, error) {
	cfg := makeConfig(opts...)

	if err := checkPrefix(cfg.prefix); err != nil {
		return Result{}, err
	}

	return cfg.read(ctx, r)
}

func (c config) read(ctx context.Context, r io.Reader) (Result, error) {
	vars := make(Vars)

	for a, err := range Assignments(r) {
		if err != nil {
			return Result{}, err
		}

		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		name, err := composeName(a, c.prefix, c.lower)
		if err != nil {
			return Result{}, err
		}

		val, err := c.typer.Value(a.Value)
		if err != nil {
			e := WrapError(err)

			return Result{}, e.
				With(slog.String("key", name), slog.Int("line", a.Line)).
				Wrap(fmt.Errorf("line %d: %s: %w", a.Line, name, e.Unwrap()))
		}

		if _, dup := vars[name]; dup {
			c.logger.DebugContext(ctx, "variable reassigned",
				slog.String("key", name),
				slog.Int("line", a.Line),
			)
		}

		c.logger.TraceContext(ctx, "assignment",
			slog.String("key", name),
			slog.String("kind", val.Kind().String()),
			slog.Int("line", a.Line),
		)

		vars[name] = val
	}

	c.logger.DebugContext(ctx, "sourced variables",
		slog.Int("count", len(vars)),
		slog.String("prefix", c.prefix),
		slog.Bool("lower", c.lower),
	)

	return Result{Vars: vars}, nil
}
