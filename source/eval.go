package source

// Expression evaluation over sourced variables. Every variable is visible to
// expr-lang under its own name, alongside a small set of builtins that
// variables may shadow.

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"
)

//nolint:gochecknoglobals
var builtins = sync.OnceValue(func() map[string]any {
	return map[string]any{
		// Process environment lookup.
		"env": os.Getenv,

		// PATH-like string manipulation via mung.
		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
})

// Builtins returns the names available to expressions besides variables.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins()))
}

// Env returns the expression environment for v: the builtins overlaid with
// the native form of every variable.
func (v Vars) Env() map[string]any {
	env := maps.Clone(builtins())
	maps.Copy(env, v.Native())

	return env
}

// Evaluate compiles and runs the expr-lang expression source against
// [Vars.Env].
func (v Vars) Evaluate(ctx context.Context, source string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	env := v.Env()

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrExprCompile.
			With(slog.String("expr", source)).
			Wrap(err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrExprEvaluate.
			With(slog.String("expr", source)).
			Wrap(err)
	}

	return result, nil
}

// FormatResult renders an evaluation result for display: strings as-is,
// values as their delimited form, and anything else as compact JSON.
func FormatResult(result any) string {
	switch r := result.(type) {
	case nil:
		return "nil"

	case string:
		return r

	case Value:
		return r.String()

	case fmt.Stringer:
		return r.String()
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprint(result)
	}

	return string(data)
}

func mungPrefix(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	list string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
