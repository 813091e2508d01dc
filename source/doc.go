// Package source reads shell/dotenv-style files into typed variables.
//
// # Input
//
// Each line of the form NAME=VALUE, starting in the first column, assigns a
// variable. Every other line (blank, comment, shell code) is ignored:
//
//	# database settings
//	DB_HOSTS=db1, db2, db3
//	DB_OPTS=timeout=30; tls=yes
//	DB_DEBUG=off
//	DB_NAME="orders"
//
// Names start with a letter or underscore and continue with letters, digits,
// underscores, or hyphens. A line whose name breaks that rule (for example
// 1FOO=bar) fails the whole read with [ErrInvalidKey].
//
// # Values
//
// A [Value] is one of text, boolean, list, or mapping. [Typer.Value]
// classifies raw text:
//
//	"hello world"  text    hello world        (one layer of quotes removed)
//	a, b, c        list    [a b c]            (split on every comma)
//	a=1; b=2       mapping {a: 1, b: 2}       (needs both ";" and "=")
//	a=1            text    a=1                (no ";", so not a mapping)
//	YES            boolean true               (see [DefaultBooleans])
//
// Lists and mapping values are classified recursively. A comma anywhere takes
// precedence over mapping syntax, so "a=1,b=2" is the list [a=1 b=2]. This
// is a known limitation of the format, not something the typer tries to
// guess around.
//
// Numbers are never converted; "42" is text. With [DefaultBooleans], "1" and
// "0" are booleans.
//
// # Reading files
//
//	res, err := source.File(ctx, "/etc/app.env",
//		source.WithPrefix("app_"),
//		source.WithLower(true))
//	if err != nil {
//		return err
//	}
//	hosts, _ := res.Vars["app_db_hosts"].AsList()
//
// Later assignments to the same name replace earlier ones. Any error aborts
// the read and no variables are returned.
//
// # Expressions
//
// [Vars.Evaluate] runs an expr-lang expression with every variable in scope:
//
//	v, err := res.Vars.Evaluate(ctx, `app_db_opts.tls && len(app_db_hosts) > 1`)
package source
