// Package cli is the srcfile command line.
//
//	srcfile [flags] [source] PATH          print typed variables (default)
//	srcfile [flags] eval PATH EXPR         evaluate an expression
//	srcfile [flags] repl PATH              evaluate expressions interactively
//	srcfile [flags] init [--force]         save the global flags
//
// # Configuration
//
// Flag defaults are read from the configuration file in the user
// configuration directory, e.g. ~/.config/srcfile/config. It is itself a
// source file; each key names a flag with underscores for hyphens:
//
//	LOG_LEVEL=debug
//	LOG_PRETTY=off
//
// A JSON file of the same name with a .json suffix is read as well.
// Command-line flags take precedence over both. Use init to write the file
// from the flags given to it.
//
// # Logging
//
// The --log-* flags configure the package logger from [log]. They are applied
// before the rest of the command line is parsed, wherever they appear.
//
// # Profiling
//
// Built with the pprof tag, --pprof-mode records a profile into --pprof-dir
// (by default the pprof directory of the user cache directory):
//
//	go build -tags pprof .
//	srcfile --pprof-mode=cpu vars.env
package cli
