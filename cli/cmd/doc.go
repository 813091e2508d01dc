// Package cmd implements the srcfile subcommands.
//
// Each command is a kong command struct with a Run method receiving the
// [context.Context] bound by the root parser. Commands that read a source
// file embed [Input], which names the file and how its variable names are
// composed.
package cmd

//nolint:gochecknoglobals
var (
	// CacheIdentifier is the kong variable holding the cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable holding the configuration file
	// path.
	ConfigIdentifier = "config"
)
