//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of srcfile, embedded from the VERSION
// file at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It also names the configuration and cache
	// directories.
	Name = "srcfile"
	// Description summarizes the command for help output.
	Description = "Read typed variables from a shell-style source file"
)

// AuthorInfo is a project author.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the project authors.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
