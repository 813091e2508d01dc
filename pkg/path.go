package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

//nolint:gochecknoglobals
var (
	debugBinary = regexp.MustCompile(`^__debug_bin\d*$`)
	leadingDots = regexp.MustCompile(`^\.+`)
)

// baseName returns the name a program at path is known by: its base name
// without extension or leading dots. Debugger builds are called [Name].
func baseName(path string) string {
	id := leadingDots.ReplaceAllString(filepath.Base(path), "")
	id = strings.TrimSuffix(id, filepath.Ext(id))

	if id == "" || debugBinary.MatchString(id) {
		return Name
	}

	return id
}

// Prefix returns the name of the running executable, used to namespace the
// configuration and cache directories.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	return baseName(exe)
})

// userDir returns base(), falling back to $HOME/fallback and finally the
// working directory, joined with [Prefix].
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// ConfigDir returns the directory holding the configuration file,
// e.g. $XDG_CONFIG_HOME/srcfile.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory for transient files such as REPL history
// and profiles, e.g. $XDG_CACHE_HOME/srcfile.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})
