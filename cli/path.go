package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/srcfile/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// dirMode is the permission of created runtime directories.
const dirMode os.FileMode = 0o700

// configPath returns the path of the configuration file, or with a suffix
// such as ".json", one of its siblings.
func configPath(suffix string) string {
	return filepath.Join(pkg.ConfigDir(), baseConfig+suffix)
}

// mkdirAll creates the configuration and cache directories.
func mkdirAll() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return err
		}
	}

	return nil
}
