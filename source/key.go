package source

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// keyName is the body of the variable name pattern: a letter or underscore
// followed by letters, digits, underscores, or hyphens.
const keyName = `[a-zA-Z_][a-zA-Z0-9_-]*`

//nolint:gochecknoglobals
var keyPattern = regexp.MustCompile(`^` + keyName + `$`)

// ValidName reports whether s is a valid variable name.
func ValidName(s string) bool { return keyPattern.MatchString(s) }

const nameRule = "it must start with a letter or underscore character," +
	" and contain only letters, numbers, underscores, and hyphens"

// checkPrefix returns [ErrInvalidPrefix] if prefix is non-empty and not a
// valid variable name.
func checkPrefix(prefix string) error {
	if prefix == "" || ValidName(prefix) {
		return nil
	}

	return ErrInvalidPrefix.
		With(slog.String("prefix", prefix)).
		Wrap(fmt.Errorf("'%s' is not a valid prefix: %s", prefix, nameRule))
}

// ComposeName returns key prefixed with prefix and, if lower is set,
// lower-cased. No separator is inserted between prefix and key.
func ComposeName(prefix, key string, lower bool) string {
	name := prefix + key
	if lower {
		name = strings.ToLower(name)
	}

	return name
}

// composeName composes the variable name for a and validates it.
func composeName(a Assignment, prefix string, lower bool) (string, error) {
	name := ComposeName(prefix, a.Key, lower)
	if ValidName(name) {
		return name, nil
	}

	return "", ErrInvalidKey.
		With(slog.String("key", name), slog.Int("line", a.Line)).
		Wrap(fmt.Errorf("line %d: '%s' is not a valid variable name: %s",
			a.Line, name, nameRule))
}
