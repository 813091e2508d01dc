package source

import (
	"maps"
	"slices"
	"strings"
)

// Booleans is an immutable set of tokens recognized as boolean values.
// Tokens are matched case-insensitively.
type Booleans struct {
	token map[string]bool
}

// DefaultBooleans recognizes the conventional configuration tokens:
//
//	true:  y, yes, on, 1, true, t
//	false: n, no, off, 0, false, f
//
//nolint:gochecknoglobals
var DefaultBooleans = NewBooleans(
	[]string{"y", "yes", "on", "1", "true", "t"},
	[]string{"n", "no", "off", "0", "false", "f"},
)

// NewBooleans returns a token set recognizing truthy as true and falsy as
// false. A token present in both lists is false.
func NewBooleans(truthy, falsy []string) Booleans {
	b := Booleans{token: make(map[string]bool, len(truthy)+len(falsy))}

	for _, t := range truthy {
		b.token[strings.ToLower(t)] = true
	}

	for _, f := range falsy {
		b.token[strings.ToLower(f)] = false
	}

	return b
}

// Lookup returns the boolean value of s and whether s is a recognized token.
func (b Booleans) Lookup(s string) (value, ok bool) {
	value, ok = b.token[strings.ToLower(s)]

	return value, ok
}

// Tokens returns the sorted recognized tokens of the given truth value.
func (b Booleans) Tokens(value bool) []string {
	var out []string

	for t, v := range b.token {
		if v == value {
			out = append(out, t)
		}
	}

	slices.Sort(out)

	return out
}

// IsZero reports whether b recognizes no tokens at all.
func (b Booleans) IsZero() bool { return len(b.token) == 0 }

// Equal reports whether b and c recognize the same tokens.
func (b Booleans) Equal(c Booleans) bool { return maps.Equal(b.token, c.token) }
