package source

import (
	"fmt"
	"log/slog"
	"strings"
)

// Delimiters recognized by the value typer.
const (
	listSep  = ","
	itemSep  = ";"
	entrySep = "="
)

// Typer classifies raw value strings into [Value]s.
//
// The zero Typer uses [DefaultBooleans].
type Typer struct {
	Booleans Booleans
}

// Parse classifies raw using [DefaultBooleans].
func Parse(raw string) (Value, error) {
	return Typer{}.Value(raw)
}

// Value classifies raw. The rules are applied in this order, each one
// operating on the result of the previous:
//
//  1. One layer of matching single or double quotes is removed and the
//     remainder trimmed.
//  2. A string containing "," is split on every comma into a list; each
//     trimmed piece is classified by these same rules.
//  3. Otherwise, a string containing both ";" and "=" is split on every
//     semicolon into a mapping. Each trimmed piece is classified and must
//     then be a text with exactly one "=" separating a key from a value;
//     the trimmed value is classified by these same rules.
//  4. Otherwise, a recognized boolean token becomes a boolean.
//  5. Anything else is text.
//
// Commas take precedence over semicolons: "a=1,b=2" is a list of two texts,
// not a mapping. A string with "=" but no ";" is always text.
//
// The only error is [ErrMalformedMapping].
func (t Typer) Value(raw string) (Value, error) {
	s := unquote(raw)

	if strings.Contains(s, listSep) {
		return t.list(s)
	}

	if strings.Contains(s, itemSep) && strings.Contains(s, entrySep) {
		return t.mapping(s)
	}

	if b, ok := t.booleans().Lookup(s); ok {
		return Bool(b), nil
	}

	return Text(s), nil
}

func (t Typer) booleans() Booleans {
	if t.Booleans.IsZero() {
		return DefaultBooleans
	}

	return t.Booleans
}

func (t Typer) list(s string) (Value, error) {
	pieces := strings.Split(s, listSep)
	elems := make([]Value, len(pieces))

	for i, p := range pieces {
		v, err := t.Value(strings.TrimSpace(p))
		if err != nil {
			return Value{}, err
		}

		elems[i] = v
	}

	return Value{kind: KindList, list: elems}, nil
}

func (t Typer) mapping(s string) (Value, error) {
	pieces := strings.Split(s, itemSep)
	dict := make(map[string]Value, len(pieces))

	for _, p := range pieces {
		item, err := t.Value(strings.TrimSpace(p))
		if err != nil {
			return Value{}, err
		}

		text, ok := item.AsText()
		if !ok {
			return Value{}, ErrMalformedMapping.
				With(slog.String("item", p), slog.String("kind", item.Kind().String())).
				Wrap(fmt.Errorf("%q in %q: not a key=value pair", p, s))
		}

		kv := strings.Split(text, entrySep)
		if len(kv) != 2 { //nolint:mnd
			return Value{}, ErrMalformedMapping.
				With(slog.String("item", p), slog.Int("separators", len(kv)-1)).
				Wrap(fmt.Errorf("%q in %q: want exactly one %q, have %d",
					p, s, entrySep, len(kv)-1))
		}

		v, err := t.Value(strings.TrimSpace(kv[1]))
		if err != nil {
			return Value{}, err
		}

		dict[strings.TrimSpace(kv[0])] = v
	}

	return Value{kind: KindMap, dict: dict}, nil
}

// unquote removes one layer of surrounding single or double quotes from s and
// trims the remainder. A lone quote character is both its own opening and
// closing quote, so it unquotes to the empty string.
func unquote(s string) string {
	for _, q := range []string{`'`, `"`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			if len(s) < 2 { //nolint:mnd
				return ""
			}

			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}

	return s
}
