package repl

import (
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"
)

//nolint:gochecknoglobals
var ctrlCommands = []string{"help", "list", "reload", "edit", "clear", "quit"}

// isWordBoundary reports whether r ends a completion word. Hyphens are
// boundaries: expr reads "log-level" as a subtraction, so hyphenated
// variables are reached with $env["log-level"] instead.
func isWordBoundary(r rune) bool {
	return strings.ContainsRune(".,;:?!&|<>=+-*/%()[]{}\"' \t", r)
}

// wordBounds returns the word around cursor and its byte offsets in input.
// The word is empty when cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	for start = cursor; start > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	for end = cursor; end < len(input); {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain ending just before wordStart:
// "x + opts.tls.ve" with the word "ve" has the parent "opts.tls".
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")

	pos := len(prefix)
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return prefix[pos:]
}

// resolve walks the dotted path through nested maps of env.
func resolve(env map[string]any, path string) (any, bool) {
	var cur any = env

	for seg := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}

		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}

	return cur, true
}

// childCandidates returns the completions of a word following parent. At the
// top level these are the variables and builtins of env plus the expr
// builtin functions; below it, the keys of the mapping parent names.
func childCandidates(env map[string]any, parent string) []string {
	if parent == "" {
		names := make([]string, 0, len(env)+len(builtin.Names))

		for name := range env {
			if isIdentifier(name) {
				names = append(names, name)
			}
		}

		slices.Sort(names)

		return append(names, builtin.Names...)
	}

	v, ok := resolve(env, parent)
	if !ok {
		return nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(m))

	for name := range m {
		if isIdentifier(name) {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}

// isIdentifier reports whether name can be typed as a bare expr identifier.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}

	return !strings.ContainsFunc(name, isWordBoundary)
}

// isFunction reports whether the candidate name below parent is callable.
func isFunction(env map[string]any, parent, name string) bool {
	path := name
	if parent != "" {
		path = parent + "." + name
	}

	if v, ok := resolve(env, path); ok {
		return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
	}

	_, ok := builtin.Index[name]

	return ok && parent == ""
}

// computeMatches returns the fuzzy matches for the word at the cursor, best
// first, with the word's offsets. An empty top-level word has no matches so
// the hint stays visible; an empty word after a dot matches every member.
func (m model) computeMatches() (matches fuzzy.Matches, parent string, start, end int) {
	input := m.input.Value()

	word, start, end := wordBounds(input, m.input.Position())

	var candidates []string

	if m.mode == modeCtrl {
		if word == "" {
			return nil, "", start, end
		}

		candidates = ctrlCommands
	} else {
		parent = parentPath(input, start)
		candidates = childCandidates(m.env, parent)

		if word == "" {
			if parent == "" {
				return nil, "", start, end
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, parent, start, end
		}
	}

	return fuzzy.Find(word, candidates), parent, start, end
}

// renderCandidateBar renders matches on one line no wider than width,
// ending with an ellipsis when some do not fit.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	callable func(string) bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		item := renderCandidate(match, i == selected, callable(match.Str))

		w := lipgloss.Width(item)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		need := w
		if i < len(matches)-1 {
			need += reserve
		}

		if i > 0 && used+need > width {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(item)

		used += w
	}

	return b.String()
}

// renderCandidate highlights the matched characters of a candidate.
// Functions are shown with a "()" suffix that completion does not insert.
func renderCandidate(match fuzzy.Match, selected, function bool) string {
	base, bold := suggestionStyle, suggestionStyle.Bold(true)
	if selected {
		base, bold = selectedStyle, selectedStyle.Bold(true)
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(bold.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if function {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
