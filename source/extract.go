package source

import (
	"bufio"
	"io"
	"iter"
	"regexp"
	"strings"
)

// maxLineSize is the longest line the extractor accepts.
const maxLineSize = 1 << 20

// assignLine matches a candidate assignment at the start of a line. The key
// is deliberately looser than a valid name (it may start with a digit) so
// that misnamed variables are reported rather than skipped.
//
//nolint:gochecknoglobals
var assignLine = regexp.MustCompile(`^(?P<key>[a-zA-Z0-9_][a-zA-Z0-9_-]*)=(?P<value>.*)`)

// Assignment is one KEY=VALUE line before its value is typed.
type Assignment struct {
	Key   string
	Value string
	Line  int // 1-based line number
}

// ParseLine returns the assignment on line and true, or false if line is not
// an assignment (blank, comment, shell code, and so on).
func ParseLine(line string) (Assignment, bool) {
	m := assignLine.FindStringSubmatch(line)
	if m == nil {
		return Assignment{}, false
	}

	return Assignment{
		Key:   strings.TrimSpace(m[1]),
		Value: strings.TrimSpace(m[2]),
	}, true
}

// Assignments returns an iterator over the assignments read from r, in order.
// Lines that are not assignments are skipped.
//
// If reading fails, the error is yielded once, wrapped in [ErrReadInput], and
// iteration stops.
func Assignments(r io.Reader) iter.Seq2[Assignment, error] {
	return func(yield func(Assignment, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

		for n := 1; scanner.Scan(); n++ {
			a, ok := ParseLine(scanner.Text())
			if !ok {
				continue
			}

			a.Line = n

			if !yield(a, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(Assignment{}, ErrReadInput.Wrap(err))
		}
	}
}
