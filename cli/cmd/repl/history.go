package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

const (
	baseHistory = "history.utf8"
	maxHistory  = 1000
)

// tag prefixes each persisted history line with the mode it was entered in.
func (m inputMode) tag() string {
	if m == modeCtrl {
		return "C:"
	}

	return "E:"
}

// Entry is a line of input and the mode it was entered in.
type Entry struct {
	Line string
	Mode inputMode
}

func parseEntry(line string) Entry {
	if s, ok := strings.CutPrefix(line, modeCtrl.tag()); ok {
		return Entry{Line: s, Mode: modeCtrl}
	}

	// Untagged lines are expressions.
	s, _ := strings.CutPrefix(line, modeEval.tag())

	return Entry{Line: s, Mode: modeEval}
}

// History is the input history of both modes, persisted to a file with one
// tagged entry per line. An empty path keeps history in memory only.
type History struct {
	mu      sync.RWMutex
	path    string
	entries []Entry
}

// NewHistory returns an empty History persisted at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those in the history file. A missing file
// is an empty history.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, parseEntry(line))
		}
	}

	if len(h.entries) > maxHistory {
		h.entries = slices.Clone(h.entries[len(h.entries)-maxHistory:])
	}

	return scanner.Err()
}

// Add appends line as the newest entry of mode. An earlier identical entry
// moves to the end instead of repeating.
func (h *History) Add(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	entry := Entry{Line: line, Mode: mode}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	rewrite := false

	if i := slices.Index(h.entries, entry); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
		rewrite = true
	}

	h.entries = append(h.entries, entry)

	if len(h.entries) > maxHistory {
		h.entries = slices.Delete(h.entries, 0, len(h.entries)-maxHistory)
		rewrite = true
	}

	if h.path == "" {
		return nil
	}

	if rewrite {
		return h.save()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(mode.tag() + line + "\n")

	return err
}

// save rewrites the history file. The caller holds h.mu.
func (h *History) save() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, e := range h.entries {
		if _, err := w.WriteString(e.Mode.tag() + e.Line + "\n"); err != nil {
			return err
		}
	}

	return w.Flush()
}

// Entry returns entry i, oldest first.
func (h *History) Entry(i int) (Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return Entry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Find returns the index of the first entry of mode found by stepping from
// index from in direction step (+1 or -1), excluding from itself. It returns
// -1 when there is none.
func (h *History) Find(from, step int, mode inputMode) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := from + step; i >= 0 && i < len(h.entries); i += step {
		if h.entries[i].Mode == mode {
			return i
		}
	}

	return -1
}
