package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/srcfile/log"
	"github.com/ardnew/srcfile/source"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"

	defaultWidth = 80
	previewWidth = 40
)

const helpText = `
: Commands (press Esc to toggle mode):

  help     Print this help
  list     List variables with their kind and value
  reload   Source the file again
  edit     Edit the file in $EDITOR, then reload it
  clear    Clear the screen
  quit     Exit

Expressions:
  Variables are in scope by name; mappings are accessed with "." or [key].
  Names that are not identifiers, such as log-level, are read with
  $env["log-level"]. env(NAME) reads the process environment and
  mung.prefix(list, dirs...) prepends to a PATH-style list.

Keys:
  Tab / Shift-Tab      cycle completion candidates (Enter or Space accepts)
  Up / Down            history of both modes
  Shift-Up / -Down     history of the current mode
  Ctrl-C on empty line or Ctrl-D to exit`

type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

//nolint:gochecknoglobals
var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

func (m inputMode) prompt() string {
	if m == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	return promptStyle.Render(evalPrompt)
}

// Session describes the file an interactive prompt evaluates against.
type Session struct {
	// Path is the source file, opened by the edit command.
	Path string

	// Load sources the variables of Path. It is called once at start and
	// again by the reload and edit commands.
	Load func(context.Context) (source.Vars, error)

	// CacheDir holds the history file. History is not persisted if empty.
	CacheDir string

	Logger log.Logger
}

type (
	loadedMsg       struct{ vars source.Vars }
	loadFailedMsg   struct{ err error }
	editDeclinedMsg struct{}
)

type lineState struct {
	text   string
	cursor int
}

type model struct {
	ctx     context.Context //nolint:containedctx
	session Session
	vars    source.Vars
	env     map[string]any

	input   textinput.Model
	mode    inputMode
	saved   [2]lineState // input of the inactive mode
	history *History
	histIdx int

	matches   fuzzy.Matches
	parent    string
	wordStart int
	wordEnd   int
	suggIdx   int
	tabbing   bool
	preTab    lineState

	width    int
	quitting bool
}

// Run sources the session's file and reads expressions from the terminal
// until the user quits or ctx is done.
func Run(ctx context.Context, s Session) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if s.Load == nil {
		return ErrNoLoader
	}

	vars, err := s.Load(ctx)
	if err != nil {
		return err
	}

	var histPath string
	if s.CacheDir != "" {
		histPath = filepath.Join(s.CacheDir, baseHistory)
	}

	history := NewHistory(histPath)
	if err := history.Load(); err != nil {
		s.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", histPath),
			slog.Any("error", err),
		)
	}

	s.Logger.TraceContext(ctx, "repl start",
		slog.String("path", s.Path),
		slog.Int("vars", len(vars)),
		slog.Int("history", history.Len()),
	)

	_, err = tea.NewProgram(newModel(ctx, s, vars, history), tea.WithContext(ctx)).Run()

	return err
}

func newModel(ctx context.Context, s Session, vars source.Vars, history *History) model {
	ti := textinput.New()
	ti.Prompt = modeEval.prompt()
	ti.CharLimit = 1024
	ti.Width = defaultWidth
	ti.Focus()

	m := model{
		ctx:     ctx,
		session: s,
		input:   ti,
		history: history,
		histIdx: history.Len(),
		suggIdx: -1,
		width:   defaultWidth,
	}

	return m.withVars(vars)
}

func (m model) withVars(vars source.Vars) model {
	m.vars = vars
	m.env = vars.Env()

	return m
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(evalPrompt) - 2

		return m, nil

	case loadedMsg:
		m = m.withVars(msg.vars)

		return m, tea.Println(resultStyle.Render(
			fmt.Sprintf("sourced %d variables from %s", len(m.vars), m.session.Path)))

	case loadFailedMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("edit abandoned; keeping previous variables"))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var hint string

	switch {
	case m.histIdx < m.history.Len():
		hint = hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.histIdx+1)),
			m.history.Len()))

	case strings.TrimSpace(m.input.Value()) == "":
		if m.mode == modeEval {
			hint = hintStyle.Render("Type an expression or press Esc for commands")
		} else {
			hint = hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") +
				" (press Esc to return)")
		}

	default:
		hint = renderCandidateBar(m.matches, m.suggIdx, m.callable, m.width)
	}

	return m.input.View() + "\n" + hint + "\n"
}

func (m model) callable(name string) bool {
	return m.mode == modeEval && isFunction(m.env, m.parent, name)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabbing = false
		m.histIdx = m.history.Len()
		m.refresh(false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabbing && len(m.matches) > 0 {
			m.tabbing = false
			m.refresh(true)

			return m, nil
		}

		return m.execute()

	case tea.KeyTab:
		return m.cycle(+1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.recall(m.histIdx - 1), nil

	case tea.KeyDown:
		return m.recall(m.histIdx + 1), nil

	case tea.KeyShiftUp:
		return m.recall(m.history.Find(m.histIdx, -1, m.mode)), nil

	case tea.KeyShiftDown:
		i := m.history.Find(m.histIdx, +1, m.mode)
		if i < 0 {
			i = m.history.Len()
		}

		return m.recall(i), nil

	case tea.KeyEsc:
		if m.tabbing {
			m.tabbing = false
			m.input.SetValue(m.preTab.text)
			m.input.SetCursor(m.preTab.cursor)
			m.refresh(false)

			return m, nil
		}

		return m.switchMode(1 - m.mode), nil
	}

	// A space accepts the candidate being cycled.
	typed := msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
	if !typed || msg.String() == " " {
		m.tabbing = false
	}

	var cmd tea.Cmd

	m.histIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh(typed)

	return m, cmd
}

// cycle selects the next candidate in direction step, completing the word
// outright when there is only one.
func (m model) cycle(step int) model {
	switch len(m.matches) {
	case 0:
		return m

	case 1:
		m.replaceWord(m.matches[0].Str)
		m.tabbing = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if !m.tabbing {
		m.tabbing = true
		m.preTab = lineState{m.input.Value(), m.input.Position()}
		m.suggIdx = -1
		if step < 0 {
			m.suggIdx = 0
		}
	}

	n := len(m.matches)
	m.suggIdx = (m.suggIdx + step + n) % n
	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

func (m *model) replaceWord(s string) {
	input := m.input.Value()

	m.input.SetValue(input[:m.wordStart] + s + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(s))
	m.wordEnd = m.wordStart + len(s)
}

// refresh recomputes the completion matches. With accept, a typed word that
// already equals its only candidate is accepted.
func (m *model) refresh(accept bool) {
	m.matches, m.parent, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabbing {
		m.suggIdx = -1
	}

	if accept && len(m.matches) == 1 &&
		m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.matches = nil
	}
}

// recall shows history entry i, switching to its mode. Stepping past the
// newest entry clears the line.
func (m model) recall(i int) model {
	if i < 0 {
		return m
	}

	entry, err := m.history.Entry(i)
	if err != nil {
		m.histIdx = m.history.Len()
		m.input.SetValue("")
		m.refresh(false)

		return m
	}

	m = m.switchMode(entry.Mode)
	m.histIdx = i
	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	m.refresh(false)

	return m
}

// switchMode changes the input mode, keeping each mode's unsubmitted line.
func (m model) switchMode(mode inputMode) model {
	if mode == m.mode {
		return m
	}

	m.saved[m.mode] = lineState{m.input.Value(), m.input.Position()}
	m.mode = mode
	m.input.Prompt = mode.prompt()
	m.input.SetValue(m.saved[mode].text)
	m.input.SetCursor(m.saved[mode].cursor)
	m.tabbing = false
	m.refresh(false)

	return m
}

func (m model) execute() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	if err := m.history.Add(line, m.mode); err != nil {
		m.session.Logger.WarnContext(m.ctx, "could not save history", slog.Any("error", err))
	}

	m.histIdx = m.history.Len()
	m.saved = [2]lineState{}
	m.input.SetValue("")
	m.refresh(false)

	if m.mode == modeCtrl {
		return m.command(line)
	}

	echo := tea.Println(promptStyle.Render(evalPrompt) + inputStyle.Render(line))

	return m, tea.Sequence(echo, tea.Println(m.evaluate(line)))
}

// evaluate returns the styled result of the expression line.
func (m model) evaluate(line string) string {
	result, err := m.vars.Evaluate(m.ctx, line)

	m.session.Logger.TraceContext(m.ctx, "repl eval",
		slog.String("expr", line),
		slog.String("type", fmt.Sprintf("%T", result)),
		slog.Bool("ok", err == nil),
	)

	if err != nil {
		return errorStyle.Render("error: " + err.Error())
	}

	return resultStyle.Render(source.FormatResult(result))
}

func (m model) command(line string) (model, tea.Cmd) {
	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(line))

	name, _, _ := strings.Cut(line, " ")

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpText))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.list()))

	case "r", "reload":
		return m, tea.Sequence(echo, m.reload())

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	case "c", "clear":
		return m, tea.ClearScreen
	}

	return m, tea.Sequence(echo,
		tea.Println(errorStyle.Render("unknown command: "+name+" (try 'help')")))
}

// list renders one line per variable: its name, kind, and abbreviated value.
func (m model) list() string {
	if len(m.vars) == 0 {
		return hintStyle.Render("  (no variables)")
	}

	width := 0
	for _, name := range m.vars.Keys() {
		width = max(width, len(name))
	}

	var b strings.Builder

	for _, name := range m.vars.Keys() {
		v, _ := m.vars.Get(name)

		fmt.Fprintf(&b, "  %-*s %s\n", width, name,
			hintStyle.Render(fmt.Sprintf("%-7s %s", v.Kind(), preview(v))))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func preview(v source.Value) string {
	s := v.String()
	if r := []rune(s); len(r) > previewWidth {
		return string(r[:previewWidth-3]) + "..."
	}

	return s
}

func (m model) reload() tea.Cmd {
	return func() tea.Msg {
		vars, err := m.session.Load(m.ctx)
		if err != nil {
			return loadFailedMsg{err}
		}

		return loadedMsg{vars}
	}
}

func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		path:   m.session.Path,
		load:   m.session.Load,
		ctx:    m.ctx,
		logger: m.session.Logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}

		case err != nil:
			return loadFailedMsg{err}
		}

		return loadedMsg{cmd.vars}
	})
}
