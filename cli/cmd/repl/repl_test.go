package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/srcfile/source"
)

func testModel(t *testing.T) model {
	t.Helper()

	vars := source.Vars{
		"HOSTS": source.List(source.Text("db1"), source.Text("db2")),
		"OPTS": source.Map(map[string]source.Value{
			"port": source.Text("80"),
			"tls":  source.Bool(true),
		}),
		"NAME": source.Text("web"),
	}

	s := Session{
		Path: "test.env",
		Load: func(context.Context) (source.Vars, error) { return vars, nil },
	}

	return newModel(context.Background(), s, vars, NewHistory(""))
}

func typeText(m model, s string) model {
	for _, r := range s {
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	m := testModel(t)

	tests := []struct {
		expr string
		want string
	}{
		{`NAME + ":" + OPTS.port`, "web:80"},
		{`len(HOSTS)`, "2"},
		{`OPTS.tls ? "secure" : "plain"`, "secure"},
		{`UNDEFINED`, "error: "},
	}

	for _, tt := range tests {
		if got := m.evaluate(tt.expr); !strings.Contains(got, tt.want) {
			t.Errorf("evaluate(%q) = %q, want it to contain %q", tt.expr, got, tt.want)
		}
	}
}

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	if strings.HasSuffix(helpText, "\n") {
		t.Error("helpText ends with a newline that tea.Println would repeat")
	}

	m, cmd := testModel(t).command("help")
	if cmd == nil || m.quitting {
		t.Errorf("command(help) cmd = %v, quitting = %v", cmd, m.quitting)
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	got := testModel(t).list()

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("list() has %d lines, want 3: %q", len(lines), got)
	}

	for _, want := range []string{"HOSTS", "list", "db1,db2", "NAME", "text", "OPTS", "map", "port=80;tls=true"} {
		if !strings.Contains(got, want) {
			t.Errorf("list() = %q, want it to contain %q", got, want)
		}
	}

	empty := newModel(context.Background(), Session{}, nil, NewHistory(""))
	if !strings.Contains(empty.list(), "no variables") {
		t.Errorf("list() of no variables = %q", empty.list())
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	long := source.Text(strings.Repeat("é", previewWidth+1))
	if got := preview(long); len([]rune(got)) != previewWidth || !strings.HasSuffix(got, "...") {
		t.Errorf("preview() = %q", got)
	}

	if got := preview(source.Bool(false)); got != "false" {
		t.Errorf("preview() = %q, want false", got)
	}
}

func TestCompletionCycle(t *testing.T) {
	t.Parallel()

	m := typeText(testModel(t), "OPTS.")
	if len(m.matches) != 2 || m.parent != "OPTS" {
		t.Fatalf("matches after %q = %v (parent %q)", "OPTS.", m.matches, m.parent)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.input.Value() != "OPTS.port" || !m.tabbing {
		t.Errorf("after Tab input = %q, tabbing = %v", m.input.Value(), m.tabbing)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.input.Value() != "OPTS.tls" {
		t.Errorf("after second Tab input = %q", m.input.Value())
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.input.Value() != "OPTS." || m.tabbing || m.mode != modeEval {
		t.Errorf("after Esc input = %q, tabbing = %v, mode = %v", m.input.Value(), m.tabbing, m.mode)
	}
}

func TestCompletionSingle(t *testing.T) {
	t.Parallel()

	m := typeText(testModel(t), "len(HOS")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.input.Value() != "len(HOSTS" || m.tabbing || m.matches != nil {
		t.Errorf("after Tab input = %q, tabbing = %v, matches = %v",
			m.input.Value(), m.tabbing, m.matches)
	}
}

func TestModeToggle(t *testing.T) {
	t.Parallel()

	m := typeText(testModel(t), "NAME")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("after Esc mode = %v, input = %q", m.mode, m.input.Value())
	}

	m = typeText(m, "li")
	if len(m.matches) == 0 || m.matches[0].Str != "list" {
		t.Errorf("command matches = %v", m.matches)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeEval || m.input.Value() != "NAME" {
		t.Errorf("after second Esc mode = %v, input = %q", m.mode, m.input.Value())
	}
}

func TestExecuteAndRecall(t *testing.T) {
	t.Parallel()

	m := typeText(testModel(t), "NAME")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.input.Value() != "" || m.history.Len() != 1 {
		t.Fatalf("after Enter cmd = %v, input = %q, history = %d",
			cmd, m.input.Value(), m.history.Len())
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	m = typeText(m, "list")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "list" || m.mode != modeCtrl {
		t.Errorf("first Up input = %q, mode = %v", m.input.Value(), m.mode)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "NAME" || m.mode != modeEval {
		t.Errorf("second Up input = %q, mode = %v", m.input.Value(), m.mode)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyShiftDown})
	if m.input.Value() != "" || m.histIdx != m.history.Len() {
		t.Errorf("Shift-Down input = %q, index = %d", m.input.Value(), m.histIdx)
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlD} {
		m, cmd := testModel(t).handleKey(tea.KeyMsg{Type: key})
		if !m.quitting || cmd == nil || m.View() != "" {
			t.Errorf("%v on empty line did not quit", key)
		}
	}

	m := typeText(testModel(t), "x")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.quitting || m.input.Value() != "" {
		t.Errorf("Ctrl-C on %q: quitting = %v, input = %q", "x", m.quitting, m.input.Value())
	}
}

func TestReload(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	boom := errors.New("boom")

	m.session.Load = func(context.Context) (source.Vars, error) {
		return source.Vars{"NEW": source.Bool(true)}, nil
	}

	next, _ := m.Update(m.reload()())
	if got := next.(model); len(got.vars) != 1 || got.env["NEW"] != true {
		t.Errorf("reload vars = %v", got.vars.Native())
	}

	m.session.Load = func(context.Context) (source.Vars, error) { return nil, boom }

	msg := m.reload()()
	if f, ok := msg.(loadFailedMsg); !ok || !errors.Is(f.err, boom) {
		t.Errorf("reload() msg = %#v", msg)
	}

	next, _ = m.Update(msg)
	if len(next.(model).vars) != 3 {
		t.Error("failed reload replaced the variables")
	}
}

func TestRunWithoutLoader(t *testing.T) {
	t.Parallel()

	if err := Run(context.Background(), Session{}); !errors.Is(err, ErrNoLoader) {
		t.Errorf("Run() error = %v, want ErrNoLoader", err)
	}

	boom := errors.New("boom")

	err := Run(context.Background(), Session{
		Load: func(context.Context) (source.Vars, error) { return nil, boom },
	})
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want boom", err)
	}
}
