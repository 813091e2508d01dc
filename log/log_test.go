package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestZeroLogger(t *testing.T) {
	t.Parallel()

	var l Logger

	l.Info("dropped")
	l.With(slog.String("k", "v")).ErrorContext(context.Background(), "dropped")

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("zero Logger level/format = %v/%v", l.Level(), l.Format())
	}

	if l.Enabled(context.Background(), LevelError) {
		t.Error("zero Logger is enabled")
	}

	l.Slog().Info("dropped")
}

func TestLevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelWarn), WithPretty(false))
	l.Info("quiet")
	l.Warn("loud")

	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestTraceLevelName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelTrace), WithPretty(false), WithTimeLayout("none"))
	l.Trace("detail", slog.Int("n", 1))

	if got, want := buf.String(), "level=TRACE msg=detail n=1\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestJSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithPretty(false)).
		With(slog.String("path", "/tmp/x"))
	l.Info("read", slog.Int("count", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}

	if rec["msg"] != "read" || rec["path"] != "/tmp/x" || rec["count"] != 3.0 ||
		rec["level"] != "INFO" {
		t.Errorf("record = %v", rec)
	}
}

func TestPrettyText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none")).
		With(slog.String("path", "a b"))
	l.Warn("sourced",
		slog.Int("count", 2),
		slog.Bool("lower", false),
		slog.Group("opt", slog.String("prefix", "APP_")),
		slog.Any("error", errors.New("boom")),
	)

	want := `WARN  sourced path="a b" count=2 lower=false opt.prefix=APP_ error=boom` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrettyJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none")).
		With(slog.String("path", "x"))
	l.Info("hello")

	if !strings.Contains(buf.String(), "\n  \"msg\": \"hello\",\n") {
		t.Errorf("output = %q, want indented JSON", buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil || rec["path"] != "x" {
		t.Errorf("record = %v, %v", rec, err)
	}
}

func TestCaller(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithCaller(true), WithPretty(false))
	l.Info("here")

	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("output = %q, want caller location", buf.String())
	}
}

func TestWrapKeepsSettings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelError), WithPretty(false)).Wrap(WithFormat(FormatJSON))

	if l.Level() != LevelError || l.Format() != FormatJSON {
		t.Errorf("Wrap() level/format = %v/%v", l.Level(), l.Format())
	}

	l.Warn("dropped")

	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing", buf.String())
	}
}

func TestConcurrentWrites(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none"))

	var wg sync.WaitGroup

	for range 16 {
		wg.Go(func() { l.Info("line") })
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 16 {
		t.Errorf("wrote %d lines, want 16", n)
	}
}

func TestPackageLevel(t *testing.T) {
	var buf bytes.Buffer

	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	SetDefault(Make(&buf, WithPretty(false), WithTimeLayout("none")))
	Config(WithLevel(LevelDebug))

	Debug("one")
	With(slog.String("k", "v")).Info("two")
	Trace("three")

	want := "level=DEBUG msg=one\nlevel=INFO msg=two k=v\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
