package log

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{" debug ", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"info+2", LevelInfo + 2},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	if got := strings.Join(slices.Collect(Levels()), ","); got != "trace,debug,info,warn,error" {
		t.Errorf("Levels() = %q", got)
	}

	if got := (LevelInfo + 2).String(); got != "INFO+2" {
		t.Errorf("String() = %q, want INFO+2", got)
	}

	for level := range Levels() {
		if s := ParseLevel(level).String(); s != level {
			t.Errorf("ParseLevel(%q).String() = %q", level, s)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{" text ", FormatText},
		{"xml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := strings.Join(slices.Collect(Formats()), ","); got != "text,json" {
		t.Errorf("Formats() = %q", got)
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	c := makeConfig(nil,
		WithLevel(LevelWarn),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
	)

	if c.level != LevelWarn || c.format != FormatJSON || !c.caller || c.pretty {
		t.Errorf("makeConfig() = %+v", c)
	}

	if c.output == nil {
		t.Error("makeConfig(nil) output = nil, want io.Discard")
	}

	d := apply(c, WithDefaults(nil))
	if d.level != DefaultLevel || d.format != DefaultFormat || d.caller != DefaultCaller ||
		d.pretty != DefaultPretty {
		t.Errorf("WithDefaults() = %+v", d)
	}
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 9, 14, 5, 7, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-09T14:05:07Z"},
		{"rfc-3339-nano", "2024-03-09T14:05:07.123456789Z"},
		{"Kitchen", "2:05PM"},
		{"ms", "Mar  9 14:05:07.123"},
		{"DateOnly", "2024-03-09"},
		{"2006/01/02", "2024/03/09"},
		{"none", ""},
		{"  ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := makeFormatTime(tt.layout)(now); got != tt.want {
			t.Errorf("makeFormatTime(%q) = %q, want %q", tt.layout, got, tt.want)
		}
	}
}
