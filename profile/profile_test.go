package profile

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	p := New(WithMode("cpu"), WithPath("/tmp/x"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Path: "/tmp/x", Quiet: true}
	if p != want {
		t.Errorf("New() = %+v, want %+v", p, want)
	}
}

func TestStartDisabled(t *testing.T) {
	t.Parallel()

	for _, p := range []Profiler{{}, {Mode: "no-such-mode"}} {
		if p.Enabled() {
			t.Errorf("%+v.Enabled() = true", p)
		}

		s := p.Start()
		if _, ok := s.(ignore); !ok {
			t.Errorf("%+v.Start() = %T, want no-op", p, s)
		}

		s.Stop()
		s.Stop()
	}
}

func TestModesConsistent(t *testing.T) {
	t.Parallel()

	modes := Modes()
	if !slices.IsSorted(modes) {
		t.Errorf("Modes() = %v, not sorted", modes)
	}

	for _, m := range modes {
		if !New(WithMode(m)).Enabled() {
			t.Errorf("mode %q listed but not enabled", m)
		}
	}
}
