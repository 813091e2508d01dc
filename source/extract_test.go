package source

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want Assignment
		ok   bool
	}{
		{"KEY=value", Assignment{Key: "KEY", Value: "value"}, true},
		{"KEY=  spaced value  ", Assignment{Key: "KEY", Value: "spaced value"}, true},
		{"_k-1=x=y", Assignment{Key: "_k-1", Value: "x=y"}, true},
		{"1KEY=v", Assignment{Key: "1KEY", Value: "v"}, true},
		{"KEY=", Assignment{Key: "KEY"}, true},
		{"", Assignment{}, false},
		{"# KEY=v", Assignment{}, false},
		{" KEY=v", Assignment{}, false},
		{"KEY =v", Assignment{}, false},
		{"-KEY=v", Assignment{}, false},
		{"export KEY=v", Assignment{}, false},
		{"KEY", Assignment{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseLine(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseLine(%q) = %+v, %v; want %+v, %v",
				tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAssignmentsLineNumbers(t *testing.T) {
	t.Parallel()

	input := "# header\nA=1\n\nB=2\nnot an assignment\nC=3"

	var got []Assignment

	for a, err := range Assignments(strings.NewReader(input)) {
		if err != nil {
			t.Fatal(err)
		}

		got = append(got, a)
	}

	want := []Assignment{
		{Key: "A", Value: "1", Line: 2},
		{Key: "B", Value: "2", Line: 4},
		{Key: "C", Value: "3", Line: 6},
	}

	if len(got) != len(want) {
		t.Fatalf("Assignments() yielded %d, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Assignments()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAssignmentsStopsEarly(t *testing.T) {
	t.Parallel()

	n := 0

	for range Assignments(strings.NewReader("A=1\nB=2\nC=3\n")) {
		n++
		if n == 2 {
			break
		}
	}

	if n != 2 {
		t.Errorf("iterated %d times, want 2", n)
	}
}

func TestAssignmentsReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := iotest.DataErrReader(strings.NewReader("A=1\n"))
	r = &failAfter{r: r, err: boom}

	var (
		keys []string
		err  error
	)

	for a, e := range Assignments(r) {
		if e != nil {
			err = e

			break
		}

		keys = append(keys, a.Key)
	}

	if !errors.Is(err, ErrReadInput) || !errors.Is(err, boom) {
		t.Errorf("Assignments() error = %v, want ErrReadInput wrapping boom", err)
	}

	if strings.Join(keys, ",") != "A" {
		t.Errorf("Assignments() keys = %v, want [A]", keys)
	}
}

func TestAssignmentsLongLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 200_000)

	var got Assignment

	for a, err := range Assignments(strings.NewReader("LONG=" + long + "\n")) {
		if err != nil {
			t.Fatal(err)
		}

		got = a
	}

	if len(got.Value) != len(long) {
		t.Errorf("value length = %d, want %d", len(got.Value), len(long))
	}
}

// failAfter returns err in place of io.EOF.
type failAfter struct {
	r   interface{ Read([]byte) (int, error) }
	err error
}

func (f *failAfter) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if err != nil {
		return n, f.err
	}

	return n, nil
}
