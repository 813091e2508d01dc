package source_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ardnew/srcfile/source"
)

func sampleResult() source.Result {
	return source.Result{Vars: source.Vars{
		"A": B(true),
		"B": L(T("x"), T("y z")),
		"C": m("k", T("v"), "n", B(false)),
		"D": T(""),
	}}
}

func TestFormatJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	if err := sampleResult().FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	want := `{"changed":false,"vars":{"A":true,"B":["x","y z"],"C":{"k":"v","n":false},"D":""}}` + "\n"
	if buf.String() != want {
		t.Errorf("FormatJSON() = %q, want %q", buf.String(), want)
	}
}

func TestFormatJSONIndent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	if err := sampleResult().FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	if !strings.Contains(buf.String(), "\n  \"changed\": false,\n") {
		t.Errorf("FormatJSON() = %q, want two-space indentation", buf.String())
	}
}

func TestFormatJSONEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	if err := (source.Result{}).FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	if got, want := buf.String(), `{"changed":false,"vars":{}}`+"\n"; got != want {
		t.Errorf("FormatJSON() = %q, want %q", got, want)
	}
}

func TestFormatYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	if err := sampleResult().FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatalf("FormatYAML() error = %v", err)
	}

	// n is a YAML 1.1 boolean token, so the encoder quotes it as a key.
	for _, want := range []string{"changed: false", "A: true", "- x", "k: v", `"n": false`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("FormatYAML() = %q, want it to contain %q", buf.String(), want)
		}
	}
}

func TestFormatEnv(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	if err := sampleResult().Vars.FormatEnv(&buf); err != nil {
		t.Fatalf("FormatEnv() error = %v", err)
	}

	want := strings.Join([]string{
		"A=true",
		"B=x,y z",
		"C=k=v;n=false",
		`D=""`,
	}, "\n") + "\n"

	if buf.String() != want {
		t.Errorf("FormatEnv() = %q, want %q", buf.String(), want)
	}
}

func TestFormatEnvReadBack(t *testing.T) {
	t.Parallel()

	vars := source.Vars{
		"LIST":  L(T("a"), B(true), T("c")),
		"MAP":   m("x", T("1 2"), "y", B(false)),
		"TEXT":  T("hello world # not a comment"),
		"FLAG":  B(false),
		"EMPTY": T(""),
	}

	var buf bytes.Buffer

	if err := vars.FormatEnv(&buf); err != nil {
		t.Fatal(err)
	}

	res, err := source.Read(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if !res.Vars.Equal(vars) {
		t.Errorf("Read(FormatEnv()) = %v, want %v", res.Vars.Native(), vars.Native())
	}
}
