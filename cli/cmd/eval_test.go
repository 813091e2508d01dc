package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ardnew/srcfile/source"
)

func TestEvalRun(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "HOSTS=a,b,c\nOPTS=port=80;tls=off\nNAME=web\n")

	tests := []struct {
		expr string
		want string
	}{
		{`NAME`, "web\n"},
		{`len(HOSTS)`, "3\n"},
		{`HOSTS[2]`, "c\n"},
		{`OPTS.port + "/tcp"`, "80/tcp\n"},
		{`OPTS.tls`, "false\n"},
		{`OPTS`, `{"port":"80","tls":false}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			e := &Eval{Input: Input{Path: path}, Expr: tt.expr}
			if err := e.Run(WithStdio(context.Background(), nil, &buf)); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("Run() output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestEvalRunErrors(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "A=1\n")

	err := (&Eval{Input: Input{Path: path}, Expr: `B`}).Run(context.Background())
	if !errors.Is(err, ErrEvaluate) || !errors.Is(err, source.ErrExprCompile) {
		t.Errorf("Run(undefined) error = %v", err)
	}

	err = (&Eval{Input: Input{Path: path, Prefix: "-"}, Expr: `A`}).Run(context.Background())
	if !errors.Is(err, ErrSource) || !errors.Is(err, source.ErrInvalidPrefix) {
		t.Errorf("Run(bad prefix) error = %v", err)
	}
}

func TestReplRejectsStdin(t *testing.T) {
	t.Parallel()

	if err := (&Repl{Input: Input{Path: "-"}}).Run(context.Background()); !errors.Is(err, ErrReplStdin) {
		t.Errorf("Run() error = %v, want ErrReplStdin", err)
	}
}
