package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/srcfile/log"
	"github.com/ardnew/srcfile/source"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]. It opens the source file in the
// user's editor and reloads it, offering to edit again while it fails to
// load.
type editCommand struct {
	path   string
	load   func(context.Context) (source.Vars, error)
	ctx    context.Context //nolint:containedctx
	logger log.Logger

	vars source.Vars

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (c *editCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run returns [ErrEditDeclined] if the file still fails to load and the user
// declines to edit it again.
func (c *editCommand) Run() error {
	prompt := bufio.NewScanner(c.stdin)

	for attempt := 1; ; attempt++ {
		if err := c.edit(); err != nil {
			return err
		}

		vars, err := c.load(c.ctx)

		c.logger.TraceContext(c.ctx, "reload after edit",
			slog.String("path", c.path),
			slog.Int("attempt", attempt),
			slog.Bool("ok", err == nil),
		)

		if err == nil {
			c.vars = vars

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", err)
		fmt.Fprint(c.stdout, "Edit again? [Y/n] ")

		if !prompt.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(prompt.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// edit runs $EDITOR, or vi if it is unset, on the source file. The editor
// command may carry arguments, such as "code --wait".
func (c *editCommand) edit() error {
	editor := strings.Fields(os.Getenv("EDITOR"))
	if len(editor) == 0 {
		editor = []string{defaultEditor}
	}

	cmd := exec.CommandContext(c.ctx, editor[0], append(editor[1:], c.path)...) //nolint:gosec
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	return cmd.Run()
}
