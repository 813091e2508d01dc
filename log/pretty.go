package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of one output stream. Colors degrade to plain
// text when the stream is not a color terminal.
type palette struct {
	key, text, number, time, fail, pass lipgloss.Style
	level                                map[slog.Level]lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return palette{
		key:    fg("8"),
		text:   fg("6"),
		number: fg("3"),
		time:   fg("4"),
		fail:   fg("1"),
		pass:   fg("2"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("5"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2").Bold(true),
			slog.LevelWarn:         fg("3").Bold(true),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	for _, at := range []slog.Level{
		slog.LevelError, slog.LevelWarn, slog.LevelInfo, slog.LevelDebug,
	} {
		if l >= at {
			return p.level[at]
		}
	}

	return p.level[slog.Level(LevelTrace)]
}

// levelWidth aligns messages after the longest level name.
const levelWidth = 5

// prettyTextHandler writes one styled line per record:
//
//	TIME LEVEL message key=value group.key=value
type prettyTextHandler struct {
	opts    slog.HandlerOptions
	style   palette
	mu      *sync.Mutex
	w       io.Writer
	prefix  string // dotted group path, with trailing dot
	preattr []byte // attributes rendered by WithAttrs
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyTextHandler {
	return &prettyTextHandler{
		opts:  *opts,
		style: makePalette(w),
		mu:    &sync.Mutex{},
		w:     w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if a := h.replace(slog.Time(slog.TimeKey, r.Time)); !a.Equal(slog.Attr{}) {
			buf.WriteString(h.style.time.Render(a.Value.String()))
			buf.WriteByte(' ')
		}
	}

	level := h.replace(slog.Any(slog.LevelKey, r.Level)).Value.String()
	buf.WriteString(h.style.levelStyle(r.Level).Render(level))
	buf.WriteString(strings.Repeat(" ", max(1, levelWidth+1-len(level))))
	buf.WriteString(r.Message)

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			h.writeAttr(&buf, "", slog.String(slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	buf.Write(h.preattr)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer

	buf.Write(h.preattr)

	for _, a := range attrs {
		h.writeAttr(&buf, h.prefix, a)
	}

	c := *h
	c.preattr = buf.Bytes()

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyTextHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			h.writeAttr(buf, prefix, g)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.style.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.renderValue(a.Value))
}

func (h *prettyTextHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindDuration:
		return h.style.number.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.style.pass.Render("true")
		}

		return h.style.fail.Render("false")

	case slog.KindTime:
		return h.style.time.Render(v.Time().Format(time.RFC3339))

	default:
		if err, ok := v.Any().(error); ok {
			return h.style.fail.Render(quoteSpace(err.Error()))
		}

		return h.style.text.Render(quoteSpace(v.String()))
	}
}

// quoteSpace quotes s if it is empty or contains whitespace.
func quoteSpace(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\r\n\"") {
		return strconv.Quote(s)
	}

	return s
}

// prettyJSONHandler writes each record as an indented JSON document.
// Records are encoded by [slog.JSONHandler] and then re-indented.
type prettyJSONHandler struct {
	opts slog.HandlerOptions
	mu   *sync.Mutex
	w    io.Writer
	ops  []func(slog.Handler) slog.Handler // WithAttrs and WithGroup, in order
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyJSONHandler {
	return &prettyJSONHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	var flat, out bytes.Buffer

	var inner slog.Handler = slog.NewJSONHandler(&flat, &h.opts)
	for _, op := range h.ops {
		inner = op(inner)
	}

	if err := inner.Handle(ctx, r); err != nil {
		return err
	}

	if err := json.Indent(&out, bytes.TrimSpace(flat.Bytes()), "", "  "); err != nil {
		return err
	}

	out.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(out.Bytes())

	return err
}

func (h *prettyJSONHandler) with(op func(slog.Handler) slog.Handler) *prettyJSONHandler {
	c := *h
	c.ops = append(h.ops[:len(h.ops):len(h.ops)], op)

	return &c
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return h.with(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}
