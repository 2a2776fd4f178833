package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyTextHandler renders records as colorized key=value pairs on a
// single line.
type prettyTextHandler struct {
	opts slog.HandlerOptions
	mu   *sync.Mutex
	w    io.Writer
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyTextHandler {
	return &prettyTextHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range recordHead(h.opts, r) {
		writePrettyAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		writePrettyAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *prettyTextHandler) WithGroup(string) slog.Handler { return h }

// prettyJSONHandler renders records as indented, colorized JSON-shaped
// objects. Values are not quoted or escaped; the output is for human
// eyes, not machine consumption.
type prettyJSONHandler struct {
	opts slog.HandlerOptions
	mu   *sync.Mutex
	w    io.Writer
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyJSONHandler {
	return &prettyJSONHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	first := true

	field := func(a slog.Attr) {
		if !first {
			buf.WriteString(",\n")
		}

		first = false

		buf.WriteString("  ")
		buf.WriteString(colorGray)
		buf.WriteString(a.Key)
		buf.WriteString(colorReset)
		buf.WriteString(": ")
		writePrettyValue(buf, a.Value)
	}

	for _, a := range recordHead(h.opts, r) {
		field(a)
	}

	r.Attrs(func(a slog.Attr) bool {
		field(a)

		return true
	})

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *prettyJSONHandler) WithGroup(string) slog.Handler { return h }

// recordHead returns the leading attributes shared by both pretty
// handlers: time, level, optional source, and message.
func recordHead(opts slog.HandlerOptions, r slog.Record) []slog.Attr {
	head := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		head = append(head, slog.Time(slog.TimeKey, r.Time))
	}

	head = append(head, slog.Any(slog.LevelKey, r.Level))

	if opts.AddSource {
		if src := r.Source(); src != nil {
			head = append(head, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	return append(head, slog.String(slog.MessageKey, r.Message))
}

func writePrettyAttr(buf *bytes.Buffer, a slog.Attr) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')
	writePrettyValue(buf, a.Value)
}

func writePrettyValue(buf *bytes.Buffer, v slog.Value) {
	colored := func(color, s string) {
		buf.WriteString(color)
		buf.WriteString(s)
		buf.WriteString(colorReset)
	}

	switch v.Kind() {
	case slog.KindString:
		colored(colorCyan, v.String())

	case slog.KindInt64:
		colored(colorYellow, strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		colored(colorYellow, strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		colored(colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			colored(colorGreen, "true")
		} else {
			colored(colorRed, "false")
		}

	case slog.KindDuration:
		colored(colorMagenta, v.Duration().String())

	case slog.KindTime:
		colored(colorBlue, v.Time().String())

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			color := colorBlue

			switch {
			case level >= slog.LevelError:
				color = colorRed
			case level >= slog.LevelWarn:
				color = colorYellow
			case level >= slog.LevelInfo:
				color = colorGreen
			}

			colored(color, strings.ToUpper(Level(level).String()))

			return
		}

		colored(colorCyan, v.String())

	default:
		colored(colorCyan, v.String())
	}
}
