package log

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorFaint  = "\033[2m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

// consoleHandler writes one coloured line per record for the CLI:
//
//	21:00:03 INFO  audit complete command=audit checks=9 findings=0
//
// Times are UTC. Error values are printed in red.
type consoleHandler struct {
	out    io.Writer
	level  slog.Leveler
	prefix string // group path, "a.b."
	fixed  []byte // attrs rendered by WithAttrs
	mu     *sync.Mutex
}

func newConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *consoleHandler {
	h := &consoleHandler{out: w, level: slog.LevelInfo, mu: &sync.Mutex{}}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	at := r.Time
	if at.IsZero() {
		at = time.Now()
	}

	line := make([]byte, 0, 160)
	line = append(line, colorFaint...)
	line = at.UTC().AppendFormat(line, time.TimeOnly)
	line = append(line, colorReset...)
	line = append(line, ' ')
	line = append(line, levelColor(r.Level)...)
	line = append(line, padLevel(r.Level)...)
	line = append(line, colorReset...)
	line = append(line, ' ')
	line = append(line, r.Message...)
	line = append(line, h.fixed...)
	r.Attrs(func(a slog.Attr) bool {
		line = appendField(line, h.prefix, a)
		return true
	})
	line = append(line, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(line)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.fixed = append([]byte(nil), h.fixed...)
	for _, a := range attrs {
		next.fixed = appendField(next.fixed, h.prefix, a)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return ""
	default:
		return colorBlue
	}
}

// padLevel left-aligns the level name so messages line up.
func padLevel(level slog.Level) string {
	name := level.String()
	if len(name) < 5 {
		name += strings.Repeat(" ", 5-len(name))
	}
	return name
}

func appendField(line []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return line
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, member := range a.Value.Group() {
			line = appendField(line, prefix, member)
		}
		return line
	}

	line = append(line, ' ')
	line = append(line, colorFaint...)
	line = append(line, prefix...)
	line = append(line, a.Key...)
	line = append(line, '=')
	line = append(line, colorReset...)

	switch a.Value.Kind() {
	case slog.KindTime:
		return a.Value.Time().UTC().AppendFormat(line, time.RFC3339)
	case slog.KindString:
		return appendText(line, a.Value.String())
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			line = append(line, colorRed...)
			line = appendText(line, err.Error())
			return append(line, colorReset...)
		}
	}
	return append(line, a.Value.String()...)
}

// appendText quotes s when it would otherwise split the line into fields.
func appendText(line []byte, s string) []byte {
	if s == "" || strings.ContainsAny(s, " =\"\t\n") {
		return strconv.AppendQuote(line, s)
	}
	return append(line, s...)
}
