package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestConsoleHandler_Line(t *testing.T) {
	var buf bytes.Buffer
	h := newConsoleHandler(&buf, nil)

	at := time.Date(2026, 3, 1, 12, 0, 3, 0, time.FixedZone("AKST", -9*3600))
	r := slog.NewRecord(at, slog.LevelInfo, "audit complete", 0)
	r.AddAttrs(slog.Int("checks", 9), slog.Int("findings", 0))
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	want := colorFaint + "21:00:03" + colorReset + " INFO " + colorReset + " audit complete" +
		" " + colorFaint + "checks=" + colorReset + "9" +
		" " + colorFaint + "findings=" + colorReset + "0\n"
	if buf.String() != want {
		t.Errorf("got  %q\nwant %q", buf.String(), want)
	}
}

func TestConsoleHandler_LevelColors(t *testing.T) {
	tests := []struct {
		level slog.Level
		color string
		label string
	}{
		{slog.LevelDebug, colorBlue, "DEBUG"},
		{slog.LevelWarn, colorYellow, "WARN "},
		{slog.LevelError, colorRed, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(newConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			logger.Log(context.Background(), tt.level, "seeded")

			if !strings.Contains(buf.String(), tt.color+tt.label+colorReset) {
				t.Errorf("expected %q in %q", tt.color+tt.label, buf.String())
			}
		})
	}
}

func TestConsoleHandler_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Debug("statement")
	logger.Info("survey started")
	logger.Warn("audit finding")
	logger.Error("migrate failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d: %s", len(lines), buf.String())
	}
}

func TestConsoleHandler_ErrorValueIsRed(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, nil))

	logger.Warn("write rejected", slog.Any("error", errors.New("unique constraint violated")))

	if !strings.Contains(buf.String(), colorRed+`"unique constraint violated"`+colorReset) {
		t.Errorf("expected quoted red error value, got: %q", buf.String())
	}
}

func TestConsoleHandler_TimeValueIsUTC(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, nil))

	local := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("AKST", -9*3600))
	logger.Info("response touched", slog.Time("updated", local))

	if !strings.Contains(buf.String(), "2026-03-01T21:00:00Z") {
		t.Errorf("expected UTC RFC3339 time, got: %s", buf.String())
	}
}

func TestConsoleHandler_QuotesText(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, nil))

	logger.Info("seeded", slog.String("file", "taxonomy.yaml"), slog.String("area", "Ocean and coastal resources"), slog.String("notes", ""))

	out := buf.String()
	for _, want := range []string{"taxonomy.yaml", `"Ocean and coastal resources"`, `notes=` + colorReset + `""`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestConsoleHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	base := newConsoleHandler(&buf, nil)
	logger := slog.New(base.WithAttrs([]slog.Attr{slog.String("command", "audit")}).WithGroup("db"))

	logger.Info("opened", slog.Bool("sqlite", true), slog.Group("pool", slog.Int("max_open", 1)))

	out := buf.String()
	for _, want := range []string{"command=", "db.sqlite=", "db.pool.max_open="} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}

	buf.Reset()
	slog.New(base).Info("plain")
	if strings.Contains(buf.String(), "command=") {
		t.Errorf("WithAttrs must not change the parent handler, got: %s", buf.String())
	}
	if base.WithGroup("") != slog.Handler(base) {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestConsoleHandler_CommandFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "", "INFO").Slog()

	logger.InfoContext(WithCommand(context.Background(), "seed"), "taxonomy seeded")

	if !strings.Contains(buf.String(), "command="+colorReset+"seed") {
		t.Errorf("expected command attr, got: %q", buf.String())
	}
}
