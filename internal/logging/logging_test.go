package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	type pair struct {
		in   string
		want Format
	}
	pairs := []pair{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{" tint ", FormatText},
		{"", FormatAuto},
		{"xml", FormatAuto},
	}
	for _, p := range pairs {
		if got := ParseFormat(p.in); got != p.want {
			t.Errorf("%q: got %v, want %v", p.in, got, p.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	type pair struct {
		in   string
		want slog.Level
	}
	pairs := []pair{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, p := range pairs {
		if got := ParseLevel(p.in); got != p.want {
			t.Errorf("%q: got %v, want %v", p.in, got, p.want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	// a buffer is not a terminal: auto gives json
	l := New(buf, FormatAuto, slog.LevelInfo)
	l.Debug("hidden")
	l.Info("drag", "paths", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %q", buf.String())
	}
	m := map[string]any{}
	if err := json.Unmarshal([]byte(lines[0]), &m); err != nil {
		t.Fatal(err)
	}
	if m["msg"] != "drag" || m["paths"] != float64(2) {
		t.Fatalf("got %v", m)
	}
}

func TestNewText(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(buf, FormatText, slog.LevelDebug)
	l.Debug("xdnd enter")
	if !strings.Contains(buf.String(), "xdnd enter") {
		t.Fatalf("got %q", buf.String())
	}
	if IsTTY(buf) {
		t.Fatal("buffer is not a tty")
	}
}
