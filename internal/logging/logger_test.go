package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	logger.Info("search complete", "component", "search", "kept", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "search complete" || rec["component"] != "search" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestAutoFormatUsesJSONWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "auto", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hello")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}
}

func TestConsoleAndErrors(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Warn("probe failed", "endpoint", "http://x")
	if !strings.Contains(buf.String(), "msg=\"probe failed\"") {
		t.Fatalf("unexpected console output %q", buf.String())
	}

	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug, " WARN ": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo, "bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
