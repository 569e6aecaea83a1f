package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With(slog.String(FieldComponent, "export")).Info("track exported",
		slog.Int(FieldTrack, 3),
		slog.String(FieldTitle, "Echoes Part One"),
	)

	line := buf.String()
	if !strings.Contains(line, " INFO export: track exported") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "track=3") {
		t.Fatalf("missing track field: %q", line)
	}
	if !strings.Contains(line, `title="Echoes Part One"`) {
		t.Fatalf("expected quoted title, got: %q", line)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("expected info record to be suppressed, got %q", buf.String())
	}
	logger.Warn("visible")
	if !strings.Contains(buf.String(), "WARN visible") {
		t.Fatalf("expected warn record, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestJSONHandlerRenamesCoreKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello")
	line := buf.String()
	for _, key := range []string{`"ts":`, `"level":"info"`, `"msg":"hello"`} {
		if !strings.Contains(line, key) {
			t.Fatalf("expected %s in %q", key, line)
		}
	}
}
