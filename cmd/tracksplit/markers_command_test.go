package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTracklist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracklist.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write tracklist: %v", err)
	}
	return path
}

func TestMarkersCommandParsesTracklist(t *testing.T) {
	path := writeTracklist(t, "0:00 Opening Theme\n3:45 Second Song\n")

	out, err := runCLI(t, "markers", path)
	if err != nil {
		t.Fatalf("markers command failed: %v", err)
	}
	if !strings.Contains(out, "Opening Theme") || !strings.Contains(out, "Second Song") {
		t.Fatalf("expected both titles in output, got:\n%s", out)
	}
	if !strings.Contains(out, "3:45") {
		t.Fatalf("expected formatted start time, got:\n%s", out)
	}
}

func TestMarkersCommandValidatesAgainstDuration(t *testing.T) {
	path := writeTracklist(t, "0:00 Opening Theme\n3:45 Second Song\n")

	out, err := runCLI(t, "markers", path, "--duration", "10:00")
	if err != nil {
		t.Fatalf("markers command failed: %v", err)
	}
	if !strings.Contains(out, "Markers valid") {
		t.Fatalf("expected validation confirmation, got:\n%s", out)
	}
}

func TestMarkersCommandRejectsMarkersPastDuration(t *testing.T) {
	path := writeTracklist(t, "0:00 Opening Theme\n3:45 Second Song\n")

	_, err := runCLI(t, "markers", path, "--duration", "2:00")
	if err == nil {
		t.Fatal("expected validation error for marker past duration")
	}
	if !strings.Contains(err.Error(), "invalid for duration") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestMarkersCommandHandlesUnrecognizedInput(t *testing.T) {
	path := writeTracklist(t, "no timestamps here\n")

	out, err := runCLI(t, "markers", path)
	if err != nil {
		t.Fatalf("markers command failed: %v", err)
	}
	if !strings.Contains(out, "No markers recognized") {
		t.Fatalf("expected empty-parse notice, got:\n%s", out)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected target path in output, got:\n%s", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config written: %v", err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}
