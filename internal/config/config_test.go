package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tracksplit/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaultsWhenFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(missing)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatalf("expected exists=false for %s", resolved)
	}
	if cfg.Export.Bitrate != 192 {
		t.Fatalf("expected default bitrate 192, got %d", cfg.Export.Bitrate)
	}
	if cfg.Export.MaxConcurrency != 2 {
		t.Fatalf("expected default concurrency 2, got %d", cfg.Export.MaxConcurrency)
	}
	if cfg.Export.NamingTemplate != "{index}. {title}" {
		t.Fatalf("unexpected naming template %q", cfg.Export.NamingTemplate)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) {
		t.Fatalf("expected expanded output dir, got %q", cfg.Paths.OutputDir)
	}
}

func TestLoadReadsValues(t *testing.T) {
	path := writeConfig(t, `
[export]
bitrate = 256
overwrite = true
max_concurrency = 4

[logging]
format = "json"
level = "debug"
`)
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Export.Bitrate != 256 || !cfg.Export.Overwrite || cfg.Export.MaxConcurrency != 4 {
		t.Fatalf("unexpected export config: %+v", cfg.Export)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[export]
bit_rate = 256
`)
	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown options") {
		t.Fatalf("expected unknown-options error, got %v", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bitrate", "[export]\nbitrate = 8\n", "export.bitrate"},
		{"concurrency", "[export]\nmax_concurrency = 0\n", "export.max_concurrency"},
		{"timeout", "[export]\nper_span_timeout_seconds = -1\n", "per_span_timeout_seconds"},
		{"template", "[export]\nnaming_template = \"tracks\"\n", "naming_template"},
		{"log format", "[logging]\nformat = \"yaml\"\n", "logging.format"},
		{"log level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := config.Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}
