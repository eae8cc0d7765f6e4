package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/logmerge/errors"
)

type mockFileSystem struct {
	files   map[string]bool
	envLoad []string
}

func (m *mockFileSystem) Exists(path string) bool { return m.files[path] }

func (m *mockFileSystem) LoadEnv(path string) error {
	m.envLoad = append(m.envLoad, path)
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logmerge.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Name != DefaultName {
		t.Errorf("expected name %q, got %q", DefaultName, cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("expected logs on stderr, got %q", cfg.Logging.Output)
	}
	if cfg.Merge.Filter != "all" || cfg.Merge.Order != "lexical" || cfg.Merge.Output != "-" {
		t.Errorf("unexpected merge defaults %+v", cfg.Merge)
	}
	if cfg.Telemetry.Environment != "development" {
		t.Errorf("expected telemetry environment propagated, got %q", cfg.Telemetry.Environment)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"invalid environment", func(c *Config) { c.Environment = "qa" }, "environment: must be one of"},
		{"blank input", func(c *Config) { c.Merge.Inputs = []string{"a.log", ""} }, "merge.inputs[1]: is required"},
		{"negative buffer", func(c *Config) { c.Merge.BufferSize = "-1" }, "size must not be negative"},
		{"bad line size", func(c *Config) { c.Merge.MaxLineSize = "lots" }, "invalid size"},
		{"bad sample rate", func(c *Config) { c.Telemetry.SampleRate = 2 }, "telemetry.sample_rate: must be at most 1"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeConfig(t, `
name: nightly
environment: staging
logging:
  level: debug
telemetry:
  enabled: true
  interval: 30s
merge:
  inputs: [a.log, b.log]
  output: merged.log
  filter: even
  order: first-char
  buffer_size: 4096
  max_line_size: 2MB
`)

	var cfg Config
	if err := LoadConfig("logmerge", &cfg, WithConfigFile(path), WithFileSystem(&mockFileSystem{files: map[string]bool{path: true}})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Name != "nightly" || cfg.Environment != "staging" {
		t.Errorf("unexpected identity %q/%q", cfg.Name, cfg.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Logging.Level)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Interval != 30*time.Second {
		t.Errorf("unexpected telemetry %+v", cfg.Telemetry)
	}
	m := cfg.Merge
	if len(m.Inputs) != 2 || m.Inputs[0] != "a.log" || m.Inputs[1] != "b.log" {
		t.Errorf("unexpected inputs %v", m.Inputs)
	}
	if m.Output != "merged.log" || m.Filter != "even" || m.Order != "first-char" {
		t.Errorf("unexpected merge config %+v", m)
	}
	buf, maxLine, err := m.Sizes()
	if err != nil {
		t.Fatal(err)
	}
	if buf != 4096 || maxLine != 2*1024*1024 {
		t.Errorf("unexpected sizes %d/%d", buf, maxLine)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
merge:
  filter: even
  inputs: [a.log]
`)
	t.Setenv("LOGMERGE_MERGE_FILTER", "odd")
	t.Setenv("LOGMERGE_MERGE_INPUTS", "x.log,y.log")
	t.Setenv("LOGMERGE_MERGE_PRINT", "true")

	var cfg Config
	if err := LoadConfig("logmerge", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Merge.Filter != "odd" {
		t.Errorf("expected env to override filter, got %q", cfg.Merge.Filter)
	}
	if len(cfg.Merge.Inputs) != 2 || cfg.Merge.Inputs[1] != "y.log" {
		t.Errorf("expected inputs from env, got %v", cfg.Merge.Inputs)
	}
	if !cfg.Merge.Print {
		t.Error("expected print=true from env")
	}
}

func TestLoadConfigExplicitFileMissing(t *testing.T) {
	var cfg Config
	err := LoadConfig("logmerge", &cfg, WithConfigFile("/nonexistent/logmerge.yml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestLoadConfigNoFiles(t *testing.T) {
	var cfg Config
	if err := LoadConfig("logmerge", &cfg, WithFileSystem(&mockFileSystem{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "merge: [unclosed")
	var cfg Config
	if err := LoadConfig("logmerge", &cfg, WithConfigFile(path)); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadConfigLoadsEnvFile(t *testing.T) {
	fs := &mockFileSystem{files: map[string]bool{"./.env": true}}
	var cfg Config
	if err := LoadConfig("logmerge", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs.envLoad) != 1 || fs.envLoad[0] != "./.env" {
		t.Errorf("expected ./.env loaded, got %v", fs.envLoad)
	}
}

func TestResolverSearchOrder(t *testing.T) {
	fs := &mockFileSystem{files: map[string]bool{
		"./config/logmerge.yml": true,
		"./cmd/logmerge/logmerge.yml": true,
		"./.env.logmerge": true,
		"./.env": true,
	}}
	r := &Resolver{FileSystem: fs}

	files := r.ResolveFiles("logmerge", LoaderConfig{})
	if files.ConfigFile != "./config/logmerge.yml" {
		t.Errorf("expected ./config/logmerge.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env.logmerge" {
		t.Errorf("expected ./.env.logmerge, got %q", files.EnvFile)
	}

	files = r.ResolveFiles("logmerge", LoaderConfig{ConfigFile: "custom.yml", EnvFile: "custom.env"})
	if files.ConfigFile != "custom.yml" || files.EnvFile != "custom.env" {
		t.Errorf("explicit paths should win, got %+v", files)
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("merge.buffer_size"); got != "LOGMERGE_MERGE_BUFFER_SIZE" {
		t.Errorf("got %q", got)
	}
}
