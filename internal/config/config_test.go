package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tamer/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "tamer", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Daemon.SystemMode {
		t.Fatal("expected system mode disabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	rulesPath, err := cfg.RulesPath()
	if err != nil {
		t.Fatalf("RulesPath returned error: %v", err)
	}
	want := filepath.Join(tempHome, ".config", "tamer", "rules.ini")
	if rulesPath != want {
		t.Fatalf("unexpected rules path: got %q want %q", rulesPath, want)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.LogDir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "tamer.toml")
	content := `
[paths]
log_dir = "` + filepath.Join(dir, "logs") + `"
rules_file = "` + filepath.Join(dir, "rules.ini") + `"

[daemon]
system_mode = true
metrics_bind = "127.0.0.1:9734"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: exists=%v resolved=%q", exists, resolved)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Daemon.MetricsBind != "127.0.0.1:9734" {
		t.Fatalf("unexpected metrics bind: %q", cfg.Daemon.MetricsBind)
	}

	// Explicit rules_file wins over system mode.
	rulesPath, err := cfg.RulesPath()
	if err != nil {
		t.Fatalf("RulesPath returned error: %v", err)
	}
	if rulesPath != filepath.Join(dir, "rules.ini") {
		t.Fatalf("expected override to win, got %q", rulesPath)
	}
}

func TestSystemModeRulesPath(t *testing.T) {
	cfg := config.Default()
	cfg.Daemon.SystemMode = true
	rulesPath, err := cfg.RulesPath()
	if err != nil {
		t.Fatalf("RulesPath returned error: %v", err)
	}
	if rulesPath != "/etc/tamer/rules.ini" {
		t.Fatalf("unexpected system rules path: %q", rulesPath)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty log dir", func(c *config.Config) { c.Paths.LogDir = "" }},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }},
		{"bad metrics bind", func(c *config.Config) { c.Daemon.MetricsBind = "not-a-bind" }},
	}
	for _, tc := range cases {
		cfg := config.Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestCreateSamples(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(configPath); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	if !strings.Contains(string(data), "[daemon]") {
		t.Fatalf("sample config missing daemon section: %q", data)
	}

	rulesPath := filepath.Join(dir, "rules.ini")
	if err := config.CreateSampleRules(rulesPath); err != nil {
		t.Fatalf("CreateSampleRules failed: %v", err)
	}
	data, err = os.ReadFile(rulesPath)
	if err != nil {
		t.Fatalf("read sample rules: %v", err)
	}
	if !strings.Contains(string(data), "Process1_Name") {
		t.Fatalf("sample rules missing process entries: %q", data)
	}
}
