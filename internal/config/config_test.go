package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CLAUDE_PROJECT_DIR", "HOOKLOG_FILE", "HOOKLOG_LOG_LEVEL", "HOOKLOG_STRICT"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load("", "")
	if err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if cfg.BaseDir != wd {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, wd)
	}
	if cfg.LogFile != DefaultLogFile {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.Strict || cfg.Sync {
		t.Error("strict and sync should default to false")
	}
	if !cfg.RedactExcerpt {
		t.Error("redact_excerpt should default to true")
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if want := filepath.Join(wd, ".claude", "hooks", "logs", "hooks-log.jsonl"); cfg.LogPath() != want {
		t.Errorf("LogPath() = %q, want %q", cfg.LogPath(), want)
	}
}

func TestLoad_ProjectDirEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("CLAUDE_PROJECT_DIR", dir)

	cfg, err := Load("", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, dir)
	}
}

func TestLoad_ProjectConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("CLAUDE_PROJECT_DIR", dir)
	writeFile(t, filepath.Join(dir, ProjectConfigFile), `
log_file: logs/events.jsonl
strict: true
sync: true
redact_excerpt: false
extra_sensitive_keys: [pin, otp]
`)

	cfg, err := Load("", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source != filepath.Join(dir, ProjectConfigFile) {
		t.Errorf("Source = %q", cfg.Source)
	}
	if !cfg.Strict || !cfg.Sync || cfg.RedactExcerpt {
		t.Errorf("flags not read: %+v", cfg)
	}
	if len(cfg.ExtraSensitiveKeys) != 2 {
		t.Errorf("ExtraSensitiveKeys = %v", cfg.ExtraSensitiveKeys)
	}
	if want := filepath.Join(dir, "logs", "events.jsonl"); cfg.LogPath() != want {
		t.Errorf("LogPath() = %q, want %q", cfg.LogPath(), want)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "hooklog.yaml")
	writeFile(t, path, "base_dir: /srv/project\nlog_level: debug\n")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseDir != "/srv/project" {
		t.Errorf("BaseDir = %q", cfg.BaseDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "strict: [not, a, bool\n")

	_, err := Load(path, "")
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "hooklog.yaml")
	writeFile(t, path, "base_dir: /from/file\nlog_file: a.jsonl\nlog_level: warn\nstrict: false\n")

	t.Setenv("CLAUDE_PROJECT_DIR", "/from/env")
	t.Setenv("HOOKLOG_FILE", "/abs/b.jsonl")
	t.Setenv("HOOKLOG_LOG_LEVEL", "error")
	t.Setenv("HOOKLOG_STRICT", "true")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseDir != "/from/env" {
		t.Errorf("BaseDir = %q", cfg.BaseDir)
	}
	if cfg.LogPath() != "/abs/b.jsonl" {
		t.Errorf("absolute log_file should not be joined, got %q", cfg.LogPath())
	}
	if cfg.LogLevel != "error" || !cfg.Strict {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_InvalidStrictEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLAUDE_PROJECT_DIR", t.TempDir())
	t.Setenv("HOOKLOG_STRICT", "sometimes")

	if _, err := Load("", ""); err == nil {
		t.Fatal("expected error for invalid HOOKLOG_STRICT")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"upper-case level", func(c *Config) { c.LogLevel = "DEBUG" }, false},
		{"unknown level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"blank log file", func(c *Config) { c.LogFile = "  " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_BaseDirFindsProjectConfig(t *testing.T) {
	clearEnv(t)
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv("CLAUDE_PROJECT_DIR", envDir)
	writeFile(t, filepath.Join(envDir, ProjectConfigFile), "strict: false\n")
	writeFile(t, filepath.Join(flagDir, ProjectConfigFile), "strict: true\nlog_file: custom.jsonl\n")

	cfg, err := Load("", flagDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source != filepath.Join(flagDir, ProjectConfigFile) {
		t.Errorf("Source = %q, want the config under the base dir", cfg.Source)
	}
	if cfg.BaseDir != flagDir {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, flagDir)
	}
	if !cfg.Strict {
		t.Error("strict from the base dir config not applied")
	}
	if want := filepath.Join(flagDir, "custom.jsonl"); cfg.LogPath() != want {
		t.Errorf("LogPath() = %q, want %q", cfg.LogPath(), want)
	}
}

func TestFallback(t *testing.T) {
	clearEnv(t)
	envDir := t.TempDir()
	t.Setenv("CLAUDE_PROJECT_DIR", envDir)
	t.Setenv("HOOKLOG_STRICT", "maybe")

	tests := []struct {
		name    string
		baseDir string
		want    string
	}{
		{"env base dir", "", envDir},
		{"flag base dir", "/from/flag", "/from/flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Fallback(tt.baseDir)
			if cfg.BaseDir != tt.want {
				t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, tt.want)
			}
			if cfg.Strict {
				t.Error("fallback must not enable strict mode")
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("fallback config invalid: %v", err)
			}
			if want := filepath.Join(tt.want, DefaultLogFile); cfg.LogPath() != want {
				t.Errorf("LogPath() = %q, want %q", cfg.LogPath(), want)
			}
		})
	}
}

func TestResolveBaseDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	wd, _ := os.Getwd()

	if got := ResolveBaseDir(""); got != wd {
		t.Errorf("ResolveBaseDir(\"\") = %q, want working dir %q", got, wd)
	}
	t.Setenv("CLAUDE_PROJECT_DIR", "/env")
	if got := ResolveBaseDir(""); got != "/env" {
		t.Errorf("ResolveBaseDir(\"\") = %q, want /env", got)
	}
	if got := ResolveBaseDir("/flag"); got != "/flag" {
		t.Errorf("ResolveBaseDir(/flag) = %q", got)
	}
}
