// Package config handles configuration for tb-hooklog.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultLogFile is the log path relative to the base directory.
	DefaultLogFile = ".claude/hooks/logs/hooks-log.jsonl"
	// ProjectConfigFile is looked up under the base directory when no
	// config path is given.
	ProjectConfigFile = ".claude/hooklog.yaml"
)

// Config holds all tb-hooklog configuration.
type Config struct {
	BaseDir            string   `yaml:"base_dir"`
	LogFile            string   `yaml:"log_file"`
	LogLevel           string   `yaml:"log_level"`
	Strict             bool     `yaml:"strict"`
	Sync               bool     `yaml:"sync"`
	RedactExcerpt      bool     `yaml:"redact_excerpt"`
	ExtraSensitiveKeys []string `yaml:"extra_sensitive_keys"`

	// Source is the config file that was read, empty if none.
	Source string `yaml:"-"`
}

// Default returns the built-in configuration. BaseDir is left empty and
// resolved to the working directory by Load.
func Default() *Config {
	return &Config{
		LogFile:       DefaultLogFile,
		LogLevel:      "info",
		RedactExcerpt: true,
	}
}

// Load builds the configuration from defaults, a YAML file and environment
// variables, in increasing precedence. A non-empty baseDir (the --base-dir
// flag) overrides all of them.
//
// If path is non-empty the file must exist. Otherwise ProjectConfigFile under
// the base directory is read when present.
func Load(path, baseDir string) (*Config, error) {
	cfg := Default()

	if path == "" {
		candidate := filepath.Join(ResolveBaseDir(baseDir), ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if baseDir != "" {
		cfg.BaseDir = baseDir
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = ResolveBaseDir("")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}
	return cfg, nil
}

// Fallback returns the built-in configuration rooted at the base directory.
// It is used when Load fails so that a broken config file or environment
// variable does not stop events from being logged.
func Fallback(baseDir string) *Config {
	cfg := Default()
	cfg.BaseDir = ResolveBaseDir(baseDir)
	return cfg
}

// ResolveBaseDir returns override if set, else CLAUDE_PROJECT_DIR, else the
// working directory.
func ResolveBaseDir(override string) string {
	if override != "" {
		return override
	}
	if v := os.Getenv("CLAUDE_PROJECT_DIR"); v != "" {
		return v
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CLAUDE_PROJECT_DIR"); v != "" {
		c.BaseDir = v
	}
	if v := os.Getenv("HOOKLOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("HOOKLOG_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("HOOKLOG_STRICT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HOOKLOG_STRICT: %w", err)
		}
		c.Strict = b
	}
	return nil
}

// LogPath returns the absolute or base-relative path of the log file.
func (c *Config) LogPath() string {
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.BaseDir, c.LogFile)
}

// Validate checks values that Load accepts syntactically.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q: must be debug, info, warn or error", c.LogLevel))
	}
	if strings.TrimSpace(c.LogFile) == "" {
		errs = append(errs, errors.New("log_file must not be empty"))
	}
	return errors.Join(errs...)
}
