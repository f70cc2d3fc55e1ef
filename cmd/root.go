package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tinkerbelle-io/tb-hooklog/internal/config"
)

// Exit codes seen by the invoking framework.
const (
	exitOK         = 0
	exitBadInput   = 1
	exitLogFailure = 2
)

var (
	// Flags
	flagConfig   string
	flagBaseDir  string
	flagLogLevel string
	flagStrict   bool
)

var rootCmd = &cobra.Command{
	Use:   "tb-hooklog",
	Short: "Append redacted hook events to a shared NDJSON log",
	Long: `tb-hooklog is run once per hook invocation. It reads one JSON event from
stdin, replaces values under sensitive keys (token, password, api_key, ...)
with "<redacted>", and appends the event as one line to a log file shared
by every hook process in the project.

Concurrent invocations are serialized with an advisory lock on the log file,
so lines never interleave. Invalid JSON exits 1. Logging failures are
reported on stderr and exit 0 unless --strict is set, in which case they
exit 2.

Running tb-hooklog without a subcommand is the same as 'tb-hooklog log'.`,
	Args:          cobra.NoArgs,
	RunE:          runLog,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: $CLAUDE_PROJECT_DIR/.claude/hooklog.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&flagBaseDir, "base-dir", "", "Project base directory (env: CLAUDE_PROJECT_DIR, default: working directory)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Diagnostic log level: debug, info, warn, error (env: HOOKLOG_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "Exit 2 when the event cannot be logged (env: HOOKLOG_STRICT)")
}

// Execute runs the root command and exits with the code the hook framework
// expects.
func Execute(version string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("tb-hooklog %s\n", version))
	os.Exit(exitCode(rootCmd.Execute()))
}

// exitError carries a process exit code for an error that has already been
// reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitBadInput
}

// loadConfig resolves configuration from file and environment, then applies
// command-line flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig, flagBaseDir)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flagStrict
	}
}
