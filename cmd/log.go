package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tinkerbelle-io/tb-hooklog/internal/config"
	"github.com/tinkerbelle-io/tb-hooklog/internal/event"
	"github.com/tinkerbelle-io/tb-hooklog/internal/hooklog"
	"github.com/tinkerbelle-io/tb-hooklog/internal/logging"
	"github.com/tinkerbelle-io/tb-hooklog/internal/redact"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Read one hook event from stdin and append it to the log",
	Long: `Read one JSON document from stdin, redact it, and append it to the
project's hook log (default: .claude/hooks/logs/hooks-log.jsonl under the base
directory).

A broken config file or environment variable is reported on stderr and the
event is logged with the built-in defaults.`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		cfg = fallbackConfig(cmd)
	}
	log := logging.Setup(cfg.LogLevel)
	if err != nil {
		log.Warn("invalid configuration, using defaults", "error", err, "base_dir", cfg.BaseDir)
	}
	return handleEvent(cmd.InOrStdin(), cfg, log)
}

// fallbackConfig keeps the hook logging when the config file or environment
// is broken. Only --base-dir and --strict are honored.
func fallbackConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Fallback(flagBaseDir)
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flagStrict
	}
	return cfg
}

// handleEvent runs one hook invocation: parse in, then append the redacted
// event. Only unparseable input, or a logging failure in strict mode, is
// returned as an error.
func handleEvent(in io.Reader, cfg *config.Config, log *slog.Logger) error {
	r := redact.New(cfg.ExtraSensitiveKeys...)

	v, raw, err := event.Read(in)
	if err != nil {
		text := string(raw)
		if cfg.RedactExcerpt {
			text = r.Text(text)
		}
		log.Error("invalid hook event", "error", err, "input", event.Excerpt(text))
		return &exitError{code: exitBadInput, err: err}
	}

	l := hooklog.New(cfg.LogPath(),
		hooklog.WithRedactor(r),
		hooklog.WithSync(cfg.Sync),
		hooklog.WithLogger(log.With("component", "hooklog")),
	)
	if err := l.Log(v); err != nil {
		log.Error("failed to log hook event", "path", l.Path(), "error", err)
		if cfg.Strict {
			return &exitError{code: exitLogFailure, err: err}
		}
	}
	return nil
}
