package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tinkerbelle-io/tb-hooklog/internal/config"
	"github.com/tinkerbelle-io/tb-hooklog/internal/logging"
	"github.com/tinkerbelle-io/tb-hooklog/internal/redact"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show resolved configuration and log file state",
	Long:  `Display the resolved tb-hooklog configuration and the state of the hook log file.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)

	s, err := statLog(cfg.LogPath())
	if err != nil {
		return err
	}
	printStatus(cmd.OutOrStdout(), cfg, s)
	fmt.Fprintf(cmd.OutOrStdout(), "\nVersion:    %s\n", rootCmd.Version)
	return nil
}

// logState describes the log file on disk.
type logState struct {
	Exists  bool
	Size    int64
	Records int
}

func statLog(path string) (logState, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return logState{}, nil
	}
	if err != nil {
		return logState{}, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return logState{}, fmt.Errorf("stat log: %w", err)
	}
	records, err := countLines(f)
	if err != nil {
		return logState{}, fmt.Errorf("read log: %w", err)
	}
	return logState{Exists: true, Size: info.Size(), Records: records}, nil
}

func countLines(r io.Reader) (int, error) {
	buf := make([]byte, 64*1024)
	n := 0
	for {
		c, err := r.Read(buf)
		n += bytes.Count(buf[:c], []byte{'\n'})
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
}

func printStatus(w io.Writer, cfg *config.Config, s logState) {
	fmt.Fprintf(w, "Base dir:   %s\n", cfg.BaseDir)
	fmt.Fprintf(w, "Config:     %s\n", valueOrNA(cfg.Source))
	fmt.Fprintf(w, "Log file:   %s\n", cfg.LogPath())
	fmt.Fprintf(w, "Exists:     %s\n", boolStatus(s.Exists))
	if s.Exists {
		fmt.Fprintf(w, "Size:       %d bytes\n", s.Size)
		fmt.Fprintf(w, "Records:    %d\n", s.Records)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "  Strict:          %s\n", boolStatus(cfg.Strict))
	fmt.Fprintf(w, "  Sync:            %s\n", boolStatus(cfg.Sync))
	fmt.Fprintf(w, "  Redact excerpt:  %s\n", boolStatus(cfg.RedactExcerpt))
	fmt.Fprintf(w, "  Sensitive keys:  %s\n", strings.Join(redact.New(cfg.ExtraSensitiveKeys...).Keys(), ", "))
}

func boolStatus(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func valueOrNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
