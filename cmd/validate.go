package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tinkerbelle-io/tb-hooklog/internal/logging"
	"github.com/tinkerbelle-io/tb-hooklog/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the project's MCP and settings files",
	Long: `Validate the hook framework's configuration under the base directory:

  .mcp.json               server definitions, types, placeholder values
  .claude/settings.json   known keys, model name, statusLine
  .claude/hooks/logs ...  expected directories (informational)
  .env.example, .env      environment templates

Exits 1 if any issue is found.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)

	r := validate.Run(cfg.BaseDir)
	printReport(cmd.OutOrStdout(), r)
	if !r.OK() {
		return &exitError{code: 1, err: errors.New("configuration has issues")}
	}
	return nil
}

func printReport(w io.Writer, r *validate.Report) {
	fmt.Fprintf(w, "Validating %s\n\n", r.BaseDir)
	for _, f := range r.Findings {
		label := "info "
		if f.Issue {
			label = "issue"
		}
		fmt.Fprintf(w, "  %s  %s: %s\n", label, f.Target, f.Message)
	}
	if len(r.Findings) > 0 {
		fmt.Fprintln(w)
	}

	if issues := r.Issues(); len(issues) > 0 {
		fmt.Fprintf(w, "Validation completed with %d issue(s)\n", len(issues))
		return
	}
	fmt.Fprintln(w, "All configuration files are valid")
}
