package command

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/wowtools/checkrc/checkrc"
	"github.com/wowtools/checkrc/cmd/checkrc/cli/internal"
	"github.com/wowtools/checkrc/internal/input"
)

// Validate creates the validate command
func Validate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [FILE...]",
		Short: "Validate one or more luacheck configuration files",
		Long: `Validate loads each configuration file and checks it for structural
problems: unknown std profiles, malformed suppression patterns, invalid
exclusion globs, duplicate suppressions, and empty global declarations.

Targets default to .luacheckrc in the current directory. Use - to read a
configuration from stdin.

Exit codes:
- 0: No error-severity findings
- 1: One or more files had errors or could not be loaded`,
		Args: cobra.ArbitraryArgs,
		RunE: runValidate,
	}

	cmd.Flags().Bool("summary-only", false, "show only per-file finding counts")

	return cmd
}

// runValidate executes the validate command
func runValidate(cmd *cobra.Command, args []string) error {
	globalConfig := GetGlobalConfig(cmd)
	summaryOnly, _ := cmd.Flags().GetBool("summary-only")

	targets := args
	if len(targets) == 0 {
		targets = []string{".luacheckrc"}
	}

	// cat .luacheckrc | checkrc validate - is supported
	isStdin, _ := input.IsStdinPipeOrRedirect()
	if isStdin && !slices.Contains(targets, "-") && len(args) == 0 {
		targets = []string{"-"}
	}

	report := internal.ValidateReport{}
	for _, target := range targets {
		entry, err := validateTarget(target)
		if err != nil {
			HandleError(err, globalConfig.Quiet)
			return err
		}
		report.Targets = append(report.Targets, entry)
	}

	if globalConfig.Quiet {
		return handleQuietValidateOutput(report)
	}

	output := internal.NewOutput()
	switch {
	case globalConfig.OutputFormat == formatJSON:
		if err := output.OutputJSON(report); err != nil {
			return err
		}
	case summaryOnly:
		if err := output.OutputValidateSummary(report); err != nil {
			return err
		}
	case globalConfig.OutputFormat == formatTable:
		if err := output.OutputValidateTable(report); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format: %s", globalConfig.OutputFormat)
	}

	if report.HasErrors() {
		os.Exit(1)
	}
	return nil
}

// validateTarget loads and validates a single configuration file
func validateTarget(target string) (internal.ValidateTarget, error) {
	reader, err := input.GetReader(target)
	if err != nil {
		return internal.ValidateTarget{}, err
	}
	if closer, ok := reader.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	cfg, err := checkrc.Load(reader, target)
	if err != nil {
		return internal.ValidateTarget{}, fmt.Errorf("failed to load %s: %w", target, err)
	}

	return internal.NewValidateTarget(target, checkrc.Validate(cfg)), nil
}

// handleQuietValidateOutput handles quiet mode output
func handleQuietValidateOutput(report internal.ValidateReport) error {
	errorCount := 0
	for _, target := range report.Targets {
		errorCount += target.Errors
	}

	if errorCount > 0 {
		fmt.Printf("%d\n", errorCount)
		os.Exit(1)
	}

	return nil
}
