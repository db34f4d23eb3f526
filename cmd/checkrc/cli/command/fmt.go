package command

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/wowtools/checkrc/checkrc"
)

// Fmt creates the fmt command
func Fmt() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [FILE]",
		Short: "Rewrite a luacheck configuration in canonical form",
		Long: `Fmt loads a configuration file and re-emits it in canonical form:
globals sorted by name, consistent quoting and indentation, and one
entry per line in the ignore and globals blocks.

The target defaults to .luacheckrc in the current directory. Without
flags the canonical form is printed to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFmt,
	}

	cmd.Flags().Bool("check", false, "exit non-zero when the file is not in canonical form")
	cmd.Flags().BoolP("write", "w", false, "rewrite the file in place instead of printing")

	return cmd
}

// runFmt executes the fmt command
func runFmt(cmd *cobra.Command, args []string) error {
	globalConfig := GetGlobalConfig(cmd)
	check, _ := cmd.Flags().GetBool("check")
	write, _ := cmd.Flags().GetBool("write")

	target := ".luacheckrc"
	if len(args) == 1 {
		target = args[0]
	}

	original, err := os.ReadFile(target)
	if err != nil {
		HandleError(err, globalConfig.Quiet)
		return err
	}

	cfg, err := checkrc.LoadFile(target)
	if err != nil {
		err = fmt.Errorf("failed to load %s: %w", target, err)
		HandleError(err, globalConfig.Quiet)
		return err
	}

	canonical, err := cfg.EncodeString()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", target, err)
	}

	changed := canonical != string(original)

	switch {
	case check:
		if changed {
			if !globalConfig.Quiet {
				fmt.Printf("%s is not in canonical form\n", target)
			}
			os.Exit(1)
		}
	case write:
		if changed {
			if err := renameio.WriteFile(target, []byte(canonical), 0o644); err != nil {
				return fmt.Errorf("failed to rewrite %s: %w", target, err)
			}
		}
		if !globalConfig.Quiet {
			if changed {
				fmt.Printf("rewrote %s\n", target)
			} else {
				fmt.Printf("%s is already canonical\n", target)
			}
		}
	default:
		fmt.Print(canonical)
	}

	return nil
}
