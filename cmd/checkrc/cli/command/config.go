package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wowtools/checkrc/cmd/checkrc/cli/option"
)

// Config creates the config command
func Config() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved generator settings",
		Long: `Config prints the generator settings as YAML, with any settings file
given via --config merged over the defaults.

The output can be saved as .checkrc.yaml and customized: sources can be
added or removed, the FrameXML and wiki scans toggled, and the cache and
output directories relocated.`,
		RunE: runConfig,
	}

	cmd.Flags().String("file", "", "write the settings to a file instead of stdout")

	return cmd
}

// runConfig executes the config command
func runConfig(cmd *cobra.Command, args []string) error {
	globalConfig := GetGlobalConfig(cmd)
	outputFile, _ := cmd.Flags().GetString("file")

	settings, err := option.LoadSettings(globalConfig.ConfigFile)
	if err != nil {
		HandleError(err, globalConfig.Quiet)
		return err
	}

	rendered, err := renderSettings(settings)
	if err != nil {
		return fmt.Errorf("failed to render settings: %w", err)
	}

	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		if err := os.WriteFile(outputFile, []byte(rendered), 0600); err != nil {
			return fmt.Errorf("failed to write settings file: %w", err)
		}
		fmt.Printf("Settings written to: %s\n", outputFile)
		return nil
	}

	fmt.Print(rendered)
	return nil
}

// renderSettings marshals settings to YAML with a header comment
func renderSettings(settings option.Settings) (string, error) {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("failed to marshal settings: %w", err)
	}

	var result strings.Builder
	result.WriteString(`# Checkrc generator settings
# Save as .checkrc.yaml in the project root, or pass with --config

`)
	result.Write(yamlData)

	return result.String(), nil
}
