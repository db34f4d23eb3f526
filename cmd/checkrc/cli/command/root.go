package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anchore/go-logger"
	"github.com/anchore/go-logger/adapter/logrus"
	"github.com/wowtools/checkrc/internal/log"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

// GlobalConfig holds configuration that applies to all commands
type GlobalConfig struct {
	ConfigFile   string
	OutputFormat string
	Quiet        bool
	Verbose      bool
}

// GetGlobalConfig extracts global configuration from cobra command
func GetGlobalConfig(cmd *cobra.Command) *GlobalConfig {
	configFile, _ := cmd.Flags().GetString("config")
	outputFormat, _ := cmd.Flags().GetString("output")
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return &GlobalConfig{
		ConfigFile:   configFile,
		OutputFormat: outputFormat,
		Quiet:        quiet,
		Verbose:      verbose,
	}
}

// SetupLogging configures logging based on verbose flag
func SetupLogging(verbose bool) {
	var logLevel logger.Level
	if verbose {
		logLevel = logger.DebugLevel
	} else {
		logLevel = logger.WarnLevel
	}

	cfg := logrus.Config{
		EnableConsole: true,
		Level:         logLevel,
	}

	l, _ := logrus.New(cfg)
	log.Set(l)
}

// HandleError handles command errors consistently
func HandleError(err error, quiet bool) {
	if err != nil && !quiet {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
