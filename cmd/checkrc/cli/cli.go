package cli

import (
	"github.com/spf13/cobra"

	"github.com/wowtools/checkrc/cmd/checkrc/cli/command"
	"github.com/wowtools/checkrc/internal"
)

// Application constructs the checkrc CLI application
func Application() *cobra.Command {
	app := &cobra.Command{
		Use:     "checkrc",
		Short:   "A luacheck configuration toolkit for World of Warcraft addon projects",
		Long:    `Checkrc loads, validates, formats, and generates .luacheckrc configuration files for WoW addon projects. The generate command rebuilds the globals allow-list from Blizzard's published interface resources so that luacheck stops flagging well-known API names, events, and UI widget types as undefined.`,
		Version: internal.ApplicationVersion,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Set up logging based on verbose flag
			verbose, _ := cmd.Flags().GetBool("verbose")
			command.SetupLogging(verbose)
		},
	}

	// Add global flags
	app.PersistentFlags().StringP("config", "c", "", "path to generator settings file")
	app.PersistentFlags().StringP("output", "o", "table", "output format (table, json)")
	app.PersistentFlags().BoolP("quiet", "q", false, "suppress all non-essential output")
	app.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	// Add subcommands
	app.AddCommand(
		command.Validate(),
		command.Generate(),
		command.Fmt(),
		command.Config(),
		command.Version(),
	)

	return app
}
