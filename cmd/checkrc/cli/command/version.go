package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wowtools/checkrc/internal"
)

// Version creates the version command
func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information for checkrc",
		RunE: func(cmd *cobra.Command, args []string) error {
			globalConfig := GetGlobalConfig(cmd)
			info := internal.GetBuildInfo()

			if globalConfig.OutputFormat == formatJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(info)
			}

			fmt.Printf("Application:    %s\n", info.Application)
			fmt.Printf("Version:        %s\n", info.Version)
			fmt.Printf("BuildDate:      %s\n", info.BuildDate)
			fmt.Printf("GitCommit:      %s\n", info.GitCommit)
			fmt.Printf("GitDescription: %s\n", info.GitDescription)
			fmt.Printf("Platform:       %s\n", info.Platform)
			fmt.Printf("GoVersion:      %s\n", info.GoVersion)
			fmt.Printf("Compiler:       %s\n", info.Compiler)
			return nil
		},
	}
}
