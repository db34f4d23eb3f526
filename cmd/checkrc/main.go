package main

import (
	"os"
	"runtime"

	"github.com/wowtools/checkrc/cmd/checkrc/cli"
	"github.com/wowtools/checkrc/internal"
)

var (
	version        = internal.NotProvided
	gitCommit      = internal.NotProvided
	buildDate      = internal.NotProvided
	gitDescription = internal.NotProvided
)

func main() {
	internal.SetBuildInfo(version, gitCommit, buildDate, gitDescription, runtime.Version())

	app := cli.Application()

	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
