package command

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/wagoodman/go-partybus"

	"github.com/wowtools/checkrc/checkrc/generate"
	"github.com/wowtools/checkrc/cmd/checkrc/cli/option"
	"github.com/wowtools/checkrc/event"
	"github.com/wowtools/checkrc/internal/bus"
)

// Generate creates the generate command
func Generate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Rebuild the globals allow-list from Blizzard's interface resources",
		Long: `Generate fetches Blizzard's published interface resource files (global
strings, events, frames, the global API, enums, and mixins), extracts
identifier names from them, merges in the project's custom globals, and
rewrites .luacheckrc, globals.lua, and globals.json.

Downloads are cached with conditional requests, so repeated runs only
transfer files that changed upstream. Sources that fail to fetch or
parse are skipped with a warning; the run only fails when nothing at
all could be extracted.`,
		RunE: runGenerate,
	}

	cmd.Flags().StringArray("source", nil, "only fetch the named sources (repeatable)")
	cmd.Flags().String("dir", "", "project directory to write outputs into")
	cmd.Flags().String("cache-dir", "", "directory for the download cache")
	cmd.Flags().String("custom-globals", "", "path to the hand-maintained globals file")
	cmd.Flags().Bool("skip-framexml", false, "skip scanning the FrameXML source archive")
	cmd.Flags().Bool("skip-wiki", false, "skip scraping the wiki API index")
	cmd.Flags().IntP("parallelism", "p", 0, "number of sources to fetch concurrently")

	return cmd
}

// runGenerate executes the generate command
func runGenerate(cmd *cobra.Command, args []string) error {
	globalConfig := GetGlobalConfig(cmd)

	settings, err := option.LoadSettings(globalConfig.ConfigFile)
	if err != nil {
		HandleError(err, globalConfig.Quiet)
		return err
	}

	opts := settings.ToOptions()
	applyGenerateFlags(cmd, &opts)

	// wire up the event bus so generator tasks surface on stderr and the
	// final report flows to stdout
	b := partybus.NewBus()
	bus.Set(b)
	sub := b.Subscribe()
	done := make(chan struct{})
	go eventLoop(sub, globalConfig.Quiet, done)

	sourceNames := make([]string, 0, len(opts.Sources))
	for _, src := range opts.Sources {
		sourceNames = append(sourceNames, src.Name)
	}
	prog := bus.PublishGenerateStarted(sourceNames, len(opts.Sources))

	result, runErr := generate.Run(cmd.Context(), opts)
	if runErr != nil {
		prog.SetError(runErr)
	} else {
		prog.SetCompleted()
		if !globalConfig.Quiet {
			report, err := renderGenerateReport(result, globalConfig.OutputFormat)
			if err != nil {
				runErr = err
			} else {
				bus.Report(report)
			}
		}
	}

	b.Close()
	<-done

	if runErr != nil {
		HandleError(runErr, globalConfig.Quiet)
	}
	return runErr
}

// applyGenerateFlags overrides settings with any flags given explicitly
func applyGenerateFlags(cmd *cobra.Command, opts *generate.Options) {
	if names, _ := cmd.Flags().GetStringArray("source"); len(names) > 0 {
		wanted := make(map[string]bool, len(names))
		for _, name := range names {
			wanted[name] = true
		}
		var filtered []generate.Source
		for _, src := range opts.Sources {
			if wanted[src.Name] {
				filtered = append(filtered, src)
			}
		}
		opts.Sources = filtered
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		opts.Dir = dir
		opts.CacheDir = filepath.Join(dir, ".cache")
		opts.CustomGlobalsPath = filepath.Join(dir, "custom_globals.lua")
	}
	if cacheDir, _ := cmd.Flags().GetString("cache-dir"); cacheDir != "" {
		opts.CacheDir = cacheDir
	}
	if customGlobals, _ := cmd.Flags().GetString("custom-globals"); customGlobals != "" {
		opts.CustomGlobalsPath = customGlobals
	}
	if skip, _ := cmd.Flags().GetBool("skip-framexml"); skip {
		opts.FrameXML = false
	}
	if skip, _ := cmd.Flags().GetBool("skip-wiki"); skip {
		opts.APIWiki = false
	}
	if parallelism, _ := cmd.Flags().GetInt("parallelism"); parallelism > 0 {
		opts.Parallelism = parallelism
	}
}

// eventLoop routes bus events to the terminal until the bus closes:
// notifications and task starts to stderr, the final report to stdout
func eventLoop(sub *partybus.Subscription, quiet bool, done chan struct{}) {
	defer close(done)
	for e := range sub.Events() {
		switch e.Type {
		case event.CLIGenerateCmdStarted:
			sources, _, err := event.ParseGenerateCommandStarted(e)
			if err != nil || quiet {
				continue
			}
			fmt.Fprintf(os.Stderr, "Generating globals allow-list from %d sources\n", len(sources))
		case event.TaskStartedEvent:
			task, _, err := event.ParseTaskStarted(e)
			if err != nil || quiet {
				continue
			}
			title := task.Title.WhileRunning
			if title == "" {
				title = task.Title.Default
			}
			fmt.Fprintf(os.Stderr, " %s %s\n", color.Cyan.Sprint("•"), title)
		case event.CLINotification:
			_, message, err := event.ParseCLINotification(e)
			if err != nil || quiet {
				continue
			}
			fmt.Fprintf(os.Stderr, " %s %s\n", color.Yellow.Sprint("!"), message)
		case event.CLIReport:
			_, report, err := event.ParseCLIReport(e)
			if err != nil {
				continue
			}
			fmt.Println(report)
		}
	}
}

// renderGenerateReport renders a run summary in the requested format
func renderGenerateReport(result *generate.Result, format string) (string, error) {
	if format == formatJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal result: %w", err)
		}
		return string(data), nil
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Source", "Globals", "Status"})
	for _, src := range result.Sources {
		status := color.Green.Sprint("ok")
		if src.Err != nil {
			status = color.Red.Sprintf("failed: %v", src.Err)
		}
		t.AppendRow(table.Row{src.Name, src.Count, status})
	}
	t.SetStyle(table.StyleLight)

	var sb strings.Builder
	sb.WriteString(t.Render())
	sb.WriteString(fmt.Sprintf("\n\n%d globals in allow-list\n", len(result.Globals)))
	for _, out := range result.Outputs {
		marker := color.Gray.Sprint("unchanged")
		if out.Changed {
			marker = color.Green.Sprint("written")
		}
		sb.WriteString(fmt.Sprintf("\n %s %s", marker, out.Path))
	}
	return sb.String(), nil
}
