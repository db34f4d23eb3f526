// Package generate builds the globals allow-list for a WoW addon project
// by extracting identifier names from Blizzard's published interface
// resources, and rewrites the project's luacheck configuration with the
// result.
package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/wowtools/checkrc/checkrc"
	"github.com/wowtools/checkrc/event"
	"github.com/wowtools/checkrc/internal/bus"
	"github.com/wowtools/checkrc/internal/cache"
	"github.com/wowtools/checkrc/internal/log"
)

// Options configures a generator run.
type Options struct {
	// Sources are the resource files to fetch and parse.
	Sources []Source
	// CacheDir backs the conditional-GET download cache.
	CacheDir string
	// Dir is the project root where outputs are written.
	Dir string
	// CustomGlobalsPath is the hand-maintained globals file, merged last.
	CustomGlobalsPath string
	// FrameXML enables scanning the FrameXML source archive.
	FrameXML bool
	// FrameXMLURL overrides the archive location.
	FrameXMLURL string
	// APIWiki enables scraping the wiki API index.
	APIWiki bool
	// APIWikiURL overrides the index location.
	APIWikiURL string
	// Parallelism bounds concurrent source fetches.
	Parallelism int
}

// DefaultOptions returns the stock generator setup for a project rooted at dir.
func DefaultOptions(dir string) Options {
	return Options{
		Sources:           DefaultSources(),
		CacheDir:          filepath.Join(dir, ".cache"),
		Dir:               dir,
		CustomGlobalsPath: filepath.Join(dir, "custom_globals.lua"),
		FrameXMLURL:       DefaultFrameXMLURL,
		APIWikiURL:        DefaultAPIWikiURL,
		Parallelism:       4,
	}
}

// SourceResult records the outcome of one source fetch+parse.
type SourceResult struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Err   error  `json:"-"`
}

// OutputFile records one written (or confirmed unchanged) output.
type OutputFile struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
}

// Result is the outcome of a generator run.
type Result struct {
	Globals checkrc.Globals `json:"-"`
	Sources []SourceResult  `json:"sources"`
	Outputs []OutputFile    `json:"outputs"`
}

type task struct {
	name string
	run  func(ctx context.Context) (checkrc.Globals, error)
}

// Run fetches every configured source, merges the extracted globals with
// the project's custom globals, and rewrites the outputs. A source that
// fails to fetch or parse is skipped with a warning; the run only fails
// when nothing at all could be extracted.
func Run(ctx context.Context, opts Options) (*Result, error) {
	fetcher, err := cache.NewFetcher(opts.CacheDir)
	if err != nil {
		return nil, err
	}

	tasks := buildTasks(opts, fetcher)

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = 4
	}

	results := make([]SourceResult, len(tasks))
	extracted := make([]checkrc.Globals, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, tk := range tasks {
		i, tk := i, tk
		g.Go(func() error {
			prog := bus.PublishTask(
				event.Title{
					Default:      "Fetch " + tk.name,
					WhileRunning: "Fetching " + tk.name,
					OnSuccess:    "Fetched " + tk.name,
					OnFail:       "Failed to fetch " + tk.name,
				},
				tk.name,
				1,
			)

			globals, err := tk.run(gctx)
			if err != nil {
				// a dead source should not sink the whole run
				log.Warnf("skipping source %s: %v", tk.name, err)
				bus.Notify(fmt.Sprintf("skipping source %s: %v", tk.name, err))
				prog.SetError(err)
				results[i] = SourceResult{Name: tk.name, Err: err}
				return nil
			}
			prog.Increment()
			prog.SetCompleted()

			log.WithFields("source", tk.name, "globals", len(globals)).Debug("extracted globals")
			results[i] = SourceResult{Name: tk.name, Count: len(globals)}
			extracted[i] = globals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := checkrc.Globals{}
	for _, globals := range extracted {
		if globals != nil {
			merged.Merge(globals)
		}
	}

	if opts.CustomGlobalsPath != "" {
		custom, err := LoadCustomGlobals(opts.CustomGlobalsPath)
		if err != nil {
			return nil, err
		}
		merged.Merge(custom)
		results = append(results, SourceResult{Name: "custom", Count: len(custom)})
	}

	if len(merged) == 0 {
		return nil, fmt.Errorf("no globals were extracted from any source")
	}

	outputs, err := writeOutputs(opts.Dir, merged)
	if err != nil {
		return nil, err
	}

	return &Result{
		Globals: merged,
		Sources: results,
		Outputs: outputs,
	}, nil
}

func buildTasks(opts Options, fetcher *cache.Fetcher) []task {
	var tasks []task

	for _, src := range opts.Sources {
		src := src
		tasks = append(tasks, task{
			name: src.Name,
			run: func(ctx context.Context) (checkrc.Globals, error) {
				path, err := fetcher.Get(ctx, src.URL, src.Name+".lua")
				if err != nil {
					return nil, err
				}
				content, err := os.ReadFile(path)
				if err != nil {
					return nil, err
				}
				return Parse(src.Parser, string(content))
			},
		})
	}

	if opts.FrameXML {
		url := opts.FrameXMLURL
		if url == "" {
			url = DefaultFrameXMLURL
		}
		tasks = append(tasks, task{
			name: "FrameXML",
			run: func(ctx context.Context) (checkrc.Globals, error) {
				path, err := fetcher.Get(ctx, url, "framexml_live.zip")
				if err != nil {
					return nil, err
				}
				return ParseFrameXMLArchive(path)
			},
		})
	}

	if opts.APIWiki {
		url := opts.APIWikiURL
		if url == "" {
			url = DefaultAPIWikiURL
		}
		tasks = append(tasks, task{
			name: "APIWiki",
			run: func(ctx context.Context) (checkrc.Globals, error) {
				path, err := fetcher.Get(ctx, url, "api_index.html")
				if err != nil {
					return nil, err
				}
				f, err := os.Open(path)
				if err != nil {
					return nil, err
				}
				defer f.Close()
				return ParseAPIIndex(f)
			},
		})
	}

	return tasks
}

func writeOutputs(dir string, globals checkrc.Globals) ([]OutputFile, error) {
	luacheckrcPath := filepath.Join(dir, luacheckrcName)

	existing, err := os.ReadFile(luacheckrcPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to read %s: %w", luacheckrcPath, err)
		}
		existing = nil
	}

	luacheckrc, err := renderLuacheckrc(existing, globals)
	if err != nil {
		return nil, err
	}
	globalsLua, err := renderGlobalsLua(globals)
	if err != nil {
		return nil, err
	}
	globalsJSON, err := renderGlobalsJSON(globals)
	if err != nil {
		return nil, err
	}

	var outputs []OutputFile
	for _, out := range []struct {
		path string
		data []byte
	}{
		{luacheckrcPath, luacheckrc},
		{filepath.Join(dir, globalsLuaName), globalsLua},
		{filepath.Join(dir, globalsJSONName), globalsJSON},
	} {
		changed, err := writeIfChanged(out.path, out.data)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, OutputFile{Path: out.path, Changed: changed})
	}

	return outputs, nil
}
