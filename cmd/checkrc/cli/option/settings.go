package option

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/wowtools/checkrc/checkrc/generate"
)

// DefaultSettingsFile is looked up in the project directory when no
// settings file is given explicitly.
const DefaultSettingsFile = ".checkrc.yaml"

// Settings holds the generator configuration that can be set in a
// settings file and overridden with CLI flags.
type Settings struct {
	Sources       []generate.Source `yaml:"sources,omitempty"`
	CacheDir      string            `yaml:"cache-dir,omitempty"`
	Dir           string            `yaml:"dir,omitempty"`
	CustomGlobals string            `yaml:"custom-globals,omitempty"`
	FrameXML      bool              `yaml:"framexml"`
	FrameXMLURL   string            `yaml:"framexml-url,omitempty"`
	APIWiki       bool              `yaml:"api-wiki"`
	APIWikiURL    string            `yaml:"api-wiki-url,omitempty"`
	Parallelism   int               `yaml:"parallelism,omitempty"`
}

// DefaultSettings returns the stock generator settings for a project
// rooted at the current directory.
func DefaultSettings() Settings {
	return Settings{
		Sources:     generate.DefaultSources(),
		Dir:         ".",
		FrameXML:    true,
		FrameXMLURL: generate.DefaultFrameXMLURL,
		APIWiki:     true,
		APIWikiURL:  generate.DefaultAPIWikiURL,
		Parallelism: 4,
	}
}

// LoadSettings reads generator settings from the given file. When path is
// empty the default settings file is tried; settings fall back to the
// defaults when it does not exist.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	explicit := path != ""
	if !explicit {
		path = DefaultSettingsFile
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return settings, fmt.Errorf("failed to resolve settings path %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file %s: %w", expanded, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings file %s: %w", expanded, err)
	}

	return settings, nil
}

// ToOptions converts the settings into generator options, filling any
// unset paths from the project directory.
func (s Settings) ToOptions() generate.Options {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	opts := generate.DefaultOptions(dir)
	opts.FrameXML = s.FrameXML
	opts.APIWiki = s.APIWiki

	if len(s.Sources) > 0 {
		opts.Sources = s.Sources
	}
	if s.CacheDir != "" {
		opts.CacheDir = s.CacheDir
	}
	if s.CustomGlobals != "" {
		opts.CustomGlobalsPath = s.CustomGlobals
	} else {
		opts.CustomGlobalsPath = filepath.Join(dir, "custom_globals.lua")
	}
	if s.FrameXMLURL != "" {
		opts.FrameXMLURL = s.FrameXMLURL
	}
	if s.APIWikiURL != "" {
		opts.APIWikiURL = s.APIWikiURL
	}
	if s.Parallelism > 0 {
		opts.Parallelism = s.Parallelism
	}

	return opts
}
