package generate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowtools/checkrc/checkrc"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/events.lua", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `"ADDON_LOADED",
"PLAYER_LOGIN",
`)
	})
	mux.HandleFunc("/api.lua", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `function AbandonQuest()
end

C_Timer = {
	fields = {
		"After",
	},
}
`)
	})
	mux.HandleFunc("/broken.lua", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testOptions(t *testing.T, sources ...Source) Options {
	t.Helper()

	opts := DefaultOptions(t.TempDir())
	opts.Sources = sources
	return opts
}

func Test_Run(t *testing.T) {
	server := testServer(t)
	opts := testOptions(t,
		Source{Name: "Events", URL: server.URL + "/events.lua", Parser: ParserTableOfStrings},
		Source{Name: "GlobalAPI", URL: server.URL + "/api.lua", Parser: ParserAPIDefinitions},
	)

	// seed a custom globals file
	require.NoError(t, os.WriteFile(opts.CustomGlobalsPath, []byte(`"MyAddonDB",`+"\n"), 0o644))

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Contains(t, result.Globals, "ADDON_LOADED")
	assert.Contains(t, result.Globals, "AbandonQuest")
	assert.Contains(t, result.Globals, "MyAddonDB")
	assert.True(t, result.Globals["C_Timer"].Restricted())

	require.Len(t, result.Outputs, 3)
	for _, out := range result.Outputs {
		assert.True(t, out.Changed, "first run must write %s", out.Path)
	}

	// the written .luacheckrc loads and carries the merged globals
	cfg, err := checkrc.LoadFile(filepath.Join(opts.Dir, ".luacheckrc"))
	require.NoError(t, err)
	assert.Contains(t, cfg.Globals, "MyAddonDB")
	assert.Equal(t, "lua51", cfg.Std)

	// a second run changes nothing
	result, err = Run(context.Background(), opts)
	require.NoError(t, err)
	for _, out := range result.Outputs {
		assert.False(t, out.Changed, "second run must not rewrite %s", out.Path)
	}
}

func Test_Run_preservesExistingConfigHead(t *testing.T) {
	server := testServer(t)
	opts := testOptions(t,
		Source{Name: "Events", URL: server.URL + "/events.lua", Parser: ParserTableOfStrings},
	)

	existing := `std = 'lua51+busted'
max_line_length = false

globals = {
    "Stale",
}
`
	require.NoError(t, os.WriteFile(filepath.Join(opts.Dir, ".luacheckrc"), []byte(existing), 0o644))

	_, err := Run(context.Background(), opts)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(opts.Dir, ".luacheckrc"))
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "std = 'lua51+busted'"))
	assert.NotContains(t, content, "Stale")
	assert.Contains(t, content, "ADDON_LOADED")
}

func Test_Run_skipsFailedSource(t *testing.T) {
	server := testServer(t)
	opts := testOptions(t,
		Source{Name: "Events", URL: server.URL + "/events.lua", Parser: ParserTableOfStrings},
		Source{Name: "Broken", URL: server.URL + "/broken.lua", Parser: ParserTableOfStrings},
	)

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	var broken *SourceResult
	for i := range result.Sources {
		if result.Sources[i].Name == "Broken" {
			broken = &result.Sources[i]
		}
	}
	require.NotNil(t, broken)
	assert.Error(t, broken.Err)
	assert.Contains(t, result.Globals, "ADDON_LOADED")
}

func Test_Run_failsWhenNothingExtracted(t *testing.T) {
	server := testServer(t)
	opts := testOptions(t,
		Source{Name: "Broken", URL: server.URL + "/broken.lua", Parser: ParserTableOfStrings},
	)
	// ensure the custom globals file exists but is empty of entries
	require.NoError(t, os.WriteFile(opts.CustomGlobalsPath, []byte("-- nothing here\n"), 0o644))

	_, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no globals were extracted")
}

func Test_Run_createsCustomGlobalsFile(t *testing.T) {
	server := testServer(t)
	opts := testOptions(t,
		Source{Name: "Events", URL: server.URL + "/events.lua", Parser: ParserTableOfStrings},
	)

	_, err := Run(context.Background(), opts)
	require.NoError(t, err)

	data, err := os.ReadFile(opts.CustomGlobalsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "custom global")
}
