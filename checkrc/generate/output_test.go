package generate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowtools/checkrc/checkrc"
)

func Test_renderLuacheckrc_freshFile(t *testing.T) {
	globals := checkrc.Globals{
		"UIParent": checkrc.Simple(),
		"Frame":    checkrc.Restricted("inherits"),
	}

	data, err := renderLuacheckrc(nil, globals)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, `std = "lua51"`)
	assert.Contains(t, content, "max_line_length = false")
	assert.Contains(t, content, `"11./SLASH_.*"`)
	assert.Contains(t, content, `Frame = {fields = {"inherits"}}`)

	// the fresh file must itself load cleanly
	cfg, err := checkrc.Load(strings.NewReader(content), ".luacheckrc")
	require.NoError(t, err)
	assert.Equal(t, "lua51", cfg.Std)
	assert.False(t, checkrc.Validate(cfg).HasErrors())
}

func Test_renderLuacheckrc_preservesHead(t *testing.T) {
	existing := []byte(`std = 'lua51'
-- hand-tuned section, must survive regeneration
max_line_length = false

globals = {
    "OldGlobal",
}
`)
	globals := checkrc.Globals{"NewGlobal": checkrc.Simple()}

	data, err := renderLuacheckrc(existing, globals)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "hand-tuned section")
	assert.Contains(t, content, `"NewGlobal"`)
	assert.NotContains(t, content, "OldGlobal")
	assert.Equal(t, 1, strings.Count(content, "globals = {"))
}

func Test_renderLuacheckrc_appendsWhenNoBlock(t *testing.T) {
	existing := []byte("std = 'lua51'\n")
	data, err := renderLuacheckrc(existing, checkrc.Globals{"G": checkrc.Simple()})
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "std = 'lua51'\n\nglobals = {"), "got:\n%s", content)
}

func Test_renderGlobalsJSON(t *testing.T) {
	globals := checkrc.Globals{
		"UIParent":     checkrc.Simple(),
		"AbandonQuest": checkrc.Simple(),
	}
	data, err := renderGlobalsJSON(globals)
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal(data, &names))
	if diff := cmp.Diff([]string{"AbandonQuest", "UIParent"}, names); diff != "" {
		t.Errorf("renderGlobalsJSON() mismatch (-want +got):\n%s", diff)
	}
}

func Test_renderGlobalsLua_loadable(t *testing.T) {
	globals := checkrc.Globals{"UIParent": checkrc.Simple()}
	data, err := renderGlobalsLua(globals)
	require.NoError(t, err)

	cfg, err := checkrc.Load(strings.NewReader(string(data)), "wow_globals.lua")
	require.NoError(t, err)
	assert.Contains(t, cfg.Globals, "UIParent")
}

func Test_writeIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	changed, err := writeIfChanged(path, []byte("one"))
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = writeIfChanged(path, []byte("one"))
	require.NoError(t, err)
	assert.False(t, changed, "identical content must not be rewritten")

	changed, err = writeIfChanged(path, []byte("two"))
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
