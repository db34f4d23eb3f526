package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".luacheckrc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateTarget_CleanConfig(t *testing.T) {
	path := writeConfig(t, `
std = 'lua51'
max_line_length = false
globals = {
	"UIParent",
	Frame = {fields = {"inherits"}},
}
`)

	target, err := validateTarget(path)
	require.NoError(t, err)

	assert.Equal(t, path, target.Path)
	assert.Zero(t, target.Errors)
	assert.Zero(t, target.Warnings)
	assert.Empty(t, target.Findings)
}

func TestValidateTarget_Findings(t *testing.T) {
	path := writeConfig(t, `
std = 'lua99'
ignore = {
	"11./SLASH_.*",
	"11./SLASH_.*",
}
globals = {
	"UIParent",
}
`)

	target, err := validateTarget(path)
	require.NoError(t, err)

	// unknown std and duplicate suppression are both warnings
	assert.Zero(t, target.Errors)
	assert.Equal(t, 2, target.Warnings)
}

func TestValidateTarget_LoadFailure(t *testing.T) {
	path := writeConfig(t, `std = {}`)

	_, err := validateTarget(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")
}

func TestValidateTarget_MissingFile(t *testing.T) {
	_, err := validateTarget(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
