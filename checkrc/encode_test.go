package checkrc

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Encode_layout(t *testing.T) {
	cfg := &Config{
		Std:           "lua51",
		MaxLineLength: DisabledLineLimit(),
		ExcludeFiles: []ExclusionGlob{
			MustParseExclusion("**Libs/"),
		},
		Ignore: []Suppression{
			MustParseSuppression("11./SLASH_.*"),
			MustParseSuppression("211"),
		},
		Globals: Globals{
			"UIParent":     Simple(),
			"Frame":        Restricted("inherits"),
			"AbandonQuest": Simple(),
		},
	}

	got, err := cfg.EncodeString()
	require.NoError(t, err)

	want := `std = "lua51"
max_line_length = false
exclude_files = {"**Libs/"}

ignore = {
    "11./SLASH_.*",
    "211",
}

globals = {
    "AbandonQuest",
    Frame = {fields = {"inherits"}},
    "UIParent",
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EncodeString() mismatch (-want +got):\n%s", diff)
	}
}

func Test_Encode_integerLineLimit(t *testing.T) {
	cfg := &Config{Std: "lua51", MaxLineLength: LineLimitOf(120)}
	got, err := cfg.EncodeString()
	require.NoError(t, err)
	assert.Contains(t, got, "max_line_length = 120\n")
}

func Test_Encode_omitsUnsetSections(t *testing.T) {
	cfg := &Config{Globals: Globals{}}
	got, err := cfg.EncodeString()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func Test_Encode_nonIdentifierKey(t *testing.T) {
	cfg := &Config{Globals: Globals{
		"end":      Restricted("x"),
		"weird-id": Restricted("y"),
	}}
	got, err := cfg.EncodeString()
	require.NoError(t, err)
	assert.Contains(t, got, `["end"] = {fields = {"x"}}`)
	assert.Contains(t, got, `["weird-id"] = {fields = {"y"}}`)
}

// load -> encode -> load must be an identity on the structure, and the
// encoded text must be a fixed point of the round trip.
func Test_Encode_roundTrip(t *testing.T) {
	cfg, err := LoadFile(filepath.Join("testdata", "luacheckrc"))
	require.NoError(t, err)

	first, err := cfg.EncodeString()
	require.NoError(t, err)

	reloaded, err := Load(strings.NewReader(first), "roundtrip")
	require.NoError(t, err)

	opts := []cmp.Option{
		cmp.Comparer(func(a, b Suppression) bool { return a.String() == b.String() }),
		cmp.Comparer(func(a, b ExclusionGlob) bool { return a.Pattern == b.Pattern }),
	}
	if diff := cmp.Diff(cfg, reloaded, opts...); diff != "" {
		t.Errorf("round trip changed the structure (-first +reloaded):\n%s", diff)
	}

	second, err := reloaded.EncodeString()
	require.NoError(t, err)
	assert.Equal(t, first, second, "encoded form must be stable")
}
