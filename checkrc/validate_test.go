package checkrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findingCodes(f Findings) []string {
	codes := make([]string, 0, len(f))
	for _, finding := range f {
		codes = append(codes, finding.Code)
	}
	return codes
}

func Test_Validate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *Config
		wantCodes  []string
		wantErrors bool
	}{
		{
			name:      "default config is clean",
			cfg:       DefaultConfig(),
			wantCodes: []string{},
		},
		{
			name:      "missing std",
			cfg:       &Config{Globals: Globals{}},
			wantCodes: []string{"std-missing"},
		},
		{
			name:      "unknown std",
			cfg:       &Config{Std: "lua99", Globals: Globals{}},
			wantCodes: []string{"std-unknown"},
		},
		{
			name:      "combined std profiles",
			cfg:       &Config{Std: "lua51+busted", Globals: Globals{}},
			wantCodes: []string{},
		},
		{
			name: "zero line limit",
			cfg: &Config{
				Std:           "lua51",
				MaxLineLength: LineLimit{Set: true, Enabled: true, Limit: 0},
				Globals:       Globals{},
			},
			wantCodes:  []string{"line-limit-invalid"},
			wantErrors: true,
		},
		{
			name: "duplicate suppression",
			cfg: &Config{
				Std: "lua51",
				Ignore: []Suppression{
					MustParseSuppression("211"),
					MustParseSuppression("211"),
				},
				Globals: Globals{},
			},
			wantCodes: []string{"suppression-duplicate"},
		},
		{
			name: "hand-built empty suppression",
			cfg: &Config{
				Std:     "lua51",
				Ignore:  []Suppression{{}},
				Globals: Globals{},
			},
			wantCodes:  []string{"suppression-invalid"},
			wantErrors: true,
		},
		{
			name: "hand-built empty exclusion",
			cfg: &Config{
				Std:          "lua51",
				ExcludeFiles: []ExclusionGlob{{}},
				Globals:      Globals{},
			},
			wantCodes:  []string{"exclusion-invalid"},
			wantErrors: true,
		},
		{
			name: "empty global name",
			cfg: &Config{
				Std:     "lua51",
				Globals: Globals{"": Simple()},
			},
			wantCodes:  []string{"global-empty-name"},
			wantErrors: true,
		},
		{
			name: "descriptor with empty fields",
			cfg: &Config{
				Std:     "lua51",
				Globals: Globals{"Frame": {Fields: []string{}}},
			},
			wantCodes:  []string{"global-empty-fields"},
			wantErrors: true,
		},
		{
			name: "descriptor with empty field name",
			cfg: &Config{
				Std:     "lua51",
				Globals: Globals{"Frame": Restricted("inherits", "")},
			},
			wantCodes:  []string{"global-empty-field"},
			wantErrors: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			findings := Validate(tc.cfg)
			assert.ElementsMatch(t, tc.wantCodes, findingCodes(findings))
			assert.Equal(t, tc.wantErrors, findings.HasErrors())
		})
	}
}

func Test_Findings_Counts(t *testing.T) {
	findings := Findings{
		{Severity: SeverityError},
		{Severity: SeverityWarning},
		{Severity: SeverityWarning},
	}
	errs, warns := findings.Counts()
	require.Equal(t, 1, errs)
	require.Equal(t, 2, warns)
}

func Test_Config_IsSuppressed(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.IsSuppressed("112", "SLASH_MYADDON1"))
	assert.True(t, cfg.IsSuppressed("211", ""))
	assert.True(t, cfg.IsSuppressed("421", ""))
	assert.False(t, cfg.IsSuppressed("111", "MyGlobal"))
	assert.False(t, cfg.IsSuppressed("631", ""))
}
