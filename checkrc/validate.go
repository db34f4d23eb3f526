package checkrc

import (
	"fmt"
	"strings"
)

// Severity classifies a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single structural problem discovered in a configuration.
type Finding struct {
	Severity Severity `json:"severity"`
	// Code is a stable machine-readable identifier for the kind of problem.
	Code string `json:"code"`
	// Section is the config section the finding applies to.
	Section string `json:"section"`
	// Value is the offending entry, when there is one.
	Value string `json:"value,omitempty"`
	// Message is a human-readable description.
	Message string `json:"message"`
}

type Findings []Finding

// HasErrors reports whether any finding is an error.
func (f Findings) HasErrors() bool {
	for _, finding := range f {
		if finding.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts returns the number of errors and warnings.
func (f Findings) Counts() (errors, warnings int) {
	for _, finding := range f {
		switch finding.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// knownStds are the std profiles luacheck ships with. Profiles can be
// combined with "+" (e.g. "lua51+busted").
var knownStds = map[string]bool{
	"lua51": true, "lua51c": true,
	"lua52": true, "lua52c": true,
	"lua53": true, "lua53c": true,
	"lua54": true, "lua54c": true,
	"luajit": true, "ngx_lua": true,
	"love": true, "busted": true,
	"rockspec": true, "luacheckrc": true,
	"min": true, "max": true, "none": true,
}

// Validate runs the structural checks on a configuration: every ignore
// entry conforms to the code/pattern grammar, every exclusion is a
// compilable glob, every globals key is non-empty, every descriptor has a
// non-empty fields list of non-empty strings, and std names a known
// profile. Configurations built by Load already satisfy most of these;
// Validate exists so that programmatically-assembled configurations are
// held to the same invariants.
func Validate(c *Config) Findings {
	var findings Findings

	findings = append(findings, validateStd(c)...)
	findings = append(findings, validateLineLimit(c)...)
	findings = append(findings, validateExclusions(c)...)
	findings = append(findings, validateSuppressions(c)...)
	findings = append(findings, validateGlobals(c)...)

	return findings
}

func validateStd(c *Config) Findings {
	if c.Std == "" {
		return Findings{{
			Severity: SeverityWarning,
			Code:     "std-missing",
			Section:  "std",
			Message:  "no std profile declared; luacheck will use its default",
		}}
	}
	for _, part := range strings.Split(c.Std, "+") {
		if !knownStds[strings.TrimSpace(part)] {
			return Findings{{
				Severity: SeverityWarning,
				Code:     "std-unknown",
				Section:  "std",
				Value:    c.Std,
				Message:  fmt.Sprintf("%q is not a known luacheck std profile", part),
			}}
		}
	}
	return nil
}

func validateLineLimit(c *Config) Findings {
	if c.MaxLineLength.Set && c.MaxLineLength.Enabled && c.MaxLineLength.Limit <= 0 {
		return Findings{{
			Severity: SeverityError,
			Code:     "line-limit-invalid",
			Section:  "max_line_length",
			Value:    fmt.Sprintf("%d", c.MaxLineLength.Limit),
			Message:  "max_line_length must be a positive integer or false",
		}}
	}
	return nil
}

func validateExclusions(c *Config) Findings {
	var findings Findings
	for _, e := range c.ExcludeFiles {
		if _, err := ParseExclusion(e.Pattern); err != nil {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Code:     "exclusion-invalid",
				Section:  "exclude_files",
				Value:    e.Pattern,
				Message:  err.Error(),
			})
		}
	}
	return findings
}

func validateSuppressions(c *Config) Findings {
	var findings Findings
	seen := map[string]bool{}
	for _, s := range c.Ignore {
		entry := s.String()
		if _, err := ParseSuppression(entry); err != nil {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Code:     "suppression-invalid",
				Section:  "ignore",
				Value:    entry,
				Message:  err.Error(),
			})
			continue
		}
		if seen[entry] {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Code:     "suppression-duplicate",
				Section:  "ignore",
				Value:    entry,
				Message:  "duplicate ignore entry",
			})
		}
		seen[entry] = true
	}
	return findings
}

func validateGlobals(c *Config) Findings {
	var findings Findings
	for _, name := range c.Globals.Names() {
		g := c.Globals[name]
		if name == "" {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Code:     "global-empty-name",
				Section:  "globals",
				Message:  "globals contains an empty identifier name",
			})
			continue
		}
		if !g.Restricted() {
			continue
		}
		if len(g.Fields) == 0 {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Code:     "global-empty-fields",
				Section:  "globals",
				Value:    name,
				Message:  fmt.Sprintf("descriptor for %q has an empty fields list", name),
			})
			continue
		}
		for _, f := range g.Fields {
			if f == "" {
				findings = append(findings, Finding{
					Severity: SeverityError,
					Code:     "global-empty-field",
					Section:  "globals",
					Value:    name,
					Message:  fmt.Sprintf("descriptor for %q has an empty field name", name),
				})
			}
		}
	}
	return findings
}
