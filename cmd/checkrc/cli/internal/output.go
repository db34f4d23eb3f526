package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/wowtools/checkrc/checkrc"
)

// ValidateTarget is the validation outcome for one configuration file.
type ValidateTarget struct {
	Path     string           `json:"path"`
	Findings checkrc.Findings `json:"findings"`
	Errors   int              `json:"errors"`
	Warnings int              `json:"warnings"`
}

// ValidateReport aggregates validation outcomes across targets.
type ValidateReport struct {
	Targets []ValidateTarget `json:"targets"`
}

// NewValidateTarget builds a target entry from raw findings.
func NewValidateTarget(path string, findings checkrc.Findings) ValidateTarget {
	errors, warnings := findings.Counts()
	return ValidateTarget{
		Path:     path,
		Findings: findings,
		Errors:   errors,
		Warnings: warnings,
	}
}

// HasErrors reports whether any target had an error-severity finding.
func (r ValidateReport) HasErrors() bool {
	for _, target := range r.Targets {
		if target.Errors > 0 {
			return true
		}
	}
	return false
}

// Output handles the different output formats for checkrc results
type Output struct{}

// NewOutput creates a new Output instance
func NewOutput() *Output {
	return &Output{}
}

// OutputJSON outputs any result as indented JSON on stdout
func (o *Output) OutputJSON(result any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// OutputValidateTable outputs a validation report as formatted tables
func (o *Output) OutputValidateTable(report ValidateReport) error {
	for _, target := range report.Targets {
		o.outputTargetTable(target)
		fmt.Println() // Add spacing between targets
	}
	return nil
}

// outputTargetTable outputs a single target's findings as a table
func (o *Output) outputTargetTable(target ValidateTarget) {
	fmt.Printf("%s %s\n", formatStatus(target), target.Path)

	if len(target.Findings) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Severity", "Code", "Section", "Value", "Message"})
	for _, finding := range target.Findings {
		t.AppendRow(table.Row{
			formatSeverity(finding.Severity),
			finding.Code,
			finding.Section,
			finding.Value,
			finding.Message,
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// OutputValidateSummary outputs only the per-target counts
func (o *Output) OutputValidateSummary(report ValidateReport) error {
	for _, target := range report.Targets {
		fmt.Printf("%s %s: %d error(s), %d warning(s)\n",
			formatStatus(target), target.Path, target.Errors, target.Warnings)
	}
	return nil
}

func formatStatus(target ValidateTarget) string {
	switch {
	case target.Errors > 0:
		return color.Red.Sprint("✗")
	case target.Warnings > 0:
		return color.Yellow.Sprint("!")
	default:
		return color.Green.Sprint("✔")
	}
}

func formatSeverity(s checkrc.Severity) string {
	switch s {
	case checkrc.SeverityError:
		return color.Red.Sprint("error")
	case checkrc.SeverityWarning:
		return color.Yellow.Sprint("warning")
	default:
		return string(s)
	}
}
