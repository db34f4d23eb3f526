package checkrc

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// ExclusionGlob is a single exclude_files entry. Patterns are matched
// against slash-separated file paths before analysis; `*` matches within a
// path segment, `**` crosses segment boundaries, and a trailing "/" means
// "anything under this directory" ("**Libs/" excludes every bundled
// library directory wherever it sits in the tree).
type ExclusionGlob struct {
	// Pattern is the raw glob as written in the file.
	Pattern string

	g glob.Glob
}

// ParseExclusion compiles an exclude_files pattern.
func ParseExclusion(pattern string) (ExclusionGlob, error) {
	if pattern == "" {
		return ExclusionGlob{}, fmt.Errorf("empty exclusion pattern")
	}

	expr := pattern
	if strings.HasSuffix(expr, "/") {
		expr += "**"
	}

	g, err := glob.Compile(expr, '/')
	if err != nil {
		return ExclusionGlob{}, fmt.Errorf("invalid exclusion pattern %q: %w", pattern, err)
	}

	return ExclusionGlob{Pattern: pattern, g: g}, nil
}

// MustParseExclusion is like ParseExclusion but panics on error. It is
// intended for statically-known patterns.
func MustParseExclusion(pattern string) ExclusionGlob {
	e, err := ParseExclusion(pattern)
	if err != nil {
		panic(err)
	}
	return e
}

// Match reports whether the given file path is excluded by this pattern.
func (e ExclusionGlob) Match(path string) bool {
	if e.g == nil {
		return false
	}
	return e.g.Match(path)
}

func (e ExclusionGlob) String() string {
	return e.Pattern
}
