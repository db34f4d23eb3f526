package checkrc

import (
	"fmt"
	"regexp"
	"strings"
)

// Suppression is a single ignore entry: a rule-code pattern, optionally
// followed by "/" and an identifier-name pattern. In the code part a `.`
// matches any single character ("42." covers 421, 422, ...). The name part
// restricts the suppression to diagnostics raised for matching identifiers
// ("11./SLASH_.*" only suppresses slash-handler globals).
type Suppression struct {
	// Code is the raw rule-code pattern.
	Code string
	// Name is the raw identifier-name pattern, empty when the suppression
	// applies regardless of identifier.
	Name string

	code *regexp.Regexp
	name *regexp.Regexp
}

var codePartRe = regexp.MustCompile(`^[A-Za-z0-9.]+$`)

// ParseSuppression parses an ignore entry into a Suppression.
func ParseSuppression(s string) (Suppression, error) {
	if s == "" {
		return Suppression{}, fmt.Errorf("empty suppression")
	}

	codePart, namePart, hasName := strings.Cut(s, "/")
	if !codePartRe.MatchString(codePart) {
		return Suppression{}, fmt.Errorf("invalid rule code %q in suppression %q", codePart, s)
	}
	if hasName && namePart == "" {
		return Suppression{}, fmt.Errorf("empty name pattern in suppression %q", s)
	}

	codeRe, err := regexp.Compile("^" + codePart + "$")
	if err != nil {
		return Suppression{}, fmt.Errorf("invalid rule code pattern %q: %w", codePart, err)
	}

	sup := Suppression{
		Code: codePart,
		code: codeRe,
	}

	if hasName {
		nameRe, err := regexp.Compile("^(?:" + namePart + ")$")
		if err != nil {
			return Suppression{}, fmt.Errorf("invalid name pattern %q in suppression %q: %w", namePart, s, err)
		}
		sup.Name = namePart
		sup.name = nameRe
	}

	return sup, nil
}

// MustParseSuppression is like ParseSuppression but panics on error. It is
// intended for statically-known patterns.
func MustParseSuppression(s string) Suppression {
	sup, err := ParseSuppression(s)
	if err != nil {
		panic(err)
	}
	return sup
}

// Matches reports whether a diagnostic with the given code, raised for the
// given identifier name, is covered by this suppression. An empty name only
// matches suppressions without a name pattern.
func (s Suppression) Matches(code, name string) bool {
	if s.code == nil || !s.code.MatchString(code) {
		return false
	}
	if s.name == nil {
		return true
	}
	return name != "" && s.name.MatchString(name)
}

func (s Suppression) String() string {
	if s.Name == "" {
		return s.Code
	}
	return s.Code + "/" + s.Name
}
