package checkrc

// Config is the parsed form of a .luacheckrc file. The file itself is Lua
// source; Load evaluates it and Encode writes it back out in a canonical,
// sorted layout.
type Config struct {
	// Std names the Lua dialect profile luacheck should target (e.g. "lua51").
	Std string

	// MaxLineLength is the line-length check setting.
	MaxLineLength LineLimit

	// ExcludeFiles are path globs that are never analyzed.
	ExcludeFiles []ExclusionGlob

	// Ignore are diagnostic suppressions, in declaration order.
	Ignore []Suppression

	// Globals are the identifiers treated as pre-defined.
	Globals Globals
}

// LineLimit models max_line_length, which luacheck accepts as either a
// boolean false (check disabled) or a positive integer limit.
type LineLimit struct {
	// Set records whether the file mentions max_line_length at all.
	Set bool
	// Enabled is false when the file disables the check with `false`.
	Enabled bool
	// Limit is the maximum line length. Only meaningful when Enabled.
	Limit int
}

// DisabledLineLimit returns the explicit `max_line_length = false` setting.
func DisabledLineLimit() LineLimit {
	return LineLimit{Set: true}
}

// LineLimitOf returns an explicit integer line limit.
func LineLimitOf(n int) LineLimit {
	return LineLimit{Set: true, Enabled: true, Limit: n}
}

// DefaultConfig returns the stock configuration for a WoW addon project:
// Lua 5.1, no line-length check, bundled libraries excluded, and the usual
// suppressions for addon globals (slash handlers, keybinding headers, Lua
// enum constants) and low-value diagnostics.
func DefaultConfig() *Config {
	return &Config{
		Std:           "lua51",
		MaxLineLength: DisabledLineLimit(),
		ExcludeFiles: []ExclusionGlob{
			MustParseExclusion("**Libs/"),
			MustParseExclusion("**libs/"),
		},
		Ignore: []Suppression{
			MustParseSuppression("11./SLASH_.*"),    // setting an undefined slash-handler global
			MustParseSuppression("11./BINDING_.*"),  // setting an undefined keybinding-header global
			MustParseSuppression("113/LE_.*"),       // accessing an undefined Lua enum global
			MustParseSuppression("113/NUM_LE_.*"),   // accessing an undefined Lua enum global
			MustParseSuppression("211"),             // unused local variable
			MustParseSuppression("211/L"),           // unused local variable "L"
			MustParseSuppression("211/CL"),          // unused local variable "CL"
			MustParseSuppression("212"),             // unused argument
			MustParseSuppression("213"),             // unused loop variable
			MustParseSuppression("214"),             // unused hint
			MustParseSuppression("311"),             // value assigned to a local is unused
			MustParseSuppression("314"),             // value of a field in a table literal is unused
			MustParseSuppression("42."),             // shadowing a local, argument, or loop variable
			MustParseSuppression("43."),             // shadowing an upvalue
			MustParseSuppression("542"),             // empty if branch
			MustParseSuppression("581"),             // error-prone operator order
			MustParseSuppression("582"),             // error-prone operator order
		},
		Globals: Globals{},
	}
}

// IsExcluded returns true if the given file path matches any exclusion glob.
func (c *Config) IsExcluded(path string) bool {
	for _, e := range c.ExcludeFiles {
		if e.Match(path) {
			return true
		}
	}
	return false
}

// IsSuppressed returns true if a diagnostic with the given code, raised for
// the given identifier name, matches any suppression.
func (c *Config) IsSuppressed(code, name string) bool {
	for _, s := range c.Ignore {
		if s.Matches(code, name) {
			return true
		}
	}
	return false
}
