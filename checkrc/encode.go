package checkrc

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Encode writes the configuration back out as Lua source in a canonical
// layout: std, max_line_length, exclude_files, ignore (declaration order),
// then globals sorted by name. Loading the output yields an identical
// configuration.
func (c *Config) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if c.Std != "" {
		fmt.Fprintf(bw, "std = %s\n", quoteLua(c.Std))
	}
	if c.MaxLineLength.Set {
		if c.MaxLineLength.Enabled {
			fmt.Fprintf(bw, "max_line_length = %d\n", c.MaxLineLength.Limit)
		} else {
			fmt.Fprintf(bw, "max_line_length = false\n")
		}
	}

	if len(c.ExcludeFiles) > 0 {
		patterns := make([]string, 0, len(c.ExcludeFiles))
		for _, e := range c.ExcludeFiles {
			patterns = append(patterns, quoteLua(e.Pattern))
		}
		fmt.Fprintf(bw, "exclude_files = {%s}\n", strings.Join(patterns, ", "))
	}

	if len(c.Ignore) > 0 {
		fmt.Fprintf(bw, "\nignore = {\n")
		for _, s := range c.Ignore {
			fmt.Fprintf(bw, "    %s,\n", quoteLua(s.String()))
		}
		fmt.Fprintf(bw, "}\n")
	}

	if len(c.Globals) > 0 {
		fmt.Fprintf(bw, "\n")
		if err := EncodeGlobals(bw, c.Globals); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// EncodeString renders the configuration as Lua source.
func (c *Config) EncodeString() (string, error) {
	var sb strings.Builder
	if err := c.Encode(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// EncodeGlobals writes just a `globals = { ... }` block, sorted by name.
// Simple globals render as bare strings; restricted globals render as
// keyed descriptor entries with fields in declaration order.
func EncodeGlobals(w io.Writer, globals Globals) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "globals = {\n")
	for _, name := range globals.Names() {
		g := globals[name]
		if !g.Restricted() {
			fmt.Fprintf(bw, "    %s,\n", quoteLua(name))
			continue
		}
		// field order is preserved so that load -> encode -> load is an
		// identity on the structure
		fields := make([]string, len(g.Fields))
		for i, f := range g.Fields {
			fields[i] = quoteLua(f)
		}
		fmt.Fprintf(bw, "    %s = {fields = {%s}},\n", luaKey(name), strings.Join(fields, ", "))
	}
	fmt.Fprintf(bw, "}\n")

	return bw.Flush()
}

var luaIdentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// luaKey renders a table key, bracketing names that are not plain Lua
// identifiers.
func luaKey(name string) string {
	if luaIdentRe.MatchString(name) && !luaReserved[name] {
		return name
	}
	return "[" + quoteLua(name) + "]"
}

func quoteLua(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

var luaReserved = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "if": true,
	"in": true, "local": true, "nil": true, "not": true, "or": true,
	"repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}
