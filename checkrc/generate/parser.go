package generate

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/wowtools/checkrc/checkrc"
)

// Parse extracts global declarations from upstream resource content using
// the named strategy.
func Parse(kind ParserKind, content string) (checkrc.Globals, error) {
	switch kind {
	case ParserTableOfStrings:
		return parseTableOfStrings(content), nil
	case ParserGlobalAssignments:
		return parseGlobalAssignments(content), nil
	case ParserAPIDefinitions:
		return parseAPIDefinitions(content), nil
	case ParserEnumDefinitions:
		return parseEnumDefinitions(content), nil
	default:
		return nil, fmt.Errorf("unknown parser kind %q", kind)
	}
}

var (
	quotedEntryRe = regexp.MustCompile(`^"([^"]+)",?$`)

	assignmentRe  = regexp.MustCompile(`^\s*([A-Za-z0-9_]+)\s*=`)
	gAssignmentRe = regexp.MustCompile(`^\s*_G\["([^"]+)"\]\s*=`)

	functionDefRe = regexp.MustCompile(`(?m)^\s*function\s+([A-Za-z0-9_:]+)`)
	stringRe      = regexp.MustCompile(`['"]([^'"]+)['"]`)
	cTableRe      = regexp.MustCompile(`(?ms)^\s*(C_[A-Za-z0-9_]+)\s*=\s*\{.*?fields\s*=\s*\{(.*?)\}`)
	localAPIRe    = regexp.MustCompile(`(?ms)^\s*local\s+(?:GlobalAPI|LuaAPI)\s*=\s*\{(.*?)\}`)

	enumConstRe = regexp.MustCompile(`(?m)^\s*((?:NUM_)?LE_[A-Z0-9_]+)\s*=`)
	enumTableRe = regexp.MustCompile(`(?m)^\s*([A-Z][A-Za-z0-9_]+)\s*=\s*\{`)

	identifierRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// parseTableOfStrings handles files that contain a simple Lua table of
// quoted strings, one per line.
func parseTableOfStrings(content string) checkrc.Globals {
	globals := checkrc.Globals{}
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		if m := quotedEntryRe.FindStringSubmatch(line); m != nil {
			globals.Add(m[1])
		}
	}
	return globals
}

// parseGlobalAssignments handles files of direct global variable
// assignments, either NAME = ... or _G["NAME"] = ...
func parseGlobalAssignments(content string) checkrc.Globals {
	globals := checkrc.Globals{}
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if m := assignmentRe.FindStringSubmatch(line); m != nil {
			globals.Add(m[1])
			continue
		}
		if m := gAssignmentRe.FindStringSubmatch(line); m != nil {
			if identifierRe.MatchString(m[1]) {
				globals.Add(m[1])
			}
		}
	}
	return globals
}

// parseAPIDefinitions handles the GlobalAPI resource: global function
// definitions, C_* namespace tables (which become restricted globals
// carrying their field allow-list), and the string members of the local
// GlobalAPI/LuaAPI tables.
func parseAPIDefinitions(content string) checkrc.Globals {
	globals := checkrc.Globals{}

	for _, m := range functionDefRe.FindAllStringSubmatch(content, -1) {
		name, _, _ := strings.Cut(m[1], ":")
		globals.Add(name)
	}

	for _, m := range cTableRe.FindAllStringSubmatch(content, -1) {
		tableName := m[1]
		var fields []string
		for _, fm := range stringRe.FindAllStringSubmatch(m[2], -1) {
			fields = append(fields, fm[1])
		}
		if len(fields) > 0 {
			globals[tableName] = checkrc.Restricted(fields...)
		} else {
			globals.Add(tableName)
		}
	}

	for _, m := range localAPIRe.FindAllStringSubmatch(content, -1) {
		for _, sm := range stringRe.FindAllStringSubmatch(m[1], -1) {
			globals.Add(sm[1])
		}
	}

	return globals
}

// parseEnumDefinitions handles LuaEnum files: LE_*/NUM_LE_* constants and
// every capitalized name assigned a table, which covers Enum, Constants,
// and the tables nested one level inside them.
func parseEnumDefinitions(content string) checkrc.Globals {
	globals := checkrc.Globals{}

	for _, m := range enumConstRe.FindAllStringSubmatch(content, -1) {
		globals.Add(m[1])
	}
	for _, m := range enumTableRe.FindAllStringSubmatch(content, -1) {
		globals.Add(m[1])
	}

	return globals
}
