package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/renameio/v2"

	"github.com/wowtools/checkrc/checkrc"
)

const (
	luacheckrcName = ".luacheckrc"
	globalsLuaName = "wow_globals.lua"
	globalsJSONName = "wow_globals.json"
)

var globalsBlockMarker = []byte("globals = {")

// renderLuacheckrc produces the new .luacheckrc content. Any hand-written
// configuration above the existing globals block is preserved; everything
// from the block onward is regenerated. Without an existing file the stock
// addon configuration is used.
func renderLuacheckrc(existing []byte, globals checkrc.Globals) ([]byte, error) {
	if existing == nil {
		cfg := checkrc.DefaultConfig()
		cfg.Globals = globals
		var buf bytes.Buffer
		if err := cfg.Encode(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	var block bytes.Buffer
	if err := checkrc.EncodeGlobals(&block, globals); err != nil {
		return nil, err
	}

	head := existing
	if idx := bytes.Index(existing, globalsBlockMarker); idx >= 0 {
		head = existing[:idx]
	}
	head = bytes.TrimRight(head, "\n")

	var buf bytes.Buffer
	if len(head) > 0 {
		buf.Write(head)
		buf.WriteString("\n\n")
	}
	buf.Write(block.Bytes())
	return buf.Bytes(), nil
}

// renderGlobalsLua produces a standalone Lua file setting globals = {...},
// suitable for dofile usage from other tooling.
func renderGlobalsLua(globals checkrc.Globals) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("-- Auto-generated; do not edit by hand.\n")
	if err := checkrc.EncodeGlobals(&buf, globals); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderGlobalsJSON produces the sorted JSON array of global names.
func renderGlobalsJSON(globals checkrc.Globals) ([]byte, error) {
	data, err := json.MarshalIndent(globals.Names(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// writeIfChanged atomically replaces path with data, unless the file
// already has exactly that content. Returns whether a write happened.
// Skipping identical writes keeps generated-file commits quiet.
func writeIfChanged(path string, data []byte) (bool, error) {
	current, err := os.ReadFile(path)
	if err == nil && bytes.Equal(current, data) {
		return false, nil
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("unable to write %s: %w", path, err)
	}
	return true, nil
}
