package generate

import (
	"errors"
	"fmt"
	"os"

	"github.com/wowtools/checkrc/checkrc"
	"github.com/wowtools/checkrc/internal/log"
)

const customGlobalsHeader = `-- Add your own custom global variables here.
-- The generator will automatically merge these with the fetched globals.
-- Use the format "MyGlobal", one per line.

`

// LoadCustomGlobals reads the project's hand-maintained globals file
// (table-of-strings format). When the file does not exist an empty one is
// created with a usage header, and no globals are returned.
func LoadCustomGlobals(path string) (checkrc.Globals, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Infof("%s not found, creating an empty one", path)
		if writeErr := os.WriteFile(path, []byte(customGlobalsHeader), 0o644); writeErr != nil {
			return nil, fmt.Errorf("unable to create %s: %w", path, writeErr)
		}
		return checkrc.Globals{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	globals := parseTableOfStrings(string(data))
	log.Debugf("loaded %d custom globals from %s", len(globals), path)
	return globals, nil
}
