package generate

import (
	"archive/zip"
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/wowtools/checkrc/checkrc"
	"github.com/wowtools/checkrc/internal/log"
)

var frameXMLLuaPatterns = []func(line string) (string, bool){
	submatcher(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=`),
	submatcher(`^\s*_G\[['"]([A-Za-z0-9_]+)['"]\]\s*=`),
	submatcher(`^\s*_G\.([A-Za-z_][A-Za-z0-9_]*)\s*=`),
	submatcher(`^\s*function\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
}

// ParseFrameXMLArchive extracts globals from a FrameXML source zip: Lua
// files contribute assignment/function names, XML files contribute the
// `name` attributes of UI object definitions. Unreadable members are
// skipped with a warning, matching the tolerance of the upstream data --
// the archive carries a handful of malformed files at any given time.
func ParseFrameXMLArchive(path string) (checkrc.Globals, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open FrameXML archive %s: %w", path, err)
	}
	defer zr.Close()

	globals := checkrc.Globals{}
	var luaCount, xmlCount int

	for _, member := range zr.File {
		switch {
		case strings.HasSuffix(member.Name, ".lua"):
			if err := parseFrameXMLLuaMember(member, globals); err != nil {
				log.Warnf("skipping %s: %v", member.Name, err)
				continue
			}
			luaCount++
		case strings.HasSuffix(member.Name, ".xml"):
			if err := parseFrameXMLXMLMember(member, globals); err != nil {
				log.Warnf("skipping %s: %v", member.Name, err)
				continue
			}
			xmlCount++
		}
	}

	log.WithFields("lua", luaCount, "xml", xmlCount, "globals", len(globals)).Debug("scanned FrameXML archive")
	return globals, nil
}

func parseFrameXMLLuaMember(member *zip.File, globals checkrc.Globals) error {
	rc, err := member.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		for _, match := range frameXMLLuaPatterns {
			if name, ok := match(line); ok {
				globals.Add(name)
			}
		}
	}
	return scanner.Err()
}

// parseFrameXMLXMLMember streams an XML file and collects the name
// attribute of every element, keeping only plain identifier names. Virtual
// names with $parent substitutions are not real globals and fail the
// identifier check.
func parseFrameXMLXMLMember(member *zip.File, globals checkrc.Globals) error {
	rc, err := member.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local != "name" {
				continue
			}
			name := strings.TrimSpace(attr.Value)
			if identifierRe.MatchString(name) {
				globals.Add(name)
			}
		}
	}
}

func submatcher(pattern string) func(line string) (string, bool) {
	re := regexp.MustCompile(pattern)
	return func(line string) (string, bool) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			return "", false
		}
		return m[1], true
	}
}
