package generate

// ParserKind selects the extraction strategy for an upstream resource file.
type ParserKind string

const (
	// ParserTableOfStrings handles Lua files that are one big table of
	// quoted identifier strings (Events.lua, Frames.lua, Mixins.lua).
	ParserTableOfStrings ParserKind = "table-of-strings"
	// ParserGlobalAssignments handles files of direct global assignments,
	// including the _G["NAME"] form (GlobalStrings enUS.lua).
	ParserGlobalAssignments ParserKind = "global-assignments"
	// ParserAPIDefinitions handles the GlobalAPI resource: function
	// definitions, C_* namespace tables with field lists, and the local
	// GlobalAPI/LuaAPI string tables.
	ParserAPIDefinitions ParserKind = "api-definitions"
	// ParserEnumDefinitions handles LuaEnum.lua: LE_*/NUM_LE_* constants
	// and capitalized table assignments (Enum, Constants, and friends).
	ParserEnumDefinitions ParserKind = "enum-definitions"
)

// Source is one upstream resource to fetch and extract globals from.
type Source struct {
	Name   string     `json:"name" yaml:"name"`
	URL    string     `json:"url" yaml:"url"`
	Parser ParserKind `json:"parser" yaml:"parser"`
}

const kethoResourcesBase = "https://raw.githubusercontent.com/Ketho/BlizzardInterfaceResources/mainline/Resources"

const (
	// DefaultFrameXMLURL is the zip of Blizzard's exported UI source.
	DefaultFrameXMLURL = "https://github.com/Gethe/wow-ui-source/archive/refs/heads/live.zip"
	// DefaultAPIWikiURL is the community index of the WoW API.
	DefaultAPIWikiURL = "https://warcraft.wiki.gg/wiki/World_of_Warcraft_API"
)

// DefaultSources lists the Blizzard interface resource files that feed the
// globals allow-list.
func DefaultSources() []Source {
	return []Source{
		{Name: "GlobalStrings", URL: kethoResourcesBase + "/GlobalStrings/enUS.lua", Parser: ParserGlobalAssignments},
		{Name: "Events", URL: kethoResourcesBase + "/Events.lua", Parser: ParserTableOfStrings},
		{Name: "Frames", URL: kethoResourcesBase + "/Frames.lua", Parser: ParserTableOfStrings},
		{Name: "GlobalAPI", URL: kethoResourcesBase + "/GlobalAPI.lua", Parser: ParserAPIDefinitions},
		{Name: "LuaEnum", URL: kethoResourcesBase + "/LuaEnum.lua", Parser: ParserEnumDefinitions},
		{Name: "Mixins", URL: kethoResourcesBase + "/Mixins.lua", Parser: ParserTableOfStrings},
	}
}
