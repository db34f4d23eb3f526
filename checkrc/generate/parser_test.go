package generate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wowtools/checkrc/checkrc"
)

func Test_parseTableOfStrings(t *testing.T) {
	content := `-- Events
"ADDON_LOADED",
"PLAYER_LOGIN",

-- a comment between entries
	"COMBAT_LOG_EVENT_UNFILTERED",
not_a_quoted_entry = true
"PLAYER_LOGOUT"
`
	want := checkrc.Globals{
		"ADDON_LOADED":                checkrc.Simple(),
		"PLAYER_LOGIN":                checkrc.Simple(),
		"COMBAT_LOG_EVENT_UNFILTERED": checkrc.Simple(),
		"PLAYER_LOGOUT":               checkrc.Simple(),
	}

	got := parseTableOfStrings(content)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseTableOfStrings() mismatch (-want +got):\n%s", diff)
	}
}

func Test_parseGlobalAssignments(t *testing.T) {
	content := `ABANDON_QUEST = "Abandon Quest"
OKAY = "Okay"
_G["PET_ACTION_HIGHLIGHT_MARKS"] = {}
_G["not an identifier"] = 1
local ignored = true
`
	want := checkrc.Globals{
		"ABANDON_QUEST":              checkrc.Simple(),
		"OKAY":                       checkrc.Simple(),
		"PET_ACTION_HIGHLIGHT_MARKS": checkrc.Simple(),
	}

	got := parseGlobalAssignments(content)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseGlobalAssignments() mismatch (-want +got):\n%s", diff)
	}
}

func Test_parseAPIDefinitions(t *testing.T) {
	content := `
function AbandonQuest()
end

function QuestMixin:OnLoad()
end

C_Timer = {
	fields = {
		"After",
		"NewTicker",
		'NewTimer',
	},
}

local GlobalAPI = {
	"GetItemInfo",
	"GetSpellInfo",
}
local LuaAPI = {
	"strsplit",
}
`
	got := parseAPIDefinitions(content)

	assert.Contains(t, got, "AbandonQuest")
	assert.Contains(t, got, "QuestMixin")
	assert.Contains(t, got, "GetItemInfo")
	assert.Contains(t, got, "GetSpellInfo")
	assert.Contains(t, got, "strsplit")

	timer, ok := got["C_Timer"]
	require.True(t, ok, "C_Timer missing")
	require.True(t, timer.Restricted())
	if diff := cmp.Diff([]string{"After", "NewTicker", "NewTimer"}, timer.Fields); diff != "" {
		t.Errorf("C_Timer fields mismatch (-want +got):\n%s", diff)
	}
}

func Test_parseEnumDefinitions(t *testing.T) {
	content := `
LE_PARTY_CATEGORY_HOME = 1
NUM_LE_PARTY_CATEGORYS = 2
le_lowercase_ignored = 3

Enum = {}
Constants = {
	CurrencyConsts = {},
}
`
	got := parseEnumDefinitions(content)

	assert.Contains(t, got, "LE_PARTY_CATEGORY_HOME")
	assert.Contains(t, got, "NUM_LE_PARTY_CATEGORYS")
	assert.Contains(t, got, "Enum")
	assert.Contains(t, got, "Constants")
	assert.Contains(t, got, "CurrencyConsts")
	assert.NotContains(t, got, "le_lowercase_ignored")
}

func Test_Parse_unknownKind(t *testing.T) {
	_, err := Parse(ParserKind("bogus"), "")
	require.Error(t, err)
}
