package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownTokens = []Placeholder{
	phPid, phDatabase, phApplication, phSchema, phTable, phSequence, phRole, phUser,
}

func TestRegistry(t *testing.T) {
	seen := make(map[string]bool)
	for _, snippet := range All() {
		require.NotEmpty(t, snippet.ID)
		require.NotEmpty(t, snippet.Title)
		require.NotEmpty(t, snippet.Section)
		require.NotEmpty(t, snippet.SQL, "snippet %s has no body", snippet.ID)
		assert.False(t, seen[snippet.ID], "duplicate snippet ID %s", snippet.ID)
		seen[snippet.ID] = true
	}
}

func TestByID(t *testing.T) {
	snippet, ok := ByID("running-queries")
	require.True(t, ok)
	assert.Equal(t, "Show currently running queries", snippet.Title)
	assert.Contains(t, snippet.SQL, "pg_stat_activity")

	_, ok = ByID("no-such-snippet")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	matches := Search("sequence")
	require.NotEmpty(t, matches)
	for _, snippet := range matches {
		haystack := strings.ToLower(snippet.ID + " " + snippet.Title + " " + snippet.Description)
		assert.Contains(t, haystack, "sequence")
	}

	assert.Empty(t, Search("mysql"))

	// case-insensitive over titles
	assert.NotEmpty(t, Search("CACHE HIT"))
}

func TestSections(t *testing.T) {
	sections := Sections()
	assert.Equal(t, []string{
		SectionActivity, SectionSessions, SectionCache, SectionDisk,
		SectionIndexes, SectionSequences, SectionTriggers, SectionSettings,
		SectionAccess, SectionDump,
	}, sections)
}

// Every token present in a snippet body must be declared as a placeholder,
// and every declared placeholder must actually occur in the body.
func TestPlaceholderDeclarationsMatchBodies(t *testing.T) {
	for _, snippet := range All() {
		declared := make(map[string]bool)
		for _, ph := range snippet.Placeholders {
			declared[ph.Token] = true
			assert.Contains(t, snippet.SQL, ph.Token,
				"snippet %s declares %s but the body never uses it", snippet.ID, ph.Token)
		}

		for _, ph := range knownTokens {
			if strings.Contains(snippet.SQL, ph.Token) && !declared[ph.Token] {
				t.Errorf("snippet %s uses %s without declaring it", snippet.ID, ph.Token)
			}
		}
	}
}

func TestShellSnippetsAreMarked(t *testing.T) {
	for _, snippet := range All() {
		isShell := strings.HasPrefix(snippet.SQL, "pg_dump") || strings.HasPrefix(snippet.SQL, "psql")
		assert.Equal(t, isShell, snippet.Kind == KindShell, "snippet %s", snippet.ID)
	}
}

// The guard that skips execution when the aggregated command list comes up
// empty must stay in the dynamic-SQL scripts exactly as written.
func TestDynamicScriptsKeepNullGuard(t *testing.T) {
	for _, id := range []string{"drop-table-indexes", "recreate-table-indexes", "reset-all-sequences"} {
		snippet, ok := ByID(id)
		require.True(t, ok)
		assert.Contains(t, snippet.SQL, "IF cmd IS NOT NULL THEN", "snippet %s", id)
	}
}
