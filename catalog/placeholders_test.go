package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	snippet, ok := ByID("kill-database-connections")
	require.True(t, ok)

	applied, err := snippet.Apply(map[string]string{"DATABASE_NAME": "staging"})
	require.NoError(t, err)
	assert.Contains(t, applied, "datname = 'staging'")
	assert.NotContains(t, applied, "DATABASE_NAME")
}

func TestApplyBracketToken(t *testing.T) {
	snippet, ok := ByID("grant-read-only")
	require.True(t, ok)

	// [ROLE] is keyed by its bare name
	applied, err := snippet.Apply(map[string]string{
		"DATABASE_NAME": "app_production",
		"SCHEMA_NAME":   "public",
		"ROLE":          "reporting",
	})
	require.NoError(t, err)
	assert.Contains(t, applied, "TO reporting")
	assert.NotContains(t, applied, "[ROLE]")
}

func TestApplyMissingValue(t *testing.T) {
	snippet, ok := ByID("reset-sequence")
	require.True(t, ok)

	_, err := snippet.Apply(map[string]string{"SEQUENCE_NAME": "users_id_seq"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TABLE_NAME")
}

func TestApplyWithoutPlaceholders(t *testing.T) {
	snippet, ok := ByID("running-queries")
	require.True(t, ok)

	applied, err := snippet.Apply(nil)
	require.NoError(t, err)
	assert.Equal(t, snippet.SQL, applied)
}

// Substituting every documented example must leave no token behind.
func TestExampleValuesResolveAllTokens(t *testing.T) {
	for _, snippet := range All() {
		applied, err := snippet.Apply(snippet.ExampleValues())
		require.NoError(t, err, "snippet %s", snippet.ID)

		for _, ph := range knownTokens {
			if strings.Contains(applied, ph.Token) {
				t.Errorf("snippet %s still contains %s after substitution", snippet.ID, ph.Token)
			}
		}
	}
}
