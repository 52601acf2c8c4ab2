package catalog

import (
	"testing"

	pg_query "github.com/lfittl/pg_query_go"
	"github.com/stretchr/testify/require"
)

// Every SQL snippet, with its documented example values substituted, must be
// syntactically valid PostgreSQL. Shell snippets (pg_dump/psql invocations)
// are not SQL and are skipped.
func TestSnippetsParse(t *testing.T) {
	for _, snippet := range All() {
		if snippet.Kind == KindShell {
			continue
		}

		t.Run(snippet.ID, func(t *testing.T) {
			applied, err := snippet.Apply(snippet.ExampleValues())
			require.NoError(t, err)

			_, err = pg_query.Parse(applied)
			require.NoError(t, err, "snippet %s does not parse:\n%s", snippet.ID, applied)
		})
	}
}
