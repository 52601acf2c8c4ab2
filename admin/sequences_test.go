package admin

import (
	"testing"

	pg_query "github.com/lfittl/pg_query_go"
)

func TestBuildResetSequenceStatement(t *testing.T) {
	target := SequenceTarget{
		SchemaName:   "public",
		TableName:    "users",
		ColumnName:   "id",
		SequenceName: "public.users_id_seq",
	}

	actual := BuildResetSequenceStatement(target)
	expected := `SELECT setval('public.users_id_seq', coalesce((SELECT max("id") FROM "public"."users"), 0) + 1, false)`
	if actual != expected {
		t.Errorf("got %s, want %s", actual, expected)
	}

	if _, err := pg_query.Parse(actual); err != nil {
		t.Errorf("built statement does not parse: %s", err)
	}
}

var resetAllTests = []struct {
	name     string
	input    []SequenceTarget
	expected int
}{
	{"zero targets", nil, 0},
	{
		"one target",
		[]SequenceTarget{
			{SchemaName: "public", TableName: "users", ColumnName: "id", SequenceName: "public.users_id_seq"},
		},
		1,
	},
	{
		"many targets",
		[]SequenceTarget{
			{SchemaName: "public", TableName: "users", ColumnName: "id", SequenceName: "public.users_id_seq"},
			{SchemaName: "public", TableName: "posts", ColumnName: "id", SequenceName: "public.posts_id_seq"},
			{SchemaName: "audit", TableName: "events", ColumnName: "event_id", SequenceName: "audit.events_event_id_seq"},
		},
		3,
	},
}

func TestBuildResetAllStatements(t *testing.T) {
	for _, test := range resetAllTests {
		t.Run(test.name, func(t *testing.T) {
			statements := BuildResetAllStatements(test.input)
			if len(statements) != test.expected {
				t.Fatalf("got %d statements, want %d", len(statements), test.expected)
			}

			for _, statement := range statements {
				if _, err := pg_query.Parse(statement); err != nil {
					t.Errorf("built statement does not parse: %s", err)
				}
			}
		})
	}
}
