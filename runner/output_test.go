package runner

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/guregu/null.v3"

	"github.com/pgtoolbelt/pgtoolbelt/admin"
	"github.com/pgtoolbelt/pgtoolbelt/state"
)

func TestPrintTable(t *testing.T) {
	out := Output{
		Columns: []string{"database", "connections"},
		Rows: [][]string{
			{"app_production", "42"},
			{"postgres", "1"},
		},
	}

	var buf bytes.Buffer
	if err := out.PrintTable(&buf); err != nil {
		t.Fatalf("PrintTable failed: %s", err)
	}

	rendered := buf.String()
	for _, expected := range []string{"database", "connections", "app_production", "42", "(2 rows)"} {
		if !strings.Contains(rendered, expected) {
			t.Errorf("missing %q in output:\n%s", expected, rendered)
		}
	}
}

func TestFormatConnectionCounts(t *testing.T) {
	counts := []state.ConnectionCount{
		{Key: null.StringFrom("app_production"), Count: 42},
		{Key: null.String{}, Count: 3},
	}

	out := formatConnectionCounts(counts, "database")
	if len(out.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(out.Rows))
	}
	if out.Rows[0][0] != "app_production" || out.Rows[0][1] != "42" {
		t.Errorf("unexpected first row: %v", out.Rows[0])
	}
	if out.Rows[1][0] != "" {
		t.Errorf("NULL key should render empty, got %q", out.Rows[1][0])
	}
}

func TestFormatBlockedQueries(t *testing.T) {
	blocked := []state.BlockedQuery{
		{
			BlockedPid:            123,
			BlockedMode:           null.StringFrom("ShareLock"),
			BlockedQuery:          null.StringFrom("UPDATE users SET name = $1"),
			BlockingPids:          []int64{456},
			IndirectlyBlockedPids: []int64{789},
		},
	}

	out := formatBlockedQueries(blocked)
	if len(out.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(out.Rows))
	}
	if out.Rows[0][0] != "123" || out.Rows[0][2] != "[456]" {
		t.Errorf("unexpected row: %v", out.Rows[0])
	}
}

func TestFormatAdminResultSkipped(t *testing.T) {
	out := formatAdminResult(admin.Result{RunID: "00000000-0000-0000-0000-000000000000", Skipped: true})
	if len(out.Rows) != 1 || out.Rows[0][1] != "(nothing to do)" {
		t.Errorf("unexpected rows: %v", out.Rows)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected string
	}{
		{nil, ""},
		{[]byte("text"), "text"},
		{int64(42), "42"},
		{1.5, "1.5"},
		{true, "true"},
	}
	for _, test := range tests {
		if actual := formatValue(test.input); actual != test.expected {
			t.Errorf("formatValue(%v) = %q, want %q", test.input, actual, test.expected)
		}
	}
}
