package runner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pgtoolbelt/pgtoolbelt/catalog"
)

func TestList(t *testing.T) {
	var buf bytes.Buffer
	if err := List(&buf); err != nil {
		t.Fatalf("List failed: %s", err)
	}

	rendered := buf.String()
	for _, expected := range []string{"running-queries", "Activity", "! terminate-backend", "Dump & restore"} {
		if !strings.Contains(rendered, expected) {
			t.Errorf("missing %q in listing", expected)
		}
	}
}

func TestSearchSnippets(t *testing.T) {
	var buf bytes.Buffer
	if err := SearchSnippets(&buf, "sequence"); err != nil {
		t.Fatalf("SearchSnippets failed: %s", err)
	}
	if !strings.Contains(buf.String(), "reset-all-sequences") {
		t.Errorf("missing reset-all-sequences in search output:\n%s", buf.String())
	}

	buf.Reset()
	if err := SearchSnippets(&buf, "no-such-thing"); err != nil {
		t.Fatalf("SearchSnippets failed: %s", err)
	}
	if !strings.Contains(buf.String(), "No snippets matching") {
		t.Errorf("expected empty-result message, got:\n%s", buf.String())
	}
}

func TestShow(t *testing.T) {
	var buf bytes.Buffer
	if err := Show(&buf, "kill-database-connections"); err != nil {
		t.Fatalf("Show failed: %s", err)
	}

	rendered := buf.String()
	for _, expected := range []string{"kill-database-connections", "DATABASE_NAME", "pg_terminate_backend"} {
		if !strings.Contains(rendered, expected) {
			t.Errorf("missing %q in show output", expected)
		}
	}

	if err := Show(&buf, "bogus"); err == nil {
		t.Errorf("expected error for unknown snippet")
	}
}

func TestParamHelpers(t *testing.T) {
	snippet, ok := catalog.ByID("cancel-backend")
	if !ok {
		t.Fatal("cancel-backend missing from catalog")
	}

	if _, err := requireParam(snippet, nil, "PID"); err == nil {
		t.Errorf("expected error for missing param")
	}

	pid, err := pidParam(snippet, map[string]string{"PID": "12345"})
	if err != nil || pid != 12345 {
		t.Errorf("got (%d, %v), want (12345, nil)", pid, err)
	}
	if _, err := pidParam(snippet, map[string]string{"PID": "abc"}); err == nil {
		t.Errorf("expected error for non-numeric pid")
	}

	schema, table, err := tableParams(snippet, map[string]string{"TABLE_NAME": "users"})
	if err != nil || schema != "public" || table != "users" {
		t.Errorf("got (%s, %s, %v), want (public, users, nil)", schema, table, err)
	}
}
