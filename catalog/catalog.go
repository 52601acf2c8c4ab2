// Package catalog holds the snippet collection: each entry is a named,
// self-contained SQL (or shell) example an operator can show, copy, or run
// against a PostgreSQL server.
package catalog

import "strings"

type Kind string

const (
	// KindQuery - read-only inspection query against catalogs/statistics views
	KindQuery Kind = "query"
	// KindStatement - single administrative statement
	KindStatement Kind = "statement"
	// KindScript - anonymous DO $$ ... $$ block building dynamic SQL
	KindScript Kind = "script"
	// KindShell - pg_dump/psql invocation to be run from a shell
	KindShell Kind = "shell"
)

// Placeholder - A manual edit point in the snippet text (e.g. [ROLE] or
// 'DATABASE_NAME') that the operator replaces before running
type Placeholder struct {
	Token       string
	Description string
	Example     string
}

// Name returns the bare placeholder name, without bracket markers.
func (p Placeholder) Name() string {
	return strings.Trim(p.Token, "[]")
}

type Snippet struct {
	ID           string
	Title        string
	Section      string
	Description  string
	Kind         Kind
	SQL          string
	Placeholders []Placeholder

	// Destructive snippets change server state when executed (killing
	// sessions, dropping indexes, resetting sequences) and require explicit
	// confirmation from the runner
	Destructive bool

	// MinVersion is the numeric server version the snippet needs (e.g.
	// pg_sequences only exists on 10+); zero means any supported version
	MinVersion int64
}

// All returns the collection in table-of-contents order.
func All() []Snippet {
	return snippets
}

func ByID(id string) (Snippet, bool) {
	for _, snippet := range snippets {
		if snippet.ID == id {
			return snippet, true
		}
	}
	return Snippet{}, false
}

// Search returns all snippets whose ID, title or description contains the
// term, case-insensitively, keeping collection order.
func Search(term string) []Snippet {
	term = strings.ToLower(term)

	var matches []Snippet
	for _, snippet := range snippets {
		haystack := strings.ToLower(snippet.ID + " " + snippet.Title + " " + snippet.Description)
		if strings.Contains(haystack, term) {
			matches = append(matches, snippet)
		}
	}
	return matches
}

// Titles returns the table of contents: every snippet title in order.
func Titles() []string {
	titles := make([]string, len(snippets))
	for idx, snippet := range snippets {
		titles[idx] = snippet.Title
	}
	return titles
}

// Sections returns the distinct section names in collection order.
func Sections() []string {
	var sections []string
	for _, snippet := range snippets {
		if len(sections) == 0 || sections[len(sections)-1] != snippet.Section {
			sections = append(sections, snippet.Section)
		}
	}
	return sections
}
