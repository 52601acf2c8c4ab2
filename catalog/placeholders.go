package catalog

import (
	"fmt"
	"strings"
)

var (
	phPid         = Placeholder{"PID", "process ID of the backend, from pg_stat_activity", "12345"}
	phDatabase    = Placeholder{"DATABASE_NAME", "name of the database to target", "app_production"}
	phApplication = Placeholder{"APPLICATION_NAME", "application_name as reported in pg_stat_activity", "sidekiq"}
	phSchema      = Placeholder{"SCHEMA_NAME", "schema containing the table", "public"}
	phTable       = Placeholder{"TABLE_NAME", "name of the table", "users"}
	phSequence    = Placeholder{"SEQUENCE_NAME", "name of the sequence to reset", "users_id_seq"}
	phRole        = Placeholder{"[ROLE]", "role to grant access to", "reporting"}
	phUser        = Placeholder{"USER_NAME", "database user to connect as", "postgres"}
)

// Apply substitutes the snippet's placeholders with operator-provided values,
// keyed by placeholder name (PID, DATABASE_NAME, ROLE, ...). Every placeholder
// the snippet declares must be present.
func (s Snippet) Apply(values map[string]string) (string, error) {
	out := s.SQL
	for _, ph := range s.Placeholders {
		value, ok := values[ph.Name()]
		if !ok || value == "" {
			return "", fmt.Errorf("missing value for placeholder %s (%s)", ph.Token, ph.Description)
		}
		out = strings.ReplaceAll(out, ph.Token, value)
	}
	return out, nil
}

// ExampleValues returns a complete value map built from the placeholders'
// documented examples.
func (s Snippet) ExampleValues() map[string]string {
	values := make(map[string]string)
	for _, ph := range s.Placeholders {
		values[ph.Name()] = ph.Example
	}
	return values
}
