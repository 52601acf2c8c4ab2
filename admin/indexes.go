package admin

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/pgtoolbelt/pgtoolbelt/input/postgres"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

// Constraint-backed indexes (primary keys, unique constraints) have to stay;
// dropping them requires dropping the constraint instead
const tableIndexesSQL = `
SELECT schemaname, indexname, indexdef
  FROM pg_indexes
 WHERE schemaname = $1
   AND tablename = $2
   AND indexname NOT IN (SELECT conname FROM pg_constraint)`

type IndexDefinition struct {
	SchemaName string `json:"schema_name"`
	IndexName  string `json:"index_name"`
	Definition string `json:"definition"`
}

// BuildDropIndexStatement joins the DROP INDEX list into a single statement,
// mirroring the string_agg in the snippet. An empty input yields an empty
// string, which callers must skip rather than execute.
func BuildDropIndexStatement(indexes []IndexDefinition) string {
	var drops []string
	for _, index := range indexes {
		drops = append(drops, fmt.Sprintf("DROP INDEX %s.%s",
			pq.QuoteIdentifier(index.SchemaName), pq.QuoteIdentifier(index.IndexName)))
	}
	return strings.Join(drops, "; ")
}

// BuildCreateIndexStatement replays the saved pg_indexes definitions.
func BuildCreateIndexStatement(indexes []IndexDefinition) string {
	var defs []string
	for _, index := range indexes {
		defs = append(defs, index.Definition)
	}
	return strings.Join(defs, "; ")
}

// GetTableIndexes returns the droppable indexes of a table with their saved
// definitions, so they can be recreated later.
func GetTableIndexes(db *sql.DB, schemaName string, tableName string) ([]IndexDefinition, error) {
	rows, err := db.Query(postgres.QueryMarkerSQL+tableIndexesSQL, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("TableIndexes/Query: %s", err)
	}

	defer rows.Close()

	var indexes []IndexDefinition

	for rows.Next() {
		var index IndexDefinition

		err := rows.Scan(&index.SchemaName, &index.IndexName, &index.Definition)
		if err != nil {
			return nil, fmt.Errorf("TableIndexes/Scan: %s", err)
		}

		indexes = append(indexes, index)
	}

	return indexes, nil
}

// DropTableIndexes drops every droppable index of the table and returns the
// saved definitions so the caller can recreate them afterwards. When the
// table has no droppable indexes nothing is executed.
func DropTableIndexes(logger *util.Logger, db *sql.DB, schemaName string, tableName string) (Result, []IndexDefinition, error) {
	result := newResult()

	indexes, err := GetTableIndexes(db, schemaName, tableName)
	if err != nil {
		return result, nil, err
	}

	cmd := BuildDropIndexStatement(indexes)
	if cmd == "" {
		result.Skipped = true
		logger.PrintInfo("No droppable indexes on %s.%s, skipping", schemaName, tableName)
		return result, nil, nil
	}

	result.Statements = append(result.Statements, cmd)
	return result, indexes, result.execute(logger, db)
}

// RecreateTableIndexes replays previously saved index definitions.
func RecreateTableIndexes(logger *util.Logger, db *sql.DB, indexes []IndexDefinition) (Result, error) {
	result := newResult()

	cmd := BuildCreateIndexStatement(indexes)
	if cmd == "" {
		result.Skipped = true
		logger.PrintInfo("No saved index definitions, skipping")
		return result, nil
	}

	result.Statements = append(result.Statements, cmd)
	return result, result.execute(logger, db)
}

// ReindexTable rebuilds the table's indexes in place. Takes an exclusive
// lock on the table.
func ReindexTable(logger *util.Logger, db *sql.DB, schemaName string, tableName string) (Result, error) {
	result := newResult()
	result.Statements = append(result.Statements, fmt.Sprintf("REINDEX TABLE %s.%s",
		pq.QuoteIdentifier(schemaName), pq.QuoteIdentifier(tableName)))
	return result, result.execute(logger, db)
}
