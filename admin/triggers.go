package admin

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/pgtoolbelt/pgtoolbelt/input/postgres"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

const userTablesSQL = `
SELECT schemaname, tablename
  FROM pg_tables
 WHERE schemaname NOT IN ('pg_catalog', 'information_schema')`

type TableName struct {
	SchemaName string `json:"schema_name"`
	TableName  string `json:"table_name"`
}

// BuildTriggerStatements builds one ALTER TABLE per table; zero tables yield
// zero statements.
func BuildTriggerStatements(tables []TableName, enable bool) []string {
	action := "DISABLE"
	if enable {
		action = "ENABLE"
	}

	var statements []string
	for _, table := range tables {
		statements = append(statements, fmt.Sprintf("ALTER TABLE %s.%s %s TRIGGER ALL",
			pq.QuoteIdentifier(table.SchemaName), pq.QuoteIdentifier(table.TableName), action))
	}
	return statements
}

// DisableAllTriggers turns triggers off on every user table, e.g. for the
// duration of a bulk load.
func DisableAllTriggers(logger *util.Logger, db *sql.DB) (Result, error) {
	return toggleAllTriggers(logger, db, false)
}

// EnableAllTriggers re-enables what DisableAllTriggers turned off.
func EnableAllTriggers(logger *util.Logger, db *sql.DB) (Result, error) {
	return toggleAllTriggers(logger, db, true)
}

func toggleAllTriggers(logger *util.Logger, db *sql.DB, enable bool) (Result, error) {
	result := newResult()

	tables, err := getUserTables(db)
	if err != nil {
		return result, err
	}

	result.Statements = BuildTriggerStatements(tables, enable)
	if len(result.Statements) == 0 {
		result.Skipped = true
		logger.PrintInfo("No user tables found, skipping")
		return result, nil
	}

	return result, result.execute(logger, db)
}

func getUserTables(db *sql.DB) ([]TableName, error) {
	rows, err := db.Query(postgres.QueryMarkerSQL + userTablesSQL)
	if err != nil {
		return nil, fmt.Errorf("UserTables/Query: %s", err)
	}

	defer rows.Close()

	var tables []TableName

	for rows.Next() {
		var table TableName

		err := rows.Scan(&table.SchemaName, &table.TableName)
		if err != nil {
			return nil, fmt.Errorf("UserTables/Scan: %s", err)
		}

		tables = append(tables, table)
	}

	return tables, nil
}
