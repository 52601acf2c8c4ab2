package admin

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/pgtoolbelt/pgtoolbelt/input/postgres"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

const serialSequencesSQL = `
SELECT n.nspname,
       c.relname,
       a.attname,
       pg_get_serial_sequence(format('%I.%I', n.nspname, c.relname), a.attname)
  FROM pg_class c
  JOIN pg_namespace n ON (n.oid = c.relnamespace)
  JOIN pg_attribute a ON (a.attrelid = c.oid)
 WHERE c.relkind = 'r'
   AND a.attnum > 0
   AND NOT a.attisdropped
   AND pg_get_serial_sequence(format('%I.%I', n.nspname, c.relname), a.attname) IS NOT NULL`

// SequenceTarget - A sequence together with the column it feeds
type SequenceTarget struct {
	SchemaName   string `json:"schema_name"`
	TableName    string `json:"table_name"`
	ColumnName   string `json:"column_name"`
	SequenceName string `json:"sequence_name"`
}

// BuildResetSequenceStatement points the sequence just past the column
// maximum. The coalesce keeps it valid for empty tables.
func BuildResetSequenceStatement(target SequenceTarget) string {
	return fmt.Sprintf("SELECT setval(%s, coalesce((SELECT max(%s) FROM %s.%s), 0) + 1, false)",
		pq.QuoteLiteral(target.SequenceName),
		pq.QuoteIdentifier(target.ColumnName),
		pq.QuoteIdentifier(target.SchemaName),
		pq.QuoteIdentifier(target.TableName))
}

// BuildResetAllStatements builds one setval per target; zero targets yield
// zero statements.
func BuildResetAllStatements(targets []SequenceTarget) []string {
	var statements []string
	for _, target := range targets {
		statements = append(statements, BuildResetSequenceStatement(target))
	}
	return statements
}

// ResetSequence resets a single named sequence against the given table and
// column.
func ResetSequence(logger *util.Logger, db *sql.DB, target SequenceTarget) (Result, error) {
	result := newResult()
	result.Statements = append(result.Statements, BuildResetSequenceStatement(target))
	return result, result.execute(logger, db)
}

// ResetAllSequences finds every serial column and resets its owned sequence.
// Databases without serial columns are a no-op.
func ResetAllSequences(logger *util.Logger, db *sql.DB) (Result, error) {
	result := newResult()

	targets, err := getSerialSequences(db)
	if err != nil {
		return result, err
	}

	result.Statements = BuildResetAllStatements(targets)
	if len(result.Statements) == 0 {
		result.Skipped = true
		logger.PrintInfo("No serial columns found, skipping")
		return result, nil
	}

	return result, result.execute(logger, db)
}

func getSerialSequences(db *sql.DB) ([]SequenceTarget, error) {
	rows, err := db.Query(postgres.QueryMarkerSQL + serialSequencesSQL)
	if err != nil {
		return nil, fmt.Errorf("SerialSequences/Query: %s", err)
	}

	defer rows.Close()

	var targets []SequenceTarget

	for rows.Next() {
		var target SequenceTarget

		err := rows.Scan(&target.SchemaName, &target.TableName, &target.ColumnName, &target.SequenceName)
		if err != nil {
			return nil, fmt.Errorf("SerialSequences/Scan: %s", err)
		}

		targets = append(targets, target)
	}

	return targets, nil
}
