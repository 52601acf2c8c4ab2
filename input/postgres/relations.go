package postgres

import (
	"database/sql"
	"fmt"

	"github.com/pgtoolbelt/pgtoolbelt/state"
)

const relationSizesSQL string = `
SELECT n.nspname,
       c.relname,
       pg_total_relation_size(c.oid),
       pg_size_pretty(pg_total_relation_size(c.oid)),
       pg_size_pretty(pg_relation_size(c.oid)),
       pg_size_pretty(pg_indexes_size(c.oid))
  FROM pg_catalog.pg_class c
  JOIN pg_catalog.pg_namespace n ON (n.oid = c.relnamespace)
 WHERE c.relkind = 'r'
   AND n.nspname NOT IN ('pg_catalog', 'information_schema')
 ORDER BY pg_total_relation_size(c.oid) DESC
 LIMIT $1`

const unusedIndexesSQL string = `
SELECT ui.schemaname,
       ui.relname,
       ui.indexrelname,
       ui.idx_scan,
       pg_size_pretty(pg_relation_size(ui.indexrelid))
  FROM pg_stat_user_indexes ui
  JOIN pg_index i ON (i.indexrelid = ui.indexrelid)
 WHERE NOT i.indisunique
   AND ui.idx_scan < $1
 ORDER BY pg_relation_size(ui.indexrelid) DESC`

func GetRelationSizes(db *sql.DB, limit int) ([]state.RelationSize, error) {
	if limit <= 0 {
		limit = 20
	}

	stmt, err := db.Prepare(QueryMarkerSQL + relationSizesSQL)
	if err != nil {
		return nil, fmt.Errorf("RelationSizes/Prepare: %s", err)
	}

	defer stmt.Close()

	rows, err := stmt.Query(limit)
	if err != nil {
		return nil, fmt.Errorf("RelationSizes/Query: %s", err)
	}

	defer rows.Close()

	var sizes []state.RelationSize

	for rows.Next() {
		var row state.RelationSize

		err := rows.Scan(&row.SchemaName, &row.RelationName, &row.TotalBytes,
			&row.TotalSize, &row.TableSize, &row.IndexSize)
		if err != nil {
			return nil, fmt.Errorf("RelationSizes/Scan: %s", err)
		}

		sizes = append(sizes, row)
	}

	return sizes, nil
}

// GetUnusedIndexes - Non-unique indexes scanned fewer than maxScans times,
// biggest first
func GetUnusedIndexes(db *sql.DB, maxScans int64) ([]state.UnusedIndex, error) {
	stmt, err := db.Prepare(QueryMarkerSQL + unusedIndexesSQL)
	if err != nil {
		return nil, fmt.Errorf("UnusedIndexes/Prepare: %s", err)
	}

	defer stmt.Close()

	rows, err := stmt.Query(maxScans)
	if err != nil {
		return nil, fmt.Errorf("UnusedIndexes/Query: %s", err)
	}

	defer rows.Close()

	var indexes []state.UnusedIndex

	for rows.Next() {
		var row state.UnusedIndex

		err := rows.Scan(&row.SchemaName, &row.RelationName, &row.IndexName,
			&row.Scans, &row.Size)
		if err != nil {
			return nil, fmt.Errorf("UnusedIndexes/Scan: %s", err)
		}

		indexes = append(indexes, row)
	}

	return indexes, nil
}
