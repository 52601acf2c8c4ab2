package postgres

import (
	"database/sql"
	"fmt"

	"github.com/pgtoolbelt/pgtoolbelt/state"
)

// See also https://www.postgresql.org/docs/current/monitoring-stats.html#PG-STATIO-ALL-TABLES-VIEW
const tableCacheHitRatioSQL string = `
SELECT sum(heap_blks_read),
       sum(heap_blks_hit),
       sum(heap_blks_hit)::float / nullif(sum(heap_blks_hit) + sum(heap_blks_read), 0)
  FROM pg_statio_user_tables`

const indexCacheHitRatioSQL string = `
SELECT sum(idx_blks_read),
       sum(idx_blks_hit),
       sum(idx_blks_hit)::float / nullif(sum(idx_blks_hit) + sum(idx_blks_read), 0)
  FROM pg_statio_user_indexes`

const indexUsageSQL string = `
SELECT relname,
       CASE WHEN idx_scan + seq_scan > 0
            THEN 100.0 * idx_scan / (idx_scan + seq_scan)
            ELSE 0
       END,
       n_live_tup
  FROM pg_stat_user_tables
 ORDER BY n_live_tup DESC`

// GetCacheHitRatios - Reads the table and index block hit ratios for the
// current database
func GetCacheHitRatios(db *sql.DB) ([]state.CacheHitRatio, error) {
	var ratios []state.CacheHitRatio

	for _, item := range []struct {
		kind string
		sql  string
	}{
		{"table", tableCacheHitRatioSQL},
		{"index", indexCacheHitRatioSQL},
	} {
		var row state.CacheHitRatio
		row.Kind = item.kind

		err := db.QueryRow(QueryMarkerSQL + item.sql).Scan(&row.BlksRead, &row.BlksHit, &row.Ratio)
		if err != nil {
			return nil, fmt.Errorf("CacheHitRatio/Query: %s", err)
		}

		ratios = append(ratios, row)
	}

	return ratios, nil
}

func GetIndexUsage(db *sql.DB) ([]state.IndexUsage, error) {
	stmt, err := db.Prepare(QueryMarkerSQL + indexUsageSQL)
	if err != nil {
		return nil, fmt.Errorf("IndexUsage/Prepare: %s", err)
	}

	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("IndexUsage/Query: %s", err)
	}

	defer rows.Close()

	var usage []state.IndexUsage

	for rows.Next() {
		var row state.IndexUsage

		err := rows.Scan(&row.RelationName, &row.PercentIndexUsed, &row.RowsInTable)
		if err != nil {
			return nil, fmt.Errorf("IndexUsage/Scan: %s", err)
		}

		usage = append(usage, row)
	}

	return usage, nil
}
