package postgres

import (
	"database/sql"
	"fmt"

	"github.com/pgtoolbelt/pgtoolbelt/state"
)

const connectionCountsSQL string = `
SELECT %s, count(*)
  FROM pg_stat_activity
 GROUP BY 1
 ORDER BY 2 DESC`

// GetConnectionCounts - Counts sessions grouped by datname or
// application_name
func GetConnectionCounts(db *sql.DB, groupBy string) ([]state.ConnectionCount, error) {
	if groupBy != "datname" && groupBy != "application_name" {
		return nil, fmt.Errorf("ConnectionCounts: unsupported grouping %s", groupBy)
	}

	stmt, err := db.Prepare(QueryMarkerSQL + fmt.Sprintf(connectionCountsSQL, groupBy))
	if err != nil {
		return nil, fmt.Errorf("ConnectionCounts/Prepare: %s", err)
	}

	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("ConnectionCounts/Query: %s", err)
	}

	defer rows.Close()

	var counts []state.ConnectionCount

	for rows.Next() {
		var row state.ConnectionCount

		err := rows.Scan(&row.Key, &row.Count)
		if err != nil {
			return nil, fmt.Errorf("ConnectionCounts/Scan: %s", err)
		}

		counts = append(counts, row)
	}

	return counts, nil
}
