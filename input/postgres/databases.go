package postgres

import (
	"database/sql"
	"fmt"

	"github.com/pgtoolbelt/pgtoolbelt/state"
)

// See also https://www.postgresql.org/docs/current/catalog-pg-database.html
const databaseSizesSQL string = `
SELECT datname,
       pg_database_size(datname),
       pg_size_pretty(pg_database_size(datname))
  FROM pg_catalog.pg_database
 WHERE NOT datistemplate
 ORDER BY pg_database_size(datname) DESC`

func GetDatabaseSizes(db *sql.DB) ([]state.DatabaseSize, error) {
	stmt, err := db.Prepare(QueryMarkerSQL + databaseSizesSQL)
	if err != nil {
		return nil, fmt.Errorf("DatabaseSizes/Prepare: %s", err)
	}

	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("DatabaseSizes/Query: %s", err)
	}

	defer rows.Close()

	var sizes []state.DatabaseSize

	for rows.Next() {
		var row state.DatabaseSize

		err := rows.Scan(&row.Name, &row.SizeBytes, &row.Size)
		if err != nil {
			return nil, fmt.Errorf("DatabaseSizes/Scan: %s", err)
		}

		sizes = append(sizes, row)
	}

	return sizes, nil
}
