package postgres

import (
	"database/sql"
	"fmt"
)

// QueryMarkerSQL - Prefix for all queries the toolbelt itself runs, so they
// are recognizable in pg_stat_activity and the log
const QueryMarkerSQL = "/* pgtoolbelt */ "

func SetStatementTimeout(db *sql.DB, timeoutMs int) error {
	_, err := db.Exec(fmt.Sprintf("%sSET statement_timeout = %d", QueryMarkerSQL, timeoutMs))
	return err
}
