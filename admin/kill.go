package admin

import (
	"database/sql"
	"fmt"

	"github.com/pgtoolbelt/pgtoolbelt/input/postgres"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

const terminateByDatabaseSQL = `
SELECT pg_terminate_backend(pid)
  FROM pg_stat_activity
 WHERE datname = $1
   AND pid <> pg_backend_pid()`

const terminateByApplicationSQL = `
SELECT pg_terminate_backend(pid)
  FROM pg_stat_activity
 WHERE application_name = $1
   AND pid <> pg_backend_pid()`

const terminateIdleSQL = `
SELECT pg_terminate_backend(pid)
  FROM pg_stat_activity
 WHERE state = 'idle'
   AND state_change < now() - $1::interval
   AND pid <> pg_backend_pid()`

// CancelBackend - Asks the backend to abort its current query; the session
// stays connected
func CancelBackend(logger *util.Logger, db *sql.DB, pid int32) (bool, error) {
	logger.PrintInfo("Cancelling backend %d", pid)

	var ok bool
	err := db.QueryRow(postgres.QueryMarkerSQL+"SELECT pg_cancel_backend($1)", pid).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("CancelBackend/Query: %s", err)
	}
	return ok, nil
}

// TerminateBackend - Kills the backend outright
func TerminateBackend(logger *util.Logger, db *sql.DB, pid int32) (bool, error) {
	logger.PrintInfo("Terminating backend %d", pid)

	var ok bool
	err := db.QueryRow(postgres.QueryMarkerSQL+"SELECT pg_terminate_backend($1)", pid).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("TerminateBackend/Query: %s", err)
	}
	return ok, nil
}

func TerminateDatabaseConnections(logger *util.Logger, db *sql.DB, databaseName string) (int, error) {
	logger.PrintInfo("Terminating all connections to database %s", databaseName)
	return terminateMatching(db, terminateByDatabaseSQL, databaseName)
}

func TerminateApplicationConnections(logger *util.Logger, db *sql.DB, applicationName string) (int, error) {
	logger.PrintInfo("Terminating all connections of application %s", applicationName)
	return terminateMatching(db, terminateByApplicationSQL, applicationName)
}

// TerminateIdleConnections kills sessions that have been idle for longer
// than the given interval (e.g. "1 hour").
func TerminateIdleConnections(logger *util.Logger, db *sql.DB, idleFor string) (int, error) {
	logger.PrintInfo("Terminating connections idle for more than %s", idleFor)
	return terminateMatching(db, terminateIdleSQL, idleFor)
}

func terminateMatching(db *sql.DB, query string, arg interface{}) (int, error) {
	rows, err := db.Query(postgres.QueryMarkerSQL+query, arg)
	if err != nil {
		return 0, fmt.Errorf("Terminate/Query: %s", err)
	}

	defer rows.Close()

	terminated := 0
	for rows.Next() {
		var ok bool
		if err := rows.Scan(&ok); err != nil {
			return terminated, fmt.Errorf("Terminate/Scan: %s", err)
		}
		if ok {
			terminated++
		}
	}

	return terminated, nil
}
