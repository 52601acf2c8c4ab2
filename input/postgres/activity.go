package postgres

import (
	"database/sql"
	"fmt"

	pg_query "github.com/lfittl/pg_query_go"
	"gopkg.in/guregu/null.v3"

	"github.com/pgtoolbelt/pgtoolbelt/state"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

// https://www.postgresql.org/docs/current/monitoring-stats.html#PG-STAT-ACTIVITY-VIEW
const activitySQL string = `
SELECT pid, datname, usename, application_name, client_addr::text,
       backend_start, xact_start, query_start, state_change,
       wait_event IS NOT NULL, state, query
  FROM pg_stat_activity
 WHERE pid <> pg_backend_pid() %s`

const activitySQLActiveOnlyCondition = "AND state <> 'idle'"

// GetBackends - Reads pg_stat_activity, optionally restricted to non-idle
// sessions, and attaches a normalized query text where possible
func GetBackends(logger *util.Logger, db *sql.DB, activeOnly bool) ([]state.Backend, error) {
	var condition string
	if activeOnly {
		condition = activitySQLActiveOnlyCondition
	}

	stmt, err := db.Prepare(QueryMarkerSQL + fmt.Sprintf(activitySQL, condition))
	if err != nil {
		return nil, fmt.Errorf("Backends/Prepare: %s", err)
	}

	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("Backends/Query: %s", err)
	}

	defer rows.Close()

	var activities []state.Backend

	for rows.Next() {
		var row state.Backend
		var query null.String

		err := rows.Scan(&row.Pid, &row.DatabaseName, &row.Username, &row.ApplicationName,
			&row.ClientAddr, &row.BackendStart, &row.XactStart, &row.QueryStart,
			&row.StateChange, &row.Waiting, &row.State, &query)
		if err != nil {
			return nil, fmt.Errorf("Backends/Scan: %s", err)
		}

		row.Query = query
		if query.Valid && query.String != "<insufficient privilege>" {
			normalizedQuery, err := pg_query.Normalize(query.String)
			if err != nil {
				logger.PrintVerbose("Failed to normalize query, leaving original: %s", err)
			} else {
				row.NormalizedQuery = null.StringFrom(normalizedQuery)
			}
		}

		activities = append(activities, row)
	}

	return activities, nil
}
