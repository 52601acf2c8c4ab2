package state

import "gopkg.in/guregu/null.v3"

// Backend - A single row of pg_stat_activity, excluding our own connection
type Backend struct {
	Pid             int32       `json:"pid"`
	DatabaseName    null.String `json:"database_name"`
	Username        null.String `json:"username"`
	ApplicationName null.String `json:"application_name"`
	ClientAddr      null.String `json:"client_addr"`
	BackendStart    null.Time   `json:"backend_start"`
	XactStart       null.Time   `json:"xact_start"`
	QueryStart      null.Time   `json:"query_start"`
	StateChange     null.Time   `json:"state_change"`
	Waiting         null.Bool   `json:"waiting"`
	State           null.String `json:"state"`
	Query           null.String `json:"query"`
	NormalizedQuery null.String `json:"normalized_query,omitempty"`
}

type ConnectionCount struct {
	Key   null.String `json:"key"`
	Count int64       `json:"count"`
}
