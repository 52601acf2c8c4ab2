package catalog

import (
	_ "embed"

	"github.com/pgtoolbelt/pgtoolbelt/state"
)

//go:embed sql/running_queries.sql
var sqlRunningQueries string

//go:embed sql/long_running_queries.sql
var sqlLongRunningQueries string

//go:embed sql/blocked_queries.sql
var sqlBlockedQueries string

//go:embed sql/connections_by_database.sql
var sqlConnectionsByDatabase string

//go:embed sql/connections_by_application.sql
var sqlConnectionsByApplication string

//go:embed sql/cancel_backend.sql
var sqlCancelBackend string

//go:embed sql/terminate_backend.sql
var sqlTerminateBackend string

//go:embed sql/kill_database_connections.sql
var sqlKillDatabaseConnections string

//go:embed sql/kill_application_connections.sql
var sqlKillApplicationConnections string

//go:embed sql/kill_idle_connections.sql
var sqlKillIdleConnections string

//go:embed sql/table_cache_hit_ratio.sql
var sqlTableCacheHitRatio string

//go:embed sql/index_cache_hit_ratio.sql
var sqlIndexCacheHitRatio string

//go:embed sql/index_usage_rates.sql
var sqlIndexUsageRates string

//go:embed sql/database_sizes.sql
var sqlDatabaseSizes string

//go:embed sql/largest_tables.sql
var sqlLargestTables string

//go:embed sql/unused_indexes.sql
var sqlUnusedIndexes string

//go:embed sql/drop_table_indexes.sql
var sqlDropTableIndexes string

//go:embed sql/recreate_table_indexes.sql
var sqlRecreateTableIndexes string

//go:embed sql/reindex_table.sql
var sqlReindexTable string

//go:embed sql/list_sequences.sql
var sqlListSequences string

//go:embed sql/reset_sequence.sql
var sqlResetSequence string

//go:embed sql/reset_all_sequences.sql
var sqlResetAllSequences string

//go:embed sql/disable_all_triggers.sql
var sqlDisableAllTriggers string

//go:embed sql/enable_all_triggers.sql
var sqlEnableAllTriggers string

//go:embed sql/changed_settings.sql
var sqlChangedSettings string

//go:embed sql/grant_read_only.sql
var sqlGrantReadOnly string

//go:embed sql/dump_database.sh
var shellDumpDatabase string

//go:embed sql/dump_table.sh
var shellDumpTable string

//go:embed sql/restore_database.sh
var shellRestoreDatabase string

//go:embed sql/export_table_csv.sh
var shellExportTableCSV string

const (
	SectionActivity  = "Activity"
	SectionSessions  = "Sessions"
	SectionCache     = "Cache"
	SectionDisk      = "Disk"
	SectionIndexes   = "Indexes"
	SectionSequences = "Sequences"
	SectionTriggers  = "Triggers"
	SectionSettings  = "Settings"
	SectionAccess    = "Access"
	SectionDump      = "Dump & restore"
)

var snippets = []Snippet{
	{
		ID:          "running-queries",
		Title:       "Show currently running queries",
		Section:     SectionActivity,
		Description: "All non-idle backends other than this session, oldest query first.",
		Kind:        KindQuery,
		SQL:         sqlRunningQueries,
	},
	{
		ID:          "long-running-queries",
		Title:       "Show queries running longer than five minutes",
		Section:     SectionActivity,
		Description: "Candidates for cancellation, longest-running first.",
		Kind:        KindQuery,
		SQL:         sqlLongRunningQueries,
	},
	{
		ID:          "blocked-queries",
		Title:       "Show blocked and blocking queries",
		Section:     SectionActivity,
		Description: "Pairs every waiting backend with the sessions holding it up, via pg_blocking_pids.",
		Kind:        KindQuery,
		SQL:         sqlBlockedQueries,
	},
	{
		ID:          "connections-by-database",
		Title:       "Count connections by database",
		Section:     SectionActivity,
		Description: "Where the connection slots are going, per database.",
		Kind:        KindQuery,
		SQL:         sqlConnectionsByDatabase,
	},
	{
		ID:          "connections-by-application",
		Title:       "Count connections by application",
		Section:     SectionActivity,
		Description: "Where the connection slots are going, per application_name.",
		Kind:        KindQuery,
		SQL:         sqlConnectionsByApplication,
	},
	{
		ID:           "cancel-backend",
		Title:        "Cancel a running query",
		Section:      SectionSessions,
		Description:  "Asks the backend to abort its current query; the session stays connected.",
		Kind:         KindStatement,
		SQL:          sqlCancelBackend,
		Placeholders: []Placeholder{phPid},
		Destructive:  true,
	},
	{
		ID:           "terminate-backend",
		Title:        "Terminate a session",
		Section:      SectionSessions,
		Description:  "Kills the backend outright. Use when cancel is not enough.",
		Kind:         KindStatement,
		SQL:          sqlTerminateBackend,
		Placeholders: []Placeholder{phPid},
		Destructive:  true,
	},
	{
		ID:           "kill-database-connections",
		Title:        "Kill all connections to a database",
		Section:      SectionSessions,
		Description:  "Terminates every session connected to the named database, e.g. before dropping it.",
		Kind:         KindStatement,
		SQL:          sqlKillDatabaseConnections,
		Placeholders: []Placeholder{phDatabase},
		Destructive:  true,
	},
	{
		ID:           "kill-application-connections",
		Title:        "Kill all connections of an application",
		Section:      SectionSessions,
		Description:  "Terminates every session whose application_name matches.",
		Kind:         KindStatement,
		SQL:          sqlKillApplicationConnections,
		Placeholders: []Placeholder{phApplication},
		Destructive:  true,
	},
	{
		ID:          "kill-idle-connections",
		Title:       "Kill sessions idle for more than an hour",
		Section:     SectionSessions,
		Description: "Frees connection slots held by clients that went away without disconnecting.",
		Kind:        KindStatement,
		SQL:         sqlKillIdleConnections,
		Destructive: true,
	},
	{
		ID:          "table-cache-hit-ratio",
		Title:       "Table cache hit ratio",
		Section:     SectionCache,
		Description: "Share of heap reads served from shared_buffers. Healthy databases stay above 0.99.",
		Kind:        KindQuery,
		SQL:         sqlTableCacheHitRatio,
	},
	{
		ID:          "index-cache-hit-ratio",
		Title:       "Index cache hit ratio",
		Section:     SectionCache,
		Description: "Same as the table ratio, but for index blocks.",
		Kind:        KindQuery,
		SQL:         sqlIndexCacheHitRatio,
	},
	{
		ID:          "index-usage-rates",
		Title:       "Index usage rates",
		Section:     SectionCache,
		Description: "How often each table is read through an index rather than sequentially scanned.",
		Kind:        KindQuery,
		SQL:         sqlIndexUsageRates,
	},
	{
		ID:          "database-sizes",
		Title:       "Database sizes",
		Section:     SectionDisk,
		Description: "On-disk size of every non-template database, largest first.",
		Kind:        KindQuery,
		SQL:         sqlDatabaseSizes,
	},
	{
		ID:          "largest-tables",
		Title:       "Largest tables",
		Section:     SectionDisk,
		Description: "The twenty biggest tables with heap and index sizes broken out.",
		Kind:        KindQuery,
		SQL:         sqlLargestTables,
	},
	{
		ID:          "unused-indexes",
		Title:       "Seldom-used indexes",
		Section:     SectionDisk,
		Description: "Non-unique indexes scanned fewer than fifty times, biggest first. Drop candidates.",
		Kind:        KindQuery,
		SQL:         sqlUnusedIndexes,
	},
	{
		ID:           "drop-table-indexes",
		Title:        "Drop all indexes of a table",
		Section:      SectionIndexes,
		Description:  "Builds a dynamic DROP INDEX list for the table, skipping constraint-backed indexes. Does nothing when the table has no droppable indexes.",
		Kind:         KindScript,
		SQL:          sqlDropTableIndexes,
		Placeholders: []Placeholder{phSchema, phTable},
		Destructive:  true,
	},
	{
		ID:           "recreate-table-indexes",
		Title:        "Recreate the indexes of a table",
		Section:      SectionIndexes,
		Description:  "Replays the saved index definitions from pg_indexes, e.g. after a bulk load with dropped indexes.",
		Kind:         KindScript,
		SQL:          sqlRecreateTableIndexes,
		Placeholders: []Placeholder{phSchema, phTable},
		Destructive:  true,
	},
	{
		ID:           "reindex-table",
		Title:        "Rebuild the indexes of a table",
		Section:      SectionIndexes,
		Description:  "REINDEX rewrites the indexes in place, shedding bloat. Takes an exclusive lock.",
		Kind:         KindStatement,
		SQL:          sqlReindexTable,
		Placeholders: []Placeholder{phSchema, phTable},
		Destructive:  true,
	},
	{
		ID:          "list-sequences",
		Title:       "List sequences and how close they are to overflow",
		Section:     SectionSequences,
		Description: "All sequences with last_value as a percentage of max_value.",
		Kind:        KindQuery,
		SQL:         sqlListSequences,
		MinVersion:  state.PostgresVersion10,
	},
	{
		ID:           "reset-sequence",
		Title:        "Reset a sequence to the maximum id",
		Section:      SectionSequences,
		Description:  "Points the sequence just past the largest id in the table, e.g. after a manual data load.",
		Kind:         KindStatement,
		SQL:          sqlResetSequence,
		Placeholders: []Placeholder{phSequence, phTable},
		Destructive:  true,
	},
	{
		ID:          "reset-all-sequences",
		Title:       "Reset every sequence to its column maximum",
		Section:     SectionSequences,
		Description: "Loops over all serial columns and setvals each owned sequence past the column maximum.",
		Kind:        KindScript,
		SQL:         sqlResetAllSequences,
		Destructive: true,
	},
	{
		ID:          "disable-all-triggers",
		Title:       "Disable all triggers",
		Section:     SectionTriggers,
		Description: "Turns triggers off on every user table for the duration of a maintenance window.",
		Kind:        KindScript,
		SQL:         sqlDisableAllTriggers,
		Destructive: true,
	},
	{
		ID:          "enable-all-triggers",
		Title:       "Enable all triggers",
		Section:     SectionTriggers,
		Description: "Re-enables what disable-all-triggers turned off.",
		Kind:        KindScript,
		SQL:         sqlEnableAllTriggers,
		Destructive: true,
	},
	{
		ID:          "changed-settings",
		Title:       "Show non-default server settings",
		Section:     SectionSettings,
		Description: "Every pg_settings entry that differs from its default, with its source.",
		Kind:        KindQuery,
		SQL:         sqlChangedSettings,
	},
	{
		ID:           "grant-read-only",
		Title:        "Grant read-only access to a role",
		Section:      SectionAccess,
		Description:  "Connect, usage and select on a schema, including tables created later.",
		Kind:         KindStatement,
		SQL:          sqlGrantReadOnly,
		Placeholders: []Placeholder{phDatabase, phSchema, phRole},
		Destructive:  true,
	},
	{
		ID:           "dump-database",
		Title:        "Dump a database",
		Section:      SectionDump,
		Description:  "Custom-format pg_dump without ACLs or ownership, restorable with pg_restore.",
		Kind:         KindShell,
		SQL:          shellDumpDatabase,
		Placeholders: []Placeholder{phUser, phDatabase},
	},
	{
		ID:           "dump-table",
		Title:        "Dump a single table",
		Section:      SectionDump,
		Description:  "Plain-format dump of one table, restorable with psql.",
		Kind:         KindShell,
		SQL:          shellDumpTable,
		Placeholders: []Placeholder{phUser, phSchema, phTable, phDatabase},
	},
	{
		ID:           "restore-database",
		Title:        "Restore a plain-format dump",
		Section:      SectionDump,
		Description:  "Feeds a plain SQL dump back through psql.",
		Kind:         KindShell,
		SQL:          shellRestoreDatabase,
		Placeholders: []Placeholder{phUser, phDatabase},
	},
	{
		ID:           "export-table-csv",
		Title:        "Export a table to CSV",
		Section:      SectionDump,
		Description:  "Client-side \\copy of the table contents into a headered CSV file.",
		Kind:         KindShell,
		SQL:          shellExportTableCSV,
		Placeholders: []Placeholder{phUser, phDatabase, phSchema, phTable},
	},
}
