// Package runner connects catalog snippets to a live server: it resolves
// placeholders, enforces version and confirmation requirements, dispatches
// to the typed implementations where one exists, and falls back to
// executing the snippet text directly.
package runner

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pgtoolbelt/pgtoolbelt/admin"
	"github.com/pgtoolbelt/pgtoolbelt/catalog"
	"github.com/pgtoolbelt/pgtoolbelt/config"
	"github.com/pgtoolbelt/pgtoolbelt/dump"
	"github.com/pgtoolbelt/pgtoolbelt/input/postgres"
	"github.com/pgtoolbelt/pgtoolbelt/state"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

const longRunningThreshold = 5 * time.Minute

// idleSessionThreshold matches the interval in the kill-idle-connections
// snippet text; the two must not drift apart
const idleSessionThreshold = "1 hour"

// Opts - Invocation options for a single snippet run
type Opts struct {
	SnippetID    string
	Params       map[string]string
	DatabaseName string

	// File overrides the derived dump/restore file name for shell snippets
	File string

	// Force is required to run snippets marked destructive
	Force bool

	JSON bool
}

// Run executes one snippet against the configured server and writes the
// result to w.
func Run(logger *util.Logger, server *config.ServerConfig, opts Opts, w io.Writer) error {
	snippet, ok := catalog.ByID(opts.SnippetID)
	if !ok {
		return fmt.Errorf("Unknown snippet: %s (try --list)", opts.SnippetID)
	}

	if snippet.Destructive && !opts.Force {
		return fmt.Errorf("Snippet %s modifies server state, pass --force to run it", snippet.ID)
	}

	if snippet.Kind == catalog.KindShell {
		return runShell(logger, server, snippet, opts)
	}

	db, err := postgres.EstablishConnection(server, logger, opts.DatabaseName)
	if err != nil {
		return fmt.Errorf("Failed to connect to database: %s", err)
	}
	defer db.Close()

	version, err := postgres.GetPostgresVersion(logger, db)
	if err != nil {
		return fmt.Errorf("Error collecting Postgres version: %s", err)
	}
	if version.Numeric < state.MinRequiredPostgresVersion {
		return fmt.Errorf("Unsupported server version: %s", version.Short)
	}
	if snippet.MinVersion != 0 && version.Numeric < snippet.MinVersion {
		return fmt.Errorf("Snippet %s requires a newer server version (have %s)", snippet.ID, version.Short)
	}

	payload, out, handled, err := runTyped(logger, db, server, snippet, opts)
	if err != nil {
		return err
	}
	if !handled {
		sqlText, applyErr := snippet.Apply(opts.Params)
		if applyErr != nil {
			return applyErr
		}
		payload = nil
		out, err = runGeneric(db, snippet, sqlText)
		if err != nil {
			return err
		}
	}

	if opts.JSON && payload != nil {
		return printJSON(w, payload)
	}
	if opts.JSON {
		return printJSON(w, out)
	}
	return out.PrintTable(w)
}

func runTyped(logger *util.Logger, db *sql.DB, server *config.ServerConfig, snippet catalog.Snippet, opts Opts) (payload interface{}, out Output, handled bool, err error) {
	handled = true

	switch snippet.ID {
	case "running-queries":
		backends, getErr := postgres.GetBackends(logger, db, true)
		payload, out, err = backends, formatBackends(backends), getErr
	case "long-running-queries":
		backends, getErr := postgres.GetBackends(logger, db, true)
		if getErr != nil {
			err = getErr
			return
		}
		var longRunning []state.Backend
		cutoff := time.Now().Add(-longRunningThreshold)
		for _, backend := range backends {
			if backend.QueryStart.Valid && backend.QueryStart.Time.Before(cutoff) {
				longRunning = append(longRunning, backend)
			}
		}
		payload, out = longRunning, formatBackends(longRunning)
	case "blocked-queries":
		backends, getErr := postgres.GetBackends(logger, db, false)
		if getErr != nil {
			err = getErr
			return
		}
		blocked, getErr := postgres.GetBlockedQueries(logger, db, backends)
		payload, out, err = blocked, formatBlockedQueries(blocked), getErr
	case "connections-by-database":
		counts, getErr := postgres.GetConnectionCounts(db, "datname")
		payload, out, err = counts, formatConnectionCounts(counts, "database"), getErr
	case "connections-by-application":
		counts, getErr := postgres.GetConnectionCounts(db, "application_name")
		payload, out, err = counts, formatConnectionCounts(counts, "application"), getErr
	case "cancel-backend":
		pid, paramErr := pidParam(snippet, opts.Params)
		if paramErr != nil {
			err = paramErr
			return
		}
		ok, runErr := admin.CancelBackend(logger, db, pid)
		payload, out, err = ok, formatBool("cancelled", ok), runErr
	case "terminate-backend":
		pid, paramErr := pidParam(snippet, opts.Params)
		if paramErr != nil {
			err = paramErr
			return
		}
		ok, runErr := admin.TerminateBackend(logger, db, pid)
		payload, out, err = ok, formatBool("terminated", ok), runErr
	case "kill-database-connections":
		name, paramErr := requireParam(snippet, opts.Params, "DATABASE_NAME")
		if paramErr != nil {
			err = paramErr
			return
		}
		count, runErr := admin.TerminateDatabaseConnections(logger, db, name)
		payload, out, err = count, formatCount("terminated", count), runErr
	case "kill-application-connections":
		name, paramErr := requireParam(snippet, opts.Params, "APPLICATION_NAME")
		if paramErr != nil {
			err = paramErr
			return
		}
		count, runErr := admin.TerminateApplicationConnections(logger, db, name)
		payload, out, err = count, formatCount("terminated", count), runErr
	case "kill-idle-connections":
		count, runErr := admin.TerminateIdleConnections(logger, db, idleSessionThreshold)
		payload, out, err = count, formatCount("terminated", count), runErr
	case "table-cache-hit-ratio":
		ratios, getErr := cacheHitRatiosByKind(db, "table")
		payload, out, err = ratios, formatCacheHitRatios(ratios), getErr
	case "index-cache-hit-ratio":
		ratios, getErr := cacheHitRatiosByKind(db, "index")
		payload, out, err = ratios, formatCacheHitRatios(ratios), getErr
	case "index-usage-rates":
		usage, getErr := postgres.GetIndexUsage(db)
		payload, out, err = usage, formatIndexUsage(usage), getErr
	case "database-sizes":
		sizes, getErr := postgres.GetDatabaseSizes(db)
		payload, out, err = sizes, formatDatabaseSizes(sizes), getErr
	case "largest-tables":
		sizes, getErr := postgres.GetRelationSizes(db, 20)
		payload, out, err = sizes, formatRelationSizes(sizes), getErr
	case "unused-indexes":
		indexes, getErr := postgres.GetUnusedIndexes(db, 50)
		payload, out, err = indexes, formatUnusedIndexes(indexes), getErr
	case "drop-table-indexes":
		schema, table, paramErr := tableParams(snippet, opts.Params)
		if paramErr != nil {
			err = paramErr
			return
		}
		result, definitions, runErr := admin.DropTableIndexes(logger, db, schema, table)
		if runErr == nil && len(definitions) > 0 {
			logger.PrintInfo("To recreate: %s", admin.BuildCreateIndexStatement(definitions))
		}
		payload, out, err = result, formatAdminResult(result), runErr
	case "recreate-table-indexes":
		schema, table, paramErr := tableParams(snippet, opts.Params)
		if paramErr != nil {
			err = paramErr
			return
		}
		indexes, getErr := admin.GetTableIndexes(db, schema, table)
		if getErr != nil {
			err = getErr
			return
		}
		result, runErr := admin.RecreateTableIndexes(logger, db, indexes)
		payload, out, err = result, formatAdminResult(result), runErr
	case "reindex-table":
		schema, table, paramErr := tableParams(snippet, opts.Params)
		if paramErr != nil {
			err = paramErr
			return
		}
		result, runErr := admin.ReindexTable(logger, db, schema, table)
		payload, out, err = result, formatAdminResult(result), runErr
	case "list-sequences":
		report, getErr := postgres.GetSequenceReport(logger, db)
		payload, out, err = report, formatSequenceReport(report), getErr
	case "reset-sequence":
		sequence, paramErr := requireParam(snippet, opts.Params, "SEQUENCE_NAME")
		if paramErr != nil {
			err = paramErr
			return
		}
		schema, table, paramErr := tableParams(snippet, opts.Params)
		if paramErr != nil {
			err = paramErr
			return
		}
		column := opts.Params["COLUMN_NAME"]
		if column == "" {
			column = "id"
		}
		target := admin.SequenceTarget{
			SchemaName:   schema,
			TableName:    table,
			ColumnName:   column,
			SequenceName: sequence,
		}
		result, runErr := admin.ResetSequence(logger, db, target)
		payload, out, err = result, formatAdminResult(result), runErr
	case "reset-all-sequences":
		result, runErr := admin.ResetAllSequences(logger, db)
		payload, out, err = result, formatAdminResult(result), runErr
	case "disable-all-triggers":
		result, runErr := admin.DisableAllTriggers(logger, db)
		payload, out, err = result, formatAdminResult(result), runErr
	case "enable-all-triggers":
		result, runErr := admin.EnableAllTriggers(logger, db)
		payload, out, err = result, formatAdminResult(result), runErr
	case "changed-settings":
		settings, getErr := postgres.GetSettings(db)
		payload, out, err = settings, formatSettings(settings), getErr
	case "grant-read-only":
		database, paramErr := requireParam(snippet, opts.Params, "DATABASE_NAME")
		if paramErr != nil {
			err = paramErr
			return
		}
		schema, paramErr := requireParam(snippet, opts.Params, "SCHEMA_NAME")
		if paramErr != nil {
			err = paramErr
			return
		}
		role, paramErr := requireParam(snippet, opts.Params, "ROLE")
		if paramErr != nil {
			err = paramErr
			return
		}
		result, runErr := admin.GrantReadOnly(logger, db, database, schema, role)
		payload, out, err = result, formatAdminResult(result), runErr
	default:
		// Remaining scripts run through the snippet text itself
		handled = false
	}
	return
}

func runShell(logger *util.Logger, server *config.ServerConfig, snippet catalog.Snippet, opts Opts) error {
	switch snippet.ID {
	case "dump-database":
		file := opts.File
		if file == "" {
			file = server.GetDbName() + ".dump"
		}
		return dump.DumpDatabase(logger, *server, file)
	case "dump-table":
		schema, table, err := tableParams(snippet, opts.Params)
		if err != nil {
			return err
		}
		file := opts.File
		if file == "" {
			file = table + ".sql"
		}
		return dump.DumpTable(logger, *server, schema, table, file)
	case "restore-database":
		if opts.File == "" {
			return fmt.Errorf("Snippet %s needs --file with the dump to restore", snippet.ID)
		}
		return dump.RestoreDatabase(logger, *server, opts.File)
	case "export-table-csv":
		schema, table, err := tableParams(snippet, opts.Params)
		if err != nil {
			return err
		}
		file := opts.File
		if file == "" {
			file = table + ".csv"
		}
		return dump.ExportTableCSV(logger, *server, schema, table, file)
	}
	return fmt.Errorf("Unknown shell snippet: %s", snippet.ID)
}

func cacheHitRatiosByKind(db *sql.DB, kind string) ([]state.CacheHitRatio, error) {
	ratios, err := postgres.GetCacheHitRatios(db)
	if err != nil {
		return nil, err
	}
	var matching []state.CacheHitRatio
	for _, ratio := range ratios {
		if ratio.Kind == kind {
			matching = append(matching, ratio)
		}
	}
	return matching, nil
}

func requireParam(snippet catalog.Snippet, params map[string]string, name string) (string, error) {
	if value, ok := params[name]; ok && value != "" {
		return value, nil
	}
	return "", fmt.Errorf("Snippet %s needs --param %s=...", snippet.ID, name)
}

func pidParam(snippet catalog.Snippet, params map[string]string) (int32, error) {
	raw, err := requireParam(snippet, params, "PID")
	if err != nil {
		return 0, err
	}
	pid, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("Invalid PID %q: %s", raw, err)
	}
	return int32(pid), nil
}

func tableParams(snippet catalog.Snippet, params map[string]string) (string, string, error) {
	table, err := requireParam(snippet, params, "TABLE_NAME")
	if err != nil {
		return "", "", err
	}
	schema := params["SCHEMA_NAME"]
	if schema == "" {
		schema = "public"
	}
	return schema, table, nil
}
