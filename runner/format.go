package runner

import (
	"fmt"
	"strconv"

	"github.com/pgtoolbelt/pgtoolbelt/admin"
	"github.com/pgtoolbelt/pgtoolbelt/state"
)

func formatBackends(backends []state.Backend) Output {
	out := Output{Columns: []string{"pid", "database", "user", "application", "state", "query_start", "query"}}
	for _, backend := range backends {
		query := backend.Query
		if backend.NormalizedQuery.Valid {
			query = backend.NormalizedQuery
		}
		out.Rows = append(out.Rows, []string{
			strconv.Itoa(int(backend.Pid)),
			nullStr(backend.DatabaseName),
			nullStr(backend.Username),
			nullStr(backend.ApplicationName),
			nullStr(backend.State),
			nullTimeStr(backend.QueryStart),
			nullStr(query),
		})
	}
	return out
}

func formatBlockedQueries(blocked []state.BlockedQuery) Output {
	out := Output{Columns: []string{"blocked_pid", "mode", "blocking_pids", "indirectly_blocked_pids", "blocked_query"}}
	for _, entry := range blocked {
		out.Rows = append(out.Rows, []string{
			strconv.Itoa(int(entry.BlockedPid)),
			nullStr(entry.BlockedMode),
			fmt.Sprintf("%v", entry.BlockingPids),
			fmt.Sprintf("%v", entry.IndirectlyBlockedPids),
			nullStr(entry.BlockedQuery),
		})
	}
	return out
}

func formatConnectionCounts(counts []state.ConnectionCount, keyName string) Output {
	out := Output{Columns: []string{keyName, "connections"}}
	for _, count := range counts {
		out.Rows = append(out.Rows, []string{
			nullStr(count.Key),
			strconv.FormatInt(count.Count, 10),
		})
	}
	return out
}

func formatCacheHitRatios(ratios []state.CacheHitRatio) Output {
	out := Output{Columns: []string{"kind", "blks_read", "blks_hit", "ratio"}}
	for _, ratio := range ratios {
		out.Rows = append(out.Rows, []string{
			ratio.Kind,
			nullIntStr(ratio.BlksRead),
			nullIntStr(ratio.BlksHit),
			nullFloatStr(ratio.Ratio),
		})
	}
	return out
}

func formatIndexUsage(usage []state.IndexUsage) Output {
	out := Output{Columns: []string{"relation", "percent_of_times_index_used", "rows_in_table"}}
	for _, entry := range usage {
		out.Rows = append(out.Rows, []string{
			entry.RelationName,
			nullFloatStr(entry.PercentIndexUsed),
			strconv.FormatInt(entry.RowsInTable, 10),
		})
	}
	return out
}

func formatDatabaseSizes(sizes []state.DatabaseSize) Output {
	out := Output{Columns: []string{"database", "size"}}
	for _, size := range sizes {
		out.Rows = append(out.Rows, []string{size.Name, size.Size})
	}
	return out
}

func formatRelationSizes(sizes []state.RelationSize) Output {
	out := Output{Columns: []string{"schema", "relation", "total_size", "table_size", "index_size"}}
	for _, size := range sizes {
		out.Rows = append(out.Rows, []string{
			size.SchemaName,
			size.RelationName,
			size.TotalSize,
			size.TableSize,
			size.IndexSize,
		})
	}
	return out
}

func formatUnusedIndexes(indexes []state.UnusedIndex) Output {
	out := Output{Columns: []string{"schema", "relation", "index", "scans", "size"}}
	for _, index := range indexes {
		out.Rows = append(out.Rows, []string{
			index.SchemaName,
			index.RelationName,
			index.IndexName,
			nullIntStr(index.Scans),
			index.Size,
		})
	}
	return out
}

func formatSequenceReport(report state.SequenceReport) Output {
	out := Output{Columns: []string{"schema", "sequence", "data_type", "last_value", "max_value"}}
	for _, sequence := range report.Sequences {
		out.Rows = append(out.Rows, []string{
			sequence.SchemaName,
			sequence.SequenceName,
			sequence.DataType,
			nullIntStr(sequence.LastValue),
			strconv.FormatInt(sequence.MaxValue, 10),
		})
	}
	return out
}

func formatSettings(settings []state.Setting) Output {
	out := Output{Columns: []string{"name", "current_value", "unit", "boot_value", "source"}}
	for _, setting := range settings {
		out.Rows = append(out.Rows, []string{
			setting.Name,
			nullStr(setting.CurrentValue),
			nullStr(setting.Unit),
			nullStr(setting.BootValue),
			nullStr(setting.Source),
		})
	}
	return out
}

func formatAdminResult(result admin.Result) Output {
	out := Output{Columns: []string{"run_id", "statement"}}
	if result.Skipped {
		out.Rows = append(out.Rows, []string{result.RunID, "(nothing to do)"})
		return out
	}
	for _, statement := range result.Statements {
		out.Rows = append(out.Rows, []string{result.RunID, statement})
	}
	return out
}

func formatCount(label string, count int) Output {
	return Output{
		Columns: []string{label},
		Rows:    [][]string{{strconv.Itoa(count)}},
	}
}

func formatBool(label string, value bool) Output {
	return Output{
		Columns: []string{label},
		Rows:    [][]string{{strconv.FormatBool(value)}},
	}
}
