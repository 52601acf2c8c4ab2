package postgres

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"gopkg.in/guregu/null.v3"

	"github.com/pgtoolbelt/pgtoolbelt/state"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

const blockingPidsSQL string = `
SELECT
	blocked.pid as blocked_pid,
	(SELECT mode
	   FROM pg_catalog.pg_locks
	  WHERE pg_locks.pid = blocked.pid AND NOT granted
	  LIMIT 1) as blocked_mode,
	pg_blocking_pids(blocked.pid) as blocking_pids
FROM unnest(array[%s]::int[]) as blocked(pid)`

// Edge - A "blocked by" relation between two backend pids
type Edge struct {
	from int64
	to   int64
}

// GetBlockedQueries - Builds the wait graph for all currently waiting
// backends: who they wait on directly, and which pids they hold up further
// down the graph
func GetBlockedQueries(logger *util.Logger, db *sql.DB, backends []state.Backend) ([]state.BlockedQuery, error) {
	var blockedPids []string
	queryByPid := make(map[int32]state.Backend)
	for _, backend := range backends {
		queryByPid[backend.Pid] = backend
		if backend.Waiting.Bool {
			blockedPids = append(blockedPids, strconv.Itoa(int(backend.Pid)))
		}
	}

	if len(blockedPids) == 0 {
		return nil, nil
	}

	blockingInfo, err := getBlockingInfo(logger, db, blockedPids)
	if err != nil {
		return nil, err
	}

	var graph []Edge
	for blocked, info := range blockingInfo {
		for _, blocking := range info.blockingPids {
			graph = append(graph, Edge{from: int64(blocked), to: blocking})
		}
	}

	var locks []state.BlockedQuery
	for blocked, info := range blockingInfo {
		lock := state.BlockedQuery{
			BlockedPid:            blocked,
			BlockedQuery:          queryByPid[blocked].Query,
			BlockedMode:           info.mode,
			BlockingPids:          info.blockingPids,
			IndirectlyBlockedPids: findIndirectlyBlockedBy(graph, []int64{int64(blocked)}),
		}
		locks = append(locks, lock)
	}

	return locks, nil
}

type blockedBackendInfo struct {
	mode         null.String
	blockingPids []int64
}

func getBlockingInfo(logger *util.Logger, db *sql.DB, blockedPids []string) (map[int32]blockedBackendInfo, error) {
	stmt, err := db.Prepare(QueryMarkerSQL + fmt.Sprintf(blockingPidsSQL, strings.Join(blockedPids, ",")))
	if err != nil {
		return nil, err
	}

	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	blocking := make(map[int32]blockedBackendInfo)

	for rows.Next() {
		var blockedPid int32
		var info blockedBackendInfo

		err := rows.Scan(&blockedPid, &info.mode, pq.Array(&info.blockingPids))
		if err != nil {
			return nil, err
		}

		blocking[blockedPid] = info
	}

	return blocking, nil
}

// findBlocking returns the pids the given pid directly waits on.
func findBlocking(graph []Edge, pid int64) []int64 {
	result := []int64{}
	for _, edge := range graph {
		if edge.from == pid {
			result = append(result, edge.to)
		}
	}
	return result
}

// findIndirectlyBlocking walks the graph downstream from the given pids and
// returns every pid reachable through one or more "blocked by" edges.
func findIndirectlyBlocking(graph []Edge, pids []int64) []int64 {
	result := []int64{}
	visited := make(map[int64]bool)
	queue := append([]int64{}, pids...)

	for len(queue) > 0 {
		pid := queue[0]
		queue = queue[1:]

		for _, next := range findBlocking(graph, pid) {
			if visited[next] {
				continue
			}
			visited[next] = true
			result = append(result, next)
			queue = append(queue, next)
		}
	}

	return result
}

// findIndirectlyBlockedBy walks the graph in the other direction: every pid
// that transitively waits on one of the given pids.
func findIndirectlyBlockedBy(graph []Edge, pids []int64) []int64 {
	result := []int64{}
	visited := make(map[int64]bool)
	queue := append([]int64{}, pids...)

	for len(queue) > 0 {
		pid := queue[0]
		queue = queue[1:]

		for _, edge := range graph {
			if edge.to != pid || visited[edge.from] {
				continue
			}
			visited[edge.from] = true
			result = append(result, edge.from)
			queue = append(queue, edge.from)
		}
	}

	return result
}
