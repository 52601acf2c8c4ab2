package postgres

import (
	"reflect"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"gopkg.in/guregu/null.v3"

	"github.com/pgtoolbelt/pgtoolbelt/state"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

// The wait-graph query reports the mode of the lock each blocked backend is
// waiting for, alongside the blocking pids.
func TestGetBlockedQueriesIncludesLockMode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %s", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"blocked_pid", "blocked_mode", "blocking_pids"}).
		AddRow(100, "AccessShareLock", "{200}")
	mock.ExpectPrepare("pg_blocking_pids").ExpectQuery().WillReturnRows(rows)

	backends := []state.Backend{
		{Pid: 100, Waiting: null.BoolFrom(true), Query: null.StringFrom("UPDATE users SET name = $1")},
		{Pid: 200, Waiting: null.BoolFrom(false)},
	}

	logger := util.NewLogger(false, true)
	blocked, err := GetBlockedQueries(logger, db, backends)
	if err != nil {
		t.Fatalf("GetBlockedQueries failed: %s", err)
	}

	if len(blocked) != 1 {
		t.Fatalf("got %d blocked queries, want 1", len(blocked))
	}
	if blocked[0].BlockedPid != 100 {
		t.Errorf("got blocked pid %d, want 100", blocked[0].BlockedPid)
	}
	if blocked[0].BlockedMode.String != "AccessShareLock" {
		t.Errorf("got mode %q, want AccessShareLock", blocked[0].BlockedMode.String)
	}
	if !reflect.DeepEqual(blocked[0].BlockingPids, []int64{200}) {
		t.Errorf("got blocking pids %v, want [200]", blocked[0].BlockingPids)
	}
	if blocked[0].BlockedQuery.String != "UPDATE users SET name = $1" {
		t.Errorf("unexpected blocked query: %s", blocked[0].BlockedQuery.String)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

func TestGetBlockedQueriesNoneWaiting(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %s", err)
	}
	defer db.Close()

	backends := []state.Backend{{Pid: 100, Waiting: null.BoolFrom(false)}}

	logger := util.NewLogger(false, true)
	blocked, err := GetBlockedQueries(logger, db, backends)
	if err != nil {
		t.Fatalf("GetBlockedQueries failed: %s", err)
	}
	if blocked != nil {
		t.Errorf("got %v, want nil with no waiting backends", blocked)
	}
}
