package runner

import (
	"regexp"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/pgtoolbelt/pgtoolbelt/admin"
	"github.com/pgtoolbelt/pgtoolbelt/catalog"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

// The typed handler and the snippet text the operator sees via --show must
// use the same idle interval.
func TestIdleThresholdMatchesSnippetText(t *testing.T) {
	snippet, ok := catalog.ByID("kill-idle-connections")
	if !ok {
		t.Fatal("kill-idle-connections missing from catalog")
	}
	if !strings.Contains(snippet.SQL, "interval '"+idleSessionThreshold+"'") {
		t.Errorf("snippet interval differs from handler threshold %q:\n%s", idleSessionThreshold, snippet.SQL)
	}
}

func TestRunTypedKillIdleConnections(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %s", err)
	}
	defer db.Close()

	mock.ExpectQuery("pg_terminate_backend").
		WithArgs(idleSessionThreshold).
		WillReturnRows(sqlmock.NewRows([]string{"pg_terminate_backend"}).AddRow(true).AddRow(true))

	snippet, _ := catalog.ByID("kill-idle-connections")
	logger := util.NewLogger(false, true)

	_, out, handled, err := runTyped(logger, db, nil, snippet, Opts{})
	if err != nil {
		t.Fatalf("runTyped failed: %s", err)
	}
	if !handled {
		t.Fatal("kill-idle-connections should have a typed handler")
	}
	if len(out.Rows) != 1 || out.Rows[0][0] != "2" {
		t.Errorf("unexpected output rows: %v", out.Rows)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

func TestRunTypedResetSequence(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %s", err)
	}
	defer db.Close()

	expectedSQL := admin.BuildResetSequenceStatement(admin.SequenceTarget{
		SchemaName:   "public",
		TableName:    "users",
		ColumnName:   "id",
		SequenceName: "public.users_id_seq",
	})
	mock.ExpectExec(regexp.QuoteMeta(expectedSQL)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	snippet, _ := catalog.ByID("reset-sequence")
	logger := util.NewLogger(false, true)
	opts := Opts{Params: map[string]string{
		"SEQUENCE_NAME": "public.users_id_seq",
		"TABLE_NAME":    "users",
	}}

	payload, _, handled, err := runTyped(logger, db, nil, snippet, opts)
	if err != nil {
		t.Fatalf("runTyped failed: %s", err)
	}
	if !handled {
		t.Fatal("reset-sequence should have a typed handler")
	}
	result, ok := payload.(admin.Result)
	if !ok {
		t.Fatalf("payload is %T, want admin.Result", payload)
	}
	if len(result.Statements) != 1 || result.Statements[0] != expectedSQL {
		t.Errorf("unexpected statements: %v", result.Statements)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

func TestRunTypedRecreateTableIndexes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %s", err)
	}
	defer db.Close()

	indexDef := "CREATE INDEX users_email_idx ON public.users USING btree (email)"
	mock.ExpectQuery("FROM pg_indexes").
		WithArgs("public", "users").
		WillReturnRows(sqlmock.NewRows([]string{"schemaname", "indexname", "indexdef"}).
			AddRow("public", "users_email_idx", indexDef))
	mock.ExpectExec(regexp.QuoteMeta(indexDef)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	snippet, _ := catalog.ByID("recreate-table-indexes")
	logger := util.NewLogger(false, true)
	opts := Opts{Params: map[string]string{"TABLE_NAME": "users"}}

	payload, _, handled, err := runTyped(logger, db, nil, snippet, opts)
	if err != nil {
		t.Fatalf("runTyped failed: %s", err)
	}
	if !handled {
		t.Fatal("recreate-table-indexes should have a typed handler")
	}
	result := payload.(admin.Result)
	if result.Skipped {
		t.Error("result should not be skipped with one index present")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

// A table without droppable indexes skips execution, like the snippet's
// NULL guard.
func TestRunTypedRecreateTableIndexesEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %s", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM pg_indexes").
		WithArgs("public", "users").
		WillReturnRows(sqlmock.NewRows([]string{"schemaname", "indexname", "indexdef"}))

	snippet, _ := catalog.ByID("recreate-table-indexes")
	logger := util.NewLogger(false, true)
	opts := Opts{Params: map[string]string{"TABLE_NAME": "users"}}

	payload, out, handled, err := runTyped(logger, db, nil, snippet, opts)
	if err != nil {
		t.Fatalf("runTyped failed: %s", err)
	}
	if !handled {
		t.Fatal("recreate-table-indexes should have a typed handler")
	}
	if !payload.(admin.Result).Skipped {
		t.Error("result should be skipped with no indexes")
	}
	if len(out.Rows) != 1 || out.Rows[0][1] != "(nothing to do)" {
		t.Errorf("unexpected output rows: %v", out.Rows)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}
