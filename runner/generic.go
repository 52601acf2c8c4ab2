package runner

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/pgtoolbelt/pgtoolbelt/catalog"
	"github.com/pgtoolbelt/pgtoolbelt/input/postgres"
)

// runGeneric executes snippet text that has no typed implementation. Query
// snippets go through Query with dynamic column discovery, scripts and
// statements through Exec.
func runGeneric(db *sql.DB, snippet catalog.Snippet, sqlText string) (Output, error) {
	if snippet.Kind == catalog.KindScript {
		result, err := db.Exec(postgres.QueryMarkerSQL + sqlText)
		if err != nil {
			return Output{}, fmt.Errorf("Error running %s: %s", snippet.ID, err)
		}
		affected, _ := result.RowsAffected()
		return Output{
			Columns: []string{"result"},
			Rows:    [][]string{{fmt.Sprintf("ok (%d rows affected)", affected)}},
		}, nil
	}

	rows, err := db.Query(postgres.QueryMarkerSQL + sqlText)
	if err != nil {
		return Output{}, fmt.Errorf("Error running %s: %s", snippet.ID, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return Output{}, err
	}

	out := Output{Columns: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		for idx := range values {
			values[idx] = new(interface{})
		}
		if err = rows.Scan(values...); err != nil {
			return Output{}, err
		}

		row := make([]string, len(columns))
		for idx, value := range values {
			row[idx] = formatValue(*(value.(*interface{})))
		}
		out.Rows = append(out.Rows, row)
	}
	return out, rows.Err()
}

func formatValue(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(typed)
	case string:
		return typed
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	case time.Time:
		return typed.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
