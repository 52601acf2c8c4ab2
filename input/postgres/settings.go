package postgres

import (
	"database/sql"
	"fmt"

	"github.com/pgtoolbelt/pgtoolbelt/state"
)

const settingsSQL string = `
SELECT name,
       setting AS current_value,
       unit,
       boot_val AS boot_value,
       reset_val AS reset_value,
       source,
       sourcefile,
       sourceline
  FROM pg_catalog.pg_settings
 WHERE source NOT IN ('default', 'override')
 ORDER BY name`

// GetSettings - Reads every pg_settings entry that differs from its default
func GetSettings(db *sql.DB) ([]state.Setting, error) {
	stmt, err := db.Prepare(QueryMarkerSQL + settingsSQL)
	if err != nil {
		return nil, fmt.Errorf("Settings/Prepare: %s", err)
	}

	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("Settings/Query: %s", err)
	}

	defer rows.Close()

	var settings []state.Setting

	for rows.Next() {
		var row state.Setting

		err := rows.Scan(&row.Name, &row.CurrentValue, &row.Unit, &row.BootValue,
			&row.ResetValue, &row.Source, &row.SourceFile, &row.SourceLine)
		if err != nil {
			return nil, fmt.Errorf("Settings/Scan: %s", err)
		}

		settings = append(settings, row)
	}

	return settings, nil
}
