// Package admin implements the destructive snippets as typed actions:
// killing sessions, dropping and recreating indexes, resetting sequences,
// and toggling triggers. Every action reports the statements it ran under a
// unique run ID so maintenance windows leave a traceable log line.
package admin

import (
	"database/sql"

	uuid "github.com/satori/go.uuid"

	"github.com/pgtoolbelt/pgtoolbelt/input/postgres"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

type Result struct {
	RunID      string   `json:"run_id"`
	Statements []string `json:"statements"`

	// Skipped is set when no matching catalog rows existed and the action
	// had nothing to execute
	Skipped bool `json:"skipped"`
}

func newResult() Result {
	return Result{RunID: uuid.NewV4().String()}
}

func (r *Result) execute(logger *util.Logger, db *sql.DB) error {
	for _, statement := range r.Statements {
		logger.PrintInfo("run %s: %s", r.RunID, statement)

		if _, err := db.Exec(postgres.QueryMarkerSQL + statement); err != nil {
			return err
		}
	}
	return nil
}
