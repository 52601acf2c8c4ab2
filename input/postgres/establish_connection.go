package postgres

import (
	"database/sql"
	"fmt"

	"github.com/pgtoolbelt/pgtoolbelt/config"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

func EstablishConnection(server *config.ServerConfig, logger *util.Logger, databaseName string) (connection *sql.DB, err error) {
	connection, err = connectToDb(*server, logger, databaseName)
	if err != nil {
		if err.Error() == "pq: SSL is not enabled on the server" && (server.DbSslMode == "prefer" || server.DbSslMode == "") {
			server.DbSslModePreferFailed = true
			connection, err = connectToDb(*server, logger, databaseName)
		}
	}

	if err != nil {
		return
	}

	timeoutMs := server.StatementTimeoutMs
	if timeoutMs == 0 {
		timeoutMs = 60000
	}
	err = SetStatementTimeout(connection, timeoutMs)
	if err != nil {
		connection.Close()
		connection = nil
		return
	}

	return
}

func connectToDb(config config.ServerConfig, logger *util.Logger, databaseName string) (*sql.DB, error) {
	connectString := config.GetPqOpenString(databaseName)

	logger.PrintVerbose("sql.Open(\"postgres\", \"%s\")", config.GetDbHost())

	db, err := sql.Open("postgres", connectString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// CurrentDatabaseName returns the name of the database the connection is
// attached to.
func CurrentDatabaseName(db *sql.DB) (string, error) {
	var name string
	err := db.QueryRow(QueryMarkerSQL + "SELECT current_database()").Scan(&name)
	if err != nil {
		return "", fmt.Errorf("CurrentDatabaseName/Query: %s", err)
	}
	return name, nil
}
