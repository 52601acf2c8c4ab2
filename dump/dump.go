// Package dump wraps the pg_dump and psql invocations from the snippet
// collection: full database dumps, single-table dumps, plain-format
// restores and CSV exports.
package dump

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"

	"github.com/pgtoolbelt/pgtoolbelt/config"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

func connectionArgs(server config.ServerConfig) []string {
	args := []string{
		"-h", server.GetDbHost(),
		"-p", strconv.Itoa(server.GetDbPort()),
	}
	if username := server.GetDbUsername(); username != "" {
		args = append(args, "-U", username)
	}
	return args
}

// DumpDatabaseArgs - Custom-format pg_dump without ACLs or ownership,
// restorable with pg_restore
func DumpDatabaseArgs(server config.ServerConfig, outputFile string) []string {
	args := append(connectionArgs(server), "-Fc", "--no-acl", "--no-owner")
	args = append(args, "-f", outputFile, server.GetDbName())
	return args
}

// DumpTableArgs - Plain-format dump of a single table, restorable with psql
func DumpTableArgs(server config.ServerConfig, schemaName string, tableName string, outputFile string) []string {
	args := append(connectionArgs(server), "-t", fmt.Sprintf("%s.%s", schemaName, tableName))
	args = append(args, "-f", outputFile, server.GetDbName())
	return args
}

// RestoreArgs - Feeds a plain SQL dump back through psql
func RestoreArgs(server config.ServerConfig, inputFile string) []string {
	args := append(connectionArgs(server), "-d", server.GetDbName())
	args = append(args, "-f", inputFile)
	return args
}

// ExportCSVArgs - Client-side \copy of the table contents into a headered
// CSV file
func ExportCSVArgs(server config.ServerConfig, schemaName string, tableName string, outputFile string) []string {
	copyCmd := fmt.Sprintf(`\copy (SELECT * FROM %s.%s) TO '%s' WITH (FORMAT csv, HEADER)`,
		schemaName, tableName, outputFile)
	args := append(connectionArgs(server), "-d", server.GetDbName())
	args = append(args, "-c", copyCmd)
	return args
}

func DumpDatabase(logger *util.Logger, server config.ServerConfig, outputFile string) error {
	return runTool(logger, server, "pg_dump", DumpDatabaseArgs(server, outputFile))
}

func DumpTable(logger *util.Logger, server config.ServerConfig, schemaName string, tableName string, outputFile string) error {
	return runTool(logger, server, "pg_dump", DumpTableArgs(server, schemaName, tableName, outputFile))
}

func RestoreDatabase(logger *util.Logger, server config.ServerConfig, inputFile string) error {
	return runTool(logger, server, "psql", RestoreArgs(server, inputFile))
}

func ExportTableCSV(logger *util.Logger, server config.ServerConfig, schemaName string, tableName string, outputFile string) error {
	return runTool(logger, server, "psql", ExportCSVArgs(server, schemaName, tableName, outputFile))
}

func runTool(logger *util.Logger, server config.ServerConfig, name string, args []string) error {
	logger.PrintInfo("Running %s %v", name, args)

	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// The password never goes on the command line
	cmd.Env = os.Environ()
	if password := server.GetDbPassword(); password != "" {
		cmd.Env = append(cmd.Env, "PGPASSWORD="+password)
	}

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s failed", name)
	}
	return nil
}
