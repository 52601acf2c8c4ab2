package admin

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/pgtoolbelt/pgtoolbelt/util"
)

// BuildGrantReadOnlyStatements grants connect, usage and select on a schema
// to the role, including tables created later.
func BuildGrantReadOnlyStatements(databaseName string, schemaName string, role string) []string {
	quotedRole := pq.QuoteIdentifier(role)
	quotedSchema := pq.QuoteIdentifier(schemaName)

	return []string{
		fmt.Sprintf("GRANT CONNECT ON DATABASE %s TO %s", pq.QuoteIdentifier(databaseName), quotedRole),
		fmt.Sprintf("GRANT USAGE ON SCHEMA %s TO %s", quotedSchema, quotedRole),
		fmt.Sprintf("GRANT SELECT ON ALL TABLES IN SCHEMA %s TO %s", quotedSchema, quotedRole),
		fmt.Sprintf("ALTER DEFAULT PRIVILEGES IN SCHEMA %s GRANT SELECT ON TABLES TO %s", quotedSchema, quotedRole),
	}
}

func GrantReadOnly(logger *util.Logger, db *sql.DB, databaseName string, schemaName string, role string) (Result, error) {
	result := newResult()
	result.Statements = BuildGrantReadOnlyStatements(databaseName, schemaName, role)
	return result, result.execute(logger, db)
}
