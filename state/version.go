package state

// PostgresVersion - Details about the version of the connected server
type PostgresVersion struct {
	Full    string `json:"full"`
	Short   string `json:"short"`
	Numeric int64  `json:"numeric"`
}

const (
	PostgresVersion96 = 90600
	PostgresVersion10 = 100000
	PostgresVersion11 = 110000
	PostgresVersion12 = 120000

	// MinRequiredPostgresVersion - The oldest server version the toolbelt
	// issues catalog queries against (pg_blocking_pids requires 9.6)
	MinRequiredPostgresVersion = PostgresVersion96
)
