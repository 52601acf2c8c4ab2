package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type Config struct {
	Servers []ServerConfig
}

// ServerConfig -
//
//	Contains the information how to connect to a Postgres instance
type ServerConfig struct {
	SectionName string

	DbURL         string `ini:"db_url"`
	DbName        string `ini:"db_name"`
	DbUsername    string `ini:"db_username"`
	DbPassword    string `ini:"db_password"`
	DbHost        string `ini:"db_host"`
	DbPort        int    `ini:"db_port"`
	DbSslMode     string `ini:"db_sslmode"`
	DbSslRootCert string `ini:"db_sslrootcert"`

	// We have to do some tricks to support sslmode=prefer, namely we have to
	// first try an SSL connection (= require), and if that fails change the
	// sslmode to disable
	DbSslModePreferFailed bool

	// Applied after connecting, so a forgotten snippet can't hold locks forever
	StatementTimeoutMs int `ini:"statement_timeout_ms"`
}

// GetPqOpenString - Gets the database configuration as a string that can be
// passed to lib/pq for connecting
func (config ServerConfig) GetPqOpenString(dbNameOverride string) string {
	var dbUsername, dbPassword, dbName, dbHost, dbSslMode, dbSslRootCert string
	var dbPort int

	if config.DbURL != "" {
		u, _ := url.Parse(config.DbURL)

		if u.User != nil {
			dbUsername = u.User.Username()
			dbPassword, _ = u.User.Password()
		}

		if u.Path != "" {
			dbName = u.Path[1:]
		}

		hostSplits := strings.SplitN(u.Host, ":", 2)
		dbHost = hostSplits[0]
		if len(hostSplits) > 1 {
			dbPort, _ = strconv.Atoi(hostSplits[1])
		}

		for _, querySplit := range strings.Split(u.RawQuery, "&") {
			keyValue := strings.SplitN(querySplit, "=", 2)
			switch keyValue[0] {
			case "sslmode":
				dbSslMode = keyValue[1]
			case "sslrootcert":
				dbSslRootCert = keyValue[1]
			}
		}
	}

	if config.DbUsername != "" {
		dbUsername = config.DbUsername
	}
	if config.DbPassword != "" {
		dbPassword = config.DbPassword
	}
	if dbNameOverride != "" {
		dbName = dbNameOverride
	} else if config.DbName != "" {
		dbName = config.DbName
	}
	if config.DbHost != "" {
		dbHost = config.DbHost
	}
	if config.DbPort != 0 {
		dbPort = config.DbPort
	}
	if config.DbSslMode != "" {
		dbSslMode = config.DbSslMode
	}
	if config.DbSslRootCert != "" {
		dbSslRootCert = config.DbSslRootCert
	}

	// Defaults if nothing is set
	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == 0 {
		dbPort = 5432
	}
	if dbSslMode == "" {
		dbSslMode = "prefer"
	}

	// Handle SSL mode prefer
	if dbSslMode == "prefer" {
		if config.DbSslModePreferFailed {
			dbSslMode = "disable"
		} else {
			dbSslMode = "require"
		}
	}

	dbinfo := []string{}
	if dbUsername != "" {
		dbinfo = append(dbinfo, fmt.Sprintf("user='%s'", strings.Replace(dbUsername, "'", "\\'", -1)))
	}
	if dbPassword != "" {
		dbinfo = append(dbinfo, fmt.Sprintf("password='%s'", strings.Replace(dbPassword, "'", "\\'", -1)))
	}
	if dbName != "" {
		dbinfo = append(dbinfo, fmt.Sprintf("dbname='%s'", strings.Replace(dbName, "'", "\\'", -1)))
	}
	if dbHost != "" {
		dbinfo = append(dbinfo, fmt.Sprintf("host='%s'", strings.Replace(dbHost, "'", "\\'", -1)))
	}
	if dbPort != 0 {
		dbinfo = append(dbinfo, fmt.Sprintf("port=%d", dbPort))
	}
	if dbSslMode != "" {
		dbinfo = append(dbinfo, fmt.Sprintf("sslmode=%s", dbSslMode))
	}
	if dbSslRootCert != "" {
		dbinfo = append(dbinfo, fmt.Sprintf("sslrootcert='%s'", strings.Replace(dbSslRootCert, "'", "\\'", -1)))
	}
	dbinfo = append(dbinfo, "application_name=pgtoolbelt")
	dbinfo = append(dbinfo, "connect_timeout=10")

	return strings.Join(dbinfo, " ")
}

func (config ServerConfig) GetDbHost() string {
	if config.DbHost != "" {
		return config.DbHost
	}
	if config.DbURL != "" {
		u, _ := url.Parse(config.DbURL)
		parts := strings.SplitN(u.Host, ":", 2)
		if parts[0] != "" {
			return parts[0]
		}
	}
	return "localhost"
}

func (config ServerConfig) GetDbPort() int {
	if config.DbPort != 0 {
		return config.DbPort
	}
	if config.DbURL != "" {
		u, _ := url.Parse(config.DbURL)
		parts := strings.SplitN(u.Host, ":", 2)
		if len(parts) > 1 {
			if port, err := strconv.Atoi(parts[1]); err == nil {
				return port
			}
		}
	}
	return 5432
}

func (config ServerConfig) GetDbUsername() string {
	if config.DbUsername != "" {
		return config.DbUsername
	}
	if config.DbURL != "" {
		u, _ := url.Parse(config.DbURL)
		if u.User != nil {
			return u.User.Username()
		}
	}
	return ""
}

func (config ServerConfig) GetDbPassword() string {
	if config.DbPassword != "" {
		return config.DbPassword
	}
	if config.DbURL != "" {
		u, _ := url.Parse(config.DbURL)
		if u.User != nil {
			password, _ := u.User.Password()
			return password
		}
	}
	return ""
}

func (config ServerConfig) GetDbName() string {
	if config.DbName != "" {
		return config.DbName
	}
	if config.DbURL != "" {
		u, _ := url.Parse(config.DbURL)
		if u.Path != "" {
			return u.Path[1:]
		}
	}
	return ""
}
