package config

import (
	"os"
	"strconv"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"

	"github.com/pgtoolbelt/pgtoolbelt/util"
)

const defaultConfigFile = "/etc/pgtoolbelt.conf"

const defaultStatementTimeoutMs = 60000

func getDefaultConfig() *ServerConfig {
	config := &ServerConfig{
		SectionName:        "default",
		StatementTimeoutMs: defaultStatementTimeoutMs,
	}

	// The environment variables are the default way to configure when running
	// inside a container
	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		config.DbURL = dbURL
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		config.DbName = dbName
	}
	if dbUsername := os.Getenv("DB_USERNAME"); dbUsername != "" {
		config.DbUsername = dbUsername
	}
	if dbPassword := os.Getenv("DB_PASSWORD"); dbPassword != "" {
		config.DbPassword = dbPassword
	}
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		config.DbHost = dbHost
	}
	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		config.DbPort, _ = strconv.Atoi(dbPort)
	}
	if dbSslMode := os.Getenv("DB_SSLMODE"); dbSslMode != "" {
		config.DbSslMode = dbSslMode
	}
	if dbSslRootCert := os.Getenv("DB_SSLROOTCERT"); dbSslRootCert != "" {
		config.DbSslRootCert = dbSslRootCert
	}
	if statementTimeout := os.Getenv("STATEMENT_TIMEOUT_MS"); statementTimeout != "" {
		config.StatementTimeoutMs, _ = strconv.Atoi(statementTimeout)
	}

	return config
}

// Read - Reads the ini config file, falling back to an environment-only
// default server when the file does not exist
func Read(logger *util.Logger, filename string) (Config, error) {
	var conf Config

	if filename == "" {
		filename = defaultConfigFile
	}

	if _, err := os.Stat(filename); err != nil {
		logger.PrintVerbose("No config file found at %s, using environment only", filename)
		conf.Servers = append(conf.Servers, *getDefaultConfig())
		return conf, nil
	}

	configFile, err := ini.Load(filename)
	if err != nil {
		return conf, errors.Wrap(err, "failed to load config file")
	}

	defaultConfig := getDefaultConfig()
	if err = configFile.Section("pgtoolbelt").MapTo(defaultConfig); err != nil {
		logger.PrintVerbose("Failed to map pgtoolbelt section: %s", err)
	}

	for _, section := range configFile.Sections() {
		if section.Name() == ini.DefaultSection || section.Name() == "pgtoolbelt" {
			continue
		}

		config := &ServerConfig{}
		*config = *defaultConfig

		if err = section.MapTo(config); err != nil {
			return conf, errors.Wrapf(err, "failed to map section %s", section.Name())
		}

		config.SectionName = section.Name()
		conf.Servers = append(conf.Servers, *config)
	}

	if len(conf.Servers) == 0 {
		conf.Servers = append(conf.Servers, *defaultConfig)
	}

	return conf, nil
}

// ServerBySection returns the named section, or the first server when no name
// is given.
func (conf Config) ServerBySection(name string) (ServerConfig, error) {
	if name == "" {
		if len(conf.Servers) == 0 {
			return ServerConfig{}, errors.New("no servers configured")
		}
		return conf.Servers[0], nil
	}

	for _, server := range conf.Servers {
		if server.SectionName == name {
			return server, nil
		}
	}

	return ServerConfig{}, errors.Errorf("no config section named %s", name)
}
