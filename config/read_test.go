package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pgtoolbelt/pgtoolbelt/config"
	"github.com/pgtoolbelt/pgtoolbelt/util"
)

const testConfig = `
[pgtoolbelt]
db_host = db.internal
statement_timeout_ms = 15000

[primary]
db_name = app_production
db_username = admin

[replica]
db_host = replica.internal
db_name = app_production
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "pgtoolbelt.conf")
	if err := os.WriteFile(filename, []byte(testConfig), 0600); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestRead(t *testing.T) {
	logger := util.NewLogger(false, true)

	conf, err := config.Read(logger, writeTestConfig(t))
	if err != nil {
		t.Fatalf("want nil; got %v", err)
	}

	if len(conf.Servers) != 2 {
		t.Fatalf("want 2 servers; got %d", len(conf.Servers))
	}

	primary := conf.Servers[0]
	if primary.SectionName != "primary" {
		t.Errorf("want primary; got %s", primary.SectionName)
	}
	if primary.DbName != "app_production" {
		t.Errorf("want app_production; got %s", primary.DbName)
	}
	// inherited from the [pgtoolbelt] section
	if primary.DbHost != "db.internal" {
		t.Errorf("want db.internal; got %s", primary.DbHost)
	}
	if primary.StatementTimeoutMs != 15000 {
		t.Errorf("want 15000; got %d", primary.StatementTimeoutMs)
	}

	replica := conf.Servers[1]
	if replica.DbHost != "replica.internal" {
		t.Errorf("want replica.internal; got %s", replica.DbHost)
	}
}

func TestReadMissingFile(t *testing.T) {
	logger := util.NewLogger(false, true)

	conf, err := config.Read(logger, filepath.Join(t.TempDir(), "does-not-exist.conf"))
	if err != nil {
		t.Fatalf("want nil; got %v", err)
	}
	if len(conf.Servers) != 1 {
		t.Fatalf("want 1 fallback server; got %d", len(conf.Servers))
	}
}

func TestServerBySection(t *testing.T) {
	logger := util.NewLogger(false, true)

	conf, err := config.Read(logger, writeTestConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	server, err := conf.ServerBySection("replica")
	if err != nil {
		t.Fatalf("want nil; got %v", err)
	}
	if server.SectionName != "replica" {
		t.Errorf("want replica; got %s", server.SectionName)
	}

	if _, err = conf.ServerBySection("missing"); err == nil {
		t.Error("want error for unknown section; got nil")
	}

	first, err := conf.ServerBySection("")
	if err != nil {
		t.Fatalf("want nil; got %v", err)
	}
	if first.SectionName != "primary" {
		t.Errorf("want primary; got %s", first.SectionName)
	}
}
