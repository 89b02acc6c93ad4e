// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/gnpin/pkg/config"
)

const (
	// TestDatabaseName is the PostgreSQL database used by integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gnpin_test"
)

// SQLiteConfig returns a configuration that keeps a fresh SQLite file
// in a temporary directory of the test.
func SQLiteConfig(t *testing.T, driver string) *config.Config {
	t.Helper()

	home := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptDatabaseDriver(driver),
		config.OptDatabaseEngine(config.EngineSQLite),
		config.OptDatabasePath(filepath.Join(home, "pins_test.db")),
	})
	return cfg
}

// PostgresConfig returns a configuration for the PostgreSQL test database.
// Connection settings come from GNPIN_TEST_PG_HOST and GNPIN_TEST_PG_PORT
// when they are set. The test is skipped when the server is unreachable.
func PostgresConfig(t *testing.T, driver string) *config.Config {
	t.Helper()

	cfg := config.New()
	opts := []config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptDatabaseDriver(driver),
		config.OptDatabaseEngine(config.EnginePostgres),
		config.OptDatabaseDatabase(TestDatabaseName),
	}
	if host := os.Getenv("GNPIN_TEST_PG_HOST"); host != "" {
		opts = append(opts, config.OptDatabaseHost(host))
	}
	cfg.Update(opts)

	port := cfg.Database.Port
	if p := os.Getenv("GNPIN_TEST_PG_PORT"); p != "" {
		fmt.Sscanf(p, "%d", &port)
		cfg.Update([]config.Option{config.OptDatabasePort(port)})
	}

	addr := net.JoinHostPort(cfg.Database.Host, fmt.Sprint(cfg.Database.Port))
	d := net.Dialer{Timeout: time.Second}
	cn, err := d.DialContext(context.Background(), "tcp", addr)
	if err != nil {
		t.Skipf("PostgreSQL is not reachable at %s", addr)
	}
	cn.Close()
	return cfg
}
