package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/gnpin/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gnpin"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "gnpin"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gnpin", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gnpin", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/birder")})
	assert.Equal(t,
		filepath.Join("/home/birder", ".local", "share", "gnpin", "pin_database.db"),
		cfg.DatabasePath(),
	)

	cfg.Update([]config.Option{config.OptDatabasePath("/tmp/pins.db")})
	assert.Equal(t, "/tmp/pins.db", cfg.DatabasePath())
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, config.DriverSQL, cfg.Database.Driver)
		assert.Equal(t, config.EngineSQLite, cfg.Database.Engine)
		assert.Equal(t, "", cfg.Database.Path)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "gnpin", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 100, cfg.Database.BatchSize)

		// eBird defaults
		assert.Equal(t, "", cfg.EBird.APIKey)
		assert.Equal(t, "https://api.ebird.org/v2", cfg.EBird.URL)
		assert.Equal(t, "en_UK", cfg.EBird.Locale)
		assert.Equal(t, 60, cfg.EBird.Timeout)

		assert.False(t, cfg.Import.Progress)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})
}

func TestOptionDatabaseDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets gorm", "gorm", config.DriverGORM},
		{"normalizes case", " GORM ", config.DriverGORM},
		{"sets sql", "sql", config.DriverSQL},
		{"ignores unknown driver", "peewee", config.DriverSQL},
		{"ignores empty", "", config.DriverSQL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseDriver(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Driver)
		})
	}
}

func TestOptionDatabaseEngine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets postgres", "postgres", config.EnginePostgres},
		{"sets sqlite", "SQLite", config.EngineSQLite},
		{"ignores unknown engine", "mysql", config.EngineSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseEngine(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Engine)
		})
	}
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost", // Should keep default
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabasePort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid port",
			input:    5433,
			expected: 5433,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 5432, // Should keep default
		},
		{
			name:     "ignores negative",
			input:    -100,
			expected: 5432, // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabasePort(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Port)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets require", "require", "require"},
		{"sets verify-full", "VERIFY-FULL", "verify-full"},
		{"ignores invalid", "sometimes", "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseSSLMode(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionBatchSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets valid batch size", 500, 500},
		{"ignores zero", 0, 100},
		{"ignores negative", -1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseBatchSize(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.BatchSize)
		})
	}
}

func TestOptionEBird(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptEBirdAPIKey("  token  "),
		config.OptEBirdURL("http://localhost:8080/v2/"),
		config.OptEBirdLocale("en_US"),
		config.OptEBirdTimeout(5),
	})
	assert.Equal(t, "token", cfg.EBird.APIKey)
	assert.Equal(t, "http://localhost:8080/v2", cfg.EBird.URL)
	assert.Equal(t, "en_US", cfg.EBird.Locale)
	assert.Equal(t, 5, cfg.EBird.Timeout)

	cfg.Update([]config.Option{
		config.OptEBirdAPIKey(""),
		config.OptEBirdTimeout(0),
	})
	assert.Equal(t, "token", cfg.EBird.APIKey)
	assert.Equal(t, 5, cfg.EBird.Timeout)
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets debug", "debug", "debug"},
		{"sets error with case", "ERROR", "error"},
		{"ignores invalid", "verbose", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets text", "text", "text"},
		{"sets tint", "tint", "tint"},
		{"ignores invalid", "xml", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogFormat(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Format)
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	cfg := config.New()
	opts := []config.Option{
		config.OptDatabaseDriver("gorm"),
		config.OptDatabaseEngine("postgres"),
		config.OptDatabaseHost("pg.local"),
		config.OptDatabaseBatchSize(42),
		config.OptImportProgress(true),
		config.OptLogDestination("stderr"),
	}
	cfg.Update(opts)

	assert.Equal(t, config.DriverGORM, cfg.Database.Driver)
	assert.Equal(t, config.EnginePostgres, cfg.Database.Engine)
	assert.Equal(t, "pg.local", cfg.Database.Host)
	assert.Equal(t, 42, cfg.Database.BatchSize)
	assert.True(t, cfg.Import.Progress)
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestToOptions(t *testing.T) {
	t.Run("round trips persistent fields", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptDatabaseDriver("gorm"),
			config.OptDatabasePath("/data/pins.db"),
			config.OptDatabaseBatchSize(7),
			config.OptEBirdAPIKey("secret"),
			config.OptEBirdLocale("de"),
			config.OptLogLevel("debug"),
		})

		convertedOpts := original.ToOptions()
		restored := config.New()
		restored.Update(convertedOpts)

		assert.Equal(t, original.Database, restored.Database)
		assert.Equal(t, original.EBird, restored.EBird)
		assert.Equal(t, original.Log, restored.Log)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/home/birder"),
			config.OptImportProgress(true),
		})

		// These fields should not be in ToOptions() output
		opts := cfg.ToOptions()
		restored := config.New()
		restored.Update(opts)
		assert.Equal(t, "", restored.HomeDir)
		assert.False(t, restored.Import.Progress)
	})
}
