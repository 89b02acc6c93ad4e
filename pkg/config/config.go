// Package config provides configuration management for GNpin.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, engine, path, host, port, user, password, database,
//     ssl_mode, batch_size
//   - EBird: api_key, url, locale, timeout
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Import.Progress
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNPIN_ prefix with underscores for nesting:
//
//	GNPIN_DATABASE_DRIVER=gorm
//	GNPIN_DATABASE_ENGINE=sqlite
//	GNPIN_EBIRD_API_KEY=secret
//	GNPIN_LOG_LEVEL=info
package config

// Storage drivers. Exactly one is active per process.
const (
	// DriverSQL issues hand-written parameterized statements.
	DriverSQL = "sql"
	// DriverGORM delegates to the GORM object-relational mapper.
	DriverGORM = "gorm"
)

// Backing engines.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

// Config represents the complete GNpin configuration.
type Config struct {
	// Database contains settings of the local pin database.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// EBird contains settings of the eBird reference API.
	EBird EBirdConfig `mapstructure:"ebird" yaml:"ebird"`

	// Import contains settings for the taxonomy refresh.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// DatabaseConfig selects the storage driver and its backing engine.
type DatabaseConfig struct {
	// Driver is the storage driver: "sql" or "gorm".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Engine is the relational engine: "sqlite" or "postgres".
	Engine string `mapstructure:"engine" yaml:"engine"`

	// Path is the SQLite database file. If empty, the file
	// is kept in DataDir.
	Path string `mapstructure:"path" yaml:"path"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the maximum number of rows sent in one INSERT
	// statement. It keeps bulk imports under per-statement
	// parameter limits of the engine.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// EBirdConfig contains eBird API settings.
type EBirdConfig struct {
	// APIKey is the eBird API token sent as X-eBirdApiToken.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// URL is the base URL of the eBird API v2.
	URL string `mapstructure:"url" yaml:"url"`

	// Locale determines the language of common names.
	Locale string `mapstructure:"locale" yaml:"locale"`

	// Timeout of one HTTP request in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`
}

// ImportConfig contains settings of taxonomy import.
type ImportConfig struct {
	// Progress enables a terminal progress bar during bird inserts.
	Progress bool `mapstructure:"progress" yaml:"progress"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    DriverSQL,
			Engine:    EngineSQLite,
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "gnpin",
			SSLMode:   "disable",
			BatchSize: 100,
		},
		EBird: EBirdConfig{
			URL:     "https://api.ebird.org/v2",
			Locale:  "en_UK",
			Timeout: 60,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
