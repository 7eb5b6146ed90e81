package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., DB_MAX_OPEN_CONNS).
type EnvConfig struct {
	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.vtasurvey
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/vtasurvey.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// Database configures the connection pool and SQL logging.
	Database DatabaseEnv `envconfig:"DB"`

	// TaxonomyFile is a YAML taxonomy document seeded on startup.
	// Env: TAXONOMY_FILE
	TaxonomyFile string `envconfig:"TAXONOMY_FILE"`
}

// DatabaseEnv holds environment configuration for the database connection.
type DatabaseEnv struct {
	// MaxOpenConns is the connection pool size. SQLite always uses one.
	// Env: DB_MAX_OPEN_CONNS (default: 10)
	MaxOpenConns int `envconfig:"MAX_OPEN_CONNS" default:"10"`

	// MaxIdleConns is the number of idle connections kept open.
	// Env: DB_MAX_IDLE_CONNS (default: 5)
	MaxIdleConns int `envconfig:"MAX_IDLE_CONNS" default:"5"`

	// ConnMaxLifetimeSeconds caps how long a connection is reused.
	// Env: DB_CONN_MAX_LIFETIME_SECONDS (default: 1800)
	ConnMaxLifetimeSeconds float64 `envconfig:"CONN_MAX_LIFETIME_SECONDS" default:"1800"`

	// LogSQL logs every statement at debug level.
	// Env: DB_LOG_SQL (default: false)
	LogSQL bool `envconfig:"LOG_SQL" default:"false"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	var opts []AppConfigOption

	if e.DataDir != "" {
		opts = append(opts, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		opts = append(opts, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		opts = append(opts, WithLogLevel(strings.ToUpper(e.LogLevel)))
	}
	if e.LogFormat != "" {
		opts = append(opts, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	opts = append(opts, WithPoolConfig(e.Database.ToPoolConfig()), WithLogSQL(e.Database.LogSQL))
	if e.TaxonomyFile != "" {
		opts = append(opts, WithTaxonomyFile(e.TaxonomyFile))
	}

	return NewAppConfigWithOptions(opts...)
}

// ToPoolConfig converts DatabaseEnv to PoolConfig.
func (d DatabaseEnv) ToPoolConfig() PoolConfig {
	return NewPoolConfig().
		WithMaxOpen(d.MaxOpenConns).
		WithMaxIdle(d.MaxIdleConns).
		WithMaxLifetime(time.Duration(d.ConnMaxLifetimeSeconds * float64(time.Second)))
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
