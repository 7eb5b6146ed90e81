// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultLogLevel        = "INFO"
	DefaultDBFile          = "vtasurvey.db"
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 30 * time.Minute
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// PoolConfig sizes the database connection pool. SQLite ignores it and
// always runs on a single connection.
type PoolConfig struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

// NewPoolConfig creates a PoolConfig with defaults.
func NewPoolConfig() PoolConfig {
	return PoolConfig{
		maxOpen:     DefaultMaxOpenConns,
		maxIdle:     DefaultMaxIdleConns,
		maxLifetime: DefaultConnMaxLifetime,
	}
}

// MaxOpen returns the maximum number of open connections.
func (p PoolConfig) MaxOpen() int { return p.maxOpen }

// MaxIdle returns the maximum number of idle connections.
func (p PoolConfig) MaxIdle() int { return p.maxIdle }

// MaxLifetime returns the maximum connection lifetime.
func (p PoolConfig) MaxLifetime() time.Duration { return p.maxLifetime }

// WithMaxOpen returns a new config with the open connection limit set.
// Non-positive values are ignored.
func (p PoolConfig) WithMaxOpen(n int) PoolConfig {
	if n > 0 {
		p.maxOpen = n
	}
	return p
}

// WithMaxIdle returns a new config with the idle connection limit set.
func (p PoolConfig) WithMaxIdle(n int) PoolConfig {
	if n >= 0 {
		p.maxIdle = n
	}
	return p
}

// WithMaxLifetime returns a new config with the connection lifetime set.
func (p PoolConfig) WithMaxLifetime(d time.Duration) PoolConfig {
	if d > 0 {
		p.maxLifetime = d
	}
	return p
}

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	dataDir      string
	dbURL        string
	logLevel     string
	logFormat    LogFormat
	pool         PoolConfig
	logSQL       bool
	taxonomyFile string
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vtasurvey"
	}
	return filepath.Join(home, ".vtasurvey")
}

// DefaultDBURL returns the SQLite URL inside dataDir.
func DefaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, DefaultDBFile)
}

// DefaultLogger returns the default slog logger for library consumers.
func DefaultLogger() *slog.Logger {
	return slog.Default()
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		dataDir:   dataDir,
		dbURL:     DefaultDBURL(dataDir),
		logLevel:  DefaultLogLevel,
		logFormat: LogFormatPretty,
		pool:      NewPoolConfig(),
	}
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// IsSQLite reports whether the database URL points at SQLite.
func (c AppConfig) IsSQLite() bool { return strings.HasPrefix(c.dbURL, "sqlite:") }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// Pool returns the connection pool settings.
func (c AppConfig) Pool() PoolConfig { return c.pool }

// LogSQL reports whether every SQL statement is logged at debug level.
func (c AppConfig) LogSQL() bool { return c.logSQL }

// TaxonomyFile returns the taxonomy seed document path, or "" when unset.
func (c AppConfig) TaxonomyFile() string { return c.taxonomyFile }

// SQLitePath returns the file behind a sqlite:/// URL. It returns "" for
// PostgreSQL and for in-memory SQLite.
func (c AppConfig) SQLitePath() string {
	path, ok := strings.CutPrefix(c.dbURL, "sqlite:///")
	if !ok {
		return ""
	}
	path, _, _ = strings.Cut(path, "?")
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file::memory:") {
		return ""
	}
	return path
}

// EnsureDatabaseDir creates the directory that holds the SQLite file. The
// file may live outside the data directory when DB_URL names one.
func (c AppConfig) EnsureDatabaseDir() error {
	path := c.SQLitePath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	return nil
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		// The default database follows the data directory.
		if c.dbURL == "" || c.dbURL == DefaultDBURL(c.dataDir) {
			c.dbURL = DefaultDBURL(dir)
		}
		c.dataDir = dir
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithPoolConfig sets the connection pool settings.
func WithPoolConfig(p PoolConfig) AppConfigOption {
	return func(c *AppConfig) { c.pool = p }
}

// WithLogSQL enables or disables SQL statement logging.
func WithLogSQL(enabled bool) AppConfigOption {
	return func(c *AppConfig) { c.logSQL = enabled }
}

// WithTaxonomyFile sets the taxonomy seed document path.
func WithTaxonomyFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.taxonomyFile = path }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Credentials in server database URLs are masked.
func (c AppConfig) LogAttrs() []slog.Attr {
	taxonomyFile := c.taxonomyFile
	if taxonomyFile == "" {
		taxonomyFile = "(none)"
	}
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("log_level", c.logLevel),
		slog.String("log_format", string(c.logFormat)),
		slog.Int("db_max_open_conns", c.pool.MaxOpen()),
		slog.Int("db_max_idle_conns", c.pool.MaxIdle()),
		slog.Duration("db_conn_max_lifetime", c.pool.MaxLifetime()),
		slog.Bool("db_log_sql", c.logSQL),
		slog.String("taxonomy_file", taxonomyFile),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if c.IsSQLite() {
		return c.dbURL
	}
	return "postgres://***@***"
}
