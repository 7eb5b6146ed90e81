package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.DataDir)
	assert.Equal(t, "", cfg.DBURL)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, "", cfg.TaxonomyFile)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 1800.0, cfg.Database.ConnMaxLifetimeSeconds)
	assert.False(t, cfg.Database.LogSQL)
}

func TestEnvDefaults_MatchConfigDefaults(t *testing.T) {
	// Struct tag defaults must be literals; keep them in step with the constants.
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultMaxOpenConns, cfg.Database.MaxOpenConns)
	assert.Equal(t, DefaultMaxIdleConns, cfg.Database.MaxIdleConns)
	assert.Equal(t, DefaultConnMaxLifetime.Seconds(), cfg.Database.ConnMaxLifetimeSeconds)
}

func TestLoadFromEnv_OverrideValues(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("DATA_DIR", "/custom/data")
	t.Setenv("DB_URL", "postgres://localhost/vta")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_MAX_IDLE_CONNS", "2")
	t.Setenv("DB_CONN_MAX_LIFETIME_SECONDS", "60")
	t.Setenv("DB_LOG_SQL", "true")
	t.Setenv("TAXONOMY_FILE", "/seed/taxonomy.yaml")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/custom/data", cfg.DataDir)
	assert.Equal(t, "postgres://localhost/vta", cfg.DBURL)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2, cfg.Database.MaxIdleConns)
	assert.Equal(t, 60.0, cfg.Database.ConnMaxLifetimeSeconds)
	assert.True(t, cfg.Database.LogSQL)
	assert.Equal(t, "/seed/taxonomy.yaml", cfg.TaxonomyFile)
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestEnvConfig_ToAppConfig(t *testing.T) {
	env := EnvConfig{
		DataDir:   "/data",
		LogLevel:  "warn",
		LogFormat: "JSON",
		Database: DatabaseEnv{
			MaxOpenConns:           4,
			MaxIdleConns:           1,
			ConnMaxLifetimeSeconds: 90,
			LogSQL:                 true,
		},
		TaxonomyFile: "taxonomy.yaml",
	}

	cfg := env.ToAppConfig()

	assert.Equal(t, "/data", cfg.DataDir())
	assert.Equal(t, "sqlite:////data/vtasurvey.db", cfg.DBURL())
	assert.Equal(t, "WARN", cfg.LogLevel())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, 4, cfg.Pool().MaxOpen())
	assert.Equal(t, 1, cfg.Pool().MaxIdle())
	assert.Equal(t, 90*time.Second, cfg.Pool().MaxLifetime())
	assert.True(t, cfg.LogSQL())
	assert.Equal(t, "taxonomy.yaml", cfg.TaxonomyFile())
}

func TestParseLogFormat(t *testing.T) {
	tests := []struct {
		input string
		want  LogFormat
	}{
		{"json", LogFormatJSON},
		{"JSON", LogFormatJSON},
		{"pretty", LogFormatPretty},
		{"", LogFormatPretty},
		{"xml", LogFormatPretty},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogFormat(tt.input))
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	content := `DATA_DIR=/from/dotenv
LOG_LEVEL=DEBUG
DB_LOG_SQL=true
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	clearEnvVars(t)

	require.NoError(t, LoadDotEnv(envFile))

	assert.Equal(t, "/from/dotenv", os.Getenv("DATA_DIR"))
	assert.Equal(t, "DEBUG", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "true", os.Getenv("DB_LOG_SQL"))
}

func TestLoadDotEnv_NamedFileMustExist(t *testing.T) {
	clearEnvVars(t)
	assert.Error(t, LoadDotEnv("/nonexistent/.env"))
}

func TestLoadDotEnv_DefaultFileIsOptional(t *testing.T) {
	clearEnvVars(t)
	t.Chdir(t.TempDir())
	assert.NoError(t, LoadDotEnv())
}

func TestLoadDotEnv_DefaultFile(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultEnvFile), []byte("TAXONOMY_FILE=seed.yaml\n"), 0o644))
	t.Chdir(dir)

	require.NoError(t, LoadDotEnv())
	assert.Equal(t, "seed.yaml", os.Getenv("TAXONOMY_FILE"))
}

func TestLoadDotEnv_Layered(t *testing.T) {
	tmpDir := t.TempDir()

	base := filepath.Join(tmpDir, ".env.local")
	require.NoError(t, os.WriteFile(base, []byte("LOG_LEVEL=DEBUG\nDB_URL=sqlite:///local.db\n"), 0o644))
	shared := filepath.Join(tmpDir, ".env")
	require.NoError(t, os.WriteFile(shared, []byte("DB_URL=postgres://shared/vta\nLOG_FORMAT=json\n"), 0o644))

	clearEnvVars(t)

	require.NoError(t, LoadDotEnv(base, shared))

	assert.Equal(t, "DEBUG", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "sqlite:///local.db", os.Getenv("DB_URL"), "first file wins")
	assert.Equal(t, "json", os.Getenv("LOG_FORMAT"))
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	content := `DATA_DIR=/config/data
LOG_LEVEL=WARN
DB_MAX_OPEN_CONNS=7
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	clearEnvVars(t)
	t.Setenv("LOG_LEVEL", "ERROR")

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "/config/data", cfg.DataDir())
	assert.Equal(t, "ERROR", cfg.LogLevel(), "process environment wins over .env")
	assert.Equal(t, 7, cfg.Pool().MaxOpen())
}

func TestLoadConfig_MissingEnvFile(t *testing.T) {
	clearEnvVars(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

// clearEnvVars unsets all config-related environment variables and restores
// them when the test ends.
func clearEnvVars(t *testing.T) {
	t.Helper()

	vars := []string{
		"DATA_DIR",
		"DB_URL",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"DB_MAX_OPEN_CONNS",
		"DB_MAX_IDLE_CONNS",
		"DB_CONN_MAX_LIFETIME_SECONDS",
		"DB_LOG_SQL",
		"TAXONOMY_FILE",
	}

	for _, v := range vars {
		// Setenv registers the restore; Unsetenv then clears it for the test.
		t.Setenv(v, "")
		_ = os.Unsetenv(v)
	}
}
