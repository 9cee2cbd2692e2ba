// cliparse/cliparse_test.go
package cliparse

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SOURCE_TYPE", "csv")
	t.Setenv("CSV_LOCATION", "nominations.csv")
	t.Setenv("CACHE_TTL", "5m")

	cfg, err := ParseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "csv", cfg.SourceType)
	assert.Equal(t, "nominations.csv", cfg.CSVLocation)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SHEET_ID", "from-env")

	cfg, err := ParseFlags([]string{"-p", "8080", "-sheet-id", "from-cli"})
	require.NoError(t, err)

	// CLI should override env
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "from-cli", cfg.SheetID)
}

func TestParseFlags_Defaults(t *testing.T) {
	cfg, err := ParseFlags([]string{"-sheet-id", "abc"})
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "sheets", cfg.SourceType)
	assert.Equal(t, "Respuestas", cfg.Worksheet)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, DefaultFormURL, cfg.FormURL)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestParseFlags_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matchboard.yaml")
	err := os.WriteFile(path, []byte(`
source_type: sql
database_url: "file:nominations.db"
cache_ttl: 10m
top_n: 25
log_level: debug
`), 0o600)
	require.NoError(t, err)

	t.Setenv("TOP_N", "5")

	cfg, err := ParseFlags([]string{"-config", path})
	require.NoError(t, err)

	assert.Equal(t, "sql", cfg.SourceType)
	assert.Equal(t, "file:nominations.db", cfg.DatabaseURL)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	// Env wins over the file
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestParseFlags_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SOURCE_TYPE=csv\nCSV_LOCATION=https://example.com/export.csv\n"), 0o600))

	// Register for cleanup; godotenv sets them with os.Setenv
	t.Setenv("SOURCE_TYPE", "")
	t.Setenv("CSV_LOCATION", "")
	os.Unsetenv("SOURCE_TYPE")
	os.Unsetenv("CSV_LOCATION")

	cfg, err := ParseFlags([]string{"-env-file", path})
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.SourceType)
	assert.Equal(t, "https://example.com/export.csv", cfg.CSVLocation)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"sheets without sheet id", []string{}, nil},
		{"csv without location", []string{"-source", "csv"}, nil},
		{"sql without database url", []string{"-source", "sql"}, nil},
		{"unknown source", []string{"-source", "excel"}, nil},
		{"unknown database type", []string{"-source", "sql", "-d", "x", "-t", "mysql"}, nil},
		{"bad form url", []string{"-sheet-id", "a", "-form-url", "not a url"}, nil},
		{"bad top", []string{"-sheet-id", "a", "-top", "5000"}, nil},
		{"bad port env", []string{"-sheet-id", "a"}, map[string]string{"PORT": "http"}},
		{"bad ttl env", []string{"-sheet-id", "a"}, map[string]string{"CACHE_TTL": "soon"}},
		{"missing explicit env file", []string{"-sheet-id", "a", "-env-file", "/nonexistent/.env"}, nil},
		{"missing config file", []string{"-config", "/nonexistent/config.yaml"}, nil},
		{"unknown flag", []string{"-nope"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := ParseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}
