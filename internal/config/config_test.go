package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warta", cfg.App.Name)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5, cfg.Crawler.WindowDays)
	assert.Equal(t, "sources.yml", cfg.Crawler.SourcesFile)
	assert.Equal(t, []string{"0 6 * * *"}, cfg.Scheduler.Specs)
	assert.Equal(t, 5*time.Minute, cfg.Extractor.Timeout)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
app:
  name: warta-staging
logger:
  level: debug
database:
  host: db.internal
  port: 5433
  dbname: berita
crawler:
  window_days: 10
  sources_file: /etc/warta/sources.yml
scheduler:
  specs:
    - "0 6 * * *"
    - "0 18 * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warta-staging", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "berita", cfg.Database.DBName)
	assert.Equal(t, 10, cfg.Crawler.WindowDays)
	assert.Len(t, cfg.Scheduler.Specs, 2)

	// Unset sections keep their defaults.
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("WARTA_DATABASE_PASSWORD", "sangat-rahasia")
	t.Setenv("WARTA_LOGGER_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sangat-rahasia", cfg.Database.Password)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("crawler:\n  window_days: 0\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	assert.Error(t, err)
}

func TestDatabaseOptions(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	opts := cfg.DatabaseOptions()
	assert.Equal(t, cfg.Database.Host, opts.Host)
	assert.Equal(t, cfg.Database.DBName, opts.DBName)
	assert.Equal(t, cfg.Database.MaxOpenConns, opts.MaxOpenConns)
}
