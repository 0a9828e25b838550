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
	// Arrange
	t.Chdir(t.TempDir())

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 0, cfg.Search.NodeBudget)
	assert.Equal(t, "weighted", cfg.Search.DefaultStrategy)
	assert.Equal(t, "maxcoverage", cfg.Search.DefaultAlgorithm)
}

func TestLoadFromEnvironment(t *testing.T) {
	// Arrange
	t.Chdir(t.TempDir())
	t.Setenv("ENV", EnvProduction)
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("SEARCH_NODE_BUDGET", "5000")
	t.Setenv("DEFAULT_ALGORITHM", "AStar")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 5000, cfg.Search.NodeBudget)
	assert.Equal(t, "astar", cfg.Search.DefaultAlgorithm)
}

func TestLoadFromEnvFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	t.Chdir(dir)
	content := "LOG_LEVEL=debug\nDEFAULT_STRATEGY=harmonic\nCATALOG_FILE=catalog.json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("DEFAULT_STRATEGY")
		os.Unsetenv("CATALOG_FILE")
	})

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "harmonic", cfg.Search.DefaultStrategy)
	assert.Equal(t, "catalog.json", cfg.CatalogFile)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Hour, parseDuration("", time.Hour))
	assert.Equal(t, time.Hour, parseDuration("soon", time.Hour))
	assert.Equal(t, time.Hour, parseDuration("-5m", time.Hour))
	assert.Equal(t, 90*time.Second, parseDuration("1m30s", time.Hour))
}
