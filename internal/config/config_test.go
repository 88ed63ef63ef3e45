package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points ENV_FILE at an empty file so a developer's .env is not read.
func isolate(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	t.Setenv("ENV_FILE", path)
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "PORT", "HTTP_TIMEOUT", "CACHE_TTL", "PROVIDERS", "NEO4J_URI", "ADZUNA_APP_ID", "ADZUNA_APP_KEY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.CacheTTL)
	assert.Equal(t, 8, cfg.DetailConcurrency)
	assert.False(t, cfg.AdzunaEnabled())
	assert.False(t, cfg.Neo4jEnabled())
	assert.True(t, cfg.ProviderEnabled("Harri"))
	assert.Equal(t, "us", cfg.Adzuna.Country)
}

func TestLoad_Overrides(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("LOG_FORMAT", "Console")
	t.Setenv("CACHE_TTL", "10m")
	t.Setenv("DETAIL_CONCURRENCY", "3")
	t.Setenv("WARMUP_SCHEDULE", "")
	t.Setenv("PROVIDERS", "harri, Foras.ps ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 3, cfg.DetailConcurrency)
	assert.Empty(t, cfg.WarmupSchedule)
	assert.Equal(t, []string{"harri", "Foras.ps"}, cfg.Providers)
	assert.True(t, cfg.ProviderEnabled("Harri"))
	assert.False(t, cfg.ProviderEnabled("Jobs.ps"))
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_TIMEOUT", "soon")
	t.Setenv("NEO4J_URI", "neo4j://localhost:7687")
	t.Setenv("NEO4J_USERNAME", "")
	t.Setenv("NEO4J_PASSWORD", "")
	t.Setenv("ADZUNA_APP_ID", "id")
	t.Setenv("ADZUNA_APP_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_TIMEOUT")
	assert.Contains(t, err.Error(), "NEO4J_USERNAME, NEO4J_PASSWORD")
	assert.Contains(t, err.Error(), "ADZUNA_APP_ID and ADZUNA_APP_KEY")
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nADZUNA_QUERY=golang\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ADZUNA_QUERY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "golang", cfg.Adzuna.Query)
}
