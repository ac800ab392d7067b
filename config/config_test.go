package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig("")
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.HTTP.Port)
	require.Equal(t, ":3000", cfg.HTTP.Addr())
	require.Equal(t, "mongodb://localhost:27017", cfg.Database.URL)
	require.Equal(t, "users", cfg.Database.Collection)
	require.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	require.False(t, cfg.Redis.Enabled())
}

func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("DatabaseUrl", "mongodb://db.internal:27017/people")
	t.Setenv("PORT", "8081")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := NewConfig("")
	require.NoError(t, err)
	require.Equal(t, "mongodb://db.internal:27017/people", cfg.Database.URL)
	require.Equal(t, 8081, cfg.HTTP.Port)
	require.True(t, cfg.Redis.Enabled())
	require.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
}

func TestNewConfigFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_NAME=directory\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")
	// godotenv exports into the process; clear it for the tests that follow.
	t.Setenv("DATABASE_NAME", "")
	os.Unsetenv("DATABASE_NAME")

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	require.Equal(t, "directory", cfg.Database.Name)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestNewConfigMissingEnvFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestNewConfigInvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := NewConfig("")
	require.Error(t, err)
}
