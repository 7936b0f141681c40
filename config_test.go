package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TTL)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server:\n  port: 7000\nlog:\n  level: debug\n"), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := loadConfig()
	require.NoError(t, err)
	// env wins over file, file wins over defaults
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfigCORSFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.Origins)
}

func TestEnvToPath(t *testing.T) {
	assert.Equal(t, "db.auto_migrate", envToPath("DB_AUTO_MIGRATE"))
	assert.Equal(t, "jwt.secret", envToPath("JWT_SECRET"))
	assert.Equal(t, "s3.public_url", envToPath("S3_PUBLIC_URL"))
}
