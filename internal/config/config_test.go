package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithSecretFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "coursehub", cfg.Database.DBName)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "./uploads", cfg.Storage.Path)
	assert.Equal(t, int64(50*1024*1024), cfg.Storage.MaxUploadSize)
}

func TestLoadConfig_MissingSecretFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_FileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9090"
jwt:
  secret: "file-secret"
storage:
  path: "/var/lib/coursehub"
  max_upload_size: 1048576
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "/var/lib/coursehub", cfg.Storage.Path)
	assert.Equal(t, int64(1048576), cfg.Storage.MaxUploadSize)
	// Untouched sections keep their defaults
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
jwt:
  secret: "file-secret"
database:
  host: "file-host"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DB_HOST", "env-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "33")
	t.Setenv("STORAGE_MAX_UPLOAD_SIZE", "2048")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 33, cfg.Database.MaxOpenConns)
	assert.Equal(t, int64(2048), cfg.Storage.MaxUploadSize)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
}

func TestLoadConfig_RejectsMalformedEnvInt(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_RejectsInvalidUploadSize(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("STORAGE_MAX_UPLOAD_SIZE", "-1")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
