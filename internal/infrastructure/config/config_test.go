package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Storage.MaxProofSizeMB)
	assert.Equal(t, 10, cfg.Notification.TimeoutSeconds)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Email.Enabled())
	assert.Same(t, cfg, Get())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: 9090
  base_url: https://admin.example.com/
database:
  driver: sqlite
  path: /tmp/test.db
email:
  smtp_host: smtp.example.com
  admin_addresses:
    - ops@example.com
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("SUBADMIN_SERVER_PORT", "7070")
	t.Setenv("SUBADMIN_REDIS_ENABLED", "true")

	cfg, err := load("release", dir)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "https://admin.example.com", cfg.Server.PublicBaseURL())
	assert.True(t, cfg.Database.IsSQLite())
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.True(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Email.Enabled())
	assert.Equal(t, []string{"ops@example.com"}, cfg.Email.AdminAddresses)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [oops"), 0o600))

	_, err := load("", dir)
	assert.Error(t, err)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
