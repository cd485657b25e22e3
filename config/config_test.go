package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Len(t, cfg.Web.Secret, 32)
	assert.True(t, cfg.RandomSecret())

	// the shared defaults are not mutated
	assert.Empty(t, DefaultAppConfig.Web.Secret)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "orderdesk.yml")
	require.NoError(t, os.WriteFile(file, []byte(`
web:
  port: 8080
  secret: s3cret
database:
  type: mysql
  port: 3306
  name: shop
logger:
  mode: production
`), 0o644))

	t.Setenv("ORDERDESK_DB_HOST", "db.internal")
	t.Setenv("ORDERDESK_WEB_PORT", "9090")
	t.Setenv("ORDERDESK_DB_PORT", "not-a-number")

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "s3cret", cfg.Web.Secret)
	assert.False(t, cfg.RandomSecret())
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "shop", cfg.Database.Name)
	assert.Equal(t, "production", cfg.Logger.Mode)
	// untouched keys keep their defaults
	assert.Equal(t, "UTC", cfg.System.Location)
}

func TestLoadConfigSecretFromEnv(t *testing.T) {
	t.Setenv("ORDERDESK_WEB_SECRET", "from-env")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Web.Secret)
	assert.False(t, cfg.RandomSecret())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestInitDirs(t *testing.T) {
	cfg := *DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	require.NoError(t, cfg.InitDirs())
	assert.DirExists(t, cfg.GetLogDir())
	assert.DirExists(t, cfg.GetDataDir())
}
