package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "real_estate", cfg.MongoDB)
	assert.Equal(t, 4*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "uploads", cfg.Storage.UploadDir)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estatehub.yaml")
	body := []byte(`
port: 9090
mongo_db: listings
token_ttl: 30m
storage:
  backend: minio
  minio:
    bucket: from-file
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MINIO_BUCKET", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "listings", cfg.MongoDB)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "minio", cfg.Storage.Backend)
	assert.Equal(t, "from-env", cfg.Storage.Minio.Bucket)
}

func TestLoadConfigIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET is required")

	cfg.JWTSecret = "secret"
	cfg.Storage.Backend = "ftp"
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
