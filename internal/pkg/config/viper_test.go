package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  name: gopost
  server:
    read_timeout: 15
  cors:
    origins: "http://localhost:3000, http://localhost:5173,,"
  maintenance:
    endpoints:
      - "/api/posts"
      - " "
      - "DELETE /api/users/:id"
session:
  ttl_minutes: 10
  secure: true
database:
  max_conns: 8
`

func TestNewViperFromBytes(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sample))
	require.ErrorIs(t, err, ErrConfigTypeRequired)

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "gopost", cfg.GetString("app.name"))
	assert.Equal(t, 15*time.Second, cfg.GetSecond("app.server.read_timeout"))
	assert.Equal(t, 10*time.Minute, cfg.GetMinute("session.ttl_minutes"))
	assert.True(t, cfg.GetBool("session.secure"))
	assert.Equal(t, 8, cfg.GetInt("database.max_conns"))
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.GetArray("app.cors.origins"))
	assert.Equal(t, []string{"/api/posts", "DELETE /api/users/:id"}, cfg.GetArray("app.maintenance.endpoints"))
	assert.Empty(t, cfg.GetArray("missing.key"))
	assert.NoError(t, cfg.Close())
}

func TestViper_EnvOverride(t *testing.T) {
	t.Setenv("GOPOST_APP_NAME", "from-env")

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GetString("app.name"))
}

func TestNewViper_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := NewViper(path)
	require.NoError(t, err)
	assert.Equal(t, "gopost", cfg.GetString("app.name"))

	_, err = NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
