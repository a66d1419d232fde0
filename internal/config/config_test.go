package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: debug
jwt:
  secret: dev
  expire_hours: 2
storage:
  type: minio
scoring:
  pass_threshold: 9
`)
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, ScoringConfig{TestTotal: 20, PassThreshold: 9, WeekCount: 8, TopCount: 7}, cfg.Scoring)
	assert.Equal(t, 60, cfg.Redis.DashboardTTL)
	assert.Equal(t, 3, cfg.Personalization.Retries)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := writeConfig(t, `
jwt:
  secret: dev
storage:
  type: minio
`)
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("PERSONALIZATION_BASE_URL", "https://predict.example")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "https://predict.example", cfg.Personalization.BaseURL)
}

func TestLoadConfig_ReleaseRequiresStrongSecret(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
storage:
  type: minio
`)
	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
