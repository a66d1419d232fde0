package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mathtatag_backend/internal/config"
)

func TestInitLogger_WritesJSONFile(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	file := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "release"},
		Log:    config.LogConfig{File: file, MaxSizeMB: 1},
	}
	InitLogger(cfg)

	Log.Info("score recorded", zap.String("learnerID", "L-1"))
	Log.Debug("hidden in release")
	_ = Log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"score recorded"`)
	assert.Contains(t, string(data), `"service":"mathtatag"`)
	assert.NotContains(t, string(data), "hidden in release")
}
