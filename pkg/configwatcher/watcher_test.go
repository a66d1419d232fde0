package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mathtatag_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("scoring:\n  pass_threshold: 7\n"), 0o644))

	load := func(string) (*config.Config, error) {
		return &config.Config{Scoring: config.ScoringConfig{PassThreshold: 9}}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, file, load, 20*time.Millisecond, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 等待监听建立后再写入
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("scoring:\n  pass_threshold: 9\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 9, cfg.Scoring.PassThreshold)
	case <-time.After(3 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := watch(context.Background(), "/nonexistent/dir/config.yaml", config.LoadConfig, time.Millisecond, func(*config.Config) {})
	assert.Error(t, err)
}
