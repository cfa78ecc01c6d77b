package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultServices, cfg.Restart.Services)
	assert.Equal(t, time.Second, cfg.Restart.StopPollInterval())
	assert.Equal(t, 30, cfg.Restart.StopPollMax)
	assert.Equal(t, 5*time.Second, cfg.Restart.Settle())
	assert.Equal(t, "automation", cfg.Cleanup.Profile)
	assert.Equal(t, "us-east-1", cfg.Cleanup.Region)
	assert.Equal(t, 7*24*time.Hour, cfg.Cleanup.SnapshotMaxAge())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opsweep.yaml")
	data := []byte(`
log:
  level: debug
restart:
  services: [nginx, postgresql]
  stop_poll_max: 10
cleanup:
  profile: staging
  dry_run: true
  snapshot_max_age_days: 14
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"nginx", "postgresql"}, cfg.Restart.Services)
	assert.Equal(t, 10, cfg.Restart.StopPollMax)
	assert.Equal(t, "staging", cfg.Cleanup.Profile)
	assert.True(t, cfg.Cleanup.DryRun)
	assert.Equal(t, 14*24*time.Hour, cfg.Cleanup.SnapshotMaxAge())

	// Untouched keys keep their defaults
	assert.Equal(t, 5, cfg.Restart.SettleSeconds)
}
