package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"room-booking-api/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Directory.TTL)
	assert.False(t, cfg.Directory.AllowStale)
	assert.False(t, cfg.Recommendation.FillDefaults)
	assert.Equal(t, "08:00", cfg.Recommendation.DayStart)
	assert.Equal(t, "20:00", cfg.Recommendation.DayEnd)
	assert.Equal(t, 30, cfg.Recommendation.StepMinutes)

	got, ok := config.GetSafe()
	require.True(t, ok)
	assert.Same(t, cfg, got)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
directory:
  ttl: 90s
  allow_stale: true
recommendation:
  fill_defaults: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.Directory.TTL)
	assert.True(t, cfg.Directory.AllowStale)
	assert.True(t, cfg.Recommendation.FillDefaults)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "8181")
	t.Setenv("DIRECTORY_MAX_DATES", "4")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Directory.MaxDates)
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("DIRECTORY_TTL", "0s")

	_, err := config.Load(t.TempDir())
	assert.Error(t, err)
}
