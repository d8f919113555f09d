package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.Game.Duration)
	assert.Equal(t, int64(0), cfg.Game.Seed)
	assert.Equal(t, 640, cfg.Input.Width)
	assert.Equal(t, 480, cfg.Input.Height)
	assert.Equal(t, 1280, cfg.Game.Width)
	assert.Equal(t, 720, cfg.Game.Height)
	assert.Equal(t, 0.5, cfg.Input.Sensitivity)
	assert.Equal(t, 500*time.Millisecond, cfg.Input.ShootCooldown)
	assert.Equal(t, "assets", cfg.Assets.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.Log.File)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.5, cfg.Audio.Volume)
	assert.Equal(t, "sqlite", cfg.Scoreboard.Driver)
	assert.Equal(t, "vision_hero.db", cfg.Scoreboard.DSN)
	assert.Equal(t, 5, cfg.Scoreboard.Top)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 1.0, cfg.Window.Scale)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vision_hero.json")
	body := `{
		"game": { "duration": "45s", "seed": 7 },
		"log": { "level": "debug" },
		"scoreboard": { "driver": "none" }
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Game.Duration)
	assert.Equal(t, int64(7), cfg.Game.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "none", cfg.Scoreboard.Driver)
	// Untouched keys keep their defaults.
	assert.Equal(t, 640, cfg.Input.Width)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vision_hero.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audio:\n  volume: 0.25\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Audio.Volume)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VISIONHERO_GAME_DURATION", "2m")
	t.Setenv("VISIONHERO_SCOREBOARD_DRIVER", "postgres")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.Game.Duration)
	assert.Equal(t, "postgres", cfg.Scoreboard.Driver)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/vision_hero.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"input": {"sensitivity": 1.5}}`), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidate_ScoreboardDriver(t *testing.T) {
	cfg := Default()
	cfg.Scoreboard.Driver = "mysql"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg.Scoreboard.Driver = "none"
	assert.NoError(t, cfg.Validate())
}
