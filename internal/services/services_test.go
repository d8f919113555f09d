package services

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Vision-Hero/internal/config"
	"github.com/Garsondee/Vision-Hero/internal/game"
)

func TestStart_AllDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Scoreboard.Driver = "none"
	cfg.Audio.Enabled = false

	s := Start(cfg, Options{}, zerolog.Nop())
	defer s.Close()

	assert.Nil(t, s.Board)
	assert.Nil(t, s.Recorder())
	assert.Nil(t, s.Sound)
	require.Len(t, s.Sinks, 1, "metrics sink is always present")
}

func TestStart_SQLiteAndTelemetry(t *testing.T) {
	cfg := config.Default()
	cfg.Scoreboard.DSN = filepath.Join(t.TempDir(), "scores.db")
	cfg.Telemetry.Enabled = true

	var out bytes.Buffer
	s := Start(cfg, Options{MetricsOut: &out}, zerolog.Nop())
	require.NotNil(t, s.Board)
	assert.NotNil(t, s.Recorder())

	for _, sink := range s.Sinks {
		sink.Handle(game.Event{Kind: game.EventShot})
	}
	s.Close()
	assert.Contains(t, out.String(), "game.shots")
}

func TestStart_BadScoreboardIsNotFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Scoreboard.DSN = filepath.Join(t.TempDir(), "missing", "dir", "scores.db")
	cfg.Audio.Enabled = false

	var logs bytes.Buffer
	s := Start(cfg, Options{}, zerolog.New(&logs))
	defer s.Close()
	assert.Nil(t, s.Board)
	assert.Contains(t, logs.String(), "scoreboard unavailable")
}

func TestStart_DisableBoardSkipsDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.Scoreboard.DSN = filepath.Join(t.TempDir(), "scores.db")
	s := Start(cfg, Options{DisableBoard: true}, zerolog.Nop())
	defer s.Close()
	assert.Nil(t, s.Board)
	assert.NoFileExists(t, cfg.Scoreboard.DSN)
}
