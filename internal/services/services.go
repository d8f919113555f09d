// Package services opens the optional collaborators a driver hangs off a
// session: scoreboard, telemetry and sound. Each one that fails to start is
// logged and left out; none of them is required to play.
package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Vision-Hero/internal/config"
	"github.com/Garsondee/Vision-Hero/internal/scoreboard"
	"github.com/Garsondee/Vision-Hero/internal/session"
	"github.com/Garsondee/Vision-Hero/internal/sfx"
	"github.com/Garsondee/Vision-Hero/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// Services is the set of started collaborators.
type Services struct {
	Board     *scoreboard.Board // nil when disabled or unavailable
	Telemetry *telemetry.Provider
	Sound     *sfx.SoundManager // nil when audio is off
	Sinks     []session.Sink

	log zerolog.Logger
}

// Options choose which collaborators to start beyond the config.
type Options struct {
	Audio        bool      // drivers without a speaker pass false
	MetricsOut   io.Writer // where enabled telemetry is written
	DisableBoard bool
}

// Start opens everything cfg enables.
func Start(cfg config.Config, opts Options, log zerolog.Logger) *Services {
	s := &Services{log: log}

	if !opts.DisableBoard {
		b, err := scoreboard.Open(scoreboard.Config{Driver: cfg.Scoreboard.Driver, DSN: cfg.Scoreboard.DSN}, log)
		switch {
		case errors.Is(err, scoreboard.ErrDisabled):
			log.Info().Msg("scoreboard disabled")
		case err != nil:
			log.Warn().Err(err).Msg("scoreboard unavailable, results will not be saved")
		default:
			s.Board = b
		}
	}

	tp, err := telemetry.NewProvider(cfg.Telemetry.Enabled, opts.MetricsOut)
	if err != nil {
		log.Warn().Err(err).Msg("telemetry unavailable")
		tp, _ = telemetry.NewProvider(false, nil)
	}
	s.Telemetry = tp
	if m, err := telemetry.New(tp.Meter()); err != nil {
		log.Warn().Err(err).Msg("failed to create metrics")
	} else {
		s.Sinks = append(s.Sinks, m)
	}

	if opts.Audio && cfg.Audio.Enabled {
		sm := sfx.NewSoundManager(cfg.Audio.Volume, log)
		if err := sm.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio initialization failed, playing without sound")
		} else {
			s.Sound = sm
			s.Sinks = append(s.Sinks, sm)
		}
	}
	return s
}

// Recorder returns the scoreboard as a session recorder, or nil.
func (s *Services) Recorder() session.Recorder {
	if s.Board == nil {
		return nil
	}
	return s.Board
}

// Close stops sound, flushes telemetry and closes the scoreboard.
func (s *Services) Close() {
	if s.Sound != nil {
		s.Sound.Cleanup()
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Telemetry.Shutdown(ctx); err != nil {
		s.log.Warn().Err(err).Msg("telemetry shutdown")
	}
	if s.Board != nil {
		if err := s.Board.Close(); err != nil {
			s.log.Warn().Err(err).Msg("scoreboard close")
		}
	}
}
