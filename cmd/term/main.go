package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Vision-Hero/internal/assets"
	"github.com/Garsondee/Vision-Hero/internal/config"
	"github.com/Garsondee/Vision-Hero/internal/game"
	"github.com/Garsondee/Vision-Hero/internal/input"
	"github.com/Garsondee/Vision-Hero/internal/logging"
	"github.com/Garsondee/Vision-Hero/internal/render"
	"github.com/Garsondee/Vision-Hero/internal/services"
	"github.com/Garsondee/Vision-Hero/internal/session"
	"github.com/Garsondee/Vision-Hero/internal/termview"
)

func main() {
	var configPath, player, metricsPath string
	var sound bool
	flag.StringVar(&configPath, "config", "", "path to a JSON, YAML or TOML config file")
	flag.StringVar(&player, "player", os.Getenv("USER"), "name recorded on the leaderboard")
	flag.StringVar(&metricsPath, "metrics", "", "file for telemetry output when enabled")
	flag.BoolVar(&sound, "sound", true, "play sound effects")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	// The terminal belongs to the game; logs only go to the configured file.
	logger, closer, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, Console: io.Discard})
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	var metricsOut io.Writer = io.Discard
	if metricsPath != "" {
		f, err := os.Create(metricsPath) // #nosec G304 -- path from flag
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		metricsOut = f
	}

	svc := services.Start(cfg, services.Options{Audio: sound, MetricsOut: metricsOut}, logger)
	defer svc.Close()

	set := assets.Load(cfg.Assets.Dir, cfg.Game.Width, cfg.Game.Height, logger)
	sess := session.New(session.Options{
		Player:       player,
		Seed:         cfg.Game.Seed,
		Duration:     cfg.Game.Duration,
		FieldW:       cfg.Game.Width,
		FieldH:       cfg.Game.Height,
		InputW:       cfg.Input.Width,
		InputH:       cfg.Input.Height,
		Sensitivity:  cfg.Input.Sensitivity,
		ShotCooldown: cfg.Input.ShootCooldown,
		Variants:     len(set.Enemies),
		Log:          logger,
		Board:        svc.Recorder(),
		Top:          cfg.Scoreboard.Top,
	}, svc.Sinks...)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	report := run(screen, sess, render.New(set, cfg.Game.Width, cfg.Game.Height), logger)
	screen.Fini()
	fmt.Print(report)
}

// run drives the session until the player quits and returns the final
// session report.
func run(screen tcell.Screen, sess *session.Session, r *render.Renderer, logger zerolog.Logger) string {
	view := termview.New(screen)
	skipLog := logging.Sampled(logger)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(game.TickDuration)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return sess.Report()
			}
			snap := sess.Snapshot()
			switch view.Handle(ev, sess, input.NewMapper(&snap)) {
			case termview.CmdQuit:
				return sess.Report()
			case termview.CmdRestart:
				sess.Restart()
			case termview.CmdCopyReport:
				if err := clipboard.WriteAll(sess.Report()); err != nil {
					logger.Warn().Err(err).Msg("failed to copy report to clipboard")
				}
			}

		case <-ticker.C:
			sess.Update()
			snap := sess.Snapshot()
			frame, rep := r.Render(&snap, sess.Leaderboard())
			for _, skip := range rep.Skipped {
				skipLog.Debug().Err(skip).Msg("draw skipped")
			}
			view.Draw(frame)
		}
	}
}
