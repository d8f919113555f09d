package main

import (
	"flag"
	"log"
	"os"

	"github.com/Garsondee/Vision-Hero/internal/app"
	"github.com/Garsondee/Vision-Hero/internal/assets"
	"github.com/Garsondee/Vision-Hero/internal/config"
	"github.com/Garsondee/Vision-Hero/internal/logging"
	"github.com/Garsondee/Vision-Hero/internal/render"
	"github.com/Garsondee/Vision-Hero/internal/services"
	"github.com/Garsondee/Vision-Hero/internal/session"
)

func main() {
	var configPath string
	var player string
	flag.StringVar(&configPath, "config", "", "path to a JSON, YAML or TOML config file")
	flag.StringVar(&player, "player", os.Getenv("USER"), "name recorded on the leaderboard")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, closer, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	svc := services.Start(cfg, services.Options{Audio: true, MetricsOut: os.Stdout}, logger)
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

	g := app.New(sess, render.New(set, cfg.Game.Width, cfg.Game.Height), logger, logging.Sampled(logger))
	if err := app.Run(g, "Vision Hero: Defenders of the Farm", cfg.Window.Scale); err != nil {
		logger.Error().Err(err).Msg("game exited with error")
	}
	logger.Info().Int("games", sess.Games()).Msg("bye")
}
