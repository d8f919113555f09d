package main

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Vision-Hero/internal/game"
	"github.com/Garsondee/Vision-Hero/internal/scoreboard"
)

func TestRunAutopilot_Finishes(t *testing.T) {
	r := runAutopilot(1, 2, 20*time.Second, nil)
	if r.outcome == game.OutcomeInProgress {
		t.Fatalf("run did not finish after %d ticks", r.ticks)
	}
	if r.ticks > maxRunTicks {
		t.Fatalf("run took %d ticks, cap is %d", r.ticks, maxRunTicks)
	}
}

func TestRunAutopilot_Deterministic(t *testing.T) {
	a := runAutopilot(1, 11, 20*time.Second, nil)
	b := runAutopilot(1, 11, 20*time.Second, nil)

	if a.score != b.score || a.ticks != b.ticks || a.outcome != b.outcome || a.stats != b.stats {
		t.Fatalf("same seed diverged: %+v vs %+v", a.stats, b.stats)
	}
	if a.stats.ShotsFired == 0 {
		t.Fatal("autopilot never fired")
	}
	if !strings.Contains(a.report, "outcome:") {
		t.Fatalf("report missing outcome line:\n%s", a.report)
	}
}

func TestRunAutopilot_RecordsToScoreboard(t *testing.T) {
	b, err := scoreboard.Open(scoreboard.Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "r.db")}, zerolog.Nop())
	if err != nil {
		t.Fatalf("open scoreboard: %v", err)
	}
	defer b.Close()

	runAutopilot(1, 3, 10*time.Second, b)
	runAutopilot(2, 4, 10*time.Second, b)

	n, err := b.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 recorded results, got %d", n)
	}
}

func TestFirstTick(t *testing.T) {
	events := []game.Event{
		{Tick: 3, Kind: game.EventShot},
		{Tick: 9, Kind: game.EventEnemyKilled},
		{Tick: 12, Kind: game.EventEnemyKilled},
	}
	if got := firstTick(events, game.EventEnemyKilled); got != 9 {
		t.Fatalf("firstTick = %d, want 9", got)
	}
	if got := firstTick(events, game.EventCropDestroyed); got != -1 {
		t.Fatalf("firstTick for missing kind = %d, want -1", got)
	}
	if got := joinInts(ticksOf(events, game.EventEnemyKilled)); got != "9,12" {
		t.Fatalf("ticksOf = %q, want 9,12", got)
	}
}

func TestSummarize(t *testing.T) {
	all := []runStats{
		{seed: 1, outcome: game.OutcomeVictory, score: 100, cropsSaved: 4, ticks: 300, stats: game.Stats{ShotsFired: 10, BulletKills: 5, TimeBonus: 6}},
		{seed: 2, outcome: game.OutcomeCropsLost, score: 20, cropsSaved: 0, ticks: 100, stats: game.Stats{ShotsFired: 10, BulletKills: 1, FarmerKills: 1}},
	}
	agg := summarize(all)
	if agg.runs != 2 {
		t.Fatalf("runs = %d, want 2", agg.runs)
	}
	if agg.avgScore != 60 || agg.avgSaved != 2 || agg.avgTicks != 200 {
		t.Fatalf("averages = score %.1f saved %.1f ticks %.1f", agg.avgScore, agg.avgSaved, agg.avgTicks)
	}
	if agg.avgKills != 3.5 {
		t.Fatalf("avgKills = %.1f, want 3.5", agg.avgKills)
	}
	if math.Abs(agg.avgAccuracy-0.3) > 1e-9 {
		t.Fatalf("avgAccuracy = %.2f, want 0.30", agg.avgAccuracy)
	}
	if agg.bestSeed != 1 || agg.bestScore != 100 {
		t.Fatalf("best = seed %d score %d", agg.bestSeed, agg.bestScore)
	}
	if got := formatOutcomes(agg.outcomes); got != "crops_lost=1 victory=1" {
		t.Fatalf("formatOutcomes = %q", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	agg := summarize(nil)
	if agg.runs != 0 || agg.bestScore != -1 {
		t.Fatalf("unexpected empty aggregate: %+v", agg)
	}
	if got := formatOutcomes(agg.outcomes); got != "-" {
		t.Fatalf("formatOutcomes(empty) = %q", got)
	}
}
