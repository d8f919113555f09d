package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Vision-Hero/internal/game"
	"github.com/Garsondee/Vision-Hero/internal/input"
	"github.com/Garsondee/Vision-Hero/internal/scoreboard"
	"github.com/Garsondee/Vision-Hero/internal/session"
)

type runStats struct {
	runIndex int
	seed     int64

	outcome    game.Outcome
	score      int
	ticks      int
	cropsSaved int
	cropsTotal int
	stats      game.Stats

	firstSpawnTick   int
	firstKillTick    int
	firstCropHitTick int
	firstLossTick    int
	superpowerTicks  []int

	report string
}

type aggregate struct {
	runs        int
	outcomes    map[game.Outcome]int
	avgScore    float64
	avgSaved    float64
	avgTicks    float64
	avgAccuracy float64
	avgBonus    float64
	avgKills    float64
	bestSeed    int64
	bestScore   int
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var duration time.Duration
	var dbPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless sessions")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.DurationVar(&duration, "duration", 90*time.Second, "starting time budget per session")
	flag.StringVar(&dbPath, "db", "", "sqlite file to record results in (empty disables)")
	flag.BoolVar(&verbose, "v", false, "print the full session report for every run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if duration <= 0 {
		fmt.Println("error: -duration must be > 0")
		return
	}

	var board session.Recorder
	if dbPath != "" {
		b, err := scoreboard.Open(scoreboard.Config{Driver: "sqlite", DSN: dbPath}, zerolog.Nop())
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		defer b.Close()
		board = b
	}

	fmt.Printf("=== Headless Autopilot Report ===\n")
	fmt.Printf("runs=%d duration=%s seed_base=%d seed_step=%d\n\n", runs, duration, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runAutopilot(i+1, seed, duration, board)
		all = append(all, rs)
		printRun(rs, verbose)
	}

	printAggregate(summarize(all))
}

// maxRunTicks is the least number of ticks a run may take, thirty minutes of
// game time.
const maxRunTicks = 30 * 60 * game.TickRate

// runAutopilot plays one session to the end on a fake clock.
func runAutopilot(runIndex int, seed int64, duration time.Duration, board session.Recorder) runStats {
	clock := game.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	log := game.NewEventLog()
	sess := session.New(session.Options{
		Player:   "autopilot",
		Seed:     seed,
		Duration: duration,
		Clock:    clock,
		Log:      zerolog.Nop(),
		Board:    board,
	}, session.SinkFunc(func(ev game.Event) { log.Add(ev) }))
	pilot := input.NewAutopilot(seed)

	// Kills add time without limit, so a run stops at the larger of four
	// budgets and maxRunTicks.
	maxTicks := max(int(4*duration/game.TickDuration)+game.TickRate, maxRunTicks)
	for i := 0; i < maxTicks; i++ {
		snap := sess.Snapshot()
		if snap.GameOver {
			break
		}
		pilot.Step(&snap, sess)
		clock.Advance(game.TickDuration)
		sess.Update()
	}

	snap := sess.Snapshot()
	return runStats{
		runIndex:         runIndex,
		seed:             seed,
		outcome:          snap.Outcome,
		score:            snap.Score,
		ticks:            snap.Tick,
		cropsSaved:       snap.CropsAlive,
		cropsTotal:       len(snap.Crops),
		stats:            snap.Stats,
		firstSpawnTick:   firstTick(log.Entries(), game.EventEnemySpawned),
		firstKillTick:    firstTick(log.Entries(), game.EventEnemyKilled),
		firstCropHitTick: firstTick(log.Entries(), game.EventCropDamaged),
		firstLossTick:    firstTick(log.Entries(), game.EventCropDestroyed),
		superpowerTicks:  ticksOf(log.Entries(), game.EventSuperpower),
		report:           sess.Report(),
	}
}

func firstTick(events []game.Event, kind game.EventKind) int {
	for _, e := range events {
		if e.Kind == kind {
			return e.Tick
		}
	}
	return -1
}

func ticksOf(events []game.Event, kind game.EventKind) []int {
	var out []int
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e.Tick)
		}
	}
	return out
}

func summarize(all []runStats) aggregate {
	agg := aggregate{runs: len(all), outcomes: map[game.Outcome]int{}, bestScore: -1}
	if len(all) == 0 {
		return agg
	}
	for _, rs := range all {
		agg.outcomes[rs.outcome]++
		agg.avgScore += float64(rs.score)
		agg.avgSaved += float64(rs.cropsSaved)
		agg.avgTicks += float64(rs.ticks)
		agg.avgAccuracy += rs.stats.Accuracy()
		agg.avgBonus += rs.stats.TimeBonus
		agg.avgKills += float64(rs.stats.Kills())
		if rs.score > agg.bestScore {
			agg.bestScore = rs.score
			agg.bestSeed = rs.seed
		}
	}
	n := float64(len(all))
	agg.avgScore /= n
	agg.avgSaved /= n
	agg.avgTicks /= n
	agg.avgAccuracy /= n
	agg.avgBonus /= n
	agg.avgKills /= n
	return agg
}

func printRun(rs runStats, verbose bool) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: outcome=%s score=%d ticks=%d crops_saved=%d/%d\n",
		rs.outcome, rs.score, rs.ticks, rs.cropsSaved, rs.cropsTotal)
	fmt.Printf("phase_markers: first_spawn=%d first_kill=%d first_crop_hit=%d first_crop_lost=%d\n",
		rs.firstSpawnTick, rs.firstKillTick, rs.firstCropHitTick, rs.firstLossTick)
	fmt.Printf("combat: spawned=%d bullet_kills=%d farmer_kills=%d crop_hits=%d escaped=%d\n",
		rs.stats.EnemiesSpawned, rs.stats.BulletKills, rs.stats.FarmerKills, rs.stats.CropHits, rs.stats.Escaped)
	fmt.Printf("economy: shots=%d accuracy=%.0f%% time_bonus=%.1fs win_bonus=%d\n",
		rs.stats.ShotsFired, rs.stats.Accuracy()*100, rs.stats.TimeBonus, rs.stats.WinBonus)
	fmt.Printf("superpower_ticks: %s\n", joinInts(rs.superpowerTicks))
	if verbose {
		fmt.Print(rs.report)
	}
	fmt.Println()
}

func printAggregate(agg aggregate) {
	fmt.Printf("=== Aggregate ===\n")
	fmt.Printf("runs=%d\n", agg.runs)
	fmt.Printf("outcomes: %s\n", formatOutcomes(agg.outcomes))
	fmt.Printf("avg_per_run: score=%.1f crops_saved=%.2f ticks=%.0f kills=%.1f accuracy=%.0f%% time_bonus=%.1fs\n",
		agg.avgScore, agg.avgSaved, agg.avgTicks, agg.avgKills, agg.avgAccuracy*100, agg.avgBonus)
	if agg.bestScore >= 0 {
		fmt.Printf("best: score=%d seed=%d\n", agg.bestScore, agg.bestSeed)
	}
}

func formatOutcomes(m map[game.Outcome]int) string {
	names := make([]string, 0, len(m))
	counts := make(map[string]int, len(m))
	for o, n := range m {
		names = append(names, o.String())
		counts[o.String()] = n
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, counts[name])
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func joinInts(v []int) string {
	if len(v) == 0 {
		return "-"
	}
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ",")
}
