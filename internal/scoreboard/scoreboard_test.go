package scoreboard

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Garsondee/Vision-Hero/internal/game"
)

func openTestBoard(t *testing.T) *Board {
	t.Helper()
	b, err := Open(Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "scores.db")}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestOpen_Disabled(t *testing.T) {
	_, err := Open(Config{Driver: "none"}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "mysql"}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scoreboard driver")
}

func TestRecord_AssignsID(t *testing.T) {
	b := openTestBoard(t)
	r := Result{PlayedAt: time.Now().UTC(), Player: "p1", Score: 10, Outcome: "victory"}
	require.NoError(t, b.Record(context.Background(), &r))
	assert.NotZero(t, r.ID)

	n, err := b.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTop_OrdersByScoreThenTime(t *testing.T) {
	b := openTestBoard(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := []Result{
		{PlayedAt: base, Player: "a", Score: 50},
		{PlayedAt: base.Add(time.Minute), Player: "b", Score: 120},
		{PlayedAt: base.Add(2 * time.Minute), Player: "c", Score: 50},
		{PlayedAt: base.Add(3 * time.Minute), Player: "d", Score: 10},
	}
	for i := range rows {
		require.NoError(t, b.Record(ctx, &rows[i]))
	}

	top, err := b.Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "b", top[0].Player)
	assert.Equal(t, "a", top[1].Player, "equal scores go to the earlier session")
	assert.Equal(t, "c", top[2].Player)
}

func TestRecord_StatsRoundTrip(t *testing.T) {
	b := openTestBoard(t)
	ctx := context.Background()
	stats := game.Stats{ShotsFired: 12, BulletKills: 7, TimeBonus: 9.5}
	r := Result{PlayedAt: time.Now().UTC(), Player: "p", Score: 14, Stats: datatypes.NewJSONType(stats)}
	require.NoError(t, b.Record(ctx, &r))

	top, err := b.Top(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, stats, top[0].Stats.Data())
}

func TestFromSnapshot(t *testing.T) {
	ts := game.NewTestSession(game.WithCropHealth(0, 0))
	s := ts.Engine.Snapshot()
	r := FromSnapshot(&s, "tester", 42)

	assert.Equal(t, "tester", r.Player)
	assert.Equal(t, int64(42), r.Seed)
	assert.Equal(t, 3, r.CropsSaved)
	assert.Equal(t, 4, r.CropsTotal)
	assert.Equal(t, 90.0, r.Seconds)
	assert.Equal(t, s.Outcome.String(), r.Outcome)
	assert.Contains(t, r.Line(1), "tester")
}
