// Package scoreboard persists finished sessions and serves the leaderboard.
package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Garsondee/Vision-Hero/internal/game"
)

// ErrDisabled is returned by Open when the driver is "none".
var ErrDisabled = errors.New("scoreboard disabled")

// Config selects the database.
type Config struct {
	Driver string // sqlite, postgres or none
	DSN    string // file path for sqlite, connection string for postgres
}

// Result is one finished session.
type Result struct {
	ID         uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	PlayedAt   time.Time `json:"playedAt" gorm:"index:idx_result_played_at"`
	Player     string    `json:"player" gorm:"size:40"`
	Score      int       `json:"score" gorm:"index:idx_result_score"`
	Outcome    string    `json:"outcome" gorm:"size:16"`
	CropsSaved int       `json:"cropsSaved"`
	CropsTotal int       `json:"cropsTotal"`
	Seconds    float64   `json:"seconds"` // configured session length
	Seed       int64     `json:"seed"`

	Stats datatypes.JSONType[game.Stats] `json:"stats"`
}

func (*Result) TableName() string {
	return "results"
}

// FromSnapshot builds the result row for a finished session.
func FromSnapshot(s *game.Snapshot, player string, seed int64) Result {
	return Result{
		PlayedAt:   s.WallTime.UTC(),
		Player:     player,
		Score:      s.Score,
		Outcome:    s.Outcome.String(),
		CropsSaved: s.CropsAlive,
		CropsTotal: len(s.Crops),
		Seconds:    s.Duration.Seconds(),
		Seed:       seed,
		Stats:      datatypes.NewJSONType(s.Stats),
	}
}

// Line formats the result for the game-over panel.
func (r Result) Line(rank int) string {
	return fmt.Sprintf("%d. %-12s %6d  %-10s crops %d/%d", rank, r.Player, r.Score, r.Outcome, r.CropsSaved, r.CropsTotal)
}

// Board is an open scoreboard database.
type Board struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the configured database and migrates the schema.
func Open(cfg Config, log zerolog.Logger) (*Board, error) {
	gcfg := &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "none", "":
		return nil, ErrDisabled
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.DSN), gcfg)
		if err == nil {
			err = db.Exec("PRAGMA busy_timeout = 5000;").Error
		}
	case "postgres":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		}), gcfg)
	default:
		return nil, fmt.Errorf("unknown scoreboard driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s scoreboard: %w", cfg.Driver, err)
	}

	if err := db.AutoMigrate(&Result{}); err != nil {
		return nil, fmt.Errorf("migrate scoreboard: %w", err)
	}
	log.Info().Str("driver", cfg.Driver).Msg("scoreboard ready")
	return &Board{db: db, log: log}, nil
}

// Record stores r and fills in its ID.
func (b *Board) Record(ctx context.Context, r *Result) error {
	if err := b.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	b.log.Debug().Uint("id", r.ID).Int("score", r.Score).Str("outcome", r.Outcome).Msg("result recorded")
	return nil
}

// Top returns the n best results, highest score first; ties go to the
// earlier session.
func (b *Board) Top(ctx context.Context, n int) ([]Result, error) {
	var out []Result
	err := b.db.WithContext(ctx).
		Order("score DESC").
		Order("played_at ASC").
		Limit(n).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	return out, nil
}

// Count returns the number of recorded results.
func (b *Board) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := b.db.WithContext(ctx).Model(&Result{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

// Close releases the connection pool.
func (b *Board) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}
