// Package telemetry exports gameplay counters through OpenTelemetry metrics.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/Garsondee/Vision-Hero/internal/game"
)

const instrumentationName = "github.com/Garsondee/Vision-Hero/internal/telemetry"

// exportInterval is how often an enabled provider writes metrics out.
const exportInterval = 30 * time.Second

// Provider owns the meter provider, or nothing when telemetry is disabled.
type Provider struct {
	mp *sdkmetric.MeterProvider
}

// NewProvider installs a meter provider that periodically writes metrics as
// JSON to w. Disabled providers hand out no-op meters.
func NewProvider(enabled bool, w io.Writer) (*Provider, error) {
	if !enabled {
		return &Provider{}, nil
	}
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(exportInterval))),
	)
	otel.SetMeterProvider(mp)
	return &Provider{mp: mp}, nil
}

// Meter returns the meter for game metrics.
func (p *Provider) Meter() metric.Meter {
	if p.mp == nil {
		return noop.Meter{}
	}
	return p.mp.Meter(instrumentationName)
}

// Shutdown flushes pending metrics.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.mp == nil {
		return nil
	}
	return p.mp.Shutdown(ctx)
}

// Metrics turns engine events into counter updates.
type Metrics struct {
	shots       metric.Int64Counter
	kills       metric.Int64Counter
	escaped     metric.Int64Counter
	cropHits    metric.Int64Counter
	cropsLost   metric.Int64Counter
	superpowers metric.Int64Counter
	sessions    metric.Int64Counter
	timeBonus   metric.Float64Counter
	score       metric.Int64Histogram
}

// New creates the instruments on m.
func New(m metric.Meter) (*Metrics, error) {
	var (
		t   Metrics
		err error
	)
	if t.shots, err = m.Int64Counter("game.shots", metric.WithDescription("Shots fired")); err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}
	if t.kills, err = m.Int64Counter("game.enemies.killed", metric.WithDescription("Enemies destroyed, by cause")); err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}
	if t.escaped, err = m.Int64Counter("game.enemies.escaped", metric.WithDescription("Enemies that left the field")); err != nil {
		return nil, fmt.Errorf("creating escaped counter: %w", err)
	}
	if t.cropHits, err = m.Int64Counter("game.crops.damaged", metric.WithDescription("Crop damage taken")); err != nil {
		return nil, fmt.Errorf("creating crop damage counter: %w", err)
	}
	if t.cropsLost, err = m.Int64Counter("game.crops.destroyed", metric.WithDescription("Crops destroyed")); err != nil {
		return nil, fmt.Errorf("creating crops destroyed counter: %w", err)
	}
	if t.superpowers, err = m.Int64Counter("game.superpowers", metric.WithDescription("Superpower activations")); err != nil {
		return nil, fmt.Errorf("creating superpower counter: %w", err)
	}
	if t.sessions, err = m.Int64Counter("game.sessions", metric.WithDescription("Finished sessions, by outcome")); err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}
	if t.timeBonus, err = m.Float64Counter("game.time_bonus", metric.WithDescription("Seconds added by kills"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating time bonus counter: %w", err)
	}
	if t.score, err = m.Int64Histogram("game.score", metric.WithDescription("Final score per session")); err != nil {
		return nil, fmt.Errorf("creating score histogram: %w", err)
	}
	return &t, nil
}

// Handle records one engine event.
func (t *Metrics) Handle(ev game.Event) {
	ctx := context.Background()
	switch ev.Kind {
	case game.EventShot:
		t.shots.Add(ctx, 1, metric.WithAttributes(attribute.Bool("superpower", ev.Superpower)))
	case game.EventEnemyKilled:
		t.kills.Add(ctx, 1, metric.WithAttributes(attribute.String("cause", ev.Cause.String())))
	case game.EventEnemyEscaped:
		t.escaped.Add(ctx, 1)
	case game.EventCropDamaged:
		t.cropHits.Add(ctx, 1)
	case game.EventCropDestroyed:
		t.cropHits.Add(ctx, 1)
		t.cropsLost.Add(ctx, 1)
	case game.EventTimeBonus:
		t.timeBonus.Add(ctx, ev.Seconds)
	case game.EventSuperpower:
		t.superpowers.Add(ctx, 1)
	case game.EventGameOver:
		outcome := "loss"
		if ev.Won {
			outcome = "victory"
		}
		t.sessions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
		t.score.Record(ctx, int64(ev.Score))
	}
}
