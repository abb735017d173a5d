// Package engine runs the full market-structure pipeline: swings, structure
// breaks, zones, trend, and the final signal, in that order. Each call
// recomputes from the full candle history; there is no state shared between
// calls, so analyses for different symbols can run in parallel.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"smc-engine/internal/indicator"
	"smc-engine/internal/signal"
	"smc-engine/internal/structure"
	"smc-engine/internal/swing"
	"smc-engine/internal/zone"
	"smc-engine/models"
)

// Result bundles the immutable records of one analysis run for the output
// consumer.
type Result struct {
	Symbol      string                  `json:"symbol"`
	Timeframe   string                  `json:"timeframe"`
	Swings      []models.SwingPoint     `json:"swings"`
	Breaks      []models.StructureBreak `json:"breaks"`
	Zones       []models.Zone           `json:"zones"`
	Trend       models.TrendSnapshot    `json:"trend"`
	Signal      models.Signal           `json:"signal"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// Engine wires the pipeline stages for one symbol/timeframe configuration.
type Engine struct {
	cfg       models.EngineConfig
	generator *signal.Generator
	logger    zerolog.Logger
}

// New creates an Engine. provider may be nil when no enrichment collaborator
// is available.
func New(cfg models.EngineConfig, provider models.InsightProvider) *Engine {
	return &Engine{
		cfg:       cfg,
		generator: signal.New(cfg, provider),
		logger:    log.With().Str("component", "engine").Str("symbol", cfg.Symbol).Logger(),
	}
}

// Analyze runs the pipeline over the supplied candle feed. Malformed input
// fails fast; everything downstream degrades to empty/WAIT results instead of
// erroring.
func (e *Engine) Analyze(ctx context.Context, candles []models.Candle) (*Result, error) {
	if err := models.ValidateCandles(candles); err != nil {
		return nil, fmt.Errorf("candle series out of contract: %w", err)
	}

	swings := swing.Classify(swing.Detect(candles, e.cfg))
	breaks := structure.Detect(candles, swings, e.cfg.BodyCloseOnly)
	zones := zone.Detect(candles)
	trend := indicator.Trend(candles)
	sig := e.generator.Generate(ctx, candles, trend)

	e.logger.Debug().
		Int("candles", len(candles)).
		Int("swings", len(swings)).
		Int("breaks", len(breaks)).
		Int("zones", len(zones)).
		Str("trend", string(trend.Direction)).
		Str("action", string(sig.Action)).
		Msg("analysis complete")

	return &Result{
		Symbol:      e.cfg.Symbol,
		Timeframe:   e.cfg.Timeframe,
		Swings:      swings,
		Breaks:      breaks,
		Zones:       zones,
		Trend:       trend,
		Signal:      sig,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
