// Package signal composes trend, swing extremes, and ATR into the final
// BUY/SELL/WAIT decision with entry, stop, targets, and a confidence score.
package signal

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"smc-engine/internal/indicator"
	"smc-engine/models"
)

// Wait reasons, matched by the dashboard consuming the signal.
const (
	ReasonAnalysisOff    = "AI Analysis is OFF"
	ReasonNoData         = "Insufficient data"
	ReasonLowVolume      = "Volume too low"
	ReasonBadVolatility  = "Volatility invalid"
	ReasonSideways       = "Market sideways/choppy"
	ReasonLowConfidence  = "Low confidence"
	ReasonDegenerateRisk = "Risk/reward unavailable"
)

const (
	minCandles      = 50
	volumeWindow    = 20
	minVolumeRatio  = 0.30
	maxATRRatio     = 0.10
	atrStopMult     = 1.5
	atrStopBuffer   = 0.2
	stopLookback    = 10
	minTrendScore   = 30
	riskRewardFixed = 2.0
)

// Generator builds signals for one symbol/timeframe. Stateless across calls;
// safe to use from multiple goroutines.
type Generator struct {
	cfg     models.EngineConfig
	insight models.InsightProvider // optional enrichment collaborator
	logger  zerolog.Logger
}

// New creates a Generator. provider may be nil when no enrichment
// collaborator is configured.
func New(cfg models.EngineConfig, provider models.InsightProvider) *Generator {
	return &Generator{
		cfg:     cfg,
		insight: provider,
		logger:  log.With().Str("component", "signal").Str("symbol", cfg.Symbol).Logger(),
	}
}

// Generate evaluates the precondition gates in order and, when all pass,
// builds the directional signal. Every gate short-circuits to WAIT with its
// reason; nothing here returns an error.
func (g *Generator) Generate(ctx context.Context, candles []models.Candle, trend models.TrendSnapshot) models.Signal {
	if !g.cfg.AIEnabled {
		return g.wait(ReasonAnalysisOff)
	}
	if len(candles) < minCandles {
		return g.wait(ReasonNoData)
	}

	current := candles[len(candles)-1]

	if !isForexSymbol(g.cfg.Symbol) {
		if avg := trailingAvgVolume(candles, volumeWindow); avg > 0 && current.Volume < minVolumeRatio*avg {
			return g.wait(ReasonLowVolume)
		}
	}

	switch trend.Direction {
	case models.DirectionBullish, models.DirectionBearish:
	default:
		return g.wait(ReasonSideways)
	}

	atr := indicator.ATR(candles, indicator.ATRPeriod())
	if atr == 0 || (current.Close > 0 && atr/current.Close > maxATRRatio) {
		return g.wait(ReasonBadVolatility)
	}

	entry := current.Close
	var stop, risk float64
	var reasons []string

	if trend.Direction == models.DirectionBullish {
		swingLow := lastSwingLow(candles, stopLookback)
		stop = math.Min(swingLow, entry-atrStopMult*atr) - atrStopBuffer*atr
		risk = entry - stop
		reasons = append(reasons,
			"Bullish trend (EMA9 > EMA21)",
			fmt.Sprintf("SL below swing low %.5f", swingLow))
	} else {
		swingHigh := lastSwingHigh(candles, stopLookback)
		stop = math.Max(swingHigh, entry+atrStopMult*atr) + atrStopBuffer*atr
		risk = stop - entry
		reasons = append(reasons,
			"Bearish trend (EMA9 < EMA21)",
			fmt.Sprintf("SL above swing high %.5f", swingHigh))
	}

	if risk <= 0 {
		return g.wait(ReasonDegenerateRisk)
	}

	if trend.Strength < minTrendScore {
		return g.wait(ReasonLowConfidence)
	}

	var tp1, tp2 float64
	if trend.Direction == models.DirectionBullish {
		tp1 = entry + 2*risk
		tp2 = entry + 3*risk
	} else {
		tp1 = entry - 2*risk
		tp2 = entry - 3*risk
	}
	reasons = append(reasons, fmt.Sprintf("TP1 at RRR 1:%.0f", riskRewardFixed))

	decimals := precisionFor(entry)
	sig := models.Signal{
		Market:      g.cfg.Symbol,
		Timeframe:   g.cfg.Timeframe,
		Action:      models.ActionBuy,
		Entry:       ptr(roundTo(entry, decimals)),
		StopLoss:    ptr(roundTo(stop, decimals)),
		TakeProfit1: ptr(roundTo(tp1, decimals)),
		TakeProfit2: ptr(roundTo(tp2, decimals)),
		RiskReward:  riskRewardFixed,
		Confidence:  trend.Strength,
		Timestamp:   time.Now().UTC(),
		Reason:      strings.Join(reasons, " | "),
	}
	if trend.Direction == models.DirectionBearish {
		sig.Action = models.ActionSell
	}

	g.enrich(ctx, &sig)

	g.logger.Info().
		Str("action", string(sig.Action)).
		Float64("entry", *sig.Entry).
		Float64("stop", *sig.StopLoss).
		Float64("confidence", sig.Confidence).
		Msg("signal generated")
	return sig
}

// enrich adjusts confidence via the external collaborator. A failing
// collaborator degrades the adjustment only; the base signal survives intact.
// When conditions are unfavorable the boost is withheld and the reason notes it.
func (g *Generator) enrich(ctx context.Context, sig *models.Signal) {
	if g.insight == nil {
		return
	}
	ins, err := g.insight.FullAnalysis(ctx, g.cfg.Symbol)
	if err != nil {
		g.logger.Warn().Err(err).Msg("enrichment unavailable, keeping base confidence")
		return
	}
	if ins == nil {
		return
	}
	if !Favorable(ins) {
		sig.Reason += " | unfavorable market conditions"
		g.logger.Debug().Msg("unfavorable conditions, confidence boost withheld")
		return
	}
	boost := ConfidenceBoost(sig.Action, ins)
	sig.Confidence = clamp(sig.Confidence+boost, 0, 100)
	g.logger.Debug().Float64("boost", boost).Float64("confidence", sig.Confidence).Msg("confidence adjusted")
}

func (g *Generator) wait(reason string) models.Signal {
	g.logger.Debug().Str("reason", reason).Msg("no signal")
	return models.Signal{
		Market:    g.cfg.Symbol,
		Timeframe: g.cfg.Timeframe,
		Action:    models.ActionWait,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	}
}

func trailingAvgVolume(candles []models.Candle, window int) float64 {
	if len(candles) < window {
		window = len(candles)
	}
	if window == 0 {
		return 0
	}
	var sum float64
	for i := len(candles) - window; i < len(candles); i++ {
		sum += candles[i].Volume
	}
	return sum / float64(window)
}

// lastSwingLow finds the most recent local low minimum over a +-lookback
// window. With too little history for a proper scan it falls back to the
// lowest low of the trailing lookback candles.
func lastSwingLow(candles []models.Candle, lookback int) float64 {
	n := len(candles)
	if n < 2*lookback+1 {
		from := n - lookback
		if from < 0 {
			from = 0
		}
		low := candles[from].Low
		for i := from + 1; i < n; i++ {
			low = math.Min(low, candles[i].Low)
		}
		return low
	}

	found := math.NaN()
	for i := lookback; i < n-lookback; i++ {
		isMin := true
		for j := i - lookback; j <= i+lookback; j++ {
			if candles[j].Low < candles[i].Low {
				isMin = false
				break
			}
		}
		if isMin {
			found = candles[i].Low
		}
	}
	if !math.IsNaN(found) {
		return found
	}

	low := candles[n-lookback].Low
	for i := n - lookback + 1; i < n; i++ {
		low = math.Min(low, candles[i].Low)
	}
	return low
}

// lastSwingHigh mirrors lastSwingLow for local maxima.
func lastSwingHigh(candles []models.Candle, lookback int) float64 {
	n := len(candles)
	if n < 2*lookback+1 {
		from := n - lookback
		if from < 0 {
			from = 0
		}
		high := candles[from].High
		for i := from + 1; i < n; i++ {
			high = math.Max(high, candles[i].High)
		}
		return high
	}

	found := math.NaN()
	for i := lookback; i < n-lookback; i++ {
		isMax := true
		for j := i - lookback; j <= i+lookback; j++ {
			if candles[j].High > candles[i].High {
				isMax = false
				break
			}
		}
		if isMax {
			found = candles[i].High
		}
	}
	if !math.IsNaN(found) {
		return found
	}

	high := candles[n-lookback].High
	for i := n - lookback + 1; i < n; i++ {
		high = math.Max(high, candles[i].High)
	}
	return high
}

// precisionFor maps the instrument price magnitude to output decimals:
// large caps round to 2, FX-scale prices to 5, micro caps to 8.
func precisionFor(price float64) int {
	switch {
	case price >= 100:
		return 2
	case price >= 1:
		return 5
	default:
		return 8
	}
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func ptr(v float64) *float64 { return &v }

var currencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"AUD": true, "NZD": true, "CAD": true, "CHF": true,
}

// isForexSymbol treats slash-separated pairs and six-letter major pairs as
// FX; FX feeds rarely carry real volume, so those symbols skip the volume
// gate.
func isForexSymbol(symbol string) bool {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(s, "/") {
		return true
	}
	if len(s) == 6 {
		return currencyCodes[s[:3]] && currencyCodes[s[3:]]
	}
	return false
}
