// Package indicator computes the EMA/ATR set feeding directional bias and
// volatility into the signal stage.
package indicator

import (
	"math"

	"smc-engine/models"
)

// EMASeries computes the exponential moving average over closes. The first
// value is seeded with the simple average of the first period closes; entries
// before index period-1 are zero. Returns nil when fewer than period closes
// exist.
func EMASeries(closes []float64, period int) []float64 {
	if period < 1 || len(closes) < period {
		return nil
	}

	ema := make([]float64, len(closes))

	var sum float64
	for i := 0; i < period; i++ {
		sum += closes[i]
	}
	ema[period-1] = sum / float64(period)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(closes); i++ {
		ema[i] = closes[i]*multiplier + ema[i-1]*(1-multiplier)
	}
	return ema
}

// ATR is the arithmetic mean of the most recent period true ranges. Returns 0
// when fewer than period+1 candles are supplied.
func ATR(candles []models.Candle, period int) float64 {
	if period < 1 || len(candles) < period+1 {
		return 0
	}

	var sum float64
	for i := len(candles) - period; i < len(candles); i++ {
		highLow := candles[i].High - candles[i].Low
		highPrevClose := math.Abs(candles[i].High - candles[i-1].Close)
		lowPrevClose := math.Abs(candles[i].Low - candles[i-1].Close)
		sum += math.Max(highLow, math.Max(highPrevClose, lowPrevClose))
	}
	return sum / float64(period)
}

// Closes extracts the close series from candles.
func Closes(candles []models.Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
