package indicator

import (
	"math"

	"smc-engine/models"
)

const (
	emaFastPeriod   = 9
	emaMediumPeriod = 21
	emaSlowPeriod   = 200
	// With fewer than 200 candles the slow filter falls back to EMA 50;
	// strength calibration is unchanged by the substitution.
	emaSlowFallback = 50

	atrPeriod = 14

	// EMAs computed over a constant series accumulate rounding noise; values
	// this close count as equal for direction purposes.
	emaEqualEps = 1e-9
)

// ATRPeriod exposes the volatility window used across the pipeline.
func ATRPeriod() int { return atrPeriod }

// Trend recomputes the trend snapshot wholesale from the full candle history.
// Direction comes from the EMA 9/21 relation, strength from the distance of
// price to the slow EMA.
func Trend(candles []models.Candle) models.TrendSnapshot {
	sideways := models.TrendSnapshot{Direction: models.DirectionSideways, Strength: 0}

	closes := Closes(candles)
	fast := EMASeries(closes, emaFastPeriod)
	medium := EMASeries(closes, emaMediumPeriod)

	slowPeriod := emaSlowPeriod
	if len(closes) < emaSlowPeriod {
		slowPeriod = emaSlowFallback
	}
	slow := EMASeries(closes, slowPeriod)

	if fast == nil || medium == nil || slow == nil {
		return sideways
	}

	last := len(closes) - 1
	price := closes[last]
	ema9, ema21, emaSlow := fast[last], medium[last], slow[last]

	snap := models.TrendSnapshot{EMA9: ema9, EMA21: ema21, EMA200: emaSlow}

	eps := emaEqualEps * math.Max(1, price)

	switch {
	case ema9-ema21 > eps:
		snap.Direction = models.DirectionBullish
		if price > emaSlow && emaSlow > 0 {
			snap.Strength = math.Min(100, 50+(price-emaSlow)/emaSlow*500)
		} else {
			snap.Strength = 40
		}
	case ema21-ema9 > eps:
		snap.Direction = models.DirectionBearish
		if price < emaSlow && emaSlow > 0 {
			snap.Strength = math.Min(100, 50+(emaSlow-price)/emaSlow*500)
		} else {
			snap.Strength = 40
		}
	default:
		// Equal EMAs: only a fresh crossover counts as direction.
		if last >= 1 && fast[last-1] != 0 && medium[last-1] != 0 {
			switch {
			case medium[last-1]-fast[last-1] > eps:
				snap.Direction = models.DirectionBullish // golden cross
				snap.Strength = 60
				return snap
			case fast[last-1]-medium[last-1] > eps:
				snap.Direction = models.DirectionBearish // death cross
				snap.Strength = 60
				return snap
			}
		}
		snap.Direction = models.DirectionSideways
		snap.Strength = 0
	}
	return snap
}
