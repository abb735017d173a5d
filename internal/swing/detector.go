// Package swing extracts and classifies local price extrema from a candle
// series. Two interchangeable strategies are provided: a fixed symmetric
// lookback window and a percentage-deviation ZigZag.
package swing

import (
	"smc-engine/models"
)

// DetectFixed scans for swing highs and lows using a symmetric lookback
// window. Candle i is a swing high iff its high strictly exceeds the high of
// every other candle in [i-lookback, i+lookback]; ties disqualify. Both
// returned lists are chronological.
func DetectFixed(candles []models.Candle, lookback int) (highs, lows []models.SwingPoint) {
	if lookback < 1 || len(candles) < 2*lookback+1 {
		return nil, nil
	}

	for i := lookback; i < len(candles)-lookback; i++ {
		isHigh, isLow := true, true
		for j := i - lookback; j <= i+lookback; j++ {
			if j == i {
				continue
			}
			if candles[j].High >= candles[i].High {
				isHigh = false
			}
			if candles[j].Low <= candles[i].Low {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}
		if isHigh {
			highs = append(highs, models.SwingPoint{
				Index:     i,
				Time:      candles[i].Time,
				Price:     candles[i].High,
				Kind:      models.SwingHigh,
				Confirmed: true,
			})
		}
		if isLow {
			lows = append(lows, models.SwingPoint{
				Index:     i,
				Time:      candles[i].Time,
				Price:     candles[i].Low,
				Kind:      models.SwingLow,
				Confirmed: true,
			})
		}
	}
	return highs, lows
}

// DetectZigZag extracts alternating pivots using a percent-deviation rule:
// a pivot of the opposite kind is confirmed once price retraces from the
// running extreme of the current leg by at least deviationPct percent of that
// extreme. The pivot of the open leg is emitted provisionally
// (Confirmed=false) and revised in place until the leg closes.
func DetectZigZag(candles []models.Candle, deviationPct float64) []models.SwingPoint {
	if len(candles) < 3 || deviationPct <= 0 {
		return nil
	}
	dev := deviationPct / 100

	var out []models.SwingPoint

	// Leg direction: 0 until the first pivot is confirmed, then +1 while
	// tracking a provisional high, -1 while tracking a provisional low.
	dir := 0
	maxIdx, minIdx := 0, 0

	for i := 1; i < len(candles); i++ {
		c := candles[i]

		switch dir {
		case 0:
			if c.High > candles[maxIdx].High {
				maxIdx = i
			}
			if c.Low < candles[minIdx].Low {
				minIdx = i
			}
			if retraceDown(candles[maxIdx].High, c.Low) >= dev {
				out = append(out, pivotAt(candles, maxIdx, models.SwingHigh, true))
				lo := lowestBetween(candles, maxIdx+1, i)
				out = append(out, pivotAt(candles, lo, models.SwingLow, false))
				dir = -1
			} else if retraceUp(candles[minIdx].Low, c.High) >= dev {
				out = append(out, pivotAt(candles, minIdx, models.SwingLow, true))
				hi := highestBetween(candles, minIdx+1, i)
				out = append(out, pivotAt(candles, hi, models.SwingHigh, false))
				dir = 1
			}
		case 1:
			// Provisional high is the last emitted pivot.
			if c.High > out[len(out)-1].Price {
				out[len(out)-1] = pivotAt(candles, i, models.SwingHigh, false)
			}
			if retraceDown(out[len(out)-1].Price, c.Low) >= dev {
				out[len(out)-1].Confirmed = true
				lo := lowestBetween(candles, out[len(out)-1].Index+1, i)
				out = append(out, pivotAt(candles, lo, models.SwingLow, false))
				dir = -1
			}
		case -1:
			if c.Low < out[len(out)-1].Price {
				out[len(out)-1] = pivotAt(candles, i, models.SwingLow, false)
			}
			if retraceUp(out[len(out)-1].Price, c.High) >= dev {
				out[len(out)-1].Confirmed = true
				hi := highestBetween(candles, out[len(out)-1].Index+1, i)
				out = append(out, pivotAt(candles, hi, models.SwingHigh, false))
				dir = 1
			}
		}
	}
	return out
}

// Detect runs the configured strategy and returns one time-ordered sequence.
func Detect(candles []models.Candle, cfg models.EngineConfig) []models.SwingPoint {
	if cfg.UseZigZag {
		return DetectZigZag(candles, cfg.ZigZagDeviationPercent)
	}
	highs, lows := DetectFixed(candles, cfg.SwingLookback)
	return Merge(highs, lows)
}

// Merge interleaves two chronological swing lists into one sequence ordered
// by time.
func Merge(highs, lows []models.SwingPoint) []models.SwingPoint {
	merged := make([]models.SwingPoint, 0, len(highs)+len(lows))
	i, j := 0, 0
	for i < len(highs) && j < len(lows) {
		if highs[i].Time <= lows[j].Time {
			merged = append(merged, highs[i])
			i++
		} else {
			merged = append(merged, lows[j])
			j++
		}
	}
	merged = append(merged, highs[i:]...)
	merged = append(merged, lows[j:]...)
	return merged
}

func pivotAt(candles []models.Candle, i int, kind models.SwingKind, confirmed bool) models.SwingPoint {
	price := candles[i].High
	if kind == models.SwingLow {
		price = candles[i].Low
	}
	return models.SwingPoint{
		Index:     i,
		Time:      candles[i].Time,
		Price:     price,
		Kind:      kind,
		Confirmed: confirmed,
	}
}

func retraceDown(fromHigh, toLow float64) float64 {
	if fromHigh <= 0 {
		return 0
	}
	return (fromHigh - toLow) / fromHigh
}

func retraceUp(fromLow, toHigh float64) float64 {
	if fromLow <= 0 {
		return 0
	}
	return (toHigh - fromLow) / fromLow
}

func lowestBetween(candles []models.Candle, from, to int) int {
	if from > to {
		return to
	}
	idx := from
	for k := from + 1; k <= to; k++ {
		if candles[k].Low < candles[idx].Low {
			idx = k
		}
	}
	return idx
}

func highestBetween(candles []models.Candle, from, to int) int {
	if from > to {
		return to
	}
	idx := from
	for k := from + 1; k <= to; k++ {
		if candles[k].High > candles[idx].High {
			idx = k
		}
	}
	return idx
}
