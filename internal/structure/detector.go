// Package structure walks candles against a classified swing sequence and
// emits Break-of-Structure (continuation) and Change-of-Character (reversal)
// events while tracking the running trend.
package structure

import (
	"smc-engine/models"
)

type breakKey struct {
	swingTime int64
	direction models.Direction
}

// Detect emits structure breaks in candle-chronological order. A swing level
// fires at most once per direction. CHOCH flips the tracked trend; BOS leaves
// it unchanged.
func Detect(candles []models.Candle, swings []models.SwingPoint, bodyCloseOnly bool) []models.StructureBreak {
	if len(candles) == 0 || len(swings) == 0 {
		return nil
	}

	currentTrend := SeedTrend(swings)
	seen := make(map[breakKey]bool)

	var breaks []models.StructureBreak
	var lastHigh, lastLow *models.SwingPoint
	next := 0 // next swing not yet behind the candle cursor

	for i, c := range candles {
		for next < len(swings) && swings[next].Time < c.Time {
			if swings[next].Kind == models.SwingHigh {
				lastHigh = &swings[next]
			} else {
				lastLow = &swings[next]
			}
			next++
		}
		if lastHigh == nil || lastLow == nil {
			continue
		}

		bullPrice, bearPrice := c.High, c.Low
		if bodyCloseOnly {
			bullPrice, bearPrice = c.Close, c.Close
		}

		if bullPrice > lastHigh.Price {
			key := breakKey{lastHigh.Time, models.DirectionBullish}
			if !seen[key] {
				seen[key] = true
				kind := models.BreakBOS
				if currentTrend == models.DirectionBearish {
					kind = models.BreakCHOCH
					currentTrend = models.DirectionBullish
				}
				breaks = append(breaks, models.StructureBreak{
					Index:       i,
					Time:        c.Time,
					Price:       bullPrice,
					Kind:        kind,
					Direction:   models.DirectionBullish,
					BrokenSwing: *lastHigh,
					BreakCandle: c,
				})
			}
		}

		if bearPrice < lastLow.Price {
			key := breakKey{lastLow.Time, models.DirectionBearish}
			if !seen[key] {
				seen[key] = true
				kind := models.BreakBOS
				if currentTrend == models.DirectionBullish {
					kind = models.BreakCHOCH
					currentTrend = models.DirectionBearish
				}
				breaks = append(breaks, models.StructureBreak{
					Index:       i,
					Time:        c.Time,
					Price:       bearPrice,
					Kind:        kind,
					Direction:   models.DirectionBearish,
					BrokenSwing: *lastLow,
					BreakCandle: c,
				})
			}
		}
	}
	return breaks
}

// SeedTrend derives the initial trend bias from the first three swing highs
// and lows: pairwise increases vote bullish, decreases vote bearish, a tie is
// neutral.
func SeedTrend(swings []models.SwingPoint) models.Direction {
	var highs, lows []models.SwingPoint
	for _, s := range swings {
		switch s.Kind {
		case models.SwingHigh:
			if len(highs) < 3 {
				highs = append(highs, s)
			}
		case models.SwingLow:
			if len(lows) < 3 {
				lows = append(lows, s)
			}
		}
	}

	bullish, bearish := 0, 0
	for i := 1; i < len(highs); i++ {
		if highs[i].Price > highs[i-1].Price {
			bullish++ // HH
		} else {
			bearish++ // LH
		}
	}
	for i := 1; i < len(lows); i++ {
		if lows[i].Price > lows[i-1].Price {
			bullish++ // HL
		} else {
			bearish++ // LL
		}
	}

	switch {
	case bullish > bearish:
		return models.DirectionBullish
	case bearish > bullish:
		return models.DirectionBearish
	default:
		return models.DirectionNeutral
	}
}
