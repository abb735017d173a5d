// Package zone identifies supply/demand zones from sharp directional moves
// and tracks their lifecycle (fresh, tested, mitigated) as later price
// revisits them.
package zone

import (
	"github.com/google/uuid"

	"smc-engine/models"
)

const (
	// A >1% move off a candle open qualifies as a zone-forming impulse;
	// 2% and up grades it strong.
	impulseThreshold = 0.01
	strongThreshold  = 0.02

	maxZones = 10
)

// Detect returns the most recent non-mitigated zones, capped at maxZones, in
// chronological order.
func Detect(candles []models.Candle) []models.Zone {
	all := DetectAll(candles)

	var active []models.Zone
	for _, z := range all {
		if z.Status != models.ZoneMitigated {
			active = append(active, z)
		}
	}
	if len(active) > maxZones {
		active = active[len(active)-maxZones:]
	}
	return active
}

// DetectAll generates every zone candidate and replays the remaining candles
// over each one to settle its status. Mitigation is terminal: once a close
// breaks the defensive boundary the zone stops updating.
func DetectAll(candles []models.Candle) []models.Zone {
	var zones []models.Zone
	var formed []int // index of the zone-forming candle, parallel to zones

	for i := 3; i < len(candles)-1; i++ {
		open := candles[i].Open
		if open <= 0 {
			continue
		}
		move := (candles[i+1].Close - open) / open

		if move > impulseThreshold {
			zones = append(zones, newZone(models.ZoneDemand, open, candles[i].Low, candles[i], move))
			formed = append(formed, i)
		} else if -move > impulseThreshold {
			zones = append(zones, newZone(models.ZoneSupply, candles[i].High, open, candles[i], -move))
			formed = append(formed, i)
		}
	}

	for zi := range zones {
		// Revisits start after the zone-forming pair; the impulse candle
		// itself does not count as a touch.
		trackZone(&zones[zi], candles[formed[zi]+2:])
	}
	return zones
}

func newZone(kind models.ZoneKind, top, bottom float64, origin models.Candle, move float64) models.Zone {
	strength := models.ZoneModerate
	if move >= strongThreshold {
		strength = models.ZoneStrong
	}
	return models.Zone{
		ID:        uuid.NewString(),
		Kind:      kind,
		Top:       top,
		Bottom:    bottom,
		StartTime: origin.Time,
		Status:    models.ZoneFresh,
		Strength:  strength,
		CreatedAt: origin.Time,
	}
}

// trackZone walks candles after the zone-forming pair. Any overlap marks the
// zone tested and counts a touch; a close through the defensive boundary
// mitigates it.
func trackZone(z *models.Zone, candles []models.Candle) {
	for _, c := range candles {
		if c.Low > z.Top || c.High < z.Bottom {
			continue
		}
		z.TouchCount++
		z.Status = models.ZoneTested

		mitigated := (z.Kind == models.ZoneDemand && c.Close < z.Bottom) ||
			(z.Kind == models.ZoneSupply && c.Close > z.Top)
		if mitigated {
			z.Status = models.ZoneMitigated
			z.MitigatedAt = c.Time
			return
		}
	}
}
