package swing

import "smc-engine/models"

// Classify labels each swing HH/LH (highs) or HL/LL (lows) relative to the
// previous swing of the same kind. The first swing of each kind is left
// unclassified. The input is not mutated; a labeled copy is returned.
func Classify(swings []models.SwingPoint) []models.SwingPoint {
	out := make([]models.SwingPoint, len(swings))
	copy(out, swings)

	var lastHigh, lastLow *models.SwingPoint
	for i := range out {
		s := &out[i]
		switch s.Kind {
		case models.SwingHigh:
			if lastHigh != nil {
				if s.Price > lastHigh.Price {
					s.Type = models.SwingHH
				} else {
					s.Type = models.SwingLH
				}
			}
			lastHigh = s
		case models.SwingLow:
			if lastLow != nil {
				if s.Price > lastLow.Price {
					s.Type = models.SwingHL
				} else {
					s.Type = models.SwingLL
				}
			}
			lastLow = s
		}
	}
	return out
}
