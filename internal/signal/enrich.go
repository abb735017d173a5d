package signal

import (
	"math"

	"smc-engine/models"
)

const maxBoost = 20.0

// ConfidenceBoost scores an enrichment response against the signal direction.
// Aligned sentiment contributes a tenth of its confidence, opposed sentiment
// costs 10; an aligned short-term trend adds 10, an opposed one costs 5. The
// total is capped to [-20, +20].
func ConfidenceBoost(action models.SignalAction, ins *models.MarketInsight) float64 {
	var boost float64

	if s := ins.Sentiment; s != nil {
		switch {
		case action == models.ActionBuy && s.Sentiment == models.SentimentBullish:
			boost += s.Confidence * 0.1
		case action == models.ActionSell && s.Sentiment == models.SentimentBearish:
			boost += s.Confidence * 0.1
		default:
			boost -= 10
		}
	}

	if t := ins.Trend; t != nil {
		switch {
		case action == models.ActionBuy && t.ShortTerm == "UP":
			boost += 10
		case action == models.ActionSell && t.ShortTerm == "DOWN":
			boost += 10
		default:
			boost -= 5
		}
	}

	return math.Max(-maxBoost, math.Min(maxBoost, boost))
}

// Favorable reports whether market conditions allow acting on a signal:
// extreme fear/greed readings and a double-sideways trend outlook are
// unfavorable. A nil or partial insight is favorable by default.
func Favorable(ins *models.MarketInsight) bool {
	if ins == nil {
		return true
	}
	if s := ins.Sentiment; s != nil && s.FearGreedIndex != 0 {
		if s.FearGreedIndex < 20 || s.FearGreedIndex > 80 {
			return false
		}
	}
	if t := ins.Trend; t != nil {
		if t.ShortTerm == "SIDEWAYS" && t.MidTerm == "SIDEWAYS" {
			return false
		}
	}
	return true
}
