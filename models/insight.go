package models

import (
	"context"
	"time"
)

// Sentiment constants as delivered by the Kol API.
const (
	SentimentBullish = "BULLISH"
	SentimentBearish = "BEARISH"
	SentimentNeutral = "NEUTRAL"
)

// MarketSentiment is the sentiment half of an enrichment response.
type MarketSentiment struct {
	Sentiment      string  `json:"sentiment"` // BULLISH, BEARISH, NEUTRAL
	Confidence     float64 `json:"confidence"`
	FearGreedIndex float64 `json:"fear_greed_index,omitempty"`
}

// TrendOutlook is the trend half of an enrichment response.
type TrendOutlook struct {
	ShortTerm string  `json:"short_term"` // UP, DOWN, SIDEWAYS
	MidTerm   string  `json:"mid_term"`
	LongTerm  string  `json:"long_term"`
	Momentum  float64 `json:"momentum"`
}

// MarketInsight bundles both enrichment answers for a symbol. Either half may
// be nil when the upstream call for it failed.
type MarketInsight struct {
	Symbol    string           `json:"symbol"`
	Sentiment *MarketSentiment `json:"sentiment"`
	Trend     *TrendOutlook    `json:"trend"`
	Timestamp time.Time        `json:"timestamp"`
}

// InsightProvider is the narrow capability interface for the external
// sentiment/trend collaborator. Implementations must be time-bounded; a nil
// insight with nil error means no enrichment is available.
type InsightProvider interface {
	FullAnalysis(ctx context.Context, symbol string) (*MarketInsight, error)
}
