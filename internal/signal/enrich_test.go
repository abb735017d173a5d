package signal

import (
	"testing"

	"smc-engine/models"
)

func TestConfidenceBoost(t *testing.T) {
	tests := []struct {
		name   string
		action models.SignalAction
		ins    models.MarketInsight
		want   float64
	}{
		{
			name:   "aligned sentiment and trend",
			action: models.ActionBuy,
			ins: models.MarketInsight{
				Sentiment: &models.MarketSentiment{Sentiment: models.SentimentBullish, Confidence: 80},
				Trend:     &models.TrendOutlook{ShortTerm: "UP"},
			},
			want: 18, // 80*0.1 + 10
		},
		{
			name:   "boost is capped",
			action: models.ActionSell,
			ins: models.MarketInsight{
				Sentiment: &models.MarketSentiment{Sentiment: models.SentimentBearish, Confidence: 100},
				Trend:     &models.TrendOutlook{ShortTerm: "DOWN"},
			},
			want: 20, // 10 + 10 clamps at the cap
		},
		{
			name:   "opposed sentiment and trend",
			action: models.ActionBuy,
			ins: models.MarketInsight{
				Sentiment: &models.MarketSentiment{Sentiment: models.SentimentBearish, Confidence: 90},
				Trend:     &models.TrendOutlook{ShortTerm: "DOWN"},
			},
			want: -15, // -10 - 5
		},
		{
			name:   "neutral sentiment counts as opposed",
			action: models.ActionBuy,
			ins: models.MarketInsight{
				Sentiment: &models.MarketSentiment{Sentiment: models.SentimentNeutral, Confidence: 50},
			},
			want: -10,
		},
		{
			name:   "sideways short term opposes both directions",
			action: models.ActionSell,
			ins: models.MarketInsight{
				Trend: &models.TrendOutlook{ShortTerm: "SIDEWAYS"},
			},
			want: -5,
		},
		{
			name:   "empty insight",
			action: models.ActionBuy,
			ins:    models.MarketInsight{},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConfidenceBoost(tt.action, &tt.ins); got != tt.want {
				t.Errorf("ConfidenceBoost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFavorable(t *testing.T) {
	tests := []struct {
		name string
		ins  *models.MarketInsight
		want bool
	}{
		{"nil insight", nil, true},
		{
			"mid-range fear greed",
			&models.MarketInsight{Sentiment: &models.MarketSentiment{FearGreedIndex: 55}},
			true,
		},
		{
			"extreme fear",
			&models.MarketInsight{Sentiment: &models.MarketSentiment{FearGreedIndex: 12}},
			false,
		},
		{
			"extreme greed",
			&models.MarketInsight{Sentiment: &models.MarketSentiment{FearGreedIndex: 91}},
			false,
		},
		{
			"missing fear greed reading",
			&models.MarketInsight{Sentiment: &models.MarketSentiment{Sentiment: models.SentimentBullish}},
			true,
		},
		{
			"double sideways outlook",
			&models.MarketInsight{Trend: &models.TrendOutlook{ShortTerm: "SIDEWAYS", MidTerm: "SIDEWAYS"}},
			false,
		},
		{
			"single sideways outlook",
			&models.MarketInsight{Trend: &models.TrendOutlook{ShortTerm: "SIDEWAYS", MidTerm: "UP"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Favorable(tt.ins); got != tt.want {
				t.Errorf("Favorable() = %v, want %v", got, tt.want)
			}
		})
	}
}
