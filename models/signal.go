package models

import "time"

// TrendSnapshot is the wholesale-recomputed trend state for one analysis call.
type TrendSnapshot struct {
	Direction Direction `json:"direction"`
	Strength  float64   `json:"strength"` // 0-100
	EMA9      float64   `json:"ema9"`
	EMA21     float64   `json:"ema21"`
	EMA200    float64   `json:"ema200"`
}

// SignalAction is the final trading decision.
type SignalAction string

const (
	ActionBuy  SignalAction = "BUY"
	ActionSell SignalAction = "SELL"
	ActionWait SignalAction = "WAIT"
)

// Signal is the final actionable output of one analysis run. Price levels are
// nil when Action is WAIT. Never mutated after construction.
type Signal struct {
	Market      string       `json:"market"`
	Timeframe   string       `json:"timeframe"`
	Action      SignalAction `json:"action"`
	Entry       *float64     `json:"entry"`
	StopLoss    *float64     `json:"stop_loss"`
	TakeProfit1 *float64     `json:"take_profit_1"`
	TakeProfit2 *float64     `json:"take_profit_2"`
	RiskReward  float64      `json:"risk_reward"`
	Confidence  float64      `json:"confidence"` // 0-100
	Timestamp   time.Time    `json:"timestamp"`
	Reason      string       `json:"reason"`
}

// IsActionable reports whether the signal carries tradeable levels.
func (s Signal) IsActionable() bool {
	return s.Action == ActionBuy || s.Action == ActionSell
}
