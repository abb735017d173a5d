package models

// EngineConfig holds the collaborator-supplied analysis options.
type EngineConfig struct {
	Symbol                 string  `json:"symbol"`
	Timeframe              string  `json:"timeframe"`
	SwingLookback          int     `json:"swing_lookback"`           // default 5
	BodyCloseOnly          bool    `json:"body_close_only"`          // default true
	ZigZagDeviationPercent float64 `json:"zigzag_deviation_percent"` // default 0.5
	UseZigZag              bool    `json:"use_zigzag"`               // default false
	AIEnabled              bool    `json:"ai_enabled"`
}

// DefaultEngineConfig returns the documented defaults for a symbol/timeframe.
func DefaultEngineConfig(symbol, timeframe string) EngineConfig {
	return EngineConfig{
		Symbol:                 symbol,
		Timeframe:              timeframe,
		SwingLookback:          5,
		BodyCloseOnly:          true,
		ZigZagDeviationPercent: 0.5,
		UseZigZag:              false,
		AIEnabled:              true,
	}
}
