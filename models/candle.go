package models

import "fmt"

// Candle represents a single price candle
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume,omitempty"`
}

// ValidateCandles checks the input contract for a candle series:
// ascending unique timestamps and low <= open/close <= high.
// The engine fails fast on malformed input instead of producing a
// misleading signal.
func ValidateCandles(candles []Candle) error {
	for i, c := range candles {
		if c.Low > c.Open || c.Low > c.Close || c.High < c.Open || c.High < c.Close {
			return fmt.Errorf("candle %d (t=%d): OHLC out of range (low=%.8f high=%.8f open=%.8f close=%.8f)",
				i, c.Time, c.Low, c.High, c.Open, c.Close)
		}
		if c.Volume < 0 {
			return fmt.Errorf("candle %d (t=%d): negative volume", i, c.Time)
		}
		if i > 0 && c.Time <= candles[i-1].Time {
			return fmt.Errorf("candle %d (t=%d): timestamps must be strictly ascending", i, c.Time)
		}
	}
	return nil
}
