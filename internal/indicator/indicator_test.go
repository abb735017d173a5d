package indicator

import (
	"math"
	"testing"

	"smc-engine/models"
)

func candlesFromCloses(closes []float64) []models.Candle {
	candles := make([]models.Candle, len(closes))
	for i, c := range closes {
		candles[i] = models.Candle{Time: int64(i + 1), Open: c, High: c, Low: c, Close: c}
	}
	return candles
}

func repeatFloat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestEMASeriesSeedAndRecursion(t *testing.T) {
	// period 3 over 1..5: SMA seed 2, then 3 and 4 with alpha 0.5.
	ema := EMASeries([]float64{1, 2, 3, 4, 5}, 3)
	if ema == nil {
		t.Fatal("expected a series")
	}
	want := []float64{0, 0, 2, 3, 4}
	if len(ema) != len(want) {
		t.Fatalf("length = %d, want %d", len(ema), len(want))
	}
	for i := range want {
		if math.Abs(ema[i]-want[i]) > 1e-12 {
			t.Errorf("ema[%d] = %v, want %v", i, ema[i], want[i])
		}
	}
}

func TestEMASeriesConstantInput(t *testing.T) {
	ema := EMASeries(repeatFloat(100, 30), 9)
	if ema == nil {
		t.Fatal("expected a series")
	}
	for i := 8; i < len(ema); i++ {
		if math.Abs(ema[i]-100) > 1e-9 {
			t.Fatalf("ema[%d] = %v, want 100", i, ema[i])
		}
	}
	for i := 0; i < 8; i++ {
		if ema[i] != 0 {
			t.Fatalf("ema[%d] = %v, want 0 before the seed", i, ema[i])
		}
	}
}

func TestEMASeriesInsufficientData(t *testing.T) {
	if got := EMASeries([]float64{1, 2}, 3); got != nil {
		t.Errorf("expected nil for short input, got %v", got)
	}
	if got := EMASeries([]float64{1, 2, 3}, 0); got != nil {
		t.Errorf("expected nil for non-positive period, got %v", got)
	}
}

func TestATR(t *testing.T) {
	candles := make([]models.Candle, 15)
	for i := range candles {
		candles[i] = models.Candle{Time: int64(i + 1), Open: 100, High: 105, Low: 95, Close: 100}
	}
	// Every true range is the 10-point high-low span.
	if got := ATR(candles, 14); math.Abs(got-10) > 1e-12 {
		t.Errorf("ATR = %v, want 10", got)
	}
}

func TestATRInsufficientData(t *testing.T) {
	candles := candlesFromCloses(repeatFloat(100, 14))
	if got := ATR(candles, 14); got != 0 {
		t.Errorf("ATR = %v, want 0 with only period candles", got)
	}
}

func TestTrendBullish(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 50 + 0.1*float64(i)
	}
	snap := Trend(candlesFromCloses(closes))

	if snap.Direction != models.DirectionBullish {
		t.Fatalf("direction = %s, want bullish", snap.Direction)
	}
	if snap.Strength < 50 {
		t.Errorf("strength = %v, want >= 50 with price above the slow EMA", snap.Strength)
	}
	if snap.EMA9 <= snap.EMA21 {
		t.Errorf("ema9 %v must exceed ema21 %v on a rising series", snap.EMA9, snap.EMA21)
	}
}

func TestTrendBearish(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100 - 0.1*float64(i)
	}
	snap := Trend(candlesFromCloses(closes))

	if snap.Direction != models.DirectionBearish {
		t.Fatalf("direction = %s, want bearish", snap.Direction)
	}
	if snap.Strength < 50 {
		t.Errorf("strength = %v, want >= 50 with price below the slow EMA", snap.Strength)
	}
}

func TestTrendSidewaysOnFlatSeries(t *testing.T) {
	snap := Trend(candlesFromCloses(repeatFloat(100, 60)))

	if snap.Direction != models.DirectionSideways {
		t.Fatalf("direction = %s, want sideways", snap.Direction)
	}
	if snap.Strength != 0 {
		t.Errorf("strength = %v, want 0", snap.Strength)
	}
}

func TestTrendInsufficientData(t *testing.T) {
	snap := Trend(candlesFromCloses(repeatFloat(100, 5)))
	if snap.Direction != models.DirectionSideways || snap.Strength != 0 {
		t.Errorf("short history must report sideways/0, got %s/%v", snap.Direction, snap.Strength)
	}
}

func TestTrendSlowFallback(t *testing.T) {
	// 60 candles cannot fill a 200 EMA; the snapshot must still carry a slow
	// value from the fallback window.
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + 0.5*float64(i)
	}
	snap := Trend(candlesFromCloses(closes))
	if snap.EMA200 == 0 {
		t.Error("slow EMA must fall back when history is short")
	}
	if snap.Direction != models.DirectionBullish {
		t.Errorf("direction = %s, want bullish", snap.Direction)
	}
}
