package structure

import (
	"testing"

	"smc-engine/models"
)

func TestSeedTrend(t *testing.T) {
	tests := []struct {
		name   string
		swings []models.SwingPoint
		want   models.Direction
	}{
		{
			name: "rising highs and lows",
			swings: []models.SwingPoint{
				{Time: 1, Price: 10, Kind: models.SwingHigh},
				{Time: 2, Price: 5, Kind: models.SwingLow},
				{Time: 3, Price: 12, Kind: models.SwingHigh},
				{Time: 4, Price: 7, Kind: models.SwingLow},
				{Time: 5, Price: 13, Kind: models.SwingHigh},
				{Time: 6, Price: 8, Kind: models.SwingLow},
			},
			want: models.DirectionBullish,
		},
		{
			name: "falling highs and lows",
			swings: []models.SwingPoint{
				{Time: 1, Price: 13, Kind: models.SwingHigh},
				{Time: 2, Price: 8, Kind: models.SwingLow},
				{Time: 3, Price: 12, Kind: models.SwingHigh},
				{Time: 4, Price: 7, Kind: models.SwingLow},
			},
			want: models.DirectionBearish,
		},
		{
			name:   "no swings",
			swings: nil,
			want:   models.DirectionNeutral,
		},
		{
			name: "balanced votes",
			swings: []models.SwingPoint{
				{Time: 1, Price: 10, Kind: models.SwingHigh},
				{Time: 2, Price: 12, Kind: models.SwingHigh}, // HH
				{Time: 3, Price: 7, Kind: models.SwingLow},
				{Time: 4, Price: 6, Kind: models.SwingLow}, // LL
			},
			want: models.DirectionNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeedTrend(tt.swings); got != tt.want {
				t.Errorf("SeedTrend() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A bullish break against a bearish trend is a CHOCH, and the same swing
// level must not fire twice in the same direction.
func TestDetectCHOCHFiresOnce(t *testing.T) {
	swings := []models.SwingPoint{
		{Index: 0, Time: 10, Price: 112, Kind: models.SwingHigh},
		{Index: 1, Time: 15, Price: 100, Kind: models.SwingLow},
		{Index: 2, Time: 20, Price: 110, Kind: models.SwingHigh}, // LH
		{Index: 3, Time: 25, Price: 98, Kind: models.SwingLow},   // LL -> bearish seed
	}
	candles := []models.Candle{
		{Time: 30, Open: 110.5, High: 111.5, Low: 110, Close: 111},
		{Time: 31, Open: 111, High: 112.5, Low: 110.8, Close: 112},
	}

	breaks := Detect(candles, swings, true)

	if len(breaks) != 1 {
		t.Fatalf("expected exactly 1 break, got %d: %+v", len(breaks), breaks)
	}
	b := breaks[0]
	if b.Kind != models.BreakCHOCH {
		t.Errorf("kind = %s, want CHOCH", b.Kind)
	}
	if b.Direction != models.DirectionBullish {
		t.Errorf("direction = %s, want bullish", b.Direction)
	}
	if b.BrokenSwing.Time != 20 {
		t.Errorf("broken swing time = %d, want 20", b.BrokenSwing.Time)
	}
	if b.Time != 30 {
		t.Errorf("break time = %d, want 30 (first breaking candle)", b.Time)
	}
}

func TestDetectBOSThenReversal(t *testing.T) {
	swings := []models.SwingPoint{
		{Index: 0, Time: 5, Price: 90, Kind: models.SwingLow},
		{Index: 1, Time: 10, Price: 100, Kind: models.SwingHigh},
		{Index: 2, Time: 15, Price: 95, Kind: models.SwingLow},   // HL
		{Index: 3, Time: 20, Price: 105, Kind: models.SwingHigh}, // HH -> bullish seed
	}
	candles := []models.Candle{
		{Time: 30, Open: 105, High: 106.5, Low: 104.5, Close: 106}, // breaks 105 with trend
		{Time: 40, Open: 96, High: 96.5, Low: 93.5, Close: 94},     // breaks 95 against trend
	}

	breaks := Detect(candles, swings, true)
	if len(breaks) != 2 {
		t.Fatalf("expected 2 breaks, got %d: %+v", len(breaks), breaks)
	}
	if breaks[0].Kind != models.BreakBOS || breaks[0].Direction != models.DirectionBullish {
		t.Errorf("first break = %s/%s, want BOS/bullish", breaks[0].Kind, breaks[0].Direction)
	}
	if breaks[1].Kind != models.BreakCHOCH || breaks[1].Direction != models.DirectionBearish {
		t.Errorf("second break = %s/%s, want CHOCH/bearish", breaks[1].Kind, breaks[1].Direction)
	}
}

// With bodyCloseOnly off the wick is enough to break a level.
func TestDetectWickBreak(t *testing.T) {
	swings := []models.SwingPoint{
		{Time: 5, Price: 90, Kind: models.SwingLow},
		{Time: 10, Price: 100, Kind: models.SwingHigh},
	}
	candles := []models.Candle{
		{Time: 20, Open: 99, High: 100.5, Low: 98.5, Close: 99.5}, // wick above 100, body below
	}

	if got := Detect(candles, swings, true); len(got) != 0 {
		t.Errorf("body-close mode must ignore wick break, got %+v", got)
	}
	got := Detect(candles, swings, false)
	if len(got) != 1 || got[0].Direction != models.DirectionBullish {
		t.Fatalf("wick mode must break, got %+v", got)
	}
	if got[0].Price != 100.5 {
		t.Errorf("break price = %.2f, want the wick 100.50", got[0].Price)
	}
}

func TestDetectRequiresBothSwings(t *testing.T) {
	swings := []models.SwingPoint{{Time: 5, Price: 100, Kind: models.SwingHigh}}
	candles := []models.Candle{{Time: 10, Open: 101, High: 102, Low: 100.5, Close: 101.5}}

	if got := Detect(candles, swings, true); len(got) != 0 {
		t.Errorf("candle without a preceding swing low must be skipped, got %+v", got)
	}
}

func TestDetectBreakUniqueness(t *testing.T) {
	// Long chop around a single swing pair: repeated closes through the same
	// levels must still produce at most one break per (swing, direction).
	swings := []models.SwingPoint{
		{Time: 1, Price: 95, Kind: models.SwingLow},
		{Time: 2, Price: 105, Kind: models.SwingHigh},
	}
	var candles []models.Candle
	prices := []float64{106, 94, 107, 93, 108, 92}
	for i, p := range prices {
		candles = append(candles, models.Candle{Time: int64(10 + i), Open: p, High: p, Low: p, Close: p})
	}

	breaks := Detect(candles, swings, true)

	type key struct {
		t   int64
		dir models.Direction
	}
	seen := map[key]int{}
	for _, b := range breaks {
		seen[key{b.BrokenSwing.Time, b.Direction}]++
	}
	for k, n := range seen {
		if n > 1 {
			t.Errorf("swing %d broken %d times in direction %s", k.t, n, k.dir)
		}
	}
	if len(breaks) != 2 {
		t.Errorf("expected 2 breaks (one per level/direction), got %d", len(breaks))
	}
}
