package models

// SwingKind distinguishes swing highs from swing lows.
type SwingKind string

const (
	SwingHigh SwingKind = "high"
	SwingLow  SwingKind = "low"
)

// SwingType classifies a swing relative to the previous swing of the same kind.
type SwingType string

const (
	SwingHH SwingType = "HH" // Higher High
	SwingHL SwingType = "HL" // Higher Low
	SwingLH SwingType = "LH" // Lower High
	SwingLL SwingType = "LL" // Lower Low
)

// SwingPoint is a local price extremum. Type stays empty until a prior swing
// of the same kind exists. Confirmed is false for a ZigZag pivot whose leg
// has not closed yet.
type SwingPoint struct {
	Index     int       `json:"index"`
	Time      int64     `json:"time"`
	Price     float64   `json:"price"`
	Kind      SwingKind `json:"kind"`
	Type      SwingType `json:"swing_type,omitempty"`
	Confirmed bool      `json:"confirmed"`
}

// Direction is the direction of a trend or a structure break.
type Direction string

const (
	DirectionBullish  Direction = "bullish"
	DirectionBearish  Direction = "bearish"
	DirectionNeutral  Direction = "neutral"
	DirectionSideways Direction = "sideways"
)

// BreakKind distinguishes trend continuation from trend reversal breaks.
type BreakKind string

const (
	BreakBOS   BreakKind = "BOS"   // Break of Structure (continuation)
	BreakCHOCH BreakKind = "CHOCH" // Change of Character (reversal)
)

// StructureBreak records a candle pushing through a prior swing level.
// BrokenSwing and BreakCandle are value copies; a break never holds a live
// reference into another stage's output.
type StructureBreak struct {
	Index       int        `json:"index"`
	Time        int64      `json:"time"`
	Price       float64    `json:"price"`
	Kind        BreakKind  `json:"kind"`
	Direction   Direction  `json:"direction"`
	BrokenSwing SwingPoint `json:"broken_swing"`
	BreakCandle Candle     `json:"break_candle"`
}

// ZoneKind distinguishes demand (buy-side) from supply (sell-side) zones.
type ZoneKind string

const (
	ZoneDemand ZoneKind = "demand"
	ZoneSupply ZoneKind = "supply"
)

// ZoneStatus is the zone lifecycle state. Mitigated is terminal.
type ZoneStatus string

const (
	ZoneFresh     ZoneStatus = "fresh"
	ZoneTested    ZoneStatus = "tested"
	ZoneMitigated ZoneStatus = "mitigated"
)

// ZoneStrength grades the impulse that created the zone.
type ZoneStrength string

const (
	ZoneStrong   ZoneStrength = "strong"
	ZoneModerate ZoneStrength = "moderate"
	ZoneWeak     ZoneStrength = "weak"
)

// Zone is a supply/demand price band. Top >= Bottom always holds.
// MitigatedAt is zero until the zone is mitigated, then set exactly once.
type Zone struct {
	ID          string       `json:"id"`
	Kind        ZoneKind     `json:"kind"`
	Top         float64      `json:"top"`
	Bottom      float64      `json:"bottom"`
	StartTime   int64        `json:"start_time"`
	Status      ZoneStatus   `json:"status"`
	Strength    ZoneStrength `json:"strength"`
	TouchCount  int          `json:"touch_count"`
	CreatedAt   int64        `json:"created_at"`
	MitigatedAt int64        `json:"mitigated_at,omitempty"`
}
