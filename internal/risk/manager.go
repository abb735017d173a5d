// Package risk sizes positions off account equity and validates trades
// before execution. The cap is percentage-of-equity per trade; the lot math
// works in pips so FX, metals, and crypto share one formula.
package risk

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Units per lot by account type.
const (
	lotStandard = 100000
	lotMini     = 10000
	lotMicro    = 1000
)

// Pip values per standard lot in USD.
var pipValues = map[string]float64{
	"EURUSD": 10.0,
	"GBPUSD": 10.0,
	"AUDUSD": 10.0,
	"NZDUSD": 10.0,
	"USDCHF": 10.0,
	"USDCAD": 10.0,
	"USDJPY": 9.1,
	"EURJPY": 9.1,
	"GBPJPY": 9.1,
	"XAUUSD": 10.0,
	"BTCUSD": 1.0,
	"BTCUSDT": 1.0,
	"ETHUSD": 1.0,
	"ETHUSDT": 1.0,
}

const defaultPipValue = 10.0

// PositionSize is the result of one sizing calculation.
type PositionSize struct {
	LotSize         float64 `json:"lot_size"`
	Units           int     `json:"units"`
	RiskAmount      float64 `json:"risk_amount"`
	RiskPercent     float64 `json:"risk_percent"`
	StopLossPips    float64 `json:"stop_loss_pips"`
	PotentialLoss   float64 `json:"potential_loss"`
	PotentialProfit float64 `json:"potential_profit"`
	MarginRequired  float64 `json:"margin_required"`
	IsValid         bool    `json:"is_valid"`
	Warning         string  `json:"warning,omitempty"`
}

// Validation is the pre-trade check outcome. Errors block the trade;
// warnings do not.
type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Manager holds the account parameters for sizing. Not safe for concurrent
// mutation; call UpdateEquity from the same goroutine as the calculations.
type Manager struct {
	equity             float64
	leverage           float64
	lotMultiplier      float64
	maxRiskPercent     float64
	defaultRiskPercent float64
	logger             zerolog.Logger
}

// NewManager creates a Manager. accountType is "standard", "mini", or
// "micro"; anything else falls back to standard lots.
func NewManager(equity float64, leverage int, accountType string) *Manager {
	mult := float64(lotStandard)
	switch strings.ToLower(accountType) {
	case "mini":
		mult = lotMini
	case "micro":
		mult = lotMicro
	}
	if leverage <= 0 {
		leverage = 100
	}
	return &Manager{
		equity:             equity,
		leverage:           float64(leverage),
		lotMultiplier:      mult,
		maxRiskPercent:     2.0,
		defaultRiskPercent: 1.0,
		logger:             log.With().Str("component", "risk").Logger(),
	}
}

// UpdateEquity records the account balance after a closed trade.
func (m *Manager) UpdateEquity(equity float64) {
	m.equity = equity
	m.logger.Info().Float64("equity", equity).Msg("equity updated")
}

// PipValue returns the pip value for lotSize lots of symbol in account
// currency.
func (m *Manager) PipValue(symbol string, lotSize float64) float64 {
	key := strings.ReplaceAll(strings.ToUpper(symbol), "/", "")
	base, ok := pipValues[key]
	if !ok {
		base = defaultPipValue
	}
	return base * lotSize * (m.lotMultiplier / lotStandard)
}

// CalculatePips converts the entry-to-stop distance into pips using the
// symbol's pip size.
func CalculatePips(symbol string, entry, stop float64) float64 {
	return math.Abs(entry-stop) / pipSize(symbol)
}

func pipSize(symbol string) float64 {
	s := strings.ToUpper(symbol)
	switch {
	case strings.Contains(s, "JPY"):
		return 0.01
	case strings.Contains(s, "BTC"), strings.Contains(s, "ETH"):
		return 1.0
	case strings.Contains(s, "XAU"):
		return 0.1
	default:
		return 0.0001
	}
}

// CalculatePositionSize sizes a position so the stop-out loses riskPercent of
// equity. riskPercent <= 0 selects the default; anything above the maximum is
// clamped with a warning.
func (m *Manager) CalculatePositionSize(symbol string, entry, stop, takeProfit, riskPercent float64) PositionSize {
	var warning string
	if riskPercent <= 0 {
		riskPercent = m.defaultRiskPercent
	}
	if riskPercent > m.maxRiskPercent {
		warning = fmt.Sprintf("risk %.2f%% exceeds maximum %.2f%%, clamped", riskPercent, m.maxRiskPercent)
		m.logger.Warn().Msg(warning)
		riskPercent = m.maxRiskPercent
	}

	riskAmount := m.equity * riskPercent / 100
	slPips := CalculatePips(symbol, entry, stop)
	if slPips <= 0 {
		return PositionSize{
			RiskAmount:  riskAmount,
			RiskPercent: riskPercent,
			Warning:     "invalid stop loss distance",
		}
	}

	pipValuePerLot := m.PipValue(symbol, 1.0)
	lotSize := riskAmount / (slPips * pipValuePerLot)
	units := int(lotSize * m.lotMultiplier)
	marginRequired := float64(units) * entry / m.leverage
	tpPips := CalculatePips(symbol, entry, takeProfit)

	result := PositionSize{
		LotSize:         lotSize,
		Units:           units,
		RiskAmount:      riskAmount,
		RiskPercent:     riskPercent,
		StopLossPips:    slPips,
		PotentialLoss:   slPips * pipValuePerLot * lotSize,
		PotentialProfit: tpPips * pipValuePerLot * lotSize,
		MarginRequired:  marginRequired,
		IsValid:         true,
		Warning:         warning,
	}

	if marginRequired > m.equity {
		result.IsValid = false
		result.Warning = fmt.Sprintf("margin required (%.2f) exceeds equity (%.2f)", marginRequired, m.equity)
		m.logger.Error().Msg(result.Warning)
	}
	return result
}

// ValidateTrade runs the pre-execution checks on an already-sized trade.
func (m *Manager) ValidateTrade(symbol string, entry, stop, takeProfit, lotSize float64) Validation {
	var v Validation

	units := int(lotSize * m.lotMultiplier)
	marginRequired := float64(units) * entry / m.leverage
	switch {
	case marginRequired > m.equity*0.9:
		v.Errors = append(v.Errors, fmt.Sprintf("margin (%.2f) exceeds 90%% of equity", marginRequired))
	case marginRequired > m.equity*0.5:
		v.Warnings = append(v.Warnings, fmt.Sprintf("high margin usage: %.1f%%", marginRequired/m.equity*100))
	}

	slPips := CalculatePips(symbol, entry, stop)
	if slPips < 5 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("stop very close (%.1f pips), watch the spread", slPips))
	}

	riskAmount := slPips * m.PipValue(symbol, lotSize)
	if m.equity > 0 {
		if riskPercent := riskAmount / m.equity * 100; riskPercent > m.maxRiskPercent {
			v.Errors = append(v.Errors, fmt.Sprintf("risk (%.2f%%) exceeds maximum (%.2f%%)", riskPercent, m.maxRiskPercent))
		}
	}

	if slPips > 0 {
		if rrr := CalculatePips(symbol, entry, takeProfit) / slPips; rrr < 1 {
			v.Warnings = append(v.Warnings, fmt.Sprintf("low risk/reward ratio (%.2f)", rrr))
		}
	}

	v.Valid = len(v.Errors) == 0
	return v
}

// AdjustForVolatility scales a lot size by the current-to-average volatility
// ratio: shrink in rough markets, grow slightly in quiet ones.
func AdjustForVolatility(baseSize, volatilityRatio float64) float64 {
	if volatilityRatio > 1.5 {
		return baseSize / volatilityRatio
	}
	if volatilityRatio > 0 && volatilityRatio < 0.7 {
		return baseSize * 1.2
	}
	return baseSize
}
