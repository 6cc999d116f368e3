package portfolio

import (
	"encoding/json"
	"strings"
)

// PositionInput holds the four raw values a position is computed from.
// It is the typed result of request validation and the unit of export/import.
type PositionInput struct {
	Ticker        string  `json:"ticker" msgpack:"ticker"`
	Shares        float64 `json:"shares" msgpack:"shares"`
	PurchasePrice float64 `json:"purchase_price" msgpack:"purchase_price"`
	CurrentPrice  float64 `json:"current_price" msgpack:"current_price"`
}

// Position is a computed holding.
//
// Fields are unexported so the derived values can only come from Compute;
// every change to a holding goes through a full recompute.
type Position struct {
	ticker        string
	shares        int64
	purchasePrice float64
	currentPrice  float64
	totalValue    float64
	totalCost     float64
	gainLoss      float64
	returnPct     float64
}

// Ticker returns the upper-cased ticker
func (p Position) Ticker() string { return p.ticker }

// Shares returns the whole-number share count
func (p Position) Shares() int64 { return p.shares }

// PurchasePrice returns the per-share cost basis
func (p Position) PurchasePrice() float64 { return p.purchasePrice }

// CurrentPrice returns the per-share valuation
func (p Position) CurrentPrice() float64 { return p.currentPrice }

// TotalValue returns shares × current price
func (p Position) TotalValue() float64 { return p.totalValue }

// TotalCost returns shares × purchase price
func (p Position) TotalCost() float64 { return p.totalCost }

// GainLoss returns (current − purchase) × shares
func (p Position) GainLoss() float64 { return p.gainLoss }

// ReturnPct returns the percentage return against purchase price
func (p Position) ReturnPct() float64 { return p.returnPct }

// Input returns the raw values the position was computed from
func (p Position) Input() PositionInput {
	return PositionInput{
		Ticker:        p.ticker,
		Shares:        float64(p.shares),
		PurchasePrice: p.purchasePrice,
		CurrentPrice:  p.currentPrice,
	}
}

// matches reports whether the position belongs to ticker, ignoring case
func (p Position) matches(ticker string) bool {
	return strings.EqualFold(p.ticker, strings.TrimSpace(ticker))
}

type positionJSON struct {
	Ticker        string  `json:"ticker"`
	Shares        int64   `json:"shares"`
	PurchasePrice float64 `json:"purchase_price"`
	CurrentPrice  float64 `json:"current_price"`
	TotalValue    float64 `json:"total_value"`
	TotalCost     float64 `json:"total_cost"`
	GainLoss      float64 `json:"gain_loss"`
	ReturnPct     float64 `json:"return_pct"`
}

// MarshalJSON encodes the position in the dashboard's wire format
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(positionJSON{
		Ticker:        p.ticker,
		Shares:        p.shares,
		PurchasePrice: p.purchasePrice,
		CurrentPrice:  p.currentPrice,
		TotalValue:    p.totalValue,
		TotalCost:     p.totalCost,
		GainLoss:      p.gainLoss,
		ReturnPct:     p.returnPct,
	})
}

// Summary holds portfolio-wide totals
type Summary struct {
	TotalValue    float64 `json:"total_value"`
	TotalCost     float64 `json:"total_cost"`
	TotalGainLoss float64 `json:"total_gain_loss"`
	OverallReturn float64 `json:"overall_return"`
	NumPositions  int     `json:"num_positions"`
}

// RiskMetrics holds statistics over the per-position returns
type RiskMetrics struct {
	Volatility        float64 `json:"volatility"`
	SharpeRatio       float64 `json:"sharpe_ratio"`
	MaxGain           float64 `json:"max_gain"`
	MaxLoss           float64 `json:"max_loss"`
	AvgReturn         float64 `json:"avg_return"`
	PositivePositions int     `json:"positive_positions"`
	NegativePositions int     `json:"negative_positions"`
}
