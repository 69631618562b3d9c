package models

import "time"

// DefaultSegment is assigned to assets whose fund segment is unknown.
const DefaultSegment = "Outros"

// EvolutionAllTypes is the aggregate series key in evolution results.
const EvolutionAllTypes = "all_types"

// Position is the accounting state of one ticker: total quantity held and
// total cost basis under the average cost method.
type Position struct {
	Quantity  float64 `json:"quantity"`
	TotalCost float64 `json:"total_cost"`
}

// AvgPrice returns the average cost per share, zero for an empty position.
func (p Position) AvgPrice() float64 {
	if p.Quantity <= 0 {
		return 0
	}
	return p.TotalCost / p.Quantity
}

// Asset is a valued open position: accounting state joined with the latest
// market snapshot and derived per-asset metrics.
type Asset struct {
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name,omitempty"`
	Segment      string  `json:"segment"`
	Quantity     float64 `json:"quantity"`
	AvgPrice     float64 `json:"avg_price"`
	Invested     float64 `json:"invested"` // remaining cost basis
	CurrentPrice float64 `json:"current_price"`
	MarketValue  float64 `json:"market_value"`

	DY  float64 `json:"dy"`
	PVP float64 `json:"pvp"`

	YieldOnCost           float64 `json:"yield_on_cost"`
	UnrealizedGain        float64 `json:"unrealized_gain"`
	UnrealizedGainPct     float64 `json:"unrealized_gain_pct"`
	ProjectedAnnualIncome float64 `json:"projected_annual_income"`

	PriceHistory     []PriceBar      `json:"price_history,omitempty"`
	DividendsHistory []DividendEvent `json:"dividends_history,omitempty"`

	PriceIsEstimate bool      `json:"price_is_estimate,omitempty"` // true when valued at cost basis
	LastUpdated     time.Time `json:"last_updated,omitempty"`
}

// Dividend is one attributed dividend receipt: shares held on the ex-date
// times the per-share amount, dated by payment date.
type Dividend struct {
	Ticker         string    `json:"ticker"`
	PaymentDate    time.Time `json:"payment_date"`
	AmountPerShare float64   `json:"amount_per_share"`
	Quantity       float64   `json:"quantity"`
	Total          float64   `json:"total"`
	Projected      bool      `json:"projected,omitempty"`
}

// MonthlyIncome is total dividend income for one calendar month,
// labeled "jan/24" style.
type MonthlyIncome struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// EvolutionPoint is the portfolio state at one month end,
// labeled "01/24" style.
type EvolutionPoint struct {
	Month       string  `json:"month"`
	Invested    float64 `json:"invested"`
	MarketValue float64 `json:"market_value"`
}

// PortfolioEvolution maps series keys (segment names plus EvolutionAllTypes)
// to chronological month-end points.
type PortfolioEvolution map[string][]EvolutionPoint

// PortfolioSummary is the headline aggregate over all open positions.
type PortfolioSummary struct {
	TotalInvested     float64 `json:"total_invested"`
	MarketValue       float64 `json:"market_value"`
	UnrealizedGain    float64 `json:"unrealized_gain"`
	UnrealizedGainPct float64 `json:"unrealized_gain_pct"`
	MonthlyIncomeEst  float64 `json:"monthly_income_est"`
	AvgYield          float64 `json:"avg_yield"` // value-weighted DY, percent
	AssetCount        int     `json:"asset_count"`
}
