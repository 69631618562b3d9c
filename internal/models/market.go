package models

import "time"

// MarketSnapshot holds the cached market data for one FII ticker.
// All fields are optional in the sense that absence degrades valuation to
// cost basis rather than producing an error.
type MarketSnapshot struct {
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name,omitempty"`
	CurrentPrice float64 `json:"current_price"`
	DY           float64 `json:"dy"`  // trailing-12-month dividend yield, percent
	PVP          float64 `json:"pvp"` // price / book value
	Segment      string  `json:"segment,omitempty"`

	PriceHistory     []PriceBar      `json:"price_history,omitempty"`     // ascending by date
	DividendsHistory []DividendEvent `json:"dividends_history,omitempty"` // ascending by ex-date

	// Per-component freshness timestamps
	QuoteUpdatedAt        time.Time `json:"quote_updated_at"`
	FundamentalsUpdatedAt time.Time `json:"fundamentals_updated_at"`
	DividendsUpdatedAt    time.Time `json:"dividends_updated_at"`

	// LastError records the most recent fetch failure for UI display.
	// Stale-but-valid data above is never cleared on failure.
	LastError string `json:"last_error,omitempty"`
}

// PriceBar is a single close price observation.
type PriceBar struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// DividendEvent is one historical dividend announcement for a fund.
type DividendEvent struct {
	ExDate         time.Time `json:"ex_date"`
	PaymentDate    time.Time `json:"payment_date"`
	AmountPerShare float64   `json:"amount_per_share"`
}

// NewsItem is a single FII news headline.
type NewsItem struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Preferences is the durable user configuration blob.
type Preferences struct {
	BrapiToken      string `json:"brapi_token,omitempty"`
	DisplayCurrency string `json:"display_currency,omitempty"` // default "BRL"
	DemoMode        bool   `json:"demo_mode"`                  // sample data; disables dividend projection
}

// AnalystAnswer is the AI analyst response for one asset question.
// Purely advisory; never feeds back into accounting state.
type AnalystAnswer struct {
	Ticker      string        `json:"ticker"`
	Question    string        `json:"question"`
	Answer      string        `json:"answer"`
	Model       string        `json:"model,omitempty"`
	Stats       *AnalystStats `json:"stats,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// AnalystStats carries token usage when the backend reports it.
type AnalystStats struct {
	PromptTokens int32 `json:"prompt_tokens,omitempty"`
	OutputTokens int32 `json:"output_tokens,omitempty"`
}
