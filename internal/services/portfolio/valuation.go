package portfolio

import (
	"sort"

	"github.com/brfintools/fiitrack/internal/models"
)

// BuildAssets joins open positions with their market snapshots and computes
// per-asset metrics. Tickers without a snapshot are valued at cost basis so
// the portfolio never shows a hole while market data is unavailable.
// The result is sorted by ticker for stable output.
func BuildAssets(positions map[string]models.Position, market map[string]*models.MarketSnapshot) []models.Asset {
	assets := make([]models.Asset, 0, len(positions))

	for ticker, pos := range positions {
		if pos.Quantity < epsilon {
			continue
		}

		asset := models.Asset{
			Ticker:   ticker,
			Segment:  models.DefaultSegment,
			Quantity: pos.Quantity,
			AvgPrice: pos.AvgPrice(),
			Invested: pos.TotalCost,
		}

		snapshot := market[ticker]
		if snapshot != nil {
			asset.Name = snapshot.Name
			asset.DY = snapshot.DY
			asset.PVP = snapshot.PVP
			asset.PriceHistory = snapshot.PriceHistory
			asset.DividendsHistory = snapshot.DividendsHistory
			asset.LastUpdated = snapshot.QuoteUpdatedAt
			if snapshot.Segment != "" {
				asset.Segment = snapshot.Segment
			}
		}

		if snapshot != nil && snapshot.CurrentPrice > 0 {
			asset.CurrentPrice = snapshot.CurrentPrice
		} else {
			asset.CurrentPrice = asset.AvgPrice
			asset.PriceIsEstimate = true
		}

		asset.MarketValue = asset.Quantity * asset.CurrentPrice
		asset.UnrealizedGain = asset.MarketValue - asset.Invested
		if asset.Invested > 0 {
			asset.UnrealizedGainPct = asset.UnrealizedGain / asset.Invested * 100
		}
		asset.ProjectedAnnualIncome = asset.MarketValue * asset.DY / 100
		if asset.Invested > 0 {
			asset.YieldOnCost = asset.ProjectedAnnualIncome / asset.Invested * 100
		}

		assets = append(assets, asset)
	}

	sort.Slice(assets, func(i, j int) bool {
		return assets[i].Ticker < assets[j].Ticker
	})

	return assets
}

// Summarize aggregates per-asset metrics into the portfolio headline numbers.
func Summarize(assets []models.Asset) *models.PortfolioSummary {
	summary := &models.PortfolioSummary{AssetCount: len(assets)}

	for _, asset := range assets {
		summary.TotalInvested += asset.Invested
		summary.MarketValue += asset.MarketValue
		summary.MonthlyIncomeEst += asset.ProjectedAnnualIncome / 12
	}

	summary.UnrealizedGain = summary.MarketValue - summary.TotalInvested
	if summary.TotalInvested > 0 {
		summary.UnrealizedGainPct = summary.UnrealizedGain / summary.TotalInvested * 100
	}
	if summary.MarketValue > 0 {
		var weighted float64
		for _, asset := range assets {
			weighted += asset.DY * asset.MarketValue
		}
		summary.AvgYield = weighted / summary.MarketValue
	}

	return summary
}
