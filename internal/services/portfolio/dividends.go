package portfolio

import (
	"sort"
	"time"

	"github.com/brfintools/fiitrack/internal/models"
)

// AttributeDividends computes dividend receipts for the portfolio.
//
// When any asset carries real dividend history, each event pays out on the
// shares held at its ex-date, reconstructed by replaying that ticker's
// transactions. When no asset has history, and demo mode is off, a projected
// monthly dividend of currentPrice*DY/100/12 per share is generated instead
// on the shares held at each month's start, payable on the 15th of the
// following month, so the income view is not
// empty while real history is still being fetched. The fallback is
// portfolio-wide: real history for one asset disables projection for all.
func AttributeDividends(assets []models.Asset, txs []*models.Transaction, demoMode bool, now time.Time) []models.Dividend {
	byTicker := make(map[string][]*models.Transaction)
	for _, tx := range models.SortTransactionsByDate(txs) {
		byTicker[tx.Ticker] = append(byTicker[tx.Ticker], tx)
	}

	hasHistory := false
	for _, asset := range assets {
		if len(asset.DividendsHistory) > 0 {
			hasHistory = true
			break
		}
	}

	var dividends []models.Dividend

	if hasHistory {
		for _, asset := range assets {
			sorted := byTicker[asset.Ticker]
			for _, event := range asset.DividendsHistory {
				qty := sharesHeldAsOf(sorted, event.ExDate)
				if qty < epsilon {
					continue
				}
				payment := event.PaymentDate
				if payment.IsZero() {
					payment = event.ExDate
				}
				dividends = append(dividends, models.Dividend{
					Ticker:         asset.Ticker,
					PaymentDate:    payment,
					AmountPerShare: event.AmountPerShare,
					Quantity:       qty,
					Total:          qty * event.AmountPerShare,
				})
			}
		}
	} else if !demoMode {
		dividends = projectDividends(assets, byTicker, now)
	}

	sort.SliceStable(dividends, func(i, j int) bool {
		return dividends[i].PaymentDate.Before(dividends[j].PaymentDate)
	})

	return dividends
}

// projectDividends synthesizes one estimated dividend per asset per month
// over the trailing year. Each month pays on the shares held at that month's
// start, so months before the first buy (or after a close-out) produce
// nothing.
func projectDividends(assets []models.Asset, byTicker map[string][]*models.Transaction, now time.Time) []models.Dividend {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var dividends []models.Dividend
	for i := 11; i >= 0; i-- {
		month := monthStart.AddDate(0, -i, 0)
		payment := month.AddDate(0, 1, 14) // 15th of the following month
		for _, asset := range assets {
			if asset.DY <= 0 || asset.CurrentPrice <= 0 {
				continue
			}
			qty := sharesHeldAsOf(byTicker[asset.Ticker], month)
			if qty < epsilon {
				continue
			}
			perShare := asset.CurrentPrice * asset.DY / 100 / 12
			dividends = append(dividends, models.Dividend{
				Ticker:         asset.Ticker,
				PaymentDate:    payment,
				AmountPerShare: perShare,
				Quantity:       qty,
				Total:          qty * perShare,
				Projected:      true,
			})
		}
	}

	return dividends
}
