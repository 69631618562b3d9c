package portfolio

import (
	"sort"
	"time"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/models"
)

// tickerState replays one ticker's transactions incrementally across month
// boundaries. The cursor only moves forward, so a full evolution rebuild
// applies each transaction exactly once.
type tickerState struct {
	txs      []*models.Transaction // ascending by date
	idx      int
	position models.Position
}

// advanceTo applies all transactions dated on or before the cutoff.
func (s *tickerState) advanceTo(cutoff time.Time) {
	for s.idx < len(s.txs) && !s.txs[s.idx].Date.After(cutoff) {
		s.position = applyToPosition(s.position, s.txs[s.idx])
		s.idx++
	}
}

// ReconstructEvolution rebuilds the month-by-month history of invested
// capital versus market value, per fund segment and aggregated under the
// all-types key. Each month end values open positions at the closest
// historical close at or before that date, falling back to the current
// price and finally to cost basis when no price data exists.
//
// Months where a series has no open value are skipped for that series, so a
// segment's line starts when its first position is opened. An empty ledger
// yields an empty aggregate series.
func ReconstructEvolution(txs []*models.Transaction, market map[string]*models.MarketSnapshot, now time.Time) models.PortfolioEvolution {
	evolution := models.PortfolioEvolution{
		models.EvolutionAllTypes: []models.EvolutionPoint{},
	}
	if len(txs) == 0 {
		return evolution
	}

	sorted := models.SortTransactionsByDate(txs)
	states := make(map[string]*tickerState)
	for _, tx := range sorted {
		state, ok := states[tx.Ticker]
		if !ok {
			state = &tickerState{}
			states[tx.Ticker] = state
		}
		state.txs = append(state.txs, tx)
	}

	first := sorted[0].Date
	monthStart := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !monthStart.After(lastMonth) {
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
		label := common.NumericMonthLabel(monthStart)

		type bucket struct{ invested, value float64 }
		buckets := make(map[string]*bucket)
		total := &bucket{}

		for ticker, state := range states {
			state.advanceTo(monthEnd)
			if state.position.Quantity < epsilon {
				continue
			}

			snapshot := market[ticker]
			price := valuationPrice(snapshot, monthEnd)
			if price <= 0 {
				price = state.position.AvgPrice()
			}

			segment := models.DefaultSegment
			if snapshot != nil && snapshot.Segment != "" {
				segment = snapshot.Segment
			}
			b, ok := buckets[segment]
			if !ok {
				b = &bucket{}
				buckets[segment] = b
			}

			b.invested += state.position.TotalCost
			b.value += state.position.Quantity * price
			total.invested += state.position.TotalCost
			total.value += state.position.Quantity * price
		}

		if total.invested > epsilon || total.value > epsilon {
			evolution[models.EvolutionAllTypes] = append(evolution[models.EvolutionAllTypes], models.EvolutionPoint{
				Month:       label,
				Invested:    total.invested,
				MarketValue: total.value,
			})
		}
		for segment, b := range buckets {
			if b.invested <= epsilon && b.value <= epsilon {
				continue
			}
			evolution[segment] = append(evolution[segment], models.EvolutionPoint{
				Month:       label,
				Invested:    b.invested,
				MarketValue: b.value,
			})
		}

		monthStart = monthStart.AddDate(0, 1, 0)
	}

	return evolution
}

// valuationPrice returns the best price for a ticker as of a date: the
// closest historical close at or before it, else the live quote.
func valuationPrice(snapshot *models.MarketSnapshot, asOf time.Time) float64 {
	if snapshot == nil {
		return 0
	}
	if price, ok := findClosePriceAsOf(snapshot.PriceHistory, asOf); ok {
		return price
	}
	return snapshot.CurrentPrice
}

// findClosePriceAsOf binary-searches ascending price bars for the last close
// at or before the given date.
func findClosePriceAsOf(bars []models.PriceBar, asOf time.Time) (float64, bool) {
	if len(bars) == 0 {
		return 0, false
	}
	idx := sort.Search(len(bars), func(i int) bool {
		return bars[i].Date.After(asOf)
	})
	if idx == 0 {
		return 0, false
	}
	return bars[idx-1].Close, true
}
