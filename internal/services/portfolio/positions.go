// Package portfolio implements average-cost accounting over the transaction
// ledger and the portfolio views derived from it.
package portfolio

import (
	"time"

	"github.com/brfintools/fiitrack/internal/models"
)

// epsilon is the quantity threshold below which a position is considered
// closed and dropped from the result set.
const epsilon = 1e-6

// applyToPosition folds one transaction into a position under the average
// cost method. Buys add quantity and full acquisition cost (price plus
// fees). Sells are clamped to the held quantity and remove cost at the
// pre-sale average price, leaving the average unchanged.
func applyToPosition(p models.Position, tx *models.Transaction) models.Position {
	if tx.IsBuy() {
		p.Quantity += tx.Quantity
		p.TotalCost += tx.Quantity*tx.Price + tx.Costs
		return p
	}

	sellQty := tx.Quantity
	if sellQty > p.Quantity {
		sellQty = p.Quantity
	}
	if p.Quantity > 0 {
		avg := p.TotalCost / p.Quantity
		p.TotalCost -= sellQty * avg
	}
	p.Quantity -= sellQty
	if p.Quantity < epsilon {
		p.Quantity = 0
		p.TotalCost = 0
	}
	return p
}

// AccumulatePositions replays the ledger chronologically and returns the open
// position per ticker. A zero cutoff means the full ledger; otherwise only
// transactions dated on or before the cutoff are applied. Closed positions
// (quantity below epsilon) are excluded from the result.
func AccumulatePositions(txs []*models.Transaction, cutoff time.Time) map[string]models.Position {
	positions := make(map[string]models.Position)

	for _, tx := range models.SortTransactionsByDate(txs) {
		if !cutoff.IsZero() && tx.Date.After(cutoff) {
			break
		}
		pos := applyToPosition(positions[tx.Ticker], tx)
		if pos.Quantity < epsilon {
			delete(positions, tx.Ticker)
			continue
		}
		positions[tx.Ticker] = pos
	}

	return positions
}

// sharesHeldAsOf replays pre-sorted transactions of a single ticker and
// returns the quantity held at end of the given day. Cost tracking is not
// needed for dividend attribution, but sells still clamp to the held amount.
func sharesHeldAsOf(sorted []*models.Transaction, asOf time.Time) float64 {
	var qty float64
	for _, tx := range sorted {
		if tx.Date.After(asOf) {
			break
		}
		if tx.IsBuy() {
			qty += tx.Quantity
		} else {
			qty -= tx.Quantity
			if qty < 0 {
				qty = 0
			}
		}
	}
	if qty < epsilon {
		return 0
	}
	return qty
}
