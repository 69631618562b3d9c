// Package models defines data structures for FIITrack
package models

import (
	"sort"
	"strings"
	"time"
)

// TransactionType identifies the direction of a ledger entry.
type TransactionType string

const (
	TransactionBuy  TransactionType = "buy"
	TransactionSell TransactionType = "sell"
)

// ParseTransactionType normalizes a user-supplied type string.
// Unknown values fall through unchanged so the ledger stays permissive;
// shape validation belongs to the HTTP layer.
func ParseTransactionType(s string) TransactionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "compra":
		return TransactionBuy
	case "sell", "venda":
		return TransactionSell
	default:
		return TransactionType(strings.ToLower(strings.TrimSpace(s)))
	}
}

// Transaction is a single buy/sell ledger entry. Immutable once created
// except through explicit update/delete; identity is ID.
// Date carries calendar-date precision only (midnight UTC).
type Transaction struct {
	ID        string          `json:"id"`
	Ticker    string          `json:"ticker"`
	Type      TransactionType `json:"type"`
	Quantity  float64         `json:"quantity"`
	Price     float64         `json:"price"`
	Date      time.Time       `json:"date"`
	Costs     float64         `json:"costs"` // brokerage + fees, added to cost basis on buys
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsBuy reports whether the entry adds to a position.
func (t *Transaction) IsBuy() bool { return t.Type == TransactionBuy }

// SortTransactionsByDate returns a copy sorted ascending by date.
// The sort is stable: same-day entries keep their insertion order, which is
// the tie-break rule for all accounting replay.
func SortTransactionsByDate(txs []*Transaction) []*Transaction {
	sorted := make([]*Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// DateOnly truncates a timestamp to calendar-date precision in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
