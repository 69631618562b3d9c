package common

import "time"

// Freshness TTLs for cached market data components.
// Quotes move intraday; dividend records only change on announcement, so
// they can be held much longer.
const (
	FreshnessQuote     = 15 * time.Minute
	FreshnessNews      = 1 * time.Hour
	FreshnessDividends = 24 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
