package interfaces

import (
	"context"

	"github.com/brfintools/fiitrack/internal/models"
)

// MarketDataClient fetches quotes and fundamentals from a market data API.
// Batch calls return per-ticker results; a missing ticker in the result map
// means that ticker failed while others may have succeeded.
type MarketDataClient interface {
	// GetQuotes returns current price and recent price history per ticker.
	GetQuotes(ctx context.Context, tickers []string) (map[string]*models.MarketSnapshot, error)
	// GetFundamentals returns DY, P/VP, segment and dividend history per ticker.
	GetFundamentals(ctx context.Context, tickers []string) (map[string]*models.MarketSnapshot, error)
}

// AIClient generates analyst responses from a prompt.
type AIClient interface {
	GenerateText(ctx context.Context, prompt string) (string, *models.AnalystStats, error)
	ModelName() string
	Close() error
}

// NewsClient fetches FII news headlines.
type NewsClient interface {
	GetHeadlines(ctx context.Context, limit int) ([]*models.NewsItem, error)
}
