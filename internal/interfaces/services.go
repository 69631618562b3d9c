package interfaces

import (
	"context"

	"github.com/brfintools/fiitrack/internal/models"
)

// LedgerService manages the transaction ledger.
type LedgerService interface {
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
	AddTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// PortfolioService derives portfolio views from the ledger and market cache.
type PortfolioService interface {
	GetAssets(ctx context.Context) ([]models.Asset, error)
	GetSummary(ctx context.Context) (*models.PortfolioSummary, error)
	GetDividends(ctx context.Context) ([]models.Dividend, error)
	GetMonthlyIncome(ctx context.Context) ([]models.MonthlyIncome, error)
	GetEvolution(ctx context.Context) (models.PortfolioEvolution, error)
	RenderEvolutionChart(ctx context.Context) ([]byte, error)
}

// MarketService maintains the market data cache.
type MarketService interface {
	RefreshMarketData(ctx context.Context, force bool) error
	GetQuote(ctx context.Context, ticker string) (*models.MarketSnapshot, error)
	GetNews(ctx context.Context) ([]*models.NewsItem, error)
}

// AnalystService answers questions about portfolio assets.
type AnalystService interface {
	Ask(ctx context.Context, ticker, question string) (*models.AnalystAnswer, error)
}

// PreferencesService persists user preferences.
type PreferencesService interface {
	GetPreferences(ctx context.Context) (*models.Preferences, error)
	SavePreferences(ctx context.Context, prefs *models.Preferences) error
}
