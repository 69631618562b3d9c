package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/interfaces"
	"github.com/brfintools/fiitrack/internal/models"
)

// Service derives all portfolio views from the ledger and the market cache.
// Views are recomputed on demand from stored state; nothing here mutates the
// ledger or the cache.
type Service struct {
	storage     interfaces.StorageManager
	preferences interfaces.PreferencesService
	logger      *common.Logger
	now         func() time.Time
}

var _ interfaces.PortfolioService = (*Service)(nil)

// NewService creates a new portfolio service.
func NewService(storage interfaces.StorageManager, preferences interfaces.PreferencesService, logger *common.Logger) *Service {
	return &Service{
		storage:     storage,
		preferences: preferences,
		logger:      logger,
		now:         time.Now,
	}
}

// loadState reads the ledger and the market snapshots for every ticker with
// an open position. Missing snapshots are tolerated; valuation falls back to
// cost basis downstream.
func (s *Service) loadState(ctx context.Context) ([]*models.Transaction, map[string]*models.MarketSnapshot, error) {
	txs, err := s.storage.Ledger().ListTransactions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	seen := make(map[string]bool)
	tickers := make([]string, 0)
	for _, tx := range txs {
		if !seen[tx.Ticker] {
			seen[tx.Ticker] = true
			tickers = append(tickers, tx.Ticker)
		}
	}

	market, err := s.storage.Market().GetSnapshots(ctx, tickers)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load market snapshots, valuing at cost")
		market = map[string]*models.MarketSnapshot{}
	}

	return txs, market, nil
}

// GetAssets returns all open positions valued against the market cache.
func (s *Service) GetAssets(ctx context.Context) ([]models.Asset, error) {
	txs, market, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}

	positions := AccumulatePositions(txs, time.Time{})
	assets := BuildAssets(positions, market)

	s.logger.Debug().
		Int("transactions", len(txs)).
		Int("assets", len(assets)).
		Msg("Built portfolio assets")

	return assets, nil
}

// GetSummary returns the headline aggregate for the portfolio.
func (s *Service) GetSummary(ctx context.Context) (*models.PortfolioSummary, error) {
	assets, err := s.GetAssets(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(assets), nil
}

// GetDividends returns all attributed dividend receipts, oldest first.
func (s *Service) GetDividends(ctx context.Context) ([]models.Dividend, error) {
	txs, market, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}

	positions := AccumulatePositions(txs, time.Time{})
	assets := BuildAssets(positions, market)

	demoMode := false
	if prefs, err := s.preferences.GetPreferences(ctx); err == nil {
		demoMode = prefs.DemoMode
	}

	return AttributeDividends(assets, txs, demoMode, s.now()), nil
}

// GetMonthlyIncome returns dividend income bucketed by payment month over
// the trailing year.
func (s *Service) GetMonthlyIncome(ctx context.Context) ([]models.MonthlyIncome, error) {
	dividends, err := s.GetDividends(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateMonthlyIncome(dividends), nil
}

// GetEvolution returns the month-by-month invested/market-value history per
// segment plus the aggregate series.
func (s *Service) GetEvolution(ctx context.Context) (models.PortfolioEvolution, error) {
	txs, market, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return ReconstructEvolution(txs, market, s.now()), nil
}

// RenderEvolutionChart renders the aggregate evolution series as PNG.
func (s *Service) RenderEvolutionChart(ctx context.Context) ([]byte, error) {
	evolution, err := s.GetEvolution(ctx)
	if err != nil {
		return nil, err
	}
	return RenderEvolutionChart(evolution[models.EvolutionAllTypes])
}
