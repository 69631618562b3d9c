// Package market maintains the cached market data for portfolio tickers.
package market

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/interfaces"
	"github.com/brfintools/fiitrack/internal/models"
)

// Service fetches market data and merges it into stored snapshots. Fetch
// failures never clobber previously cached data; they only stamp LastError
// so the UI can surface staleness.
type Service struct {
	storage   interfaces.StorageManager
	client    interfaces.MarketDataClient
	news      interfaces.NewsClient
	logger    *common.Logger
	newsLimit int
}

var _ interfaces.MarketService = (*Service)(nil)

// NewService creates a new market service.
func NewService(storage interfaces.StorageManager, client interfaces.MarketDataClient, news interfaces.NewsClient, newsLimit int, logger *common.Logger) *Service {
	if newsLimit <= 0 {
		newsLimit = 20
	}
	return &Service{
		storage:   storage,
		client:    client,
		news:      news,
		logger:    logger,
		newsLimit: newsLimit,
	}
}

// portfolioTickers returns the distinct tickers in the ledger, open or not.
// Closed positions keep their snapshots so the evolution history stays
// priceable.
func (s *Service) portfolioTickers(ctx context.Context) ([]string, error) {
	txs, err := s.storage.Ledger().ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	seen := make(map[string]bool)
	var tickers []string
	for _, tx := range txs {
		if !seen[tx.Ticker] {
			seen[tx.Ticker] = true
			tickers = append(tickers, tx.Ticker)
		}
	}
	return tickers, nil
}

// RefreshMarketData fetches quotes and fundamentals for every portfolio
// ticker. Without force, components still inside their freshness window are
// skipped. Quote and fundamentals fetches run concurrently and fail
// independently: one side failing still lets the other side's data land.
func (s *Service) RefreshMarketData(ctx context.Context, force bool) error {
	tickers, err := s.portfolioTickers(ctx)
	if err != nil {
		return err
	}
	if len(tickers) == 0 {
		s.logger.Debug().Msg("No tickers to refresh")
		return nil
	}

	existing, err := s.storage.Market().GetSnapshots(ctx, tickers)
	if err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}

	needQuotes := tickers
	needFundamentals := tickers
	if !force {
		needQuotes = staleTickers(tickers, existing, func(snap *models.MarketSnapshot) time.Time {
			return snap.QuoteUpdatedAt
		}, common.FreshnessQuote)
		needFundamentals = staleTickers(tickers, existing, func(snap *models.MarketSnapshot) time.Time {
			return snap.FundamentalsUpdatedAt
		}, common.FreshnessDividends)
	}
	if len(needQuotes) == 0 && len(needFundamentals) == 0 {
		s.logger.Debug().Msg("Market data still fresh")
		return nil
	}

	var (
		wg              sync.WaitGroup
		quotes          map[string]*models.MarketSnapshot
		fundamentals    map[string]*models.MarketSnapshot
		quotesErr       error
		fundamentalsErr error
	)

	if len(needQuotes) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			quotes, quotesErr = s.client.GetQuotes(ctx, needQuotes)
		}()
	}
	if len(needFundamentals) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fundamentals, fundamentalsErr = s.client.GetFundamentals(ctx, needFundamentals)
		}()
	}
	wg.Wait()

	if quotesErr != nil {
		s.logger.Warn().Err(quotesErr).Msg("Quote fetch failed")
	}
	if fundamentalsErr != nil {
		s.logger.Warn().Err(fundamentalsErr).Msg("Fundamentals fetch failed")
	}

	for _, ticker := range tickers {
		snapshot := existing[ticker]
		if snapshot == nil {
			snapshot = &models.MarketSnapshot{Ticker: ticker}
		}

		changed := false
		if q := quotes[ticker]; q != nil {
			mergeQuote(snapshot, q)
			changed = true
		}
		if f := fundamentals[ticker]; f != nil {
			mergeFundamentals(snapshot, f)
			changed = true
		}
		if changed {
			snapshot.LastError = ""
		} else if quotesErr != nil || fundamentalsErr != nil {
			if quotesErr != nil {
				snapshot.LastError = quotesErr.Error()
			} else {
				snapshot.LastError = fundamentalsErr.Error()
			}
		}

		if err := s.storage.Market().SaveSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to save snapshot for %s: %w", ticker, err)
		}
	}

	s.logger.Info().
		Int("tickers", len(tickers)).
		Int("quotes", len(quotes)).
		Int("fundamentals", len(fundamentals)).
		Bool("force", force).
		Msg("Market data refreshed")

	if quotesErr != nil && fundamentalsErr != nil {
		return fmt.Errorf("market refresh failed: %w", quotesErr)
	}
	return nil
}

// staleTickers filters tickers whose component timestamp is outside the TTL.
func staleTickers(tickers []string, existing map[string]*models.MarketSnapshot, at func(*models.MarketSnapshot) time.Time, ttl time.Duration) []string {
	var stale []string
	for _, ticker := range tickers {
		snapshot := existing[ticker]
		if snapshot == nil || !common.IsFresh(at(snapshot), ttl) {
			stale = append(stale, ticker)
		}
	}
	return stale
}

// mergeQuote overlays quote fields onto a snapshot.
func mergeQuote(dst, src *models.MarketSnapshot) {
	dst.CurrentPrice = src.CurrentPrice
	dst.QuoteUpdatedAt = src.QuoteUpdatedAt
	if src.Name != "" {
		dst.Name = src.Name
	}
	if len(src.PriceHistory) > 0 {
		dst.PriceHistory = src.PriceHistory
	}
}

// mergeFundamentals overlays fundamentals fields onto a snapshot.
func mergeFundamentals(dst, src *models.MarketSnapshot) {
	dst.DY = src.DY
	dst.PVP = src.PVP
	dst.FundamentalsUpdatedAt = src.FundamentalsUpdatedAt
	if src.Segment != "" {
		dst.Segment = src.Segment
	}
	if len(src.DividendsHistory) > 0 {
		dst.DividendsHistory = src.DividendsHistory
		dst.DividendsUpdatedAt = src.DividendsUpdatedAt
	}
}

// GetQuote returns the cached snapshot for a ticker, fetching it on demand
// when nothing is cached yet.
func (s *Service) GetQuote(ctx context.Context, ticker string) (*models.MarketSnapshot, error) {
	snapshot, err := s.storage.Market().GetSnapshot(ctx, ticker)
	if err == nil {
		return snapshot, nil
	}

	quotes, qErr := s.client.GetQuotes(ctx, []string{ticker})
	if qErr != nil {
		return nil, fmt.Errorf("no cached data and fetch failed for '%s': %w", ticker, qErr)
	}
	snapshot = quotes[ticker]
	if snapshot == nil {
		return nil, fmt.Errorf("no market data for '%s'", ticker)
	}

	if fundamentals, fErr := s.client.GetFundamentals(ctx, []string{ticker}); fErr == nil {
		if f := fundamentals[ticker]; f != nil {
			mergeFundamentals(snapshot, f)
		}
	}

	if err := s.storage.Market().SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to cache snapshot for '%s': %w", ticker, err)
	}
	return snapshot, nil
}

// GetNews returns cached headlines, refetching once the cache is older than
// the news freshness window. A failed refetch falls back to stale items.
func (s *Service) GetNews(ctx context.Context) ([]*models.NewsItem, error) {
	cached, fetchedAt, err := s.storage.Market().GetNews(ctx)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 && common.IsFresh(fetchedAt, common.FreshnessNews) {
		return cached, nil
	}

	items, err := s.news.GetHeadlines(ctx, s.newsLimit)
	if err != nil {
		if len(cached) > 0 {
			s.logger.Warn().Err(err).Msg("News fetch failed, serving stale cache")
			return cached, nil
		}
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}

	if err := s.storage.Market().SaveNews(ctx, items); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cache news")
	}
	return items, nil
}
