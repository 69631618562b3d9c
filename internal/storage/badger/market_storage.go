package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/models"
)

// newsCacheKey identifies the single cached news bundle.
const newsCacheKey = "fii-news"

// newsBundle is the stored form of the news cache with its fetch timestamp.
type newsBundle struct {
	Key       string `badgerhold:"key"`
	Items     []*models.NewsItem
	FetchedAt time.Time
}

type marketStorage struct {
	store  *Store
	logger *common.Logger
}

// NewMarketStorage creates a new MarketStore backed by BadgerHold.
func NewMarketStorage(store *Store, logger *common.Logger) *marketStorage {
	return &marketStorage{store: store, logger: logger}
}

func (s *marketStorage) GetSnapshot(_ context.Context, ticker string) (*models.MarketSnapshot, error) {
	var snapshot models.MarketSnapshot
	err := s.store.db.Get(ticker, &snapshot)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("no market data for '%s'", ticker)
		}
		return nil, fmt.Errorf("failed to get market data for '%s': %w", ticker, err)
	}
	return &snapshot, nil
}

// GetSnapshots returns the snapshots that exist for the given tickers.
// Missing tickers are simply absent from the result map.
func (s *marketStorage) GetSnapshots(_ context.Context, tickers []string) (map[string]*models.MarketSnapshot, error) {
	result := make(map[string]*models.MarketSnapshot, len(tickers))
	for _, ticker := range tickers {
		var snapshot models.MarketSnapshot
		err := s.store.db.Get(ticker, &snapshot)
		if err == badgerhold.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get market data for '%s': %w", ticker, err)
		}
		result[ticker] = &snapshot
	}
	return result, nil
}

func (s *marketStorage) SaveSnapshot(_ context.Context, snapshot *models.MarketSnapshot) error {
	if snapshot.Ticker == "" {
		return fmt.Errorf("snapshot ticker cannot be empty")
	}
	if err := s.store.db.Upsert(snapshot.Ticker, snapshot); err != nil {
		return fmt.Errorf("failed to save market data for '%s': %w", snapshot.Ticker, err)
	}
	s.logger.Debug().Str("ticker", snapshot.Ticker).Msg("Market snapshot saved")
	return nil
}

func (s *marketStorage) DeleteSnapshot(_ context.Context, ticker string) error {
	err := s.store.db.Delete(ticker, models.MarketSnapshot{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete market data for '%s': %w", ticker, err)
	}
	return nil
}

func (s *marketStorage) GetNews(_ context.Context) ([]*models.NewsItem, time.Time, error) {
	var bundle newsBundle
	err := s.store.db.Get(newsCacheKey, &bundle)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("failed to get cached news: %w", err)
	}
	return bundle.Items, bundle.FetchedAt, nil
}

func (s *marketStorage) SaveNews(_ context.Context, items []*models.NewsItem) error {
	bundle := newsBundle{Key: newsCacheKey, Items: items, FetchedAt: time.Now()}
	if err := s.store.db.Upsert(newsCacheKey, &bundle); err != nil {
		return fmt.Errorf("failed to cache news: %w", err)
	}
	return nil
}
