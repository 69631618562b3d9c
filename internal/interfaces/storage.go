// Package interfaces defines service and storage contracts for FIITrack
package interfaces

import (
	"context"
	"time"

	"github.com/brfintools/fiitrack/internal/models"
)

// StorageManager provides access to all storage layers.
type StorageManager interface {
	Ledger() LedgerStore
	Market() MarketStore
	KV() KVStore
	Close() error
}

// LedgerStore persists the transaction ledger.
type LedgerStore interface {
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}

// MarketStore persists cached market snapshots and news.
type MarketStore interface {
	GetSnapshot(ctx context.Context, ticker string) (*models.MarketSnapshot, error)
	GetSnapshots(ctx context.Context, tickers []string) (map[string]*models.MarketSnapshot, error)
	SaveSnapshot(ctx context.Context, snapshot *models.MarketSnapshot) error
	DeleteSnapshot(ctx context.Context, ticker string) error

	GetNews(ctx context.Context) ([]*models.NewsItem, time.Time, error)
	SaveNews(ctx context.Context, items []*models.NewsItem) error
}

// KVStore provides generic key-value storage for preferences and
// other small durable state.
type KVStore interface {
	Get(ctx context.Context, key string, value interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
