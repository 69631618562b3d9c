// Package storage provides the top-level StorageManager coordinating the
// embedded BadgerHold database.
package storage

import (
	"fmt"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/interfaces"
	"github.com/brfintools/fiitrack/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over a single BadgerHold
// database. Ledger entries, market snapshots and KV state share one store,
// keyed by distinct types.
type Manager struct {
	store  *badger.Store
	ledger interfaces.LedgerStore
	market interfaces.MarketStore
	kv     interfaces.KVStore
	logger *common.Logger
}

var _ interfaces.StorageManager = (*Manager)(nil)

// NewManager opens the database and wires the typed stores.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Info().Str("path", config.Storage.Path).Msg("Storage manager initialized")

	return &Manager{
		store:  store,
		ledger: badger.NewLedgerStorage(store, logger),
		market: badger.NewMarketStorage(store, logger),
		kv:     badger.NewKVStorage(store, logger),
		logger: logger,
	}, nil
}

func (m *Manager) Ledger() interfaces.LedgerStore { return m.ledger }

func (m *Manager) Market() interfaces.MarketStore { return m.market }

func (m *Manager) KV() interfaces.KVStore { return m.kv }

// Close closes the underlying database.
func (m *Manager) Close() error {
	return m.store.Close()
}
