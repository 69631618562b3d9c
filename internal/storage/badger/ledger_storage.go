package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/models"
)

type ledgerStorage struct {
	store  *Store
	logger *common.Logger
}

// NewLedgerStorage creates a new LedgerStore backed by BadgerHold.
func NewLedgerStorage(store *Store, logger *common.Logger) *ledgerStorage {
	return &ledgerStorage{store: store, logger: logger}
}

func (s *ledgerStorage) ListTransactions(_ context.Context) ([]*models.Transaction, error) {
	var txs []models.Transaction
	if err := s.store.db.Find(&txs, nil); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	result := make([]*models.Transaction, len(txs))
	for i := range txs {
		result[i] = &txs[i]
	}
	return result, nil
}

func (s *ledgerStorage) GetTransaction(_ context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.store.db.Get(id, &tx)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("transaction '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get transaction '%s': %w", id, err)
	}
	return &tx, nil
}

func (s *ledgerStorage) SaveTransaction(_ context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("transaction ID cannot be empty")
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}

	if err := s.store.db.Upsert(tx.ID, tx); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	s.logger.Debug().Str("id", tx.ID).Str("ticker", tx.Ticker).Msg("Transaction saved")
	return nil
}

func (s *ledgerStorage) DeleteTransaction(_ context.Context, id string) error {
	err := s.store.db.Delete(id, models.Transaction{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("transaction '%s' not found", id)
		}
		return fmt.Errorf("failed to delete transaction '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Msg("Transaction deleted")
	return nil
}
