// Package ledger manages the transaction ledger with input validation.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/interfaces"
	"github.com/brfintools/fiitrack/internal/models"
)

// Service validates and persists ledger entries. Validation lives here so
// the accounting engine can stay permissive about historical data.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

var _ interfaces.LedgerService = (*Service)(nil)

// NewService creates a new ledger service.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

// validate checks a transaction before it enters the ledger.
func validate(tx *models.Transaction) error {
	if tx == nil {
		return fmt.Errorf("transaction cannot be nil")
	}
	if strings.TrimSpace(tx.Ticker) == "" {
		return fmt.Errorf("ticker is required")
	}
	if tx.Type != models.TransactionBuy && tx.Type != models.TransactionSell {
		return fmt.Errorf("type must be buy or sell, got '%s'", tx.Type)
	}
	if tx.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if tx.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if tx.Costs < 0 {
		return fmt.Errorf("costs cannot be negative")
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// normalize upper-cases the ticker and truncates the date to day precision.
func normalize(tx *models.Transaction) {
	tx.Ticker = strings.ToUpper(strings.TrimSpace(tx.Ticker))
	tx.Date = models.DateOnly(tx.Date)
}

// ListTransactions returns all ledger entries sorted by date ascending.
func (s *Service) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	txs, err := s.storage.Ledger().ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return models.SortTransactionsByDate(txs), nil
}

// AddTransaction validates and persists a new ledger entry, assigning an ID.
func (s *Service) AddTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if err := validate(tx); err != nil {
		return nil, err
	}
	normalize(tx)
	tx.ID = uuid.New().String()
	tx.CreatedAt = time.Now()

	if err := s.storage.Ledger().SaveTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("id", tx.ID).
		Str("ticker", tx.Ticker).
		Str("type", string(tx.Type)).
		Float64("quantity", tx.Quantity).
		Msg("Transaction added")

	return tx, nil
}

// UpdateTransaction replaces an existing entry. The entry keeps its ID and
// original creation time.
func (s *Service) UpdateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if tx == nil || tx.ID == "" {
		return nil, fmt.Errorf("transaction ID is required")
	}
	existing, err := s.storage.Ledger().GetTransaction(ctx, tx.ID)
	if err != nil {
		return nil, err
	}
	if err := validate(tx); err != nil {
		return nil, err
	}
	normalize(tx)
	tx.CreatedAt = existing.CreatedAt

	if err := s.storage.Ledger().SaveTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", tx.ID).Str("ticker", tx.Ticker).Msg("Transaction updated")
	return tx, nil
}

// DeleteTransaction removes an entry from the ledger.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if err := s.storage.Ledger().DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Transaction deleted")
	return nil
}
