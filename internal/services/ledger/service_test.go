package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/models"
	"github.com/brfintools/fiitrack/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := common.NewSilentLogger()
	config := &common.Config{
		Storage: common.StorageConfig{Path: filepath.Join(t.TempDir(), "fiitrack")},
	}
	manager, err := storage.NewManager(logger, config)
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })
	return NewService(manager, logger)
}

func validBuy() *models.Transaction {
	return &models.Transaction{
		Ticker:   "hglg11",
		Type:     models.TransactionBuy,
		Quantity: 100,
		Price:    10.5,
		Date:     time.Date(2024, time.January, 10, 14, 30, 0, 0, time.UTC),
	}
}

func TestAddTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, validBuy())
	require.NoError(t, err)

	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "HGLG11", tx.Ticker, "ticker should be upper-cased")
	assert.Equal(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), tx.Date,
		"date should be truncated to day precision")
	assert.False(t, tx.CreatedAt.IsZero())

	txs, err := svc.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
}

func TestAddTransactionValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.Transaction)
	}{
		{"missing ticker", func(tx *models.Transaction) { tx.Ticker = " " }},
		{"bad type", func(tx *models.Transaction) { tx.Type = "dividend" }},
		{"zero quantity", func(tx *models.Transaction) { tx.Quantity = 0 }},
		{"negative quantity", func(tx *models.Transaction) { tx.Quantity = -5 }},
		{"negative price", func(tx *models.Transaction) { tx.Price = -1 }},
		{"negative costs", func(tx *models.Transaction) { tx.Costs = -1 }},
		{"missing date", func(tx *models.Transaction) { tx.Date = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validBuy()
			tc.mutate(tx)
			_, err := svc.AddTransaction(ctx, tx)
			assert.Error(t, err)
		})
	}
}

func TestUpdateTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, validBuy())
	require.NoError(t, err)
	created := tx.CreatedAt

	tx.Quantity = 150
	updated, err := svc.UpdateTransaction(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Quantity)
	assert.True(t, created.Equal(updated.CreatedAt), "update keeps original creation time")
}

func TestUpdateTransactionUnknownID(t *testing.T) {
	svc := newTestService(t)

	tx := validBuy()
	tx.ID = "does-not-exist"
	_, err := svc.UpdateTransaction(context.Background(), tx)
	assert.Error(t, err)
}

func TestDeleteTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, validBuy())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))

	txs, err := svc.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)

	assert.Error(t, svc.DeleteTransaction(ctx, tx.ID), "double delete should error")
}

func TestListTransactionsSorted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	later := validBuy()
	later.Date = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.AddTransaction(ctx, later)
	require.NoError(t, err)

	earlier := validBuy()
	earlier.Date = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.AddTransaction(ctx, earlier)
	require.NoError(t, err)

	txs, err := svc.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.True(t, txs[0].Date.Before(txs[1].Date))
}
