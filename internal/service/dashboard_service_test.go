package service

import (
	"context"
	"testing"
	"time"

	"warehouse-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalInventoryValue(t *testing.T) {
	products := []model.Product{
		{Price: 25.50, CurrentStock: 120}, // 3060.00
		{Price: 8.99, CurrentStock: 15},   // 134.85
		{Price: 12.00, CurrentStock: 0},   // skipped
		{Price: 99.99, CurrentStock: -1},  // skipped
	}
	assert.InDelta(t, 3194.85, TotalInventoryValue(products), 0.0001)
}

func TestTotalInventoryValueEmpty(t *testing.T) {
	assert.Zero(t, TotalInventoryValue(nil))
	assert.Zero(t, TotalInventoryValue([]model.Product{{Price: 5, CurrentStock: 0}}))
}

func TestGetStats(t *testing.T) {
	productRepo := newFakeProductRepo(
		&model.Product{Code: "A", Price: 10.00, CurrentStock: 5, Status: model.StatusAvailable},
		&model.Product{Code: "B", Price: 4.00, CurrentStock: 2, Status: model.StatusLow},
		&model.Product{Code: "C", Price: 7.50, CurrentStock: 0, Status: model.StatusOut},
	)

	now := time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)
	txRepo := &fakeTransactionRepo{rows: []model.StockTransaction{
		{Type: model.TxTypeIn, CreatedAt: now.Add(-time.Hour)},
		{Type: model.TxTypeOut, CreatedAt: now.Add(-14 * time.Hour)}, // 01:00 same day
		{Type: model.TxTypeOut, CreatedAt: now.Add(-16 * time.Hour)}, // previous day
		{Type: model.TxTypeIn, CreatedAt: now.Add(24 * time.Hour)},   // next day
	}}

	svc := &dashboardService{
		productRepo: productRepo,
		txRepo:      txRepo,
		now:         func() time.Time { return now },
	}

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalProducts)
	assert.InDelta(t, 58.00, stats.TotalValue, 0.0001) // 10×5 + 4×2, C holds no stock
	assert.Equal(t, int64(2), stats.LowStockCount)     // low + out
	assert.Equal(t, int64(2), stats.TodayTransactions)
}

func TestGetStatsEmptyDatabase(t *testing.T) {
	svc := &dashboardService{
		productRepo: newFakeProductRepo(),
		txRepo:      &fakeTransactionRepo{},
		now:         time.Now,
	}

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{}, stats)
}
