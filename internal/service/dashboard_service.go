package service

import (
	"context"
	"time"

	"warehouse-backend/internal/model"
	"warehouse-backend/internal/repository"
	"warehouse-backend/pkg/apperror"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregates the counters shown on the dashboard. Everything
// is computed per request from current data; nothing is cached.
type DashboardStats struct {
	TotalProducts     int64   `json:"totalProducts"`
	TotalValue        float64 `json:"totalValue"`
	LowStockCount     int64   `json:"lowStockCount"`
	TodayTransactions int64   `json:"todayTransactions"`
}

type DashboardService interface {
	GetStats(ctx context.Context) (DashboardStats, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	now         func() time.Time
}

func NewDashboardService(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		txRepo:      txRepo,
		now:         time.Now,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	total, err := s.productRepo.Count(ctx)
	if err != nil {
		return stats, apperror.Storage("failed to count products", err)
	}
	stats.TotalProducts = total

	// Inventory value over products with stock, summed in decimal to keep
	// the per-product multiplications exact.
	products, err := s.productRepo.Valuations(ctx)
	if err != nil {
		return stats, apperror.Storage("failed to load valuations", err)
	}
	stats.TotalValue = TotalInventoryValue(products)

	// Products needing attention: low band plus out of stock, per the same
	// classification rule that stamped the status column.
	lowStock, err := s.productRepo.CountByStatus(ctx, model.StatusLow, model.StatusOut)
	if err != nil {
		return stats, apperror.Storage("failed to count low stock", err)
	}
	stats.LowStockCount = lowStock

	// Calendar day in server-local time.
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayCount, err := s.txRepo.CountBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return stats, apperror.Storage("failed to count today's transactions", err)
	}
	stats.TodayTransactions = todayCount

	return stats, nil
}

// TotalInventoryValue sums stock × price across the given products. Products
// without stock contribute nothing; callers normally pre-filter to stock > 0.
func TotalInventoryValue(products []model.Product) float64 {
	sum := decimal.Zero
	for i := range products {
		if products[i].CurrentStock <= 0 {
			continue
		}
		value := decimal.NewFromFloat(products[i].Price).
			Mul(decimal.NewFromInt(int64(products[i].CurrentStock)))
		sum = sum.Add(value)
	}
	return sum.InexactFloat64()
}
