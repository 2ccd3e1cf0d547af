package financing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/ozon-economics-api/infrastructure/repository/mocks"
	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/internal/usecases/uniteconomics"
)

func financeTestProducts() *uniteconomics.Products {
	return uniteconomics.NewProducts(
		map[string]decimal.Decimal{
			"1828048543": decimal.NewFromInt(771),
			"1763835247": decimal.NewFromInt(151),
		},
		nil,
	)
}

func TestAggregateFinance_MonthBySKURollup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderRepo := mocks.NewMockOrderRepository(ctrl)
	transactionRepo := mocks.NewMockTransactionRepository(ctrl)
	service := NewService(orderRepo, transactionRepo, financeTestProducts())

	january := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	february := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	orders := []*domain.Order{
		{PostingNumber: "p1", Status: string(domain.OzonStatusDelivered), SKU: "1828048543", Price: 1000, CreatedAt: january},
		{PostingNumber: "p2", Status: string(domain.OzonStatusCancelled), SKU: "1828048543", Price: 1000, CreatedAt: january},
		{PostingNumber: "p3", Status: string(domain.OzonStatusDelivered), SKU: "1763835247", Price: 400, CreatedAt: february},
	}
	transactions := []*domain.Transaction{
		{ID: 1, Name: domain.SaleCommissionService, PostingNumber: "p1", Price: -10, Date: january},
		{ID: 2, Name: "Logistics", PostingNumber: "p1", Price: -5, Date: january},
		{ID: 3, Name: domain.SaleCommissionService, PostingNumber: "p3", Price: -8, Date: february},
		// Per-SKU row without a posting: "other" bucket, stored as abs.
		{ID: 4, Name: "Compensation", SKU: "1828048543", Price: -30, Date: january},
		// Platform-wide row: shared bucket, split across the month's orders.
		{ID: 5, Name: "Subscription", Price: -50, Date: january},
	}

	orderRepo.EXPECT().FindAll(gomock.Any()).Return(orders, nil)
	transactionRepo.EXPECT().FindAll().Return(transactions, nil)

	aggregate, err := service.AggregateFinance()

	assert.NoError(t, err)
	assert.Len(t, aggregate.Months, 2)

	// Months come out chronologically.
	assert.Equal(t, "01-2025", aggregate.Months[0].Month)
	assert.Equal(t, "02-2025", aggregate.Months[1].Month)

	januaryMonth := aggregate.Months[0]
	assert.Len(t, januaryMonth.Items, 1)

	item := januaryMonth.Items[0]
	assert.Equal(t, "1828048543", item.SKU)
	assert.Equal(t, 2, item.SalesCount)
	// Delivered order only.
	assert.Equal(t, 1000.0, item.TotalRevenue)
	assert.Equal(t, 771.0, item.TotalCost)
	// abs(-15) from the delivered unit, the cancelled one had no rows.
	assert.Equal(t, 15.0, item.TotalServices)
	assert.Equal(t, map[string]float64{"Compensation": 30}, item.OtherTransactions)
	// 50 split across the month's 2 orders.
	assert.Equal(t, map[string]float64{"Subscription": 25}, item.SharedTransactions)
	assert.Equal(t, 1, item.StatusCounts[domain.StatusDelivered])
	assert.Equal(t, 1, item.StatusCounts[domain.StatusInstantCancel])
	// delivered / (delivered + instant cancel)
	assert.Equal(t, 50.0, item.BuyoutPercent)
	// 1000 - 771 - 15 - 25 - 30
	assert.Equal(t, 159.0, item.Margin)
	assert.Equal(t, 15.9, item.MarginPercent)

	februaryMonth := aggregate.Months[1]
	assert.Len(t, februaryMonth.Items, 1)
	assert.Equal(t, "1763835247", februaryMonth.Items[0].SKU)
	// 400 - 151 - 8
	assert.Equal(t, 241.0, februaryMonth.Items[0].Margin)

	// The overall rollup sums the monthly totals.
	assert.Equal(t, 3, aggregate.Totals.SalesCount)
	assert.Equal(t, 1400.0, aggregate.Totals.TotalRevenue)
	assert.Equal(t, 400.0, aggregate.Totals.Margin)
	assert.Equal(t, 2, aggregate.Totals.StatusCounts[domain.StatusDelivered])
}

func TestAggregateFinance_MonthTotalsSumItemMargins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderRepo := mocks.NewMockOrderRepository(ctrl)
	transactionRepo := mocks.NewMockTransactionRepository(ctrl)
	service := NewService(orderRepo, transactionRepo, financeTestProducts())

	january := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	orders := []*domain.Order{
		{PostingNumber: "p1", Status: string(domain.OzonStatusDelivered), SKU: "1828048543", Price: 1000, CreatedAt: january},
		{PostingNumber: "p2", Status: string(domain.OzonStatusDelivered), SKU: "1763835247", Price: 400, CreatedAt: january},
	}
	transactions := []*domain.Transaction{
		{ID: 1, Name: domain.SaleCommissionService, PostingNumber: "p1", Price: -10, Date: january},
		{ID: 2, Name: domain.SaleCommissionService, PostingNumber: "p2", Price: -8, Date: january},
	}

	orderRepo.EXPECT().FindAll(gomock.Any()).Return(orders, nil)
	transactionRepo.EXPECT().FindAll().Return(transactions, nil)

	aggregate, err := service.AggregateFinance()

	assert.NoError(t, err)
	assert.Len(t, aggregate.Months, 1)

	month := aggregate.Months[0]
	sum := 0.0
	for _, item := range month.Items {
		sum += item.Margin
	}
	assert.Equal(t, sum, month.Totals.Margin)
}

func TestAggregateFinance_EmptyStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderRepo := mocks.NewMockOrderRepository(ctrl)
	transactionRepo := mocks.NewMockTransactionRepository(ctrl)
	service := NewService(orderRepo, transactionRepo, financeTestProducts())

	orderRepo.EXPECT().FindAll(gomock.Any()).Return(nil, nil)
	transactionRepo.EXPECT().FindAll().Return(nil, nil)

	aggregate, err := service.AggregateFinance()

	assert.NoError(t, err)
	assert.Empty(t, aggregate.Months)
	assert.Equal(t, 0, aggregate.Totals.SalesCount)
	assert.Equal(t, 0.0, aggregate.Totals.BuyoutPercent)
}
