package ozon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	ozondomain "github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon/domain"
	"github.com/avolkov/ozon-economics-api/internal/domain"
)

func TestNormalizeOperation_FansOutServiceRows(t *testing.T) {
	operation := ozondomain.Operation{
		OperationID:   123,
		OperationType: "OperationAgentDeliveredToCustomer",
		OperationDate: "2025-01-10 14:30:00",
		Amount:        975,
		Posting:       ozondomain.OperationPosting{PostingNumber: "100-200-1"},
		Items:         []ozondomain.OperationItem{{SKU: 1828048543}},
		Services: []ozondomain.OperationService{
			{Name: "MarketplaceServiceItemDirectFlowLogistic", Price: -15},
			{Name: "MarketplaceServiceItemFulfillment", Price: -10},
		},
	}

	rows := normalizeOperation(operation)

	assert.Len(t, rows, 2)
	assert.Equal(t, "MarketplaceServiceItemDirectFlowLogistic", rows[0].Name)
	assert.Equal(t, -15.0, rows[0].Price)
	assert.Equal(t, "100-200-1", rows[0].PostingNumber)
	assert.Equal(t, "1828048543", rows[0].SKU)
	assert.Equal(t, "123", rows[0].OperationID)
	assert.Equal(t, time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC), rows[0].Date)
}

func TestNormalizeOperation_EmitsSyntheticSaleCommissionRow(t *testing.T) {
	operation := ozondomain.Operation{
		OperationID:    123,
		OperationType:  "OperationAgentDeliveredToCustomer",
		OperationDate:  "2025-01-10 14:30:00",
		SaleCommission: -120.5,
		Posting:        ozondomain.OperationPosting{PostingNumber: "100-200-1"},
		Services: []ozondomain.OperationService{
			{Name: "MarketplaceServiceItemDirectFlowLogistic", Price: -15},
		},
	}

	rows := normalizeOperation(operation)

	assert.Len(t, rows, 2)
	last := rows[len(rows)-1]
	assert.Equal(t, domain.SaleCommissionService, last.Name)
	assert.Equal(t, -120.5, last.Price)
	assert.Equal(t, "100-200-1", last.PostingNumber)
}

func TestNormalizeOperation_NoServicesUsesOperationAmount(t *testing.T) {
	operation := ozondomain.Operation{
		OperationID:   77,
		OperationType: "MarketplaceRedistributionOfAcquiringOperation",
		OperationDate: "2025-01-10 00:00:00",
		Amount:        -7.42,
	}

	rows := normalizeOperation(operation)

	assert.Len(t, rows, 1)
	assert.Equal(t, "MarketplaceRedistributionOfAcquiringOperation", rows[0].Name)
	assert.Equal(t, -7.42, rows[0].Price)
	assert.Empty(t, rows[0].PostingNumber)
}

func TestNormalizeOperation_ZeroCommissionAddsNoRow(t *testing.T) {
	operation := ozondomain.Operation{
		OperationID:   77,
		OperationType: "ClientReturnAgentOperation",
		OperationDate: "2025-01-10 00:00:00",
		Amount:        10,
	}

	rows := normalizeOperation(operation)

	assert.Len(t, rows, 1)
	assert.NotEqual(t, domain.SaleCommissionService, rows[0].Name)
}

func TestMonthlyChunks(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	chunks := monthlyChunks(from, to)

	assert.Len(t, chunks, 3)
	assert.Equal(t, from, chunks[0].from)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), chunks[0].to)
	assert.Equal(t, time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), chunks[1].from)
	assert.Equal(t, to, chunks[2].to)
}

func TestMonthlyChunks_EmptyRange(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, monthlyChunks(at, at))
}

func TestMapStatisticsRow(t *testing.T) {
	row := ozondomain.StatisticsRow{
		Date:       "2025-01-10",
		SKU:        "1828048543",
		AdvSKU:     "1828048513",
		Clicks:     "42",
		ToCart:     "7",
		AvgBid:     "12,50",
		MoneySpent: "310,75",
	}

	t.Run("cpc keeps the row sku", func(t *testing.T) {
		spend := mapStatisticsRow("111", row, false)
		assert.Equal(t, domain.CampaignTypeCPC, spend.Type)
		assert.Equal(t, "1828048543", spend.SKU)
		assert.Equal(t, 42, spend.Clicks)
		assert.Equal(t, 310.75, spend.MoneySpent)
		assert.Equal(t, 12.5, spend.AvgBid)
	})

	t.Run("cpo uses the advertising sku", func(t *testing.T) {
		spend := mapStatisticsRow("12950100", row, true)
		assert.Equal(t, domain.CampaignTypeCPO, spend.Type)
		assert.Equal(t, "1828048513", spend.SKU)
	})

	t.Run("garbage counters fall back to zero", func(t *testing.T) {
		spend := mapStatisticsRow("111", ozondomain.StatisticsRow{Date: "2025-01-10", Clicks: "n/a"}, false)
		assert.Equal(t, 0, spend.Clicks)
		assert.Equal(t, 0.0, spend.MoneySpent)
	})
}

func TestMapPosting(t *testing.T) {
	posting := ozondomain.Posting{
		PostingNumber: "100-200-1",
		OrderID:       456789,
		OrderNumber:   "ORD-55",
		Status:        "delivered",
		CreatedAt:     "2025-01-10T08:15:00Z",
		InProcessAt:   "2025-01-10T08:20:00Z",
		Products: []ozondomain.PostingProduct{
			{Name: "Backpack", SKU: 1828048543, Price: "990,00", OldPrice: "1200"},
		},
		FinancialData: &ozondomain.FinancialData{
			Products: []ozondomain.FinancialProduct{
				{Price: 975, OldPrice: 1200, CurrencyCode: "RUB"},
			},
		},
	}

	order := mapPosting(posting)

	assert.Equal(t, "100-200-1", order.PostingNumber)
	assert.Equal(t, "456789", order.OrderID)
	assert.Equal(t, "ORD-55", order.OrderNumber)
	assert.Equal(t, "Backpack", order.Product)
	assert.Equal(t, "1828048543", order.SKU)
	// Financial data wins over the product's listed price.
	assert.Equal(t, 975.0, order.Price)
	assert.Equal(t, "RUB", order.CurrencyCode)
	assert.Equal(t, time.Date(2025, 1, 10, 8, 15, 0, 0, time.UTC), order.CreatedAt)
}

func TestMapPosting_WithoutFinancialDataUsesProductPrice(t *testing.T) {
	posting := ozondomain.Posting{
		PostingNumber: "100-200-2",
		Products: []ozondomain.PostingProduct{
			{Name: "Backpack", SKU: 1828048543, Price: "990,50"},
		},
	}

	order := mapPosting(posting)

	assert.Equal(t, 990.5, order.Price)
	assert.Equal(t, "RUB", order.CurrencyCode)
}
