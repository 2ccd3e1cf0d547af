package uniteconomics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/avolkov/ozon-economics-api/internal/domain"
)

func testProducts() *Products {
	return NewProducts(
		map[string]decimal.Decimal{
			"1828048543": decimal.NewFromInt(771),
			"1828048513": decimal.NewFromInt(771),
			"1763835247": decimal.NewFromInt(151),
		},
		map[string]string{
			"1828048513": "1828048543",
		},
	)
}

func TestCreateUnit_DeliveredWithChargedCommission(t *testing.T) {
	factory := NewFactory(testProducts())

	order := domain.Order{
		PostingNumber: "100-200-1",
		Status:        string(domain.OzonStatusDelivered),
		SKU:           "1828048543",
		Price:         1000,
	}
	transactions := []domain.Transaction{
		{ID: 1, Name: domain.SaleCommissionService, PostingNumber: "100-200-1", Price: -10},
		{ID: 2, Name: "MarketplaceServiceItemDirectFlowLogistic", PostingNumber: "100-200-1", Price: -5},
	}

	unit := factory.CreateUnit(order, transactions, decimal.Zero)

	assert.Equal(t, domain.StatusDelivered, unit.CustomStatus)
	assert.Equal(t, 771.0, unit.CostPrice)
	assert.Equal(t, -15.0, unit.TotalServices)
	assert.Equal(t, -15.0, unit.TransactionTotal)
	// 1000 - 771 - 0 + (-15)
	assert.Equal(t, 214.0, unit.Margin)
}

func TestCreateUnit_DeliveredSubtractsAdvertisingShare(t *testing.T) {
	factory := NewFactory(testProducts())

	order := domain.Order{
		Status: string(domain.OzonStatusDelivered),
		SKU:    "1828048543",
		Price:  1000,
	}
	transactions := []domain.Transaction{
		{ID: 1, Name: domain.SaleCommissionService, Price: -10},
	}

	unit := factory.CreateUnit(order, transactions, decimal.NewFromInt(50))

	assert.Equal(t, 50.0, unit.AdvertisingPerUnit)
	// 1000 - 771 - 50 + (-10)
	assert.Equal(t, 169.0, unit.Margin)
}

func TestCreateUnit_DeliveredWithoutCommissionAwaitsPayment(t *testing.T) {
	factory := NewFactory(testProducts())

	order := domain.Order{
		Status: string(domain.OzonStatusDelivered),
		SKU:    "1828048543",
		Price:  1000,
	}
	transactions := []domain.Transaction{
		{ID: 1, Name: "MarketplaceServiceItemDirectFlowLogistic", Price: -5},
	}

	unit := factory.CreateUnit(order, transactions, decimal.Zero)

	assert.Equal(t, domain.StatusAwaitingPayment, unit.CustomStatus)
	assert.Equal(t, 0.0, unit.CostPrice)
	assert.Equal(t, -5.0, unit.Margin)
}

func TestCreateUnit_DeliveredWithRefundedCommissionIsReturn(t *testing.T) {
	factory := NewFactory(testProducts())

	order := domain.Order{
		Status: string(domain.OzonStatusDelivered),
		SKU:    "1828048543",
		Price:  1000,
	}
	// Charge and refund cancel out to a positive net: item came back.
	transactions := []domain.Transaction{
		{ID: 1, Name: domain.SaleCommissionService, Price: -10},
		{ID: 2, Name: domain.SaleCommissionService, Price: 15},
	}

	unit := factory.CreateUnit(order, transactions, decimal.Zero)

	assert.Equal(t, domain.StatusReturn, unit.CustomStatus)
	assert.Equal(t, 0.0, unit.CostPrice)
	assert.Equal(t, 5.0, unit.Margin)
}

func TestCreateUnit_CancelledStatuses(t *testing.T) {
	factory := NewFactory(testProducts())

	tests := []struct {
		name         string
		transactions []domain.Transaction
		wantStatus   domain.CustomStatus
		wantMargin   float64
	}{
		{
			name: "return logistics billed means pickup point cancel",
			transactions: []domain.Transaction{
				{ID: 1, Name: "MarketplaceServiceItemRedistributionReturnsPVZ", Price: -20},
			},
			wantStatus: domain.StatusCancelPVZ,
			wantMargin: -20,
		},
		{
			name: "return flow logistic also means pickup point cancel",
			transactions: []domain.Transaction{
				{ID: 1, Name: "MarketplaceServiceItemReturnFlowLogistic", Price: -12.5},
			},
			wantStatus: domain.StatusCancelPVZ,
			wantMargin: -12.5,
		},
		{
			name:         "no return logistics means instant cancel",
			transactions: nil,
			wantStatus:   domain.StatusInstantCancel,
			wantMargin:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := domain.Order{
				Status: string(domain.OzonStatusCancelled),
				SKU:    "1828048543",
				Price:  1000,
			}

			unit := factory.CreateUnit(order, tt.transactions, decimal.Zero)

			assert.Equal(t, tt.wantStatus, unit.CustomStatus)
			assert.Equal(t, 0.0, unit.CostPrice)
			assert.Equal(t, tt.wantMargin, unit.Margin)
		})
	}
}

func TestCreateUnit_InFlightStatuses(t *testing.T) {
	factory := NewFactory(testProducts())

	tests := []struct {
		rawStatus  string
		wantStatus domain.CustomStatus
	}{
		{string(domain.OzonStatusAwaitingDeliver), domain.StatusAwaitingDelivery},
		{string(domain.OzonStatusAwaitingPackaging), domain.StatusAwaitingPackaging},
		{string(domain.OzonStatusDelivering), domain.StatusDelivering},
	}

	for _, tt := range tests {
		t.Run(tt.rawStatus, func(t *testing.T) {
			order := domain.Order{Status: tt.rawStatus, SKU: "1828048543", Price: 500}
			transactions := []domain.Transaction{
				{ID: 1, Name: "MarketplaceServiceItemDirectFlowLogistic", Price: -7},
			}

			unit := factory.CreateUnit(order, transactions, decimal.Zero)

			assert.Equal(t, tt.wantStatus, unit.CustomStatus)
			assert.Equal(t, 0.0, unit.CostPrice)
			assert.Equal(t, -7.0, unit.Margin)
		})
	}
}

func TestCreateUnit_UnknownStatuses(t *testing.T) {
	factory := NewFactory(testProducts())

	t.Run("unmapped status stays visible", func(t *testing.T) {
		order := domain.Order{Status: "arbitration", SKU: "1828048543"}
		unit := factory.CreateUnit(order, nil, decimal.Zero)
		assert.Equal(t, domain.CustomStatus("arbitration"), unit.CustomStatus)
	})

	t.Run("empty status falls back to the unknown sentinel", func(t *testing.T) {
		order := domain.Order{Status: "", SKU: "1828048543"}
		unit := factory.CreateUnit(order, nil, decimal.Zero)
		assert.Equal(t, domain.StatusUnknown, unit.CustomStatus)
	})
}

func TestCreateUnit_AliasSKUResolvesCostPrice(t *testing.T) {
	factory := NewFactory(testProducts())

	order := domain.Order{
		Status: string(domain.OzonStatusDelivered),
		SKU:    "1828048513",
		Price:  900,
	}
	transactions := []domain.Transaction{
		{ID: 1, Name: domain.SaleCommissionService, Price: -10},
	}

	unit := factory.CreateUnit(order, transactions, decimal.Zero)

	assert.Equal(t, 771.0, unit.CostPrice)
	assert.Equal(t, 119.0, unit.Margin)
}

func TestCreateUnit_DeduplicatesTransactions(t *testing.T) {
	factory := NewFactory(testProducts())

	order := domain.Order{
		Status: string(domain.OzonStatusDelivered),
		SKU:    "1828048543",
		Price:  1000,
	}
	// The same stored row matched under both the posting and the order
	// number must be counted once.
	duplicate := domain.Transaction{ID: 7, Name: domain.SaleCommissionService, Price: -10}
	transactions := []domain.Transaction{duplicate, duplicate}

	unit := factory.CreateUnit(order, transactions, decimal.Zero)

	assert.Len(t, unit.Transactions, 1)
	assert.Equal(t, -10.0, unit.TotalServices)
	assert.Equal(t, 219.0, unit.Margin)
}

func TestCreateUnit_SaleCommissionNameIsTrimmed(t *testing.T) {
	factory := NewFactory(testProducts())

	order := domain.Order{
		Status: string(domain.OzonStatusDelivered),
		SKU:    "1828048543",
		Price:  1000,
	}
	transactions := []domain.Transaction{
		{ID: 1, Name: "  SaleCommission ", Price: -10},
	}

	unit := factory.CreateUnit(order, transactions, decimal.Zero)

	assert.Equal(t, domain.StatusDelivered, unit.CustomStatus)
}
