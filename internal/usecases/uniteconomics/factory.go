package uniteconomics

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/pkg/utils"
)

// Factory composes one order plus its correlated data into a Unit. The whole
// decimal pipeline (service sums, status rule dispatch, cost and margin)
// lives here so there is exactly one construction path.
type Factory struct {
	products *Products
}

func NewFactory(products *Products) *Factory {
	return &Factory{products: products}
}

// CreateUnit builds the derived Unit record. transactions may contain
// duplicates (matched under both posting and order number); they are
// deduplicated here. advertisingPerUnit is this order's share of the (SKU,
// month) advertising bucket. All money stays decimal until the final
// two-place rounding.
func (f *Factory) CreateUnit(
	order domain.Order,
	transactions []domain.Transaction,
	advertisingPerUnit decimal.Decimal,
) *domain.Unit {
	uniqueTxs := dedupeTransactions(transactions)

	totalServices := decimal.Zero
	saleCommissionSum := decimal.Zero
	hasSaleCommission := false
	hasReturnLogistics := false

	for _, tx := range uniqueTxs {
		price := decimal.NewFromFloat(tx.Price)
		totalServices = totalServices.Add(price)

		name := strings.TrimSpace(tx.Name)
		if name == domain.SaleCommissionService {
			hasSaleCommission = true
			saleCommissionSum = saleCommissionSum.Add(price)
		}
		if _, ok := returnLogisticsServices[name]; ok {
			hasReturnLogistics = true
		}
	}

	ctx := economyContext{
		rawStatus:          order.Status,
		price:              decimal.NewFromFloat(order.Price),
		totalServices:      totalServices,
		hasSaleCommission:  hasSaleCommission,
		saleCommissionSum:  saleCommissionSum,
		hasReturnLogistics: hasReturnLogistics,
		costPriceLookup:    f.products.CostPrice(order.SKU),
		advertisingPerUnit: advertisingPerUnit,
	}

	outcome := resolveRule(order.Status)(ctx)

	return &domain.Unit{
		Order:              order,
		Transactions:       uniqueTxs,
		TransactionTotal:   utils.Round2(totalServices),
		AdvertisingPerUnit: utils.Round2(advertisingPerUnit),
		CustomStatus:       outcome.status,
		CostPrice:          utils.Round2(outcome.costPrice),
		TotalServices:      utils.Round2(totalServices),
		Margin:             utils.Round2(outcome.margin),
	}
}
