package uniteconomics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/ozon-economics-api/infrastructure/repository"
	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/pkg/log"
	"github.com/avolkov/ozon-economics-api/pkg/utils"
)

// allocationKey buckets orders and spend by canonical SKU and calendar
// month (month stored as its first instant, UTC-normalized by the caller).
type allocationKey struct {
	sku   string
	month time.Time
}

// Allocation maps a (SKU, month) bucket to its per-unit advertising cost.
type Allocation map[allocationKey]decimal.Decimal

// PerUnit returns the allocated advertising cost for one order; orders in
// buckets without spend get zero.
func (a Allocation) PerUnit(products *Products, order domain.Order) decimal.Decimal {
	key := allocationKey{
		sku:   products.CanonicalSKU(order.SKU),
		month: utils.StartOfMonth(order.CreatedAt.UTC()),
	}
	return a[key]
}

// Allocator divides each (SKU, month) bucket's advertising spend evenly
// across the bucket's orders.
type Allocator struct {
	advertisingRepo repository.AdvertisingRepository
	products        *Products
}

func NewAllocator(advertisingRepo repository.AdvertisingRepository, products *Products) *Allocator {
	return &Allocator{
		advertisingRepo: advertisingRepo,
		products:        products,
	}
}

// Allocate computes the per-unit advertising cost for every bucket the given
// orders occupy. One store fetch covers the whole order set; spend rows with
// unparseable dates are excluded from bucketing, and spend in a bucket with
// zero orders is dropped (never divided by zero).
func (a *Allocator) Allocate(orders []*domain.Order) (Allocation, error) {
	if len(orders) == 0 {
		return Allocation{}, nil
	}

	counts := make(map[allocationKey]int)
	skuForms := make(map[string]struct{})
	var earliest, latest time.Time

	for _, order := range orders {
		month := utils.StartOfMonth(order.CreatedAt.UTC())
		key := allocationKey{sku: a.products.CanonicalSKU(order.SKU), month: month}
		counts[key]++

		for _, form := range a.products.KnownForms(order.SKU) {
			skuForms[form] = struct{}{}
		}

		if earliest.IsZero() || month.Before(earliest) {
			earliest = month
		}
		if latest.IsZero() || month.After(latest) {
			latest = month
		}
	}

	skus := make([]string, 0, len(skuForms))
	for sku := range skuForms {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	// [start-of-earliest-month, start-of-month-after-latest)
	spends, err := a.advertisingRepo.FindBySKUsAndDateRange(skus, earliest, latest.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	totals := make(map[allocationKey]decimal.Decimal)
	for _, spend := range spends {
		date, ok := utils.ParseFlexibleDate(spend.Date)
		if !ok {
			log.L.WithFields(log.Fields{
				"campaign_id": spend.CampaignID,
				"sku":         spend.SKU,
				"date":        spend.Date,
			}).Debug("advertising allocation: unparseable spend date, row skipped")
			continue
		}

		key := allocationKey{
			sku:   a.products.CanonicalSKU(spend.SKU),
			month: utils.StartOfMonth(date.UTC()),
		}

		if counts[key] == 0 {
			// Spend for a month without a single order of that SKU cannot
			// be attributed to any unit.
			log.L.WithFields(log.Fields{
				"sku":   key.sku,
				"month": key.month.Format("2006-01"),
				"spent": spend.MoneySpent,
			}).Debug("advertising allocation: spend without matching orders dropped")
			continue
		}

		totals[key] = totals[key].Add(decimal.NewFromFloat(spend.MoneySpent))
	}

	allocation := make(Allocation, len(totals))
	for key, total := range totals {
		perUnit := total.Div(decimal.NewFromInt(int64(counts[key]))).Round(2)
		allocation[key] = perUnit
	}

	return allocation, nil
}
