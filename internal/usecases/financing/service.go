package financing

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/ozon-economics-api/infrastructure/repository"
	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/internal/usecases/uniteconomics"
	"github.com/avolkov/ozon-economics-api/pkg/utils"
)

const monthKeyLayout = "01-2006"

// FinanceAggregator is the finance-report surface consumed by the HTTP layer.
type FinanceAggregator interface {
	AggregateFinance() (*domain.FinanceAggregate, error)
}

// Service rolls the full order and ledger history up into the month-by-SKU
// finance report. Units are rebuilt on every call with zero advertising:
// campaign spend is a unit-economics concern, the finance report books
// advertising through the ledger rows instead.
type Service struct {
	orderRepo       repository.OrderRepository
	transactionRepo repository.TransactionRepository
	factory         *uniteconomics.Factory
}

func NewService(
	orderRepo repository.OrderRepository,
	transactionRepo repository.TransactionRepository,
	products *uniteconomics.Products,
) *Service {
	return &Service{
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		factory:         uniteconomics.NewFactory(products),
	}
}

// itemAccumulator keeps one (month, SKU) cell exact until the final
// rounding.
type itemAccumulator struct {
	sku           string
	totalCost     decimal.Decimal
	totalServices decimal.Decimal
	totalRevenue  decimal.Decimal
	salesCount    int
	statusCounts  map[domain.CustomStatus]int
}

func (s *Service) AggregateFinance() (*domain.FinanceAggregate, error) {
	var (
		wg           sync.WaitGroup
		orders       []*domain.Order
		transactions []*domain.Transaction
		orderErr     error
		txErr        error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		orders, orderErr = s.orderRepo.FindAll(domain.OrderFilter{})
	}()
	go func() {
		defer wg.Done()
		transactions, txErr = s.transactionRepo.FindAll()
	}()
	wg.Wait()

	if orderErr != nil {
		return nil, fmt.Errorf("fetching orders: %w", orderErr)
	}
	if txErr != nil {
		return nil, fmt.Errorf("fetching transactions: %w", txErr)
	}

	plain := make([]domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		plain = append(plain, *tx)
	}
	index := uniteconomics.NewTransactionIndex(plain)

	cells := make(map[string]map[string]*itemAccumulator)
	monthCounts := make(map[string]int)

	for _, order := range orders {
		correlated := index.Correlate(order.PostingNumber, order.OrderNumber)
		unit := s.factory.CreateUnit(*order, correlated, decimal.Zero)

		month := utils.MonthKey(order.CreatedAt)
		bySKU, ok := cells[month]
		if !ok {
			bySKU = make(map[string]*itemAccumulator)
			cells[month] = bySKU
		}

		cell, ok := bySKU[order.SKU]
		if !ok {
			cell = &itemAccumulator{
				sku:          order.SKU,
				statusCounts: make(map[domain.CustomStatus]int),
			}
			bySKU[order.SKU] = cell
		}

		cell.totalServices = cell.totalServices.Add(decimal.NewFromFloat(unit.TotalServices).Abs())
		if unit.CustomStatus == domain.StatusDelivered {
			cell.totalCost = cell.totalCost.Add(decimal.NewFromFloat(unit.CostPrice))
			cell.totalRevenue = cell.totalRevenue.Add(decimal.NewFromFloat(unit.Price))
		}
		cell.salesCount++
		cell.statusCounts[unit.CustomStatus]++
		monthCounts[month]++
	}

	other, shared := bucketUnattached(plain)

	months := make([]*domain.FinanceMonth, 0, len(cells))
	overall := newTotalsAccumulator()

	for _, month := range sortedMonthKeys(cells) {
		financeMonth := s.buildMonth(month, cells[month], other[month], shared[month], monthCounts[month])
		months = append(months, financeMonth)
		overall.add(financeMonth.Totals)
	}

	return &domain.FinanceAggregate{
		Months: months,
		Totals: overall.finish(),
	}, nil
}

func (s *Service) buildMonth(
	month string,
	bySKU map[string]*itemAccumulator,
	otherBySKU map[string]map[string]decimal.Decimal,
	sharedByName map[string]decimal.Decimal,
	orderCount int,
) *domain.FinanceMonth {
	totals := newTotalsAccumulator()
	items := make([]*domain.FinanceItem, 0, len(bySKU))

	skus := make([]string, 0, len(bySKU))
	for sku := range bySKU {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	for _, sku := range skus {
		cell := bySKU[sku]

		otherTx := make(map[string]float64)
		otherSum := decimal.Zero
		for name, sum := range otherBySKU[sku] {
			rounded := utils.Round2(sum)
			otherTx[name] = rounded
			otherSum = otherSum.Add(decimal.NewFromFloat(rounded))
		}

		// Every SKU of the month carries the same per-order share of the
		// platform-wide rows.
		sharedTx := make(map[string]float64)
		sharedSum := decimal.Zero
		if orderCount > 0 {
			for name, sum := range sharedByName {
				rounded := utils.Round2(sum.Div(decimal.NewFromInt(int64(orderCount))))
				sharedTx[name] = rounded
				sharedSum = sharedSum.Add(decimal.NewFromFloat(rounded))
			}
		}

		item := &domain.FinanceItem{
			SKU:                sku,
			TotalCost:          utils.Round2(cell.totalCost),
			TotalServices:      utils.Round2(cell.totalServices),
			TotalRevenue:       utils.Round2(cell.totalRevenue),
			SalesCount:         cell.salesCount,
			StatusCounts:       cell.statusCounts,
			OtherTransactions:  otherTx,
			SharedTransactions: sharedTx,
			BuyoutPercent:      Buyout(cell.statusCounts),
		}
		item.Margin = Margin(item.TotalRevenue, item.TotalCost, item.TotalServices, sharedSum, otherSum)
		item.MarginPercent = MarginPercent(item.Margin, item.TotalRevenue)
		item.ProfitabilityPercent = ProfitabilityPercent(item.Margin, item.TotalCost)

		items = append(items, item)
		totals.addItem(item)
	}

	return &domain.FinanceMonth{
		Month:  month,
		Items:  items,
		Totals: totals.finish(),
	}
}

// bucketUnattached splits ledger rows without a posting into the two report
// buckets: per-SKU ("other") and platform-wide ("shared"), keyed by month
// and summed as absolute values.
func bucketUnattached(transactions []domain.Transaction) (
	map[string]map[string]map[string]decimal.Decimal,
	map[string]map[string]decimal.Decimal,
) {
	other := make(map[string]map[string]map[string]decimal.Decimal)
	shared := make(map[string]map[string]decimal.Decimal)

	for _, tx := range transactions {
		month := utils.MonthKey(tx.Date)
		amount := decimal.NewFromFloat(tx.Price).Abs()

		switch {
		case tx.IsOther():
			bySKU, ok := other[month]
			if !ok {
				bySKU = make(map[string]map[string]decimal.Decimal)
				other[month] = bySKU
			}
			byName, ok := bySKU[tx.SKU]
			if !ok {
				byName = make(map[string]decimal.Decimal)
				bySKU[tx.SKU] = byName
			}
			byName[tx.Name] = byName[tx.Name].Add(amount)

		case tx.IsShared():
			byName, ok := shared[month]
			if !ok {
				byName = make(map[string]decimal.Decimal)
				shared[month] = byName
			}
			byName[tx.Name] = byName[tx.Name].Add(amount)
		}
	}

	return other, shared
}

func sortedMonthKeys(cells map[string]map[string]*itemAccumulator) []string {
	keys := make([]string, 0, len(cells))
	for key := range cells {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		left, _ := time.Parse(monthKeyLayout, keys[i])
		right, _ := time.Parse(monthKeyLayout, keys[j])
		return left.Before(right)
	})

	return keys
}

// totalsAccumulator sums already rounded item or month values, so the
// report's totals line matches what its rows show.
type totalsAccumulator struct {
	totalCost     decimal.Decimal
	totalServices decimal.Decimal
	totalRevenue  decimal.Decimal
	margin        decimal.Decimal
	salesCount    int
	statusCounts  map[domain.CustomStatus]int
}

func newTotalsAccumulator() *totalsAccumulator {
	return &totalsAccumulator{
		statusCounts: make(map[domain.CustomStatus]int),
	}
}

func (t *totalsAccumulator) addItem(item *domain.FinanceItem) {
	t.totalCost = t.totalCost.Add(decimal.NewFromFloat(item.TotalCost))
	t.totalServices = t.totalServices.Add(decimal.NewFromFloat(item.TotalServices))
	t.totalRevenue = t.totalRevenue.Add(decimal.NewFromFloat(item.TotalRevenue))
	t.margin = t.margin.Add(decimal.NewFromFloat(item.Margin))
	t.salesCount += item.SalesCount
	for status, count := range item.StatusCounts {
		t.statusCounts[status] += count
	}
}

func (t *totalsAccumulator) add(totals domain.FinanceTotals) {
	t.totalCost = t.totalCost.Add(decimal.NewFromFloat(totals.TotalCost))
	t.totalServices = t.totalServices.Add(decimal.NewFromFloat(totals.TotalServices))
	t.totalRevenue = t.totalRevenue.Add(decimal.NewFromFloat(totals.TotalRevenue))
	t.margin = t.margin.Add(decimal.NewFromFloat(totals.Margin))
	t.salesCount += totals.SalesCount
	for status, count := range totals.StatusCounts {
		t.statusCounts[status] += count
	}
}

func (t *totalsAccumulator) finish() domain.FinanceTotals {
	totals := domain.FinanceTotals{
		TotalCost:     utils.Round2(t.totalCost),
		TotalServices: utils.Round2(t.totalServices),
		TotalRevenue:  utils.Round2(t.totalRevenue),
		Margin:        utils.Round2(t.margin),
		SalesCount:    t.salesCount,
		StatusCounts:  t.statusCounts,
		BuyoutPercent: Buyout(t.statusCounts),
	}
	totals.MarginPercent = MarginPercent(totals.Margin, totals.TotalRevenue)
	totals.ProfitabilityPercent = ProfitabilityPercent(totals.Margin, totals.TotalCost)
	return totals
}
