package uniteconomics

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/avolkov/ozon-economics-api/infrastructure/repository"
	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/pkg/utils"
)

// ErrInvalidFilter marks a rejected inbound filter. Callers branch on it with
// errors.Is to tell a bad request from a store failure.
var ErrInvalidFilter = errors.New("invalid filter")

// UnitAggregator is the unit-economics surface consumed by the HTTP layer.
type UnitAggregator interface {
	AggregateUnits(filter domain.UnitFilter) (*domain.UnitAggregate, error)
}

// Service orchestrates one aggregation call: fetch orders, fetch only the
// relevant transactions and advertising buckets, build units, filter, roll
// up totals. Every call builds its own correlation and allocation maps; no
// state survives between calls.
type Service struct {
	orderRepo       repository.OrderRepository
	transactionRepo repository.TransactionRepository
	allocator       *Allocator
	factory         *Factory
	products        *Products
}

func NewService(
	orderRepo repository.OrderRepository,
	transactionRepo repository.TransactionRepository,
	advertisingRepo repository.AdvertisingRepository,
	products *Products,
) *Service {
	return &Service{
		orderRepo:       orderRepo,
		transactionRepo: transactionRepo,
		allocator:       NewAllocator(advertisingRepo, products),
		factory:         NewFactory(products),
		products:        products,
	}
}

// AggregateUnits builds exactly one Unit per order matching the filter. A
// failing store fetch aborts the whole call; there is no partial result.
func (s *Service) AggregateUnits(filter domain.UnitFilter) (*domain.UnitAggregate, error) {
	orderFilter, err := buildOrderFilter(filter)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindAll(orderFilter)
	if err != nil {
		return nil, fmt.Errorf("fetching orders: %w", err)
	}

	// Second phase: both fetches depend only on the order set and are
	// read-only, so they run concurrently.
	numbers := collectNumbers(orders)

	var (
		wg           sync.WaitGroup
		transactions []*domain.Transaction
		allocation   Allocation
		txErr        error
		allocErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		transactions, txErr = s.transactionRepo.FindByPostingNumbers(numbers)
	}()
	go func() {
		defer wg.Done()
		allocation, allocErr = s.allocator.Allocate(orders)
	}()
	wg.Wait()

	if txErr != nil {
		return nil, fmt.Errorf("fetching transactions: %w", txErr)
	}
	if allocErr != nil {
		return nil, fmt.Errorf("allocating advertising spend: %w", allocErr)
	}

	index := NewTransactionIndex(derefTransactions(transactions))

	items := make([]*domain.Unit, 0, len(orders))
	for _, order := range orders {
		correlated := index.Correlate(order.PostingNumber, order.OrderNumber)
		perUnit := allocation.PerUnit(s.products, *order)
		items = append(items, s.factory.CreateUnit(*order, correlated, perUnit))
	}

	items = filterByStatus(items, filter.Status)

	return &domain.UnitAggregate{
		Items:  items,
		Totals: reduceTotals(items),
	}, nil
}

// buildOrderFilter normalizes the inbound filter: date bounds become
// inclusive whole days.
func buildOrderFilter(filter domain.UnitFilter) (domain.OrderFilter, error) {
	orderFilter := domain.OrderFilter{
		PostingNumber: filter.PostingNumber,
		SKU:           filter.SKU,
	}

	if filter.From != "" {
		from, err := utils.ParseDate(filter.From)
		if err != nil {
			return domain.OrderFilter{}, fmt.Errorf("%w: 'from' date %q: %v", ErrInvalidFilter, filter.From, err)
		}
		start := utils.StartOfDay(*from)
		orderFilter.From = &start
	}

	if filter.To != "" {
		to, err := utils.ParseDate(filter.To)
		if err != nil {
			return domain.OrderFilter{}, fmt.Errorf("%w: 'to' date %q: %v", ErrInvalidFilter, filter.To, err)
		}
		end := utils.EndOfDay(*to)
		orderFilter.To = &end
	}

	return orderFilter, nil
}

// collectNumbers gathers every posting and order number of the order set so
// the transaction fetch is restricted to relevant rows.
func collectNumbers(orders []*domain.Order) []string {
	seen := make(map[string]struct{}, len(orders)*2)
	numbers := make([]string, 0, len(orders)*2)

	for _, order := range orders {
		for _, number := range []string{order.PostingNumber, order.OrderNumber} {
			if number == "" {
				continue
			}
			if _, ok := seen[number]; ok {
				continue
			}
			seen[number] = struct{}{}
			numbers = append(numbers, number)
		}
	}

	return numbers
}

func derefTransactions(transactions []*domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, *tx)
	}
	return out
}

// filterByStatus keeps units whose business status is in the comma-separated
// list. Runs after construction: the business status is derived, not stored.
func filterByStatus(items []*domain.Unit, statusList string) []*domain.Unit {
	if statusList == "" {
		return items
	}

	wanted := make(map[domain.CustomStatus]struct{})
	for _, status := range strings.Split(statusList, ",") {
		status = strings.TrimSpace(status)
		if status != "" {
			wanted[domain.CustomStatus(status)] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return items
	}

	filtered := make([]*domain.Unit, 0, len(items))
	for _, item := range items {
		if _, ok := wanted[item.CustomStatus]; ok {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// reduceTotals is a pure reduction over the filtered unit list. Price and
// cost accumulate delivered units only; everything stays decimal until the
// final rounding.
func reduceTotals(items []*domain.Unit) domain.UnitTotals {
	statuses := make(map[domain.CustomStatus]int)
	margin := decimal.Zero
	price := decimal.Zero
	costPrice := decimal.Zero
	transactionTotal := decimal.Zero

	for _, item := range items {
		statuses[item.CustomStatus]++
		margin = margin.Add(decimal.NewFromFloat(item.Margin))
		transactionTotal = transactionTotal.Add(decimal.NewFromFloat(item.TransactionTotal))

		if item.CustomStatus == domain.StatusDelivered {
			price = price.Add(decimal.NewFromFloat(item.Price))
			costPrice = costPrice.Add(decimal.NewFromFloat(item.CostPrice))
		}
	}

	return domain.UnitTotals{
		Statuses:         statuses,
		Margin:           utils.Round2(margin),
		Price:            utils.Round2(price),
		CostPrice:        utils.Round2(costPrice),
		TransactionTotal: utils.Round2(transactionTotal),
	}
}
