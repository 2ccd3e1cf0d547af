package ozon

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"

	ozondomain "github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon/domain"
	"github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon/performanceclient"
	"github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon/sellerclient"
	"github.com/avolkov/ozon-economics-api/internal/config"
	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/pkg/utils"
)

const operationDateLayout = "2006-01-02 15:04:05"

type OzonIntegrator interface {
	FetchOrders(ctx context.Context, from, to time.Time) ([]*domain.Order, error)
	FetchTransactions(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error)
	FetchAdvertisingSpends(ctx context.Context, from, to time.Time) ([]*domain.AdvertisingSpend, error)
}

type OzonService struct {
	cfg               *config.Config
	sellerClient      sellerclient.Client
	performanceClient performanceclient.Client
	cpoCampaigns      map[string]struct{}
}

func New(cfg *config.Config, seller sellerclient.Client, performance performanceclient.Client) OzonIntegrator {
	cpo := make(map[string]struct{}, len(cfg.Ozon.CPOCampaignIDs))
	for _, id := range cfg.Ozon.CPOCampaignIDs {
		cpo[id] = struct{}{}
	}

	return &OzonService{
		cfg:               cfg,
		sellerClient:      seller,
		performanceClient: performance,
		cpoCampaigns:      cpo,
	}
}

// FetchOrders pages through the FBS posting list for the period and maps
// each posting onto an order.
func (s *OzonService) FetchOrders(ctx context.Context, from, to time.Time) ([]*domain.Order, error) {
	limit := s.cfg.OrderSync.PageSize
	if limit <= 0 {
		limit = 1000
	}

	orders := make([]*domain.Order, 0)
	offset := 0

	for {
		resp, err := s.sellerClient.ListPostings(ctx, ozondomain.PostingListRequest{
			Filter: ozondomain.PostingFilter{
				Since: from.Format(time.RFC3339),
				To:    to.Format(time.RFC3339),
			},
			Limit:  limit,
			Offset: offset,
			With: ozondomain.PostingWith{
				AnalyticsData: true,
				FinancialData: true,
			},
		})
		if err != nil {
			return nil, errors.Wrap(err, "listing postings")
		}

		for _, posting := range resp.Result.Postings {
			orders = append(orders, mapPosting(posting))
		}

		if !resp.Result.HasNext || len(resp.Result.Postings) == 0 {
			break
		}
		offset += limit
	}

	return orders, nil
}

// FetchTransactions walks the period in one-month chunks, the largest window
// the finance endpoint accepts, and flattens every operation into its
// per-service rows.
func (s *OzonService) FetchTransactions(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	transactions := make([]*domain.Transaction, 0)

	for _, chunk := range monthlyChunks(from, to) {
		operations, err := s.fetchOperations(ctx, chunk.from, chunk.to)
		if err != nil {
			return nil, err
		}

		for _, operation := range operations {
			transactions = append(transactions, normalizeOperation(operation)...)
		}
	}

	return transactions, nil
}

// FetchAdvertisingSpends collects per-campaign daily statistics for each day
// of the period. Rows of CPO campaigns are merged by (date, sku) because the
// report repeats them per ad object.
func (s *OzonService) FetchAdvertisingSpends(ctx context.Context, from, to time.Time) ([]*domain.AdvertisingSpend, error) {
	spends := make([]*domain.AdvertisingSpend, 0)

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		date := day.Format(time.DateOnly)

		daySpends, err := s.fetchSpendsForDate(ctx, date)
		if err != nil {
			return nil, errors.Wrapf(err, "collecting statistics for %s", date)
		}

		spends = append(spends, daySpends...)
	}

	return spends, nil
}

func (s *OzonService) fetchSpendsForDate(ctx context.Context, date string) ([]*domain.AdvertisingSpend, error) {
	daily, err := s.performanceClient.GetDailyStatistics(ctx, date, date)
	if err != nil {
		return nil, err
	}
	if len(daily.Rows) == 0 {
		return nil, nil
	}

	campaigns := make([]string, 0, len(daily.Rows))
	for _, row := range daily.Rows {
		campaigns = append(campaigns, row.ID)
	}

	statistics, err := s.performanceClient.GetStatistics(ctx, ozondomain.StatisticsRequest{
		Campaigns: campaigns,
		GroupBy:   "DATE",
		DateFrom:  date,
		DateTo:    date,
	})
	if err != nil {
		return nil, err
	}

	regular := make([]*domain.AdvertisingSpend, 0)
	grouped := make(map[string]*domain.AdvertisingSpend)
	groupedOrder := make([]string, 0)

	for campaignID, campaign := range statistics {
		_, isCPO := s.cpoCampaigns[campaignID]

		for _, row := range campaign.Report.Rows {
			spend := mapStatisticsRow(campaignID, row, isCPO)
			if spend.Date == "" {
				continue
			}

			if !isCPO {
				regular = append(regular, spend)
				continue
			}

			key := spend.Date + "_" + spend.SKU
			if existing, ok := grouped[key]; ok {
				existing.Clicks += spend.Clicks
				existing.ToCart += spend.ToCart
				existing.MoneySpent += spend.MoneySpent
			} else {
				grouped[key] = spend
				groupedOrder = append(groupedOrder, key)
			}
		}
	}

	for _, key := range groupedOrder {
		regular = append(regular, grouped[key])
	}

	return regular, nil
}

func (s *OzonService) fetchOperations(ctx context.Context, from, to time.Time) ([]ozondomain.Operation, error) {
	pageSize := s.cfg.TransactionSync.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	operations := make([]ozondomain.Operation, 0)
	page := 1

	for {
		resp, err := s.sellerClient.ListTransactions(ctx, ozondomain.TransactionListRequest{
			Filter: ozondomain.TransactionFilter{
				Date: ozondomain.TransactionDateFilter{
					From: from.Format(time.RFC3339),
					To:   to.Format(time.RFC3339),
				},
			},
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return nil, errors.Wrap(err, "listing transactions")
		}

		operations = append(operations, resp.Result.Operations...)

		if len(resp.Result.Operations) < pageSize {
			break
		}
		page++
	}

	return operations, nil
}

type dateRange struct {
	from time.Time
	to   time.Time
}

func monthlyChunks(from, to time.Time) []dateRange {
	ranges := make([]dateRange, 0)
	cursor := from

	for cursor.Before(to) {
		end := cursor.AddDate(0, 1, 0)
		if end.After(to) {
			end = to
		}

		ranges = append(ranges, dateRange{from: cursor, to: end})
		cursor = end.AddDate(0, 0, 1)
	}

	return ranges
}

func mapPosting(posting ozondomain.Posting) *domain.Order {
	order := &domain.Order{
		OrderID:       strconv.FormatInt(posting.OrderID, 10),
		OrderNumber:   posting.OrderNumber,
		PostingNumber: posting.PostingNumber,
		Status:        posting.Status,
		CurrencyCode:  "RUB",
	}

	if created, ok := utils.ParseFlexibleDate(posting.CreatedAt); ok {
		order.CreatedAt = created
	}
	if inProcess, ok := utils.ParseFlexibleDate(posting.InProcessAt); ok {
		order.InProcessAt = inProcess
	}

	if len(posting.Products) > 0 {
		product := posting.Products[0]
		order.Product = product.Name
		order.SKU = strconv.FormatInt(product.SKU, 10)
		order.Price = utils.Round2(utils.Money(product.Price))
		order.OldPrice = utils.Round2(utils.Money(product.OldPrice))
	}

	if posting.FinancialData != nil && len(posting.FinancialData.Products) > 0 {
		financial := posting.FinancialData.Products[0]
		order.Price = financial.Price
		order.OldPrice = financial.OldPrice
		if financial.CurrencyCode != "" {
			order.CurrencyCode = financial.CurrencyCode
		}
	}

	return order
}

// normalizeOperation fans an operation out into stored transaction rows:
// one per service when services are present, otherwise a single row carrying
// the operation amount. A non-zero sale_commission always adds a synthetic
// SaleCommission row.
func normalizeOperation(operation ozondomain.Operation) []*domain.Transaction {
	date, ok := parseOperationDate(operation.OperationDate)
	if !ok {
		date = time.Time{}
	}

	operationID := strconv.FormatInt(operation.OperationID, 10)
	sku := ""
	if len(operation.Items) > 0 && operation.Items[0].SKU != 0 {
		sku = strconv.FormatInt(operation.Items[0].SKU, 10)
	}

	rows := make([]*domain.Transaction, 0, len(operation.Services)+2)

	if len(operation.Services) > 0 {
		for _, service := range operation.Services {
			rows = append(rows, &domain.Transaction{
				OperationID:   operationID,
				Name:          service.Name,
				Date:          date,
				PostingNumber: operation.Posting.PostingNumber,
				SKU:           sku,
				Price:         service.Price,
			})
		}
	} else {
		rows = append(rows, &domain.Transaction{
			OperationID:   operationID,
			Name:          operation.OperationType,
			Date:          date,
			PostingNumber: operation.Posting.PostingNumber,
			SKU:           sku,
			Price:         operation.Amount,
		})
	}

	if operation.SaleCommission != 0 {
		rows = append(rows, &domain.Transaction{
			OperationID:   operationID,
			Name:          domain.SaleCommissionService,
			Date:          date,
			PostingNumber: operation.Posting.PostingNumber,
			SKU:           sku,
			Price:         operation.SaleCommission,
		})
	}

	return rows
}

func parseOperationDate(value string) (time.Time, bool) {
	if parsed, err := time.Parse(operationDateLayout, value); err == nil {
		return parsed, true
	}
	return utils.ParseFlexibleDate(value)
}

func mapStatisticsRow(campaignID string, row ozondomain.StatisticsRow, isCPO bool) *domain.AdvertisingSpend {
	campaignType := domain.CampaignTypeCPC
	sku := row.SKU
	if isCPO {
		campaignType = domain.CampaignTypeCPO
		sku = row.AdvSKU
	}

	return &domain.AdvertisingSpend{
		CampaignID:     campaignID,
		SKU:            sku,
		Date:           row.Date,
		Type:           campaignType,
		Clicks:         parseCount(row.Clicks),
		ToCart:         parseCount(row.ToCart),
		AvgBid:         utils.Money(row.AvgBid).InexactFloat64(),
		MoneySpent:     utils.Money(row.MoneySpent).InexactFloat64(),
		MinBidCPO:      utils.Money(row.MinBidCPO).InexactFloat64(),
		MinBidCPOTop:   utils.Money(row.MinBidCPOTop).InexactFloat64(),
		CompetitiveBid: utils.Money(row.CompetitiveBid).InexactFloat64(),
		WeeklyBudget:   utils.Money(row.WeeklyBudget).InexactFloat64(),
	}
}

func parseCount(value string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}
