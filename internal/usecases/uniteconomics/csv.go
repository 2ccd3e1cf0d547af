package uniteconomics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/pkg/utils"
)

// UnitsCSV renders the unit list with a fixed column prefix followed by one
// column per distinct service name seen across the whole list (sorted), so
// every fee type gets its own column.
func UnitsCSV(items []*domain.Unit) string {
	serviceNames := collectServiceNames(items)

	header := append([]string{
		"product",
		"orderId",
		"orderNumber",
		"postingNumber",
		"statusOzon",
		"createdAt",
		"price",
		"currencyCode",
		"status",
		"margin",
		"costPrice",
		"totalServices",
		"advertisingPerUnit",
	}, serviceNames...)

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, strings.Join(header, ","))

	for _, item := range items {
		totals := collectServiceTotals(item.Transactions)

		row := []string{
			item.Product,
			item.OrderID,
			item.OrderNumber,
			item.PostingNumber,
			item.Status,
			item.CreatedAt.Format("2006-01-02"),
			formatAmount(item.Price),
			item.CurrencyCode,
			string(item.CustomStatus),
			formatAmount(item.Margin),
			formatAmount(item.CostPrice),
			formatAmount(item.TotalServices),
			formatAmount(item.AdvertisingPerUnit),
		}
		for _, name := range serviceNames {
			row = append(row, formatAmount(utils.Round2(totals[name])))
		}

		lines = append(lines, strings.Join(row, ","))
	}

	return strings.Join(lines, "\n")
}

// OrdersCSV renders a per-day, per-SKU sales summary: date, sku, money,
// count, sorted by date then SKU.
func OrdersCSV(items []*domain.Unit) string {
	type dailyRow struct {
		date        string
		sku         string
		ordersMoney decimal.Decimal
		count       int
	}

	grouped := make(map[string]*dailyRow)
	for _, item := range items {
		date := item.CreatedAt.Format("2006-01-02")
		key := item.SKU + "_" + date

		row, ok := grouped[key]
		if !ok {
			row = &dailyRow{date: date, sku: item.Product}
			grouped[key] = row
		}
		row.ordersMoney = row.ordersMoney.Add(decimal.NewFromFloat(item.Price))
		row.count++
	}

	rows := make([]*dailyRow, 0, len(grouped))
	for _, row := range grouped {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].date != rows[j].date {
			return rows[i].date < rows[j].date
		}
		return rows[i].sku < rows[j].sku
	})

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, "date,sku,ordersMoney,count")
	for _, row := range rows {
		lines = append(lines, strings.Join([]string{
			row.date,
			row.sku,
			formatAmount(utils.Round2(row.ordersMoney)),
			strconv.Itoa(row.count),
		}, ","))
	}

	return strings.Join(lines, "\n")
}

func collectServiceNames(items []*domain.Unit) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, tx := range item.Transactions {
			name := strings.TrimSpace(tx.Name)
			if name != "" {
				seen[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectServiceTotals(transactions []domain.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		name := strings.TrimSpace(tx.Name)
		if name == "" {
			continue
		}
		totals[name] = totals[name].Add(decimal.NewFromFloat(tx.Price))
	}
	return totals
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
