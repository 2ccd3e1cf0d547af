package financing

import (
	"strconv"
	"strings"
	"time"

	"github.com/avolkov/ozon-economics-api/internal/domain"
)

// FinanceCSV flattens the monthly report: one row per (month, SKU) plus a
// totals row per month, in the report's month order. Months are rendered as
// YYYY-MM in the export; the report itself keeps its MM-YYYY keys.
func FinanceCSV(aggregate *domain.FinanceAggregate) string {
	header := strings.Join([]string{
		"month",
		"sku",
		"salesCount",
		"totalRevenue",
		"totalCost",
		"totalServices",
		"buyoutPercent",
		"margin",
		"marginPercent",
		"profitabilityPercent",
	}, ",")

	lines := make([]string, 0, len(aggregate.Months)*2+2)
	lines = append(lines, header)

	for _, month := range aggregate.Months {
		exportMonth := csvMonth(month.Month)

		for _, item := range month.Items {
			lines = append(lines, strings.Join([]string{
				exportMonth,
				item.SKU,
				strconv.Itoa(item.SalesCount),
				formatAmount(item.TotalRevenue),
				formatAmount(item.TotalCost),
				formatAmount(item.TotalServices),
				formatAmount(item.BuyoutPercent),
				formatAmount(item.Margin),
				formatAmount(item.MarginPercent),
				formatAmount(item.ProfitabilityPercent),
			}, ","))
		}
		lines = append(lines, totalsRow(exportMonth, "total", month.Totals))
	}

	lines = append(lines, totalsRow("total", "", aggregate.Totals))

	return strings.Join(lines, "\n")
}

func totalsRow(month, label string, totals domain.FinanceTotals) string {
	return strings.Join([]string{
		month,
		label,
		strconv.Itoa(totals.SalesCount),
		formatAmount(totals.TotalRevenue),
		formatAmount(totals.TotalCost),
		formatAmount(totals.TotalServices),
		formatAmount(totals.BuyoutPercent),
		formatAmount(totals.Margin),
		formatAmount(totals.MarginPercent),
		formatAmount(totals.ProfitabilityPercent),
	}, ",")
}

func csvMonth(key string) string {
	parsed, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return key
	}
	return parsed.Format("2006-01")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
