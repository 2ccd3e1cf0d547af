package domain

// FinanceItem is the P&L of one SKU inside one month.
type FinanceItem struct {
	SKU                  string               `json:"sku"`
	TotalCost            float64              `json:"totalCost"`
	TotalServices        float64              `json:"totalServices"`
	TotalRevenue         float64              `json:"totalRevenue"`
	SalesCount           int                  `json:"salesCount"`
	StatusCounts         map[CustomStatus]int `json:"statusCounts"`
	OtherTransactions    map[string]float64   `json:"otherTransactions"`
	SharedTransactions   map[string]float64   `json:"sharedTransactions"`
	BuyoutPercent        float64              `json:"buyoutPercent"`
	Margin               float64              `json:"margin"`
	MarginPercent        float64              `json:"marginPercent"`
	ProfitabilityPercent float64              `json:"profitabilityPercent"`
}

// FinanceTotals aggregates FinanceItems, either per month or overall.
type FinanceTotals struct {
	TotalCost            float64              `json:"totalCost"`
	TotalServices        float64              `json:"totalServices"`
	TotalRevenue         float64              `json:"totalRevenue"`
	SalesCount           int                  `json:"salesCount"`
	StatusCounts         map[CustomStatus]int `json:"statusCounts"`
	BuyoutPercent        float64              `json:"buyoutPercent"`
	Margin               float64              `json:"margin"`
	MarginPercent        float64              `json:"marginPercent"`
	ProfitabilityPercent float64              `json:"profitabilityPercent"`
}

// FinanceMonth is the per-month breakdown, keyed by "MM-YYYY".
type FinanceMonth struct {
	Month  string         `json:"month"`
	Items  []*FinanceItem `json:"items"`
	Totals FinanceTotals  `json:"totals"`
}

// FinanceAggregate is the full finance report: every month plus one overall
// rollup summing all months.
type FinanceAggregate struct {
	Months []*FinanceMonth `json:"months"`
	Totals FinanceTotals   `json:"totals"`
}
