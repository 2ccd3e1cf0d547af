package domain

// DailyStatisticsResponse is what /api/client/statistics/daily/json returns:
// one row per campaign that spent money on the requested day.
type DailyStatisticsResponse struct {
	Rows []DailyStatisticsRow `json:"rows"`
}

type DailyStatisticsRow struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	MoneySpent string `json:"moneySpent"`
}

// StatisticsRequest is the body for /api/client/statistics/json.
type StatisticsRequest struct {
	Campaigns []string `json:"campaigns"`
	GroupBy   string   `json:"groupBy"`
	DateFrom  string   `json:"dateFrom"`
	DateTo    string   `json:"dateTo"`
}

// StatisticsResponse maps campaign ID to its report. Numeric fields come
// back as strings with either a comma or a dot decimal separator.
type StatisticsResponse map[string]CampaignStatistics

type CampaignStatistics struct {
	Report CampaignReport `json:"report"`
}

type CampaignReport struct {
	Rows []StatisticsRow `json:"rows"`
}

type StatisticsRow struct {
	Date           string `json:"date"`
	SKU            string `json:"sku"`
	AdvSKU         string `json:"advSku"`
	Clicks         string `json:"clicks"`
	ToCart         string `json:"toCart"`
	AvgBid         string `json:"avgBid"`
	MoneySpent     string `json:"moneySpent"`
	MinBidCPO      string `json:"minBidCpo"`
	MinBidCPOTop   string `json:"minBidCpoTop"`
	CompetitiveBid string `json:"competitiveBid"`
	WeeklyBudget   string `json:"weeklyBudget"`
}
