package domain

// AdvertisingSpend is one day of campaign statistics for one SKU, synced
// from the Ozon Performance API. Date keeps the raw string the API returned
// (ISO or DD.MM.YYYY); the allocator normalizes it when bucketing.
// Upsert key: (campaignId, sku, date, type).
type AdvertisingSpend struct {
	ID             int64   `json:"id"`
	CampaignID     string  `json:"campaignId"`
	SKU            string  `json:"sku"`
	Date           string  `json:"date"`
	Type           string  `json:"type"`
	Clicks         int     `json:"clicks"`
	ToCart         int     `json:"toCart"`
	AvgBid         float64 `json:"avgBid"`
	MoneySpent     float64 `json:"moneySpent"`
	MinBidCPO      float64 `json:"minBidCpo"`
	MinBidCPOTop   float64 `json:"minBidCpoTop"`
	CompetitiveBid float64 `json:"competitiveBid"`
	WeeklyBudget   float64 `json:"weeklyBudget"`
}

// Campaign pricing models. CPO campaign rows are merged by (date, sku)
// before persisting, CPC rows are stored as reported.
const (
	CampaignTypeCPC = "CPC"
	CampaignTypeCPO = "CPO"
)
