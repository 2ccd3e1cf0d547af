package domain

// PostingListRequest is the body for /v3/posting/fbs/list.
type PostingListRequest struct {
	Filter PostingFilter `json:"filter"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	With   PostingWith   `json:"with"`
}

type PostingFilter struct {
	Since string `json:"since"`
	To    string `json:"to"`
}

type PostingWith struct {
	AnalyticsData bool `json:"analytics_data"`
	FinancialData bool `json:"financial_data"`
}

type PostingListResponse struct {
	Result PostingListResult `json:"result"`
}

type PostingListResult struct {
	Postings []Posting `json:"postings"`
	HasNext  bool      `json:"has_next"`
}

// Posting is one FBS shipment as the Seller API reports it. Only the first
// product matters for unit economics; multi-product postings do not occur on
// this account.
type Posting struct {
	PostingNumber string            `json:"posting_number"`
	OrderID       int64             `json:"order_id"`
	OrderNumber   string            `json:"order_number"`
	Status        string            `json:"status"`
	CreatedAt     string            `json:"created_at"`
	InProcessAt   string            `json:"in_process_at"`
	Products      []PostingProduct  `json:"products"`
	FinancialData *FinancialData    `json:"financial_data"`
}

type PostingProduct struct {
	Name     string `json:"name"`
	SKU      int64  `json:"sku"`
	Price    string `json:"price"`
	OldPrice string `json:"old_price"`
}

type FinancialData struct {
	Products []FinancialProduct `json:"products"`
}

type FinancialProduct struct {
	Price        float64 `json:"price"`
	OldPrice     float64 `json:"old_price"`
	CurrencyCode string  `json:"currency_code"`
}
