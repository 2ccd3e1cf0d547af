package domain

import (
	"time"
)

// Order is one FBS posting synced from the Ozon Seller API. PostingNumber is
// the upsert key: one order row per posting.
type Order struct {
	ID            int64     `json:"id"`
	Product       string    `json:"product"`
	OrderID       string    `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	PostingNumber string    `json:"postingNumber"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	InProcessAt   time.Time `json:"inProcessAt"`
	SKU           string    `json:"sku"`
	OldPrice      float64   `json:"oldPrice"`
	Price         float64   `json:"price"`
	CurrencyCode  string    `json:"currencyCode"`
}

// OrderFilter narrows the order set for an aggregation call. From/To are
// inclusive whole days: From floored to 00:00:00, To ceiled to 23:59:59.999
// before they reach the store.
type OrderFilter struct {
	PostingNumber string
	SKU           string
	From          *time.Time
	To            *time.Time
}
