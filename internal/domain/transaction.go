package domain

import (
	"time"
)

// SaleCommissionService is the synthetic service row emitted by the sync
// layer whenever an operation carries a non-zero sale_commission. Its sign
// drives the delivered/return decision in the status rules.
const SaleCommissionService = "SaleCommission"

// Transaction is a single signed ledger entry from the Ozon finance API.
// A row with an empty PostingNumber and a non-empty SKU is an "other"
// (per-SKU, unattached) transaction; one with neither is a shared/general
// transaction apportioned across all orders of its month.
type Transaction struct {
	ID            int64     `json:"id"`
	OperationID   string    `json:"operationId"`
	Name          string    `json:"name"`
	Date          time.Time `json:"date"`
	PostingNumber string    `json:"postingNumber"`
	SKU           string    `json:"sku"`
	Price         float64   `json:"price"`
}

// IsOther reports whether the transaction belongs to a SKU but not to any
// posting.
func (t Transaction) IsOther() bool {
	return t.SKU != "" && t.PostingNumber == ""
}

// IsShared reports whether the transaction is platform-wide (no SKU, no
// posting).
func (t Transaction) IsShared() bool {
	return t.SKU == "" && t.PostingNumber == ""
}
