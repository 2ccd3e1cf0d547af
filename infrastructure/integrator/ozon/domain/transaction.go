package domain

// TransactionListRequest is the body for /v3/finance/transaction/list.
type TransactionListRequest struct {
	Filter   TransactionFilter `json:"filter"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type TransactionFilter struct {
	Date            TransactionDateFilter `json:"date"`
	TransactionType string                `json:"transaction_type,omitempty"`
}

type TransactionDateFilter struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type TransactionListResponse struct {
	Result TransactionListResult `json:"result"`
}

type TransactionListResult struct {
	Operations []Operation `json:"operations"`
	PageCount  int         `json:"page_count"`
	RowCount   int         `json:"row_count"`
}

// Operation is one raw finance ledger entry. One operation fans out into
// several stored transactions: one per service row, plus a synthetic
// SaleCommission row when sale_commission is non-zero.
type Operation struct {
	OperationID    int64              `json:"operation_id"`
	OperationType  string             `json:"operation_type"`
	OperationDate  string             `json:"operation_date"`
	Amount         float64            `json:"amount"`
	SaleCommission float64            `json:"sale_commission"`
	Posting        OperationPosting   `json:"posting"`
	Services       []OperationService `json:"services"`
	Items          []OperationItem    `json:"items"`
}

type OperationPosting struct {
	PostingNumber string `json:"posting_number"`
}

type OperationService struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type OperationItem struct {
	Name string `json:"name"`
	SKU  int64  `json:"sku"`
}
