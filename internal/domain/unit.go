package domain

// Unit is one order enriched with its correlated transactions, the allocated
// advertising share and the computed economics. Units are never persisted;
// they live for the duration of one aggregation call.
type Unit struct {
	Order

	Transactions       []Transaction `json:"transactions"`
	TransactionTotal   float64       `json:"transactionTotal"`
	AdvertisingPerUnit float64       `json:"advertisingPerUnit"`
	CustomStatus       CustomStatus  `json:"statusCustom"`
	CostPrice          float64       `json:"costPrice"`
	TotalServices      float64       `json:"totalServices"`
	Margin             float64       `json:"margin"`
}

// UnitTotals is the reduction over a filtered unit list. Price and CostPrice
// accumulate delivered units only.
type UnitTotals struct {
	Statuses         map[CustomStatus]int `json:"statuses"`
	Margin           float64              `json:"margin"`
	Price            float64              `json:"price"`
	CostPrice        float64              `json:"costPrice"`
	TransactionTotal float64              `json:"transactionTotal"`
}

// UnitAggregate is the response of one unit aggregation call.
type UnitAggregate struct {
	Items  []*Unit    `json:"items"`
	Totals UnitTotals `json:"totals"`
}

// UnitFilter is the inbound filter of an aggregation request. Status holds a
// comma-separated list of business-status display values and is applied after
// unit construction, since the business status is derived, not stored.
type UnitFilter struct {
	PostingNumber string
	SKU           string
	Status        string
	From          string
	To            string
}
