package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/avolkov/ozon-economics-api/internal/usecases/financing"
	"github.com/avolkov/ozon-economics-api/pkg/apiErrors"
)

// GetFinance returns the month-by-SKU finance report over the full stored
// history. It takes no parameters: the report always covers everything.
func GetFinance(service financing.FinanceAggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aggregate, err := service.AggregateFinance()
		if err != nil {
			logrus.WithError(err).Error("aggregating finance report")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "could not build the finance report", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(aggregate); err != nil {
			logrus.WithError(err).Error("encoding finance response")
		}
	}
}

func GetFinanceCSV(service financing.FinanceAggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aggregate, err := service.AggregateFinance()
		if err != nil {
			logrus.WithError(err).Error("aggregating finance report")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "could not build the finance report", nil)
			return
		}

		writeCSV(w, "finance.csv", financing.FinanceCSV(aggregate))
	}
}
