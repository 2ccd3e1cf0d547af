package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/internal/usecases/uniteconomics"
	"github.com/avolkov/ozon-economics-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GetUnits returns the per-order economics report. All query parameters are
// optional: postingNumber, sku, status (comma-separated business statuses),
// from and to (YYYY-MM-DD, inclusive days).
func GetUnits(service uniteconomics.UnitAggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aggregate, ok := aggregateUnits(w, r, service)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(aggregate); err != nil {
			logrus.WithError(err).Error("encoding units response")
		}
	}
}

// GetUnitsCSV renders the same report as a CSV download.
func GetUnitsCSV(service uniteconomics.UnitAggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aggregate, ok := aggregateUnits(w, r, service)
		if !ok {
			return
		}

		writeCSV(w, "units.csv", uniteconomics.UnitsCSV(aggregate.Items))
	}
}

// GetOrdersCSV renders the per-day, per-SKU order summary as CSV.
func GetOrdersCSV(service uniteconomics.UnitAggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aggregate, ok := aggregateUnits(w, r, service)
		if !ok {
			return
		}

		writeCSV(w, "orders.csv", uniteconomics.OrdersCSV(aggregate.Items))
	}
}

func aggregateUnits(w http.ResponseWriter, r *http.Request, service uniteconomics.UnitAggregator) (*domain.UnitAggregate, bool) {
	query := r.URL.Query()

	filter := domain.UnitFilter{
		PostingNumber: query.Get("postingNumber"),
		SKU:           query.Get("sku"),
		Status:        query.Get("status"),
		From:          query.Get("from"),
		To:            query.Get("to"),
	}

	aggregate, err := service.AggregateUnits(filter)
	if err != nil {
		logrus.WithError(err).Error("aggregating units")
		if errors.Is(err, uniteconomics.ErrInvalidFilter) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		} else {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "could not build the units report", nil)
		}
		return nil, false
	}

	return aggregate, true
}

func writeCSV(w http.ResponseWriter, filename, content string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := w.Write([]byte(content)); err != nil {
		logrus.WithError(err).Error("writing csv response")
	}
}
