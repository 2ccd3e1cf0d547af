package handler

import (
	"net/http"

	"github.com/avolkov/ozon-economics-api/internal/api/handler/router"
	"github.com/avolkov/ozon-economics-api/internal/usecases/financing"
	"github.com/avolkov/ozon-economics-api/internal/usecases/uniteconomics"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Units(service uniteconomics.UnitAggregator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/units",
			Method:  http.MethodGet,
			Handler: GetUnits(service),
		},
		{
			Path:    "/v1/units/csv",
			Method:  http.MethodGet,
			Handler: GetUnitsCSV(service),
		},
		{
			Path:    "/v1/units/orders/csv",
			Method:  http.MethodGet,
			Handler: GetOrdersCSV(service),
		},
	}
}

func Finance(service financing.FinanceAggregator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/finance",
			Method:  http.MethodGet,
			Handler: GetFinance(service),
		},
		{
			Path:    "/v1/finance/csv",
			Method:  http.MethodGet,
			Handler: GetFinanceCSV(service),
		},
	}
}

func Sync(services SyncServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync/:type/run",
			Method:  http.MethodPost,
			Handler: RunSync(services),
		},
		{
			Path:    "/v1/sync/status",
			Method:  http.MethodGet,
			Handler: GetSyncStatus(services),
		},
	}
}
