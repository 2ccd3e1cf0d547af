package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/avolkov/ozon-economics-api/internal/scheduler"
	"github.com/avolkov/ozon-economics-api/pkg/apiErrors"
)

// Sync source names accepted by /v1/sync/:type/run.
const (
	SyncTypeOrders       = "orders"
	SyncTypeTransactions = "transactions"
	SyncTypeAdvertising  = "advertising"
	SyncTypeAll          = "all"
)

// SyncServices groups the three sync schedulers for manual triggering.
type SyncServices struct {
	Orders       scheduler.Syncer
	Transactions scheduler.Syncer
	Advertising  scheduler.Syncer
}

func (s SyncServices) all() []scheduler.Syncer {
	return []scheduler.Syncer{s.Orders, s.Transactions, s.Advertising}
}

// RunSync triggers one sync source (or all of them) outside the cron
// schedule. The sync runs in the background; the response only confirms the
// trigger.
func RunSync(services SyncServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		syncType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if syncType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "sync type not specified", nil)
			return
		}

		var targets []scheduler.Syncer
		switch syncType {
		case SyncTypeOrders:
			targets = []scheduler.Syncer{services.Orders}
		case SyncTypeTransactions:
			targets = []scheduler.Syncer{services.Transactions}
		case SyncTypeAdvertising:
			targets = []scheduler.Syncer{services.Advertising}
		case SyncTypeAll:
			targets = services.all()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "unknown sync type: "+syncType, nil)
			return
		}

		started := make([]string, 0, len(targets))
		for _, target := range targets {
			if err := target.RunNow(); err != nil {
				if errors.Is(err, scheduler.ErrAlreadyRunning) {
					apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, target.Name()+" sync already running", nil)
					return
				}
				logrus.WithError(err).WithField("sync", target.Name()).Error("triggering sync")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "could not trigger "+target.Name()+" sync", nil)
				return
			}
			started = append(started, target.Name())
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(map[string]any{"started": started}); err != nil {
			logrus.WithError(err).Error("encoding sync trigger response")
		}
	}
}

// GetSyncStatus reports the current state of all three sync sources.
func GetSyncStatus(services SyncServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses := make([]scheduler.SyncStatus, 0, 3)
		for _, target := range services.all() {
			statuses = append(statuses, target.Status())
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(statuses); err != nil {
			logrus.WithError(err).Error("encoding sync status response")
		}
	}
}
