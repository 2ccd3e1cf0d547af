package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon"
	"github.com/avolkov/ozon-economics-api/infrastructure/repository"
	"github.com/avolkov/ozon-economics-api/internal/config"
	"github.com/avolkov/ozon-economics-api/pkg/utils"
)

// TransactionSyncService pulls the finance ledger from the configured start
// date on every run. Rows are upserted, so re-fetching already stored months
// is idempotent and picks up late corrections.
type TransactionSyncService struct {
	scheduler       *gocron.Scheduler
	appConfig       *config.Config
	transactionRepo repository.TransactionRepository
	integrator      ozon.OzonIntegrator

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewTransactionSyncService(
	transactionRepo repository.TransactionRepository,
	integrator ozon.OzonIntegrator,
	appConfig *config.Config,
) *TransactionSyncService {
	return &TransactionSyncService{
		scheduler:       gocron.NewScheduler(time.Local),
		appConfig:       appConfig,
		transactionRepo: transactionRepo,
		integrator:      integrator,
	}
}

func (s *TransactionSyncService) Name() string {
	return "transactions"
}

func (s *TransactionSyncService) Start(ctx context.Context) error {
	if !s.appConfig.TransactionSync.Enabled {
		logrus.Info("Transaction sync disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.appConfig.TransactionSync.CronSchedule).Info("Starting transaction sync scheduler")

	_, err := s.scheduler.Cron(s.appConfig.TransactionSync.CronSchedule).Do(func() {
		s.syncTransactions()
	})
	if err != nil {
		return fmt.Errorf("scheduling transaction sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping transaction sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *TransactionSyncService) RunNow() error {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		return ErrAlreadyRunning
	}

	go s.syncTransactions()

	return nil
}

func (s *TransactionSyncService) Status() SyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return SyncStatus{
		Name:            s.Name(),
		Enabled:         s.appConfig.TransactionSync.Enabled,
		Running:         s.syncRunning,
		LastStartedAt:   timePtr(s.lastSyncStartedAt),
		LastCompletedAt: timePtr(s.lastSyncCompletedAt),
		LastError:       s.lastSyncError,
	}
}

func (s *TransactionSyncService) syncTransactions() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Transaction sync already in progress, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	from, err := utils.ParseDate(s.appConfig.Ozon.TransactionsFrom)
	if err != nil {
		s.recordError(err)
		logrus.WithError(err).Error("Invalid transaction sync start date")
		return
	}
	to := time.Now()

	logrus.WithFields(logrus.Fields{
		"from": from.Format(time.DateOnly),
		"to":   to.Format(time.DateOnly),
	}).Info("Starting transaction sync")

	transactions, err := s.integrator.FetchTransactions(context.Background(), *from, to)
	if err != nil {
		s.recordError(err)
		logrus.WithError(err).Error("Fetching transactions failed")
		return
	}

	saved := 0
	for _, transaction := range transactions {
		if err := s.transactionRepo.Upsert(transaction); err != nil {
			s.recordError(err)
			logrus.WithError(err).WithFields(logrus.Fields{
				"operation_id": transaction.OperationID,
				"name":         transaction.Name,
			}).Error("Upserting transaction failed")
			return
		}
		saved++
	}

	s.recordError(nil)
	logrus.WithField("transactions", saved).Info("Transaction sync finished")
}

func (s *TransactionSyncService) recordError(err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if err != nil {
		s.lastSyncError = err.Error()
		return
	}
	s.lastSyncError = ""
}
