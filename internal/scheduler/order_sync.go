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

// How far back an incremental run looks. Postings stay mutable until they
// are delivered or returned, which happens well within this window.
const orderLookbackDays = 30

// OrderSyncService keeps the orders table aligned with the FBS posting list.
// The first run backfills from the configured start date; subsequent runs
// re-sync a sliding window so status transitions are picked up.
type OrderSyncService struct {
	scheduler  *gocron.Scheduler
	appConfig  *config.Config
	orderRepo  repository.OrderRepository
	integrator ozon.OzonIntegrator

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewOrderSyncService(
	orderRepo repository.OrderRepository,
	integrator ozon.OzonIntegrator,
	appConfig *config.Config,
) *OrderSyncService {
	return &OrderSyncService{
		scheduler:  gocron.NewScheduler(time.Local),
		appConfig:  appConfig,
		orderRepo:  orderRepo,
		integrator: integrator,
	}
}

func (s *OrderSyncService) Name() string {
	return "orders"
}

func (s *OrderSyncService) Start(ctx context.Context) error {
	if !s.appConfig.OrderSync.Enabled {
		logrus.Info("Order sync disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.appConfig.OrderSync.CronSchedule).Info("Starting order sync scheduler")

	_, err := s.scheduler.Cron(s.appConfig.OrderSync.CronSchedule).Do(func() {
		s.syncOrders()
	})
	if err != nil {
		return fmt.Errorf("scheduling order sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping order sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow triggers a sync outside the cron schedule. The sync itself runs in
// the background; overlapping triggers are rejected.
func (s *OrderSyncService) RunNow() error {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		return ErrAlreadyRunning
	}

	go s.syncOrders()

	return nil
}

func (s *OrderSyncService) Status() SyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return SyncStatus{
		Name:            s.Name(),
		Enabled:         s.appConfig.OrderSync.Enabled,
		Running:         s.syncRunning,
		LastStartedAt:   timePtr(s.lastSyncStartedAt),
		LastCompletedAt: timePtr(s.lastSyncCompletedAt),
		LastError:       s.lastSyncError,
	}
}

func (s *OrderSyncService) syncOrders() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Order sync already in progress, skipping")
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

	from, to, err := s.syncWindow()
	if err != nil {
		s.recordError(err)
		logrus.WithError(err).Error("Could not determine order sync window")
		return
	}

	logrus.WithFields(logrus.Fields{
		"from": from.Format(time.DateOnly),
		"to":   to.Format(time.DateOnly),
	}).Info("Starting order sync")

	orders, err := s.integrator.FetchOrders(context.Background(), from, to)
	if err != nil {
		s.recordError(err)
		logrus.WithError(err).Error("Fetching postings failed")
		return
	}

	saved := 0
	for _, order := range orders {
		if err := s.orderRepo.Upsert(order); err != nil {
			s.recordError(err)
			logrus.WithError(err).WithField("posting_number", order.PostingNumber).Error("Upserting order failed")
			return
		}
		saved++
	}

	s.recordError(nil)
	logrus.WithField("orders", saved).Info("Order sync finished")
}

// syncWindow picks the period to fetch: the full history when the table is
// still empty, otherwise the sliding lookback window.
func (s *OrderSyncService) syncWindow() (time.Time, time.Time, error) {
	start, err := utils.ParseDate(s.appConfig.Ozon.SyncStartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid sync start date %q: %w", s.appConfig.Ozon.SyncStartDate, err)
	}

	now := time.Now()

	count, err := s.orderRepo.CountByDateRange(*start, now)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("counting orders: %w", err)
	}

	if count == 0 {
		return *start, now, nil
	}

	from := now.AddDate(0, 0, -orderLookbackDays)
	if from.Before(*start) {
		from = *start
	}

	return from, now, nil
}

func (s *OrderSyncService) recordError(err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if err != nil {
		s.lastSyncError = err.Error()
		return
	}
	s.lastSyncError = ""
}
