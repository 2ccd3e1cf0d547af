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

// AdvertisingSyncService re-fetches daily campaign statistics from the
// configured start date up to yesterday. The Performance API keeps revising
// recent rows, so the whole range is replayed on every run.
type AdvertisingSyncService struct {
	scheduler       *gocron.Scheduler
	appConfig       *config.Config
	advertisingRepo repository.AdvertisingRepository
	integrator      ozon.OzonIntegrator

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewAdvertisingSyncService(
	advertisingRepo repository.AdvertisingRepository,
	integrator ozon.OzonIntegrator,
	appConfig *config.Config,
) *AdvertisingSyncService {
	return &AdvertisingSyncService{
		scheduler:       gocron.NewScheduler(time.Local),
		appConfig:       appConfig,
		advertisingRepo: advertisingRepo,
		integrator:      integrator,
	}
}

func (s *AdvertisingSyncService) Name() string {
	return "advertising"
}

func (s *AdvertisingSyncService) Start(ctx context.Context) error {
	if !s.appConfig.AdvertisingSync.Enabled {
		logrus.Info("Advertising sync disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.appConfig.AdvertisingSync.CronSchedule).Info("Starting advertising sync scheduler")

	_, err := s.scheduler.Cron(s.appConfig.AdvertisingSync.CronSchedule).Do(func() {
		s.syncAdvertising()
	})
	if err != nil {
		return fmt.Errorf("scheduling advertising sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping advertising sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *AdvertisingSyncService) RunNow() error {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		return ErrAlreadyRunning
	}

	go s.syncAdvertising()

	return nil
}

func (s *AdvertisingSyncService) Status() SyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return SyncStatus{
		Name:            s.Name(),
		Enabled:         s.appConfig.AdvertisingSync.Enabled,
		Running:         s.syncRunning,
		LastStartedAt:   timePtr(s.lastSyncStartedAt),
		LastCompletedAt: timePtr(s.lastSyncCompletedAt),
		LastError:       s.lastSyncError,
	}
}

func (s *AdvertisingSyncService) syncAdvertising() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Advertising sync already in progress, skipping")
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

	from, err := utils.ParseDate(s.appConfig.Ozon.SyncStartDate)
	if err != nil {
		s.recordError(err)
		logrus.WithError(err).Error("Invalid advertising sync start date")
		return
	}
	to := utils.StartOfDay(time.Now()).AddDate(0, 0, -1)

	if to.Before(*from) {
		logrus.Info("Advertising sync window is empty, nothing to do")
		return
	}

	logrus.WithFields(logrus.Fields{
		"from": from.Format(time.DateOnly),
		"to":   to.Format(time.DateOnly),
	}).Info("Starting advertising sync")

	spends, err := s.integrator.FetchAdvertisingSpends(context.Background(), *from, to)
	if err != nil {
		s.recordError(err)
		logrus.WithError(err).Error("Fetching advertising statistics failed")
		return
	}

	if err := s.advertisingRepo.UpsertMany(spends); err != nil {
		s.recordError(err)
		logrus.WithError(err).Error("Upserting advertising spends failed")
		return
	}

	s.recordError(nil)
	logrus.WithField("rows", len(spends)).Info("Advertising sync finished")
}

func (s *AdvertisingSyncService) recordError(err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if err != nil {
		s.lastSyncError = err.Error()
		return
	}
	s.lastSyncError = ""
}
