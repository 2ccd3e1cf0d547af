package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	ozonmocks "github.com/avolkov/ozon-economics-api/infrastructure/integrator/ozon/mocks"
	"github.com/avolkov/ozon-economics-api/infrastructure/repository/mocks"
	"github.com/avolkov/ozon-economics-api/internal/config"
	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

func orderSyncConfig() *config.Config {
	return &config.Config{
		Ozon: config.Ozon{
			SyncStartDate: "2024-06-01",
		},
		OrderSync: config.OrderSync{
			Enabled:      true,
			CronSchedule: "0 * * * *",
		},
	}
}

func TestOrderSyncWindow_EmptyTableBackfillsFromStartDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	integrator := ozonmocks.NewMockOzonIntegrator(ctrl)

	orderRepo.EXPECT().CountByDateRange(gomock.Any(), gomock.Any()).Return(0, nil)

	service := NewOrderSyncService(orderRepo, integrator, orderSyncConfig())

	from, to, err := service.syncWindow()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), from)
	assert.WithinDuration(t, time.Now(), to, time.Minute)
}

func TestOrderSyncWindow_PopulatedTableUsesLookback(t *testing.T) {
	ctrl := gomock.NewController(t)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	integrator := ozonmocks.NewMockOzonIntegrator(ctrl)

	orderRepo.EXPECT().CountByDateRange(gomock.Any(), gomock.Any()).Return(5000, nil)

	service := NewOrderSyncService(orderRepo, integrator, orderSyncConfig())

	from, _, err := service.syncWindow()
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().AddDate(0, 0, -orderLookbackDays), from, time.Minute)
}

func TestOrderSyncWindow_LookbackClampedToStartDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	integrator := ozonmocks.NewMockOzonIntegrator(ctrl)

	orderRepo.EXPECT().CountByDateRange(gomock.Any(), gomock.Any()).Return(10, nil)

	cfg := orderSyncConfig()
	cfg.Ozon.SyncStartDate = time.Now().AddDate(0, 0, -5).Format(time.DateOnly)
	service := NewOrderSyncService(orderRepo, integrator, cfg)

	from, _, err := service.syncWindow()
	require.NoError(t, err)

	start, _ := time.Parse(time.DateOnly, cfg.Ozon.SyncStartDate)
	assert.Equal(t, start, from)
}

func TestOrderSync_UpsertsFetchedOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	integrator := ozonmocks.NewMockOzonIntegrator(ctrl)

	orders := []*domain.Order{
		{PostingNumber: "100-200-1"},
		{PostingNumber: "100-200-2"},
	}

	orderRepo.EXPECT().CountByDateRange(gomock.Any(), gomock.Any()).Return(10, nil)
	integrator.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(orders, nil)
	orderRepo.EXPECT().Upsert(orders[0]).Return(nil)
	orderRepo.EXPECT().Upsert(orders[1]).Return(nil)

	service := NewOrderSyncService(orderRepo, integrator, orderSyncConfig())
	service.syncOrders()

	status := service.Status()
	assert.False(t, status.Running)
	assert.Empty(t, status.LastError)
	require.NotNil(t, status.LastCompletedAt)
}

func TestOrderSync_FetchErrorRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	integrator := ozonmocks.NewMockOzonIntegrator(ctrl)

	orderRepo.EXPECT().CountByDateRange(gomock.Any(), gomock.Any()).Return(10, nil)
	integrator.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("seller api unavailable"))

	service := NewOrderSyncService(orderRepo, integrator, orderSyncConfig())
	service.syncOrders()

	status := service.Status()
	assert.False(t, status.Running)
	assert.Contains(t, status.LastError, "seller api unavailable")
}

func TestOrderSync_RunNowRejectsOverlap(t *testing.T) {
	ctrl := gomock.NewController(t)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	integrator := ozonmocks.NewMockOzonIntegrator(ctrl)

	service := NewOrderSyncService(orderRepo, integrator, orderSyncConfig())

	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	assert.ErrorIs(t, service.RunNow(), ErrAlreadyRunning)
}
