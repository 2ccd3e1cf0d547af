package uniteconomics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/ozon-economics-api/infrastructure/repository/mocks"
	"github.com/avolkov/ozon-economics-api/internal/domain"
	"github.com/avolkov/ozon-economics-api/pkg/log"
)

func newTestService(ctrl *gomock.Controller) (
	*Service,
	*mocks.MockOrderRepository,
	*mocks.MockTransactionRepository,
	*mocks.MockAdvertisingRepository,
) {
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	transactionRepo := mocks.NewMockTransactionRepository(ctrl)
	advertisingRepo := mocks.NewMockAdvertisingRepository(ctrl)

	service := NewService(orderRepo, transactionRepo, advertisingRepo, testProducts())
	return service, orderRepo, transactionRepo, advertisingRepo
}

func TestAggregateUnits_BuildsOneUnitPerOrder(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, orderRepo, transactionRepo, advertisingRepo := newTestService(ctrl)

	created := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	orders := []*domain.Order{
		{
			PostingNumber: "100-200-1",
			OrderNumber:   "ORD-55",
			Status:        string(domain.OzonStatusDelivered),
			SKU:           "1828048543",
			Price:         1000,
			CreatedAt:     created,
		},
		{
			PostingNumber: "100-200-2",
			OrderNumber:   "ORD-56",
			Status:        string(domain.OzonStatusCancelled),
			SKU:           "1828048543",
			Price:         1000,
			CreatedAt:     created,
		},
	}

	orderRepo.EXPECT().FindAll(gomock.Any()).Return(orders, nil)
	transactionRepo.EXPECT().
		FindByPostingNumbers(gomock.Eq([]string{"100-200-1", "ORD-55", "100-200-2", "ORD-56"})).
		Return([]*domain.Transaction{
			{ID: 1, Name: domain.SaleCommissionService, PostingNumber: "100-200-1", Price: -10},
			{ID: 2, Name: "Logistics", PostingNumber: "ORD-55", Price: -5},
		}, nil)
	advertisingRepo.EXPECT().
		FindBySKUsAndDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	aggregate, err := service.AggregateUnits(domain.UnitFilter{})

	assert.NoError(t, err)
	assert.Len(t, aggregate.Items, 2)

	delivered := aggregate.Items[0]
	assert.Equal(t, domain.StatusDelivered, delivered.CustomStatus)
	assert.Equal(t, -15.0, delivered.TotalServices)
	assert.Equal(t, 214.0, delivered.Margin)

	cancelled := aggregate.Items[1]
	assert.Equal(t, domain.StatusInstantCancel, cancelled.CustomStatus)

	totals := aggregate.Totals
	assert.Equal(t, 1, totals.Statuses[domain.StatusDelivered])
	assert.Equal(t, 1, totals.Statuses[domain.StatusInstantCancel])
	assert.Equal(t, 214.0, totals.Margin)
	// Delivered orders only.
	assert.Equal(t, 1000.0, totals.Price)
	assert.Equal(t, 771.0, totals.CostPrice)
}

func TestAggregateUnits_StatusFilterAppliedAfterConstruction(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, orderRepo, transactionRepo, advertisingRepo := newTestService(ctrl)

	created := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	orders := []*domain.Order{
		{PostingNumber: "p1", Status: string(domain.OzonStatusCancelled), SKU: "1828048543", CreatedAt: created},
		{PostingNumber: "p2", Status: string(domain.OzonStatusDelivering), SKU: "1828048543", CreatedAt: created},
	}

	orderRepo.EXPECT().FindAll(gomock.Any()).Return(orders, nil)
	transactionRepo.EXPECT().FindByPostingNumbers(gomock.Any()).Return(nil, nil)
	advertisingRepo.EXPECT().FindBySKUsAndDateRange(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	aggregate, err := service.AggregateUnits(domain.UnitFilter{
		Status: string(domain.StatusInstantCancel) + ", " + string(domain.StatusReturn),
	})

	assert.NoError(t, err)
	assert.Len(t, aggregate.Items, 1)
	assert.Equal(t, domain.StatusInstantCancel, aggregate.Items[0].CustomStatus)
	assert.Equal(t, 1, aggregate.Totals.Statuses[domain.StatusInstantCancel])
}

func TestAggregateUnits_DateBoundsCoverWholeDays(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, orderRepo, transactionRepo, advertisingRepo := newTestService(ctrl)

	orderRepo.EXPECT().
		FindAll(gomock.Any()).
		DoAndReturn(func(filter domain.OrderFilter) ([]*domain.Order, error) {
			assert.Equal(t, 0, filter.From.Hour())
			assert.Equal(t, 0, filter.From.Minute())
			assert.Equal(t, 23, filter.To.Hour())
			assert.Equal(t, 59, filter.To.Second())
			assert.Equal(t, 999000000, filter.To.Nanosecond())
			return nil, nil
		})
	transactionRepo.EXPECT().FindByPostingNumbers(gomock.Any()).Return(nil, nil)
	advertisingRepo.EXPECT().FindBySKUsAndDateRange(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := service.AggregateUnits(domain.UnitFilter{From: "2025-01-01", To: "2025-01-31"})

	assert.NoError(t, err)
}

func TestAggregateUnits_InvalidDateRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _, _ := newTestService(ctrl)

	_, err := service.AggregateUnits(domain.UnitFilter{From: "31.02.nope"})

	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Contains(t, err.Error(), "'from' date")

	_, err = service.AggregateUnits(domain.UnitFilter{To: "not-a-date"})

	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Contains(t, err.Error(), "'to' date")
}

func TestAggregateUnits_StoreErrorAbortsCall(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, orderRepo, transactionRepo, advertisingRepo := newTestService(ctrl)

	orders := []*domain.Order{
		{PostingNumber: "p1", Status: string(domain.OzonStatusDelivering), SKU: "1828048543", CreatedAt: time.Now()},
	}

	orderRepo.EXPECT().FindAll(gomock.Any()).Return(orders, nil)
	transactionRepo.EXPECT().FindByPostingNumbers(gomock.Any()).Return(nil, errors.New("connection lost"))
	advertisingRepo.EXPECT().FindBySKUsAndDateRange(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := service.AggregateUnits(domain.UnitFilter{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetching transactions")
}
