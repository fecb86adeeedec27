package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"climatec_os/internal/domain/entities"
	mock_interfaces "climatec_os/internal/usecase/interfaces/mocks"

	"github.com/juju/clock/testclock"
	"go.uber.org/mock/gomock"
)

func newReportUC(ctrl *gomock.Controller) (*ReportUseCase, *mock_interfaces.MockIClientRepository, *mock_interfaces.MockIServiceOrderRepository) {
	clients := mock_interfaces.NewMockIClientRepository(ctrl)
	orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
	return NewReportUseCase(clients, orders, loc, testclock.NewClock(testNow)), clients, orders
}

func TestReportUseCase_Monthly(t *testing.T) {
	orders := []entities.ServiceOrder{
		{ID: "1", Status: entities.OrderStatusCompleted, LaborCost: dec("100"), CreatedAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)},
		{ID: "2", Status: entities.OrderStatusPending, CreatedAt: time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)},
		// 2024-04-01 01:00 UTC is still March 31st in São Paulo.
		{ID: "3", Status: entities.OrderStatusCompleted, LaborCost: dec("50"), CreatedAt: time.Date(2024, 4, 1, 1, 0, 0, 0, time.UTC)},
		{ID: "4", Status: entities.OrderStatusCompleted, LaborCost: dec("70"), CreatedAt: time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)},
	}

	t.Run("invalid month", func(t *testing.T) {
		uc := NewReportUseCase(nil, nil, nil, nil)
		if _, err := uc.Monthly(context.Background(), "03/2024"); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("expected ErrInvalidMonth, got %v", err)
		}
	})

	t.Run("given month in report timezone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, orderRepo := newReportUC(ctrl)
		orderRepo.EXPECT().List(gomock.Any()).Return(orders, nil)

		stats, err := uc.Monthly(context.Background(), "2024-03")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.Total != 3 || stats.Completed != 2 || stats.Pending != 1 {
			t.Fatalf("unexpected counts: %+v", stats)
		}
		if !stats.Revenue.Equal(dec("150")) {
			t.Fatalf("expected revenue 150, got %s", stats.Revenue)
		}
	})

	t.Run("defaults to current month", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, orderRepo := newReportUC(ctrl)
		orderRepo.EXPECT().List(gomock.Any()).Return(orders, nil)

		stats, err := uc.Monthly(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.Start.Month() != time.May || stats.Total != 0 {
			t.Fatalf("unexpected stats: %+v", stats)
		}
	})
}

func TestReportUseCase_ClientsAndDashboard(t *testing.T) {
	clients := []entities.Client{{ID: "c-2", Name: "Bruno"}, {ID: "c-1", Name: "Ana"}, {ID: "c-3", Name: "Carla"}}
	orders := []entities.ServiceOrder{
		{ID: "1", ClientID: "c-1", Status: entities.OrderStatusPending, ServiceType: entities.ServiceTypeRepair},
		{ID: "2", ClientID: "c-1", Status: entities.OrderStatusInProgress, ServiceType: entities.ServiceTypeRepair},
		{ID: "3", ClientID: "c-2", Status: entities.OrderStatusCompleted},
	}

	t.Run("clients by name with counts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, clientRepo, orderRepo := newReportUC(ctrl)
		clientRepo.EXPECT().List(gomock.Any()).Return(clients, nil)
		orderRepo.EXPECT().List(gomock.Any()).Return(orders, nil)

		res, err := uc.Clients(context.Background(), 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 2 || res[0].Client.Name != "Ana" || res[0].Orders != 2 || res[1].Orders != 1 {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("dashboard", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, clientRepo, orderRepo := newReportUC(ctrl)
		clientRepo.EXPECT().List(gomock.Any()).Return(clients, nil)
		orderRepo.EXPECT().List(gomock.Any()).Return(orders, nil)

		stats, err := uc.Dashboard(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.TotalClients != 3 || stats.PendingOrders != 1 || stats.ActiveOrders != 1 || stats.CompletedOrders != 1 {
			t.Fatalf("unexpected stats: %+v", stats)
		}
	})

	t.Run("dashboard fails when a read fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, clientRepo, orderRepo := newReportUC(ctrl)
		clientRepo.EXPECT().List(gomock.Any()).Return(nil, errors.New("db")).AnyTimes()
		orderRepo.EXPECT().List(gomock.Any()).Return(orders, nil).AnyTimes()

		if _, err := uc.Dashboard(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("service types", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, orderRepo := newReportUC(ctrl)
		orderRepo.EXPECT().List(gomock.Any()).Return(orders, nil)

		shares, err := uc.ServiceTypes(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(shares) != 2 || shares[0].Type != entities.ServiceTypeRepair || shares[1].Type != entities.ServiceTypeOther {
			t.Fatalf("unexpected shares: %+v", shares)
		}
	})
}
