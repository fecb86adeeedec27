package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/domain/pricing"
	"climatec_os/internal/domain/workflow"
	mock_interfaces "climatec_os/internal/usecase/interfaces/mocks"

	"github.com/juju/clock/testclock"
	"go.uber.org/mock/gomock"
)

type orderMocks struct {
	repo      *mock_interfaces.MockIServiceOrderRepository
	clients   *mock_interfaces.MockIClientRepository
	materials *mock_interfaces.MockIMaterialRepository
}

func newOrderUC(ctrl *gomock.Controller, strict bool) (*ServiceOrderUseCase, orderMocks) {
	m := orderMocks{
		repo:      mock_interfaces.NewMockIServiceOrderRepository(ctrl),
		clients:   mock_interfaces.NewMockIClientRepository(ctrl),
		materials: mock_interfaces.NewMockIMaterialRepository(ctrl),
	}
	uc := NewServiceOrderUseCase(m.repo, m.clients, m.materials, workflow.OrderPolicy{Strict: strict}, testclock.NewClock(testNow))
	return uc, m
}

func echoOrder(_ context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	return o, nil
}

var gasR22 = entities.Material{ID: "m-1", Name: "Gás R22", Price: dec("150.00"), Unit: "kg"}

func TestServiceOrderUseCase_Create(t *testing.T) {
	validInput := func() ServiceOrderInput {
		return ServiceOrderInput{
			ClientID:    "c-1",
			ServiceType: entities.ServiceTypeRepair,
			Description: "Split não gela",
			LaborCost:   dec("100"),
			Materials:   []MaterialLineInput{{MaterialID: "m-1", Quantity: 2}},
		}
	}

	t.Run("validation before any gateway call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newOrderUC(ctrl, false)

		_, err := uc.Create(context.Background(), ServiceOrderInput{
			ServiceType: "painting",
			LaborCost:   dec("-5"),
			Materials:   []MaterialLineInput{{MaterialID: "m-1"}, {MaterialID: "m-1"}},
		})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		for _, field := range []string{"client_id", "description", "service_type", "labor_cost", "materials[1].material_id"} {
			if _, ok := verr.Violations[field]; !ok {
				t.Fatalf("expected violation for %s, got %+v", field, verr.Violations)
			}
		}
	})

	t.Run("quantity over the line limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newOrderUC(ctrl, false)

		in := validInput()
		in.Materials[0].Quantity = 2_000_000
		_, err := uc.Create(context.Background(), in)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Violations["materials[0].quantity"] != "too_large" {
			t.Fatalf("expected quantity violation, got %v", err)
		}
	})

	t.Run("unknown client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.clients.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Client{}, nil)

		_, err := uc.Create(context.Background(), validInput())
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Violations["client_id"] != "not_found" {
			t.Fatalf("expected client_id not_found, got %v", err)
		}
	})

	t.Run("unknown material", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.clients.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Client{ID: "c-1"}, nil)
		m.materials.EXPECT().GetByID(gomock.Any(), "m-1").Return(entities.Material{}, nil)

		_, err := uc.Create(context.Background(), validInput())
		if !errors.Is(err, ErrMaterialNotFound) {
			t.Fatalf("expected ErrMaterialNotFound, got %v", err)
		}
	})

	t.Run("success computes totals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.clients.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Client{ID: "c-1"}, nil)
		m.materials.EXPECT().GetByID(gomock.Any(), "m-1").Return(gasR22, nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(echoOrder)

		o, err := uc.Create(context.Background(), validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.ID == "" || o.Status != entities.OrderStatusPending {
			t.Fatalf("unexpected order: %+v", o)
		}
		if len(o.Materials) != 1 || !o.Materials[0].Subtotal.Equal(dec("300")) || o.Materials[0].Name != "Gás R22" {
			t.Fatalf("unexpected lines: %+v", o.Materials)
		}
		if !o.Total.Equal(dec("400")) {
			t.Fatalf("expected total 400, got %s", o.Total)
		}
		if o.Photos == nil || !o.CreatedAt.Equal(testNow) {
			t.Fatalf("expected empty photo list and clock timestamp: %+v", o)
		}
	})
}

func TestServiceOrderUseCase_Update(t *testing.T) {
	current := entities.ServiceOrder{
		ID:          "os-1",
		ClientID:    "c-1",
		ServiceType: entities.ServiceTypeRepair,
		Description: "old",
		Status:      entities.OrderStatusCompleted,
		Materials: []entities.MaterialLine{
			{MaterialID: "m-1", Name: "Gás R22", UnitPrice: dec("120"), Quantity: 1, Subtotal: dec("120")},
		},
		Photos:    []entities.Photo{{URL: "u", Path: "p", Name: "n"}},
		CreatedAt: testNow.Add(-time.Hour),
	}

	t.Run("strict mode refuses reopening a completed order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, true)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(current, nil)
		m.clients.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Client{ID: "c-1"}, nil)

		_, err := uc.Update(context.Background(), "os-1", ServiceOrderInput{
			ClientID: "c-1", ServiceType: entities.ServiceTypeRepair, Description: "x", Status: entities.OrderStatusPending,
		})
		if !errors.Is(err, workflow.ErrOrderTransitionDenied) {
			t.Fatalf("expected ErrOrderTransitionDenied, got %v", err)
		}
	})

	t.Run("keeps price snapshot of existing lines and photos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(current, nil)
		m.clients.EXPECT().GetByID(gomock.Any(), "c-1").Return(entities.Client{ID: "c-1"}, nil)
		m.materials.EXPECT().GetByID(gomock.Any(), "m-2").Return(entities.Material{ID: "m-2", Name: "Filtro", Price: dec("25")}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(echoOrder)

		o, err := uc.Update(context.Background(), "os-1", ServiceOrderInput{
			ClientID:    "c-1",
			ServiceType: entities.ServiceTypeMaintenance,
			Description: "new",
			Materials:   []MaterialLineInput{{MaterialID: "m-1", Quantity: 3}, {MaterialID: "m-2", Quantity: 2}},
			LaborCost:   dec("50"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !o.Materials[0].UnitPrice.Equal(dec("120")) || !o.Materials[0].Subtotal.Equal(dec("360")) {
			t.Fatalf("existing line must keep its unit price: %+v", o.Materials[0])
		}
		if !o.Total.Equal(dec("460")) {
			t.Fatalf("expected total 460, got %s", o.Total)
		}
		if o.Status != entities.OrderStatusCompleted || len(o.Photos) != 1 || !o.UpdatedAt.Equal(testNow) {
			t.Fatalf("unexpected order: %+v", o)
		}
	})
}

func TestServiceOrderUseCase_UpdateStatus(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{ID: "os-1", Status: entities.OrderStatusPending}, nil)

		_, err := uc.UpdateStatus(context.Background(), "os-1", "done")
		if !errors.Is(err, workflow.ErrInvalidOrderStatus) {
			t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
		}
	})

	t.Run("free choice by default", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{ID: "os-1", Status: entities.OrderStatusCancelled}, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(echoOrder)

		o, err := uc.UpdateStatus(context.Background(), "os-1", entities.OrderStatusPending)
		if err != nil || o.Status != entities.OrderStatusPending {
			t.Fatalf("unexpected result: %+v %v", o, err)
		}
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, true)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{ID: "os-1", Status: entities.OrderStatusCompleted}, nil)

		if _, err := uc.UpdateStatus(context.Background(), "os-1", entities.OrderStatusCompleted); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestServiceOrderUseCase_MaterialLines(t *testing.T) {
	withLine := func() entities.ServiceOrder {
		lines, _ := pricing.AddLine(nil, gasR22)
		return entities.ServiceOrder{ID: "os-1", Materials: lines, LaborCost: dec("10")}
	}

	t.Run("add duplicate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(withLine(), nil)
		m.materials.EXPECT().GetByID(gomock.Any(), "m-1").Return(gasR22, nil)

		_, err := uc.AddMaterial(context.Background(), "os-1", "m-1")
		if !errors.Is(err, pricing.ErrDuplicateMaterial) {
			t.Fatalf("expected ErrDuplicateMaterial, got %v", err)
		}
	})

	t.Run("add", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{ID: "os-1"}, nil)
		m.materials.EXPECT().GetByID(gomock.Any(), "m-1").Return(gasR22, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(echoOrder)

		o, err := uc.AddMaterial(context.Background(), "os-1", "m-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(o.Materials) != 1 || o.Materials[0].Quantity != 1 || !o.Total.Equal(dec("150")) {
			t.Fatalf("unexpected order: %+v", o)
		}
	})

	t.Run("set quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(withLine(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(echoOrder)

		o, err := uc.SetMaterialQuantity(context.Background(), "os-1", 0, 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !o.Materials[0].Subtotal.Equal(dec("600")) || !o.Total.Equal(dec("610")) {
			t.Fatalf("unexpected totals: %+v", o)
		}
	})

	t.Run("quantity over the line limit is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(withLine(), nil)

		_, err := uc.SetMaterialQuantity(context.Background(), "os-1", 0, pricing.MaxQuantity+1)
		if !errors.Is(err, pricing.ErrQuantityTooLarge) {
			t.Fatalf("expected ErrQuantityTooLarge, got %v", err)
		}
	})

	t.Run("large quantity within the limit is priced exactly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(withLine(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(echoOrder)

		o, err := uc.SetMaterialQuantity(context.Background(), "os-1", 0, pricing.MaxQuantity)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !o.Materials[0].Subtotal.Equal(dec("150000000")) {
			t.Fatalf("unexpected subtotal: %s", o.Materials[0].Subtotal)
		}
	})

	t.Run("remove out of range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(withLine(), nil)

		_, err := uc.RemoveMaterial(context.Background(), "os-1", 3)
		if !errors.Is(err, pricing.ErrLineIndexOutOfRange) {
			t.Fatalf("expected ErrLineIndexOutOfRange, got %v", err)
		}
	})

	t.Run("remove", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(withLine(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(echoOrder)

		o, err := uc.RemoveMaterial(context.Background(), "os-1", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(o.Materials) != 0 || !o.Total.Equal(dec("10")) {
			t.Fatalf("unexpected order: %+v", o)
		}
	})
}

func TestServiceOrderUseCase_List(t *testing.T) {
	orders := []entities.ServiceOrder{
		{ID: "os-1", ClientID: "c-1", Description: "Limpeza", Status: entities.OrderStatusPending, CreatedAt: testNow.Add(-time.Hour)},
		{ID: "os-2", ClientID: "c-2", Description: "Instalação", Status: entities.OrderStatusPending, CreatedAt: testNow},
	}
	clients := []entities.Client{{ID: "c-1", Name: "Ana"}, {ID: "c-2", Name: "Bruno"}}

	t.Run("invalid status", func(t *testing.T) {
		uc := NewServiceOrderUseCase(nil, nil, nil, workflow.OrderPolicy{}, nil)
		if _, err := uc.List(context.Background(), ServiceOrderFilter{Status: "done"}); !errors.Is(err, workflow.ErrInvalidOrderStatus) {
			t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
		}
	})

	t.Run("status uses the index and query matches client name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().ListByStatus(gomock.Any(), entities.OrderStatusPending).Return(orders, nil)
		m.clients.EXPECT().List(gomock.Any()).Return(clients, nil)

		items, err := uc.List(context.Background(), ServiceOrderFilter{Status: "pending", Query: "bru"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 1 || items[0].Order.ID != "os-2" || items[0].ClientName != "Bruno" {
			t.Fatalf("unexpected items: %+v", items)
		}
	})

	t.Run("client filter newest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().ListByClientID(gomock.Any(), "c-1").Return(orders, nil)
		m.clients.EXPECT().List(gomock.Any()).Return(clients, nil)

		items, err := uc.List(context.Background(), ServiceOrderFilter{ClientID: "c-1", Status: "all"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 || items[0].Order.ID != "os-2" {
			t.Fatalf("unexpected items: %+v", items)
		}
	})

	t.Run("read failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUC(ctrl, false)
		m.repo.EXPECT().List(gomock.Any()).Return(orders, nil).AnyTimes()
		m.clients.EXPECT().List(gomock.Any()).Return(nil, errors.New("db")).AnyTimes()

		if _, err := uc.List(context.Background(), ServiceOrderFilter{}); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestServiceOrderUseCase_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newOrderUC(ctrl, false)
	m.repo.EXPECT().GetByID(gomock.Any(), "os-1").Return(entities.ServiceOrder{ID: "os-1"}, nil)
	m.repo.EXPECT().Delete(gomock.Any(), "os-1").Return(nil)

	if err := uc.Delete(context.Background(), "os-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
