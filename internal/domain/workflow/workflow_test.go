package workflow

import (
	"errors"
	"testing"

	"climatec_os/internal/domain/entities"
)

var allOrderStatuses = []entities.OrderStatus{
	entities.OrderStatusPending,
	entities.OrderStatusInProgress,
	entities.OrderStatusCompleted,
	entities.OrderStatusCancelled,
}

func TestOrderPolicy_FreeChoice(t *testing.T) {
	p := OrderPolicy{}
	for _, from := range allOrderStatuses {
		for _, to := range allOrderStatuses {
			if err := p.CanTransition(from, to); err != nil {
				t.Fatalf("%s -> %s: unexpected error %v", from, to, err)
			}
		}
		if p.IsTerminal(from) {
			t.Fatalf("%s must not be terminal in free mode", from)
		}
	}

	if err := p.CanTransition(entities.OrderStatusPending, "done"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
}

func TestOrderPolicy_Strict(t *testing.T) {
	p := OrderPolicy{Strict: true}

	allowed := []struct{ from, to entities.OrderStatus }{
		{entities.OrderStatusPending, entities.OrderStatusInProgress},
		{entities.OrderStatusInProgress, entities.OrderStatusCompleted},
		{entities.OrderStatusPending, entities.OrderStatusCancelled},
		{entities.OrderStatusInProgress, entities.OrderStatusCancelled},
		{entities.OrderStatusCompleted, entities.OrderStatusCompleted},
	}
	for _, tc := range allowed {
		if err := p.CanTransition(tc.from, tc.to); err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
	}

	denied := []struct{ from, to entities.OrderStatus }{
		{entities.OrderStatusPending, entities.OrderStatusCompleted},
		{entities.OrderStatusCompleted, entities.OrderStatusPending},
		{entities.OrderStatusCancelled, entities.OrderStatusInProgress},
		{entities.OrderStatusInProgress, entities.OrderStatusPending},
	}
	for _, tc := range denied {
		if err := p.CanTransition(tc.from, tc.to); !errors.Is(err, ErrOrderTransitionDenied) {
			t.Fatalf("%s -> %s: expected ErrOrderTransitionDenied, got %v", tc.from, tc.to, err)
		}
	}

	if !p.IsTerminal(entities.OrderStatusCompleted) || !p.IsTerminal(entities.OrderStatusCancelled) {
		t.Fatalf("completed and cancelled must be terminal")
	}
	if p.IsTerminal(entities.OrderStatusPending) {
		t.Fatalf("pending must not be terminal")
	}
}

func TestBudgetActions(t *testing.T) {
	if got := BudgetActions(entities.BudgetStatusPending); len(got) != 2 {
		t.Fatalf("pending budget must expose approve and reject, got %v", got)
	}
	if got := BudgetActions(entities.BudgetStatusApproved); len(got) != 0 {
		t.Fatalf("approved budget must expose nothing, got %v", got)
	}
	if got := BudgetActions(entities.BudgetStatusRejected); len(got) != 0 {
		t.Fatalf("rejected budget must expose nothing, got %v", got)
	}
}

func TestResolveBudget(t *testing.T) {
	next, err := ResolveBudget(entities.BudgetStatusPending, BudgetActionApprove)
	if err != nil || next != entities.BudgetStatusApproved {
		t.Fatalf("expected approved, got %s %v", next, err)
	}

	next, err = ResolveBudget(entities.BudgetStatusPending, BudgetActionReject)
	if err != nil || next != entities.BudgetStatusRejected {
		t.Fatalf("expected rejected, got %s %v", next, err)
	}

	t.Run("approved is not reversible", func(t *testing.T) {
		for _, action := range []BudgetAction{BudgetActionApprove, BudgetActionReject} {
			if _, err := ResolveBudget(entities.BudgetStatusApproved, action); !errors.Is(err, ErrBudgetAlreadyResolved) {
				t.Fatalf("%s: expected ErrBudgetAlreadyResolved, got %v", action, err)
			}
		}
	})

	if _, err := ResolveBudget(entities.BudgetStatusPending, "cancel"); !errors.Is(err, ErrInvalidBudgetAction) {
		t.Fatalf("expected ErrInvalidBudgetAction, got %v", err)
	}
	if _, err := ResolveBudget("", BudgetActionApprove); !errors.Is(err, ErrInvalidBudgetStatus) {
		t.Fatalf("expected ErrInvalidBudgetStatus, got %v", err)
	}
}
