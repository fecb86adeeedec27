// Package workflow holds the status rules of service orders and budgets.
package workflow

import (
	"errors"
	"fmt"

	"climatec_os/internal/domain/entities"
)

var (
	ErrInvalidOrderStatus    = errors.New("invalid service order status")
	ErrOrderTransitionDenied = errors.New("service order status transition not allowed")
	ErrInvalidBudgetAction   = errors.New("invalid budget action")
	ErrBudgetAlreadyResolved = errors.New("budget already resolved")
	ErrInvalidBudgetStatus   = errors.New("invalid budget status")
)

// OrderPolicy decides which service-order status changes are accepted.
//
// The default (Strict == false) keeps status as a free choice among the four
// known values. Strict mode makes completed and cancelled terminal and only
// allows pending -> in_progress -> completed, plus cancelling any open order.
type OrderPolicy struct {
	Strict bool
}

func (p OrderPolicy) CanTransition(from, to entities.OrderStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, to)
	}
	if !p.Strict || from == to {
		return nil
	}
	if !from.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, from)
	}

	for _, next := range strictOrderTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrOrderTransitionDenied, from, to)
}

// IsTerminal reports whether no further change is accepted under this policy.
func (p OrderPolicy) IsTerminal(s entities.OrderStatus) bool {
	return p.Strict && len(strictOrderTransitions[s]) == 0
}

var strictOrderTransitions = map[entities.OrderStatus][]entities.OrderStatus{
	entities.OrderStatusPending:    {entities.OrderStatusInProgress, entities.OrderStatusCancelled},
	entities.OrderStatusInProgress: {entities.OrderStatusCompleted, entities.OrderStatusCancelled},
	entities.OrderStatusCompleted:  nil,
	entities.OrderStatusCancelled:  nil,
}

type BudgetAction string

const (
	BudgetActionApprove BudgetAction = "approve"
	BudgetActionReject  BudgetAction = "reject"
)

// BudgetActions lists the actions exposed for a budget in the given status.
// Only pending budgets can be resolved.
func BudgetActions(status entities.BudgetStatus) []BudgetAction {
	if status == entities.BudgetStatusPending {
		return []BudgetAction{BudgetActionApprove, BudgetActionReject}
	}
	return nil
}

// ResolveBudget returns the status a budget moves to when action is applied.
func ResolveBudget(current entities.BudgetStatus, action BudgetAction) (entities.BudgetStatus, error) {
	if !current.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBudgetStatus, current)
	}

	var next entities.BudgetStatus
	switch action {
	case BudgetActionApprove:
		next = entities.BudgetStatusApproved
	case BudgetActionReject:
		next = entities.BudgetStatusRejected
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBudgetAction, action)
	}

	if current != entities.BudgetStatusPending {
		return "", fmt.Errorf("%w: status is %s", ErrBudgetAlreadyResolved, current)
	}
	return next, nil
}
