package interfaces

import (
	"context"
	"time"

	"climatec_os/internal/domain/entities"
)

// IBudgetRepository abstracts DynamoDB persistence for Budget.
//
// UpdateStatus only applies when the stored status equals from; otherwise (or
// when the budget does not exist) it returns a zero Budget.
type IBudgetRepository interface {
	Create(ctx context.Context, b entities.Budget) (entities.Budget, error)
	GetByID(ctx context.Context, id string) (entities.Budget, error)
	List(ctx context.Context) ([]entities.Budget, error)
	ListByServiceOrderID(ctx context.Context, serviceOrderID string) ([]entities.Budget, error)
	UpdateStatus(ctx context.Context, id string, from, to entities.BudgetStatus, at time.Time) (entities.Budget, error)
}
