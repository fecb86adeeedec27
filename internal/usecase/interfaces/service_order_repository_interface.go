package interfaces

import (
	"context"

	"climatec_os/internal/domain/entities"
)

// IServiceOrderRepository abstracts DynamoDB persistence for ServiceOrder.
//
// Update replaces the whole document and returns a zero ServiceOrder when the
// record no longer exists.
type IServiceOrderRepository interface {
	Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error)
	Update(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	List(ctx context.Context) ([]entities.ServiceOrder, error)
	ListByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.ServiceOrder, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.ServiceOrder, error)
}
