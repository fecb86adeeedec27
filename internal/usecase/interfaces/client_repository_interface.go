package interfaces

import (
	"context"

	"climatec_os/internal/domain/entities"
)

// IClientRepository abstracts DynamoDB persistence for Client.
//
// GetByID returns a zero Client (empty ID) when the record does not exist.
type IClientRepository interface {
	Create(ctx context.Context, c entities.Client) (entities.Client, error)
	Update(ctx context.Context, c entities.Client) (entities.Client, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.Client, error)
	List(ctx context.Context) ([]entities.Client, error)
}
