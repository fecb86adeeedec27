package interfaces

import (
	"context"

	"climatec_os/internal/domain/entities"
)

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
}
