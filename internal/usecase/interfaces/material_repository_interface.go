package interfaces

import (
	"context"

	"climatec_os/internal/domain/entities"
)

// IMaterialRepository abstracts the material catalog. Catalog entries are never
// deleted by the application.
type IMaterialRepository interface {
	Create(ctx context.Context, m entities.Material) (entities.Material, error)
	GetByID(ctx context.Context, id string) (entities.Material, error)
	List(ctx context.Context) ([]entities.Material, error)
}
