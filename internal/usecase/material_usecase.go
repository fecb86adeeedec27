package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/domain/search"
	"climatec_os/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/shopspring/decimal"
)

var (
	ErrMaterialNotFound  = errors.New("material not found")
	ErrInvalidMaterialID = errors.New("invalid material id")
)

const defaultMaterialUnit = "unidade"

type MaterialInput struct {
	Name  string
	Price decimal.Decimal
	Unit  string
}

type IMaterialUseCase interface {
	Create(ctx context.Context, in MaterialInput) (entities.Material, error)
	GetByID(ctx context.Context, id string) (entities.Material, error)
	List(ctx context.Context, query string) ([]entities.Material, error)
}

type MaterialUseCase struct {
	repo  interfaces.IMaterialRepository
	clock clock.Clock
}

var _ IMaterialUseCase = (*MaterialUseCase)(nil)

func NewMaterialUseCase(repo interfaces.IMaterialRepository, clk clock.Clock) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, clock: orWallClock(clk)}
}

func (u *MaterialUseCase) Create(ctx context.Context, in MaterialInput) (entities.Material, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = defaultMaterialUnit
	}

	v := Violations{}
	v.required("name", name)
	if in.Price.IsNegative() {
		v["price"] = "must_not_be_negative"
	}
	if err := v.Err(); err != nil {
		return entities.Material{}, err
	}

	return u.repo.Create(ctx, entities.Material{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     in.Price.Round(2),
		Unit:      unit,
		CreatedAt: u.clock.Now().UTC(),
	})
}

func (u *MaterialUseCase) GetByID(ctx context.Context, id string) (entities.Material, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Material{}, ErrInvalidMaterialID
	}

	m, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Material{}, err
	}
	if m.ID == "" {
		return entities.Material{}, ErrMaterialNotFound
	}
	return m, nil
}

// List returns catalog items whose name matches query, sorted by name.
func (u *MaterialUseCase) List(ctx context.Context, query string) ([]entities.Material, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := search.Materials(all, query)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}
