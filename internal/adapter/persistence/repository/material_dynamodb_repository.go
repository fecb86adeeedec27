package repository

import (
	"context"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase/interfaces"
)

type materialItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Price     string `dynamodbav:"price"`
	Unit      string `dynamodbav:"unit"`
	CreatedAt string `dynamodbav:"created_at"`
}

// MaterialDynamoRepository persists the material catalog. PK: id.
type MaterialDynamoRepository struct {
	t table
}

var _ interfaces.IMaterialRepository = (*MaterialDynamoRepository)(nil)

func NewMaterialDynamoRepository(ddb DynamoDBAPI, tableName string) *MaterialDynamoRepository {
	return &MaterialDynamoRepository{t: table{ddb: ddb, name: tableName}}
}

func (r *MaterialDynamoRepository) Create(ctx context.Context, m entities.Material) (entities.Material, error) {
	if err := r.t.create(ctx, toMaterialItem(m)); err != nil {
		return entities.Material{}, err
	}
	return m, nil
}

func (r *MaterialDynamoRepository) GetByID(ctx context.Context, id string) (entities.Material, error) {
	var it materialItem
	ok, err := r.t.get(ctx, id, &it)
	if err != nil || !ok {
		return entities.Material{}, err
	}
	return fromMaterialItem(it), nil
}

func (r *MaterialDynamoRepository) List(ctx context.Context) ([]entities.Material, error) {
	items, err := scanAll[materialItem](ctx, r.t)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Material, 0, len(items))
	for _, it := range items {
		out = append(out, fromMaterialItem(it))
	}
	return out, nil
}

func toMaterialItem(m entities.Material) materialItem {
	return materialItem{
		ID:        m.ID,
		Name:      m.Name,
		Price:     formatDecimal(m.Price),
		Unit:      m.Unit,
		CreatedAt: formatTime(m.CreatedAt),
	}
}

func fromMaterialItem(it materialItem) entities.Material {
	return entities.Material{
		ID:        it.ID,
		Name:      it.Name,
		Price:     parseDecimal(it.Price),
		Unit:      it.Unit,
		CreatedAt: parseTime(it.CreatedAt),
	}
}
