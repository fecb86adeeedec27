package repository

import (
	"context"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase/interfaces"
)

type clientItem struct {
	ID        string  `dynamodbav:"id"`
	Name      string  `dynamodbav:"name"`
	Phone     string  `dynamodbav:"phone"`
	Email     *string `dynamodbav:"email,omitempty"`
	Address   *string `dynamodbav:"address,omitempty"`
	Notes     *string `dynamodbav:"notes,omitempty"`
	CreatedAt string  `dynamodbav:"created_at"`
	UpdatedAt string  `dynamodbav:"updated_at"`
}

// ClientDynamoRepository persists Client entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type ClientDynamoRepository struct {
	t table
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb DynamoDBAPI, tableName string) *ClientDynamoRepository {
	return &ClientDynamoRepository{t: table{ddb: ddb, name: tableName}}
}

func (r *ClientDynamoRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	if err := r.t.create(ctx, toClientItem(c)); err != nil {
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) Update(ctx context.Context, c entities.Client) (entities.Client, error) {
	ok, err := r.t.replace(ctx, toClientItem(c))
	if err != nil || !ok {
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	var it clientItem
	ok, err := r.t.get(ctx, id, &it)
	if err != nil || !ok {
		return entities.Client{}, err
	}
	return fromClientItem(it), nil
}

func (r *ClientDynamoRepository) List(ctx context.Context) ([]entities.Client, error) {
	items, err := scanAll[clientItem](ctx, r.t)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Client, 0, len(items))
	for _, it := range items {
		out = append(out, fromClientItem(it))
	}
	return out, nil
}

func toClientItem(c entities.Client) clientItem {
	return clientItem{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func fromClientItem(it clientItem) entities.Client {
	return entities.Client{
		ID:        it.ID,
		Name:      it.Name,
		Phone:     it.Phone,
		Email:     it.Email,
		Address:   it.Address,
		Notes:     it.Notes,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
