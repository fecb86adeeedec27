package repository

import (
	"context"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase/interfaces"
)

const (
	serviceOrdersStatusIndex   = "status-index"
	serviceOrdersClientIDIndex = "client_id-index"
)

type serviceOrderItem struct {
	ID          string             `dynamodbav:"id"`
	ClientID    string             `dynamodbav:"client_id"`
	ServiceType string             `dynamodbav:"service_type,omitempty"`
	Description string             `dynamodbav:"description"`
	Status      string             `dynamodbav:"status"`
	Materials   []materialLineItem `dynamodbav:"materials"`
	LaborCost   string             `dynamodbav:"labor_cost"`
	Total       string             `dynamodbav:"total"`
	Photos      []photoItem        `dynamodbav:"photos"`
	Notes       string             `dynamodbav:"notes,omitempty"`
	CreatedAt   string             `dynamodbav:"created_at"`
	UpdatedAt   string             `dynamodbav:"updated_at"`
}

// ServiceOrderDynamoRepository persists ServiceOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status)
//   - GSI: client_id-index (PK: client_id)
//
// Material lines and photos are embedded in the order document.
type ServiceOrderDynamoRepository struct {
	t table
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb DynamoDBAPI, tableName string) *ServiceOrderDynamoRepository {
	return &ServiceOrderDynamoRepository{t: table{ddb: ddb, name: tableName}}
}

func (r *ServiceOrderDynamoRepository) Create(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	it := toServiceOrderItem(o)
	if err := r.t.create(ctx, it); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

func (r *ServiceOrderDynamoRepository) Update(ctx context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	it := toServiceOrderItem(o)
	ok, err := r.t.replace(ctx, it)
	if err != nil || !ok {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

func (r *ServiceOrderDynamoRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	var it serviceOrderItem
	ok, err := r.t.get(ctx, id, &it)
	if err != nil || !ok {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

func (r *ServiceOrderDynamoRepository) List(ctx context.Context) ([]entities.ServiceOrder, error) {
	items, err := scanAll[serviceOrderItem](ctx, r.t)
	if err != nil {
		return nil, err
	}
	return fromServiceOrderItems(items), nil
}

func (r *ServiceOrderDynamoRepository) ListByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.ServiceOrder, error) {
	items, err := queryIndex[serviceOrderItem](ctx, r.t, serviceOrdersStatusIndex, "status", string(status))
	if err != nil {
		return nil, err
	}
	return fromServiceOrderItems(items), nil
}

func (r *ServiceOrderDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.ServiceOrder, error) {
	items, err := queryIndex[serviceOrderItem](ctx, r.t, serviceOrdersClientIDIndex, "client_id", clientID)
	if err != nil {
		return nil, err
	}
	return fromServiceOrderItems(items), nil
}

func toServiceOrderItem(o entities.ServiceOrder) serviceOrderItem {
	return serviceOrderItem{
		ID:          o.ID,
		ClientID:    o.ClientID,
		ServiceType: string(o.ServiceType),
		Description: o.Description,
		Status:      string(o.Status),
		Materials:   toMaterialLineItems(o.Materials),
		LaborCost:   formatDecimal(o.LaborCost),
		Total:       formatDecimal(o.Total),
		Photos:      toPhotoItems(o.Photos),
		Notes:       o.Notes,
		CreatedAt:   formatTime(o.CreatedAt),
		UpdatedAt:   formatTime(o.UpdatedAt),
	}
}

func fromServiceOrderItem(it serviceOrderItem) entities.ServiceOrder {
	return entities.ServiceOrder{
		ID:          it.ID,
		ClientID:    it.ClientID,
		ServiceType: entities.ServiceType(it.ServiceType),
		Description: it.Description,
		Status:      entities.OrderStatus(it.Status),
		Materials:   fromMaterialLineItems(it.Materials),
		LaborCost:   parseDecimal(it.LaborCost),
		Total:       parseDecimal(it.Total),
		Photos:      fromPhotoItems(it.Photos),
		Notes:       it.Notes,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}

func fromServiceOrderItems(items []serviceOrderItem) []entities.ServiceOrder {
	out := make([]entities.ServiceOrder, 0, len(items))
	for _, it := range items {
		out = append(out, fromServiceOrderItem(it))
	}
	return out
}
