package repository

import (
	"context"
	"time"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const budgetsServiceOrderIDIndex = "service_order_id-index"

type budgetItem struct {
	ID             string             `dynamodbav:"id"`
	ServiceOrderID string             `dynamodbav:"service_order_id"`
	Materials      []materialLineItem `dynamodbav:"materials"`
	LaborCost      string             `dynamodbav:"labor_cost"`
	Total          string             `dynamodbav:"total"`
	Status         string             `dynamodbav:"status"`
	CreatedAt      string             `dynamodbav:"created_at"`
	UpdatedAt      string             `dynamodbav:"updated_at"`
}

// BudgetDynamoRepository persists Budget entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: service_order_id-index (PK: service_order_id)
type BudgetDynamoRepository struct {
	t table
}

var _ interfaces.IBudgetRepository = (*BudgetDynamoRepository)(nil)

func NewBudgetDynamoRepository(ddb DynamoDBAPI, tableName string) *BudgetDynamoRepository {
	return &BudgetDynamoRepository{t: table{ddb: ddb, name: tableName}}
}

func (r *BudgetDynamoRepository) Create(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	it := toBudgetItem(b)
	if err := r.t.create(ctx, it); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it), nil
}

func (r *BudgetDynamoRepository) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	var it budgetItem
	ok, err := r.t.get(ctx, id, &it)
	if err != nil || !ok {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it), nil
}

func (r *BudgetDynamoRepository) List(ctx context.Context) ([]entities.Budget, error) {
	items, err := scanAll[budgetItem](ctx, r.t)
	if err != nil {
		return nil, err
	}
	return fromBudgetItems(items), nil
}

func (r *BudgetDynamoRepository) ListByServiceOrderID(ctx context.Context, serviceOrderID string) ([]entities.Budget, error) {
	items, err := queryIndex[budgetItem](ctx, r.t, budgetsServiceOrderIDIndex, "service_order_id", serviceOrderID)
	if err != nil {
		return nil, err
	}
	return fromBudgetItems(items), nil
}

// UpdateStatus moves the budget from one status to another in a single
// conditional write, so two concurrent resolutions cannot both succeed.
func (r *BudgetDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.BudgetStatus, at time.Time) (entities.Budget, error) {
	var it budgetItem
	ok, err := r.t.update(ctx, &dynamodb.UpdateItemInput{
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:    aws.String("SET #status = :to, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":to":         &types.AttributeValueMemberS{Value: string(to)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(at)},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
	}, &it)
	if err != nil || !ok {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it), nil
}

func toBudgetItem(b entities.Budget) budgetItem {
	return budgetItem{
		ID:             b.ID,
		ServiceOrderID: b.ServiceOrderID,
		Materials:      toMaterialLineItems(b.Materials),
		LaborCost:      formatDecimal(b.LaborCost),
		Total:          formatDecimal(b.Total),
		Status:         string(b.Status),
		CreatedAt:      formatTime(b.CreatedAt),
		UpdatedAt:      formatTime(b.UpdatedAt),
	}
}

func fromBudgetItem(it budgetItem) entities.Budget {
	return entities.Budget{
		ID:             it.ID,
		ServiceOrderID: it.ServiceOrderID,
		Materials:      fromMaterialLineItems(it.Materials),
		LaborCost:      parseDecimal(it.LaborCost),
		Total:          parseDecimal(it.Total),
		Status:         entities.BudgetStatus(it.Status),
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}

func fromBudgetItems(items []budgetItem) []entities.Budget {
	out := make([]entities.Budget, 0, len(items))
	for _, it := range items {
		out = append(out, fromBudgetItem(it))
	}
	return out
}
