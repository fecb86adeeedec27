package repository

import (
	"context"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase/interfaces"
)

const paymentsBudgetIDIndex = "budget_id-index"

type budgetPaymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	BudgetID           string                 `dynamodbav:"budget_id"`
	Amount             string                 `dynamodbav:"amount"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// BudgetPaymentDynamoRepository persists BudgetPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: budget_id-index (PK: budget_id)
type BudgetPaymentDynamoRepository struct {
	t table
}

var _ interfaces.IBudgetPaymentRepository = (*BudgetPaymentDynamoRepository)(nil)

func NewBudgetPaymentDynamoRepository(ddb DynamoDBAPI, tableName string) *BudgetPaymentDynamoRepository {
	return &BudgetPaymentDynamoRepository{t: table{ddb: ddb, name: tableName}}
}

func (r *BudgetPaymentDynamoRepository) Create(ctx context.Context, p entities.BudgetPayment) (entities.BudgetPayment, error) {
	if err := r.t.create(ctx, toBudgetPaymentItem(p)); err != nil {
		return entities.BudgetPayment{}, err
	}
	return p, nil
}

func (r *BudgetPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.BudgetPayment, error) {
	var it budgetPaymentItem
	ok, err := r.t.get(ctx, id, &it)
	if err != nil || !ok {
		return entities.BudgetPayment{}, err
	}
	return fromBudgetPaymentItem(it), nil
}

func (r *BudgetPaymentDynamoRepository) ListByBudgetID(ctx context.Context, budgetID string) ([]entities.BudgetPayment, error) {
	items, err := queryIndex[budgetPaymentItem](ctx, r.t, paymentsBudgetIDIndex, "budget_id", budgetID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.BudgetPayment, 0, len(items))
	for _, it := range items {
		out = append(out, fromBudgetPaymentItem(it))
	}
	return out, nil
}

func toBudgetPaymentItem(p entities.BudgetPayment) budgetPaymentItem {
	return budgetPaymentItem{
		ID:                 p.ID,
		BudgetID:           p.BudgetID,
		Amount:             formatDecimal(p.Amount),
		Date:               formatTime(p.Date),
		Status:             string(p.Status),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromBudgetPaymentItem(it budgetPaymentItem) entities.BudgetPayment {
	p := entities.BudgetPayment{
		ID:              it.ID,
		BudgetID:        it.BudgetID,
		Amount:          parseDecimal(it.Amount),
		Date:            parseTime(it.Date),
		Status:          entities.PaymentStatus(it.Status),
		ProviderPayload: it.ProviderPayload,
	}
	if it.ProviderPayloadRaw != "" {
		p.ProviderPayloadRaw = []byte(it.ProviderPayloadRaw)
	}
	return p
}
