package response

import (
	"time"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/domain/workflow"
	"climatec_os/internal/usecase"
)

type BudgetResponse struct {
	ID                 string                 `json:"id"`
	ServiceOrderID     string                 `json:"service_order_id"`
	ServiceDescription string                 `json:"service_description,omitempty"`
	ClientName         string                 `json:"client_name,omitempty"`
	Materials          []MaterialLineResponse `json:"materials"`
	LaborCost          float64                `json:"labor_cost"`
	Total              float64                `json:"total"`
	Status             string                 `json:"status"`
	// Actions is empty once the budget is resolved.
	Actions   []string  `json:"actions"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromBudget(b entities.Budget) BudgetResponse {
	actions := make([]string, 0, 2)
	for _, a := range workflow.BudgetActions(b.Status) {
		actions = append(actions, string(a))
	}
	return BudgetResponse{
		ID:             b.ID,
		ServiceOrderID: b.ServiceOrderID,
		Materials:      fromMaterialLines(b.Materials),
		LaborCost:      money(b.LaborCost),
		Total:          money(b.Total),
		Status:         string(b.Status),
		Actions:        actions,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func FromBudgetListItems(items []usecase.BudgetListItem) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(items))
	for _, it := range items {
		res := FromBudget(it.Budget)
		res.ServiceDescription = it.ServiceDescription
		res.ClientName = it.ClientName
		out = append(out, res)
	}
	return out
}

type BudgetPaymentResponse struct {
	ID       string    `json:"id"`
	BudgetID string    `json:"budget_id"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
	Status   string    `json:"status"`

	ProviderPayloadRaw string                 `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromBudgetPayment(p entities.BudgetPayment) BudgetPaymentResponse {
	return BudgetPaymentResponse{
		ID:                 p.ID,
		BudgetID:           p.BudgetID,
		Amount:             money(p.Amount),
		Date:               p.Date,
		Status:             string(p.Status),
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		ProviderPayload:    p.ProviderPayload,
	}
}

func FromBudgetPayments(payments []entities.BudgetPayment) []BudgetPaymentResponse {
	out := make([]BudgetPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromBudgetPayment(p))
	}
	return out
}
