package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus represents the lifecycle of a budget (orçamento).
//
// pending is the only state exposing actions; approved and rejected are final.
type BudgetStatus string

const (
	BudgetStatusPending  BudgetStatus = "pending"
	BudgetStatusApproved BudgetStatus = "approved"
	BudgetStatusRejected BudgetStatus = "rejected"
)

func (s BudgetStatus) IsValid() bool {
	switch s {
	case BudgetStatusPending, BudgetStatusApproved, BudgetStatusRejected:
		return true
	}
	return false
}

// Budget is a priced snapshot of a service order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI service_order_id-index: service_order_id
//
// The snapshot is taken at creation; later edits to the order are not reflected
// and resolving the budget never changes the order.
type Budget struct {
	ID             string          `json:"id"`
	ServiceOrderID string          `json:"service_order_id"`
	Materials      []MaterialLine  `json:"materials"`
	LaborCost      decimal.Decimal `json:"labor_cost"`
	Total          decimal.Decimal `json:"total"`
	Status         BudgetStatus    `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
