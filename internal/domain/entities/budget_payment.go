package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// BudgetPayment records a payment charged for an approved budget.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI budget_id-index: budget_id
//
// ProviderPayloadRaw keeps the provider response body as received; ProviderPayload
// is its parsed form when it is a JSON object.
type BudgetPayment struct {
	ID       string          `json:"id"`
	BudgetID string          `json:"budget_id"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Status   PaymentStatus   `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
