package request

import (
	"encoding/json"
	"errors"
	"strings"
)

type BudgetCreateRequest struct {
	ServiceOrderID string `json:"service_order_id" binding:"required"`
}

var (
	ErrPaymentBodyNotJSON  = errors.New("request body is not valid json")
	ErrPaymentPayloadEmpty = errors.New("mp_payload cannot be empty")
)

// ParsePaymentPayload extracts the Mercado Pago payload of a budget payment
// request. The body is either the payload itself or {"mp_payload": {...}}; an
// empty body yields {}.
func ParsePaymentPayload(raw []byte) (json.RawMessage, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, ErrPaymentBodyNotJSON
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			w := strings.TrimSpace(string(wrapped))
			if w == "" || w == "null" {
				return nil, ErrPaymentPayloadEmpty
			}
			return wrapped, nil
		}
	}
	return json.RawMessage(raw), nil
}
