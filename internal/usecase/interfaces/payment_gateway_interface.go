package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts the external payment provider (Mercado Pago).
//
// The provider response is returned as received so it can be stored with the
// payment for traceability.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
