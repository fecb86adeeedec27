package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material is a catalog item that can be added to service orders.
//
// Catalog entries are reference data: changing a material price later never
// changes lines already added to an order (see MaterialLine).
type Material struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
	CreatedAt time.Time       `json:"created_at"`
}

// MaterialLine is a material embedded in a service order or budget.
//
// UnitPrice is a snapshot taken when the line was added. Subtotal is always
// UnitPrice * Quantity; it is recomputed by the pricing package and never edited
// on its own.
type MaterialLine struct {
	MaterialID string          `json:"material_id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}
