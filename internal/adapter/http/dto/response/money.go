package response

import "github.com/shopspring/decimal"

// money renders an amount with cents precision for JSON.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
