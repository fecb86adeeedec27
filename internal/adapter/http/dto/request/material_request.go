package request

import (
	"climatec_os/internal/usecase"

	"github.com/shopspring/decimal"
)

type MaterialRequest struct {
	Name string `json:"name"`
	// Price accepts 150.5 or "150.50".
	Price decimal.Decimal `json:"price"`
	Unit  string          `json:"unit"`
}

func (r MaterialRequest) ToInput() usecase.MaterialInput {
	return usecase.MaterialInput{Name: r.Name, Price: r.Price, Unit: r.Unit}
}
