package response

import (
	"time"

	"climatec_os/internal/domain/entities"
)

type MaterialResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

func FromMaterial(m entities.Material) MaterialResponse {
	return MaterialResponse{
		ID:        m.ID,
		Name:      m.Name,
		Price:     money(m.Price),
		Unit:      m.Unit,
		CreatedAt: m.CreatedAt,
	}
}

func FromMaterials(materials []entities.Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, FromMaterial(m))
	}
	return out
}

type MaterialLineResponse struct {
	MaterialID string  `json:"material_id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit,omitempty"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}

func fromMaterialLines(lines []entities.MaterialLine) []MaterialLineResponse {
	out := make([]MaterialLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, MaterialLineResponse{
			MaterialID: l.MaterialID,
			Name:       l.Name,
			Unit:       l.Unit,
			UnitPrice:  money(l.UnitPrice),
			Quantity:   l.Quantity,
			Subtotal:   money(l.Subtotal),
		})
	}
	return out
}
