package request

import (
	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase"

	"github.com/shopspring/decimal"
)

type MaterialLineRequest struct {
	MaterialID string   `json:"material_id"`
	Quantity   Quantity `json:"quantity"`
}

// ServiceOrderRequest is the create/update payload of a service order.
//
// Omitting "materials" on update keeps the current lines; an empty list clears
// them.
type ServiceOrderRequest struct {
	ClientID    string                `json:"client_id"`
	ServiceType string                `json:"service_type"`
	Description string                `json:"description"`
	Status      string                `json:"status"`
	LaborCost   decimal.Decimal       `json:"labor_cost"`
	Notes       string                `json:"notes"`
	Materials   []MaterialLineRequest `json:"materials"`
}

func (r ServiceOrderRequest) ToInput() usecase.ServiceOrderInput {
	in := usecase.ServiceOrderInput{
		ClientID:    r.ClientID,
		ServiceType: entities.ServiceType(r.ServiceType),
		Description: r.Description,
		Status:      entities.OrderStatus(r.Status),
		LaborCost:   r.LaborCost,
		Notes:       r.Notes,
	}
	if r.Materials != nil {
		in.Materials = make([]usecase.MaterialLineInput, 0, len(r.Materials))
		for _, m := range r.Materials {
			in.Materials = append(in.Materials, usecase.MaterialLineInput{
				MaterialID: m.MaterialID,
				Quantity:   m.Quantity.Int(),
			})
		}
	}
	return in
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddMaterialRequest struct {
	MaterialID string `json:"material_id" binding:"required"`
}

type MaterialQuantityRequest struct {
	Quantity Quantity `json:"quantity"`
}
