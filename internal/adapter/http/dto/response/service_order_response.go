package response

import (
	"time"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/domain/pricing"
	"climatec_os/internal/usecase"
)

type PhotoResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Name string `json:"name,omitempty"`
}

func fromPhotos(photos []entities.Photo) []PhotoResponse {
	out := make([]PhotoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, PhotoResponse{URL: p.URL, Path: p.Path, Name: p.Name})
	}
	return out
}

type ServiceOrderResponse struct {
	ID          string                 `json:"id"`
	ClientID    string                 `json:"client_id"`
	ClientName  string                 `json:"client_name,omitempty"`
	ServiceType string                 `json:"service_type"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	Materials   []MaterialLineResponse `json:"materials"`
	LaborCost   float64                `json:"labor_cost"`
	Total       float64                `json:"total"`
	Photos      []PhotoResponse        `json:"photos"`
	Notes       string                 `json:"notes,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// FromServiceOrder derives the total from the lines instead of trusting the
// cached value.
func FromServiceOrder(o entities.ServiceOrder) ServiceOrderResponse {
	return ServiceOrderResponse{
		ID:          o.ID,
		ClientID:    o.ClientID,
		ServiceType: string(o.ServiceType),
		Description: o.Description,
		Status:      string(o.Status),
		Materials:   fromMaterialLines(o.Materials),
		LaborCost:   money(o.LaborCost),
		Total:       money(pricing.OrderTotal(o.Materials, o.LaborCost)),
		Photos:      fromPhotos(o.Photos),
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func FromServiceOrderListItems(items []usecase.ServiceOrderListItem) []ServiceOrderResponse {
	out := make([]ServiceOrderResponse, 0, len(items))
	for _, it := range items {
		res := FromServiceOrder(it.Order)
		res.ClientName = it.ClientName
		out = append(out, res)
	}
	return out
}

type PhotoFailureResponse struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type PhotoUploadResponse struct {
	Order    ServiceOrderResponse   `json:"order"`
	Uploaded []PhotoResponse        `json:"uploaded"`
	Failed   []PhotoFailureResponse `json:"failed"`
}

func FromPhotoUploadResult(r usecase.PhotoUploadResult) PhotoUploadResponse {
	failed := make([]PhotoFailureResponse, 0, len(r.Failed))
	for _, f := range r.Failed {
		failed = append(failed, PhotoFailureResponse{Name: f.Name, Reason: f.Reason})
	}
	return PhotoUploadResponse{
		Order:    FromServiceOrder(r.Order),
		Uploaded: fromPhotos(r.Uploaded),
		Failed:   failed,
	}
}
