package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceType string

const (
	ServiceTypeMaintenance  ServiceType = "maintenance"
	ServiceTypeRepair       ServiceType = "repair"
	ServiceTypeInstallation ServiceType = "installation"
	ServiceTypeCleaning     ServiceType = "cleaning"

	// ServiceTypeOther buckets orders stored without a service type in reports.
	ServiceTypeOther ServiceType = "other"
)

func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceTypeMaintenance, ServiceTypeRepair, ServiceTypeInstallation, ServiceTypeCleaning:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Photo is an attachment of a service order.
//
// A photo is either remote (URL and Path set, already in the blob store) or local
// (LocalHandle set, waiting for upload). Only remote photos are persisted.
type Photo struct {
	URL         string `json:"url,omitempty"`
	Path        string `json:"path,omitempty"`
	Name        string `json:"name,omitempty"`
	LocalHandle string `json:"-"`
}

func (p Photo) IsRemote() bool {
	return p.Path != "" && p.LocalHandle == ""
}

// RemotePhotos drops local descriptors that never reached the blob store.
func RemotePhotos(photos []Photo) []Photo {
	out := make([]Photo, 0, len(photos))
	for _, p := range photos {
		if p.IsRemote() {
			out = append(out, p)
		}
	}
	return out
}

// ServiceOrder (ordem de serviço) is a job performed for a client.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI status-index: status
//   - GSI client_id-index: client_id
//
// Total is cached on write for convenience; the domain always derives it from
// Materials and LaborCost.
type ServiceOrder struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	ServiceType ServiceType     `json:"service_type"`
	Description string          `json:"description"`
	Status      OrderStatus     `json:"status"`
	Materials   []MaterialLine  `json:"materials"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
	Total       decimal.Decimal `json:"total"`
	Photos      []Photo         `json:"photos"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
