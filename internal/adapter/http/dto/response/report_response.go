package response

import (
	"time"

	"climatec_os/internal/domain/reports"
)

type MonthlyReportResponse struct {
	Month      string    `json:"month"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Total      int       `json:"total"`
	Pending    int       `json:"pending"`
	InProgress int       `json:"in_progress"`
	Completed  int       `json:"completed"`
	Cancelled  int       `json:"cancelled"`
	Revenue    float64   `json:"revenue"`
}

func FromMonthlyStats(s reports.MonthlyStats) MonthlyReportResponse {
	return MonthlyReportResponse{
		Month:      s.Start.Format("2006-01"),
		Start:      s.Start,
		End:        s.End,
		Total:      s.Total,
		Pending:    s.Pending,
		InProgress: s.InProgress,
		Completed:  s.Completed,
		Cancelled:  s.Cancelled,
		Revenue:    money(s.Revenue),
	}
}

type ServiceTypeShareResponse struct {
	Type    string  `json:"type"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

func FromServiceTypeShares(shares []reports.ServiceTypeShare) []ServiceTypeShareResponse {
	out := make([]ServiceTypeShareResponse, 0, len(shares))
	for _, s := range shares {
		out = append(out, ServiceTypeShareResponse{Type: string(s.Type), Count: s.Count, Percent: s.Percent()})
	}
	return out
}

type ClientOrderCountResponse struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Orders   int    `json:"orders"`
}

func FromClientOrderCounts(counts []reports.ClientOrderCount) []ClientOrderCountResponse {
	out := make([]ClientOrderCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, ClientOrderCountResponse{
			ClientID: c.Client.ID,
			Name:     c.Client.Name,
			Phone:    c.Client.Phone,
			Orders:   c.Orders,
		})
	}
	return out
}

type DashboardResponse struct {
	TotalClients    int `json:"total_clients"`
	PendingOrders   int `json:"pending_orders"`
	ActiveOrders    int `json:"active_orders"`
	CompletedOrders int `json:"completed_orders"`
}

func FromDashboardStats(s reports.DashboardStats) DashboardResponse {
	return DashboardResponse{
		TotalClients:    s.TotalClients,
		PendingOrders:   s.PendingOrders,
		ActiveOrders:    s.ActiveOrders,
		CompletedOrders: s.CompletedOrders,
	}
}
