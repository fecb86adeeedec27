// Package reports derives dashboard and report figures from already-loaded
// clients and service orders. Nothing here does I/O.
package reports

import (
	"sort"
	"time"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

// MonthBounds returns the first and last instant of the month containing t,
// in t's location. Both ends are inclusive.
func MonthBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

type MonthlyStats struct {
	Start      time.Time
	End        time.Time
	Total      int
	Pending    int
	InProgress int
	Completed  int
	Cancelled  int
	Revenue    decimal.Decimal
}

// Monthly summarizes orders created within the month of `month`. Revenue only
// counts completed orders, using totals recomputed from their lines.
func Monthly(orders []entities.ServiceOrder, month time.Time) MonthlyStats {
	start, end := MonthBounds(month)
	stats := MonthlyStats{Start: start, End: end, Revenue: decimal.Zero}

	for _, o := range orders {
		if o.CreatedAt.IsZero() || o.CreatedAt.Before(start) || o.CreatedAt.After(end) {
			continue
		}
		stats.Total++
		switch o.Status {
		case entities.OrderStatusPending:
			stats.Pending++
		case entities.OrderStatusInProgress:
			stats.InProgress++
		case entities.OrderStatusCompleted:
			stats.Completed++
			stats.Revenue = stats.Revenue.Add(pricing.OrderTotal(o.Materials, o.LaborCost))
		case entities.OrderStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

type ServiceTypeShare struct {
	Type  entities.ServiceType
	Count int
	// Share is Count over the number of orders, in [0, 1].
	Share float64
}

// Percent is Share scaled to 0-100 and rounded to one decimal place.
func (s ServiceTypeShare) Percent() float64 {
	return decimal.NewFromFloat(s.Share * 100).Round(1).InexactFloat64()
}

// ServiceTypeBreakdown counts orders per service type. Orders without a type
// go to the "other" bucket. Buckets are sorted by count, then by type.
func ServiceTypeBreakdown(orders []entities.ServiceOrder) []ServiceTypeShare {
	if len(orders) == 0 {
		return []ServiceTypeShare{}
	}

	counts := make(map[entities.ServiceType]int)
	for _, o := range orders {
		t := o.ServiceType
		if t == "" {
			t = entities.ServiceTypeOther
		}
		counts[t]++
	}

	total := float64(len(orders))
	out := make([]ServiceTypeShare, 0, len(counts))
	for t, n := range counts {
		out = append(out, ServiceTypeShare{Type: t, Count: n, Share: float64(n) / total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

type ClientOrderCount struct {
	Client entities.Client
	Orders int
}

// ClientOrderCounts pairs each client with how many orders reference it, keeping
// the client order. limit <= 0 returns every client.
func ClientOrderCounts(clients []entities.Client, orders []entities.ServiceOrder, limit int) []ClientOrderCount {
	if limit > 0 && limit < len(clients) {
		clients = clients[:limit]
	}

	out := make([]ClientOrderCount, 0, len(clients))
	for _, c := range clients {
		n := 0
		for _, o := range orders {
			if o.ClientID == c.ID {
				n++
			}
		}
		out = append(out, ClientOrderCount{Client: c, Orders: n})
	}
	return out
}

type DashboardStats struct {
	TotalClients    int
	PendingOrders   int
	ActiveOrders    int
	CompletedOrders int
}

func Dashboard(clients []entities.Client, orders []entities.ServiceOrder) DashboardStats {
	stats := DashboardStats{TotalClients: len(clients)}
	for _, o := range orders {
		switch o.Status {
		case entities.OrderStatusPending:
			stats.PendingOrders++
		case entities.OrderStatusInProgress:
			stats.ActiveOrders++
		case entities.OrderStatusCompleted:
			stats.CompletedOrders++
		}
	}
	return stats
}
