// Package search filters already-fetched records in memory. Matching is a
// case-insensitive substring test; an empty term matches everything.
package search

import (
	"strings"

	"climatec_os/internal/domain/entities"
)

// StatusAll disables the status filter of ServiceOrders.
const StatusAll = "all"

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Clients matches term against name, e-mail and phone.
func Clients(clients []entities.Client, term string) []entities.Client {
	needle := normalize(term)
	out := make([]entities.Client, 0, len(clients))
	for _, c := range clients {
		if needle == "" || contains(c.Name, needle) || contains(c.EmailOrEmpty(), needle) || contains(c.Phone, needle) {
			out = append(out, c)
		}
	}
	return out
}

// ServiceOrders filters by status (empty or StatusAll keeps every status) and
// matches term against the description and the referenced client's name.
func ServiceOrders(orders []entities.ServiceOrder, clientsByID map[string]entities.Client, status, term string) []entities.ServiceOrder {
	needle := normalize(term)
	status = strings.TrimSpace(status)
	out := make([]entities.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		if status != "" && status != StatusAll && string(o.Status) != status {
			continue
		}
		if needle != "" {
			client, ok := clientsByID[o.ClientID]
			if !contains(o.Description, needle) && !(ok && contains(client.Name, needle)) {
				continue
			}
		}
		out = append(out, o)
	}
	return out
}

// Materials matches term against the catalog item name.
func Materials(materials []entities.Material, term string) []entities.Material {
	needle := normalize(term)
	out := make([]entities.Material, 0, len(materials))
	for _, m := range materials {
		if needle == "" || contains(m.Name, needle) {
			out = append(out, m)
		}
	}
	return out
}

// IndexClients builds the ID lookup used to resolve client names.
func IndexClients(clients []entities.Client) map[string]entities.Client {
	idx := make(map[string]entities.Client, len(clients))
	for _, c := range clients {
		idx[c.ID] = c
	}
	return idx
}
