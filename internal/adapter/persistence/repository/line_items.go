package repository

import "climatec_os/internal/domain/entities"

// materialLineItem is the embedded form of a MaterialLine, shared by service
// orders and budgets.
type materialLineItem struct {
	MaterialID string `dynamodbav:"material_id"`
	Name       string `dynamodbav:"name"`
	Unit       string `dynamodbav:"unit,omitempty"`
	UnitPrice  string `dynamodbav:"unit_price"`
	Quantity   int    `dynamodbav:"quantity"`
	Subtotal   string `dynamodbav:"subtotal"`
}

type photoItem struct {
	URL  string `dynamodbav:"url"`
	Path string `dynamodbav:"path"`
	Name string `dynamodbav:"name,omitempty"`
}

func toMaterialLineItems(lines []entities.MaterialLine) []materialLineItem {
	out := make([]materialLineItem, 0, len(lines))
	for _, l := range lines {
		out = append(out, materialLineItem{
			MaterialID: l.MaterialID,
			Name:       l.Name,
			Unit:       l.Unit,
			UnitPrice:  formatDecimal(l.UnitPrice),
			Quantity:   l.Quantity,
			Subtotal:   formatDecimal(l.Subtotal),
		})
	}
	return out
}

func fromMaterialLineItems(items []materialLineItem) []entities.MaterialLine {
	out := make([]entities.MaterialLine, 0, len(items))
	for _, it := range items {
		out = append(out, entities.MaterialLine{
			MaterialID: it.MaterialID,
			Name:       it.Name,
			Unit:       it.Unit,
			UnitPrice:  parseDecimal(it.UnitPrice),
			Quantity:   it.Quantity,
			Subtotal:   parseDecimal(it.Subtotal),
		})
	}
	return out
}

// toPhotoItems keeps remote photos only; local descriptors are never stored.
func toPhotoItems(photos []entities.Photo) []photoItem {
	remote := entities.RemotePhotos(photos)
	out := make([]photoItem, 0, len(remote))
	for _, p := range remote {
		out = append(out, photoItem{URL: p.URL, Path: p.Path, Name: p.Name})
	}
	return out
}

func fromPhotoItems(items []photoItem) []entities.Photo {
	out := make([]entities.Photo, 0, len(items))
	for _, it := range items {
		out = append(out, entities.Photo{URL: it.URL, Path: it.Path, Name: it.Name})
	}
	return out
}
