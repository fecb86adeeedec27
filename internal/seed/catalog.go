// Package seed loads the sample material catalog into the materials table.
package seed

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"climatec_os/internal/usecase"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type CatalogItem struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
	Unit  string `yaml:"unit"`
}

type Catalog struct {
	Materials []CatalogItem `yaml:"materials"`
}

// LoadCatalog decodes a YAML catalog. Prices are quoted strings so they keep
// their exact cents.
func LoadCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return c, nil
}

func (c Catalog) Inputs() ([]usecase.MaterialInput, error) {
	out := make([]usecase.MaterialInput, 0, len(c.Materials))
	for i, item := range c.Materials {
		price, err := decimal.NewFromString(strings.TrimSpace(item.Price))
		if err != nil {
			return nil, fmt.Errorf("material %d (%s): invalid price %q: %w", i, item.Name, item.Price, err)
		}
		out = append(out, usecase.MaterialInput{Name: item.Name, Price: price, Unit: item.Unit})
	}
	return out, nil
}

type Result struct {
	Created int
	Skipped int
}

// Apply creates every catalog material whose name is not in the table yet, so
// running the seed twice does not duplicate the catalog.
func Apply(ctx context.Context, materials usecase.IMaterialUseCase, c Catalog) (Result, error) {
	inputs, err := c.Inputs()
	if err != nil {
		return Result{}, err
	}

	existing, err := materials.List(ctx, "")
	if err != nil {
		return Result{}, fmt.Errorf("list materials: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, m := range existing {
		seen[strings.ToLower(strings.TrimSpace(m.Name))] = true
	}

	var res Result
	for _, in := range inputs {
		key := strings.ToLower(strings.TrimSpace(in.Name))
		if seen[key] {
			res.Skipped++
			continue
		}
		m, err := materials.Create(ctx, in)
		if err != nil {
			return res, fmt.Errorf("create material %q: %w", in.Name, err)
		}
		seen[key] = true
		res.Created++
		log.Printf("[seed][material] created id=%s name=%q price=%s unit=%s", m.ID, m.Name, m.Price.StringFixed(2), m.Unit)
	}
	return res, nil
}
