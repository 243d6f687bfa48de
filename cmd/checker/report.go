package main

import (
	"strings"

	"github.com/shreeji-electro/catalog-finder/pkg/catalog"
	"github.com/shreeji-electro/catalog-finder/pkg/family"
	"github.com/shreeji-electro/catalog-finder/pkg/query"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

// Unplaced is a product the listing filters can never reach.
type Unplaced struct {
	Key         types.ProductKey `json:"key"`
	ProductType string           `json:"productType"`
	Type        string           `json:"type"`
	Reason      string           `json:"reason"`
}

type Report struct {
	Sources    []family.LoadReport `json:"sources"`
	Dropped    int                 `json:"dropped"`
	Stats      catalog.Stats       `json:"stats"`
	Collisions []catalog.Collision `json:"collisions"`
	Unplaced   []Unplaced          `json:"unplaced"`
}

func (r *Report) Clean() bool {
	return r.Dropped == 0 && len(r.Collisions) == 0 && len(r.Unplaced) == 0
}

func unplaced(tax *query.Taxonomy, p *types.Product) (string, bool) {
	if _, ok := tax.Brand(p.Brand); !ok {
		return "unknown brand", true
	}
	cat, ok := tax.Category(p.ProductType)
	if !ok {
		return "unknown category", true
	}
	if !tax.Offers([]string{p.Brand}, cat.Name) {
		return "category not offered by brand", true
	}
	if len(cat.Subcategories) > 0 {
		if _, ok = tax.Subcategory(cat.Name, p.Type); !ok {
			return "unknown subcategory", true
		}
	}
	return "", false
}

func buildReport(c *catalog.Catalog, reports []family.LoadReport, tax *query.Taxonomy) *Report {
	r := &Report{
		Sources:    reports,
		Stats:      c.Stats(),
		Collisions: c.Collisions(),
		Unplaced:   make([]Unplaced, 0),
	}
	for _, s := range reports {
		r.Dropped += s.Dropped
	}
	for _, p := range c.GetAllProducts() {
		if reason, ok := unplaced(tax, p); ok {
			r.Unplaced = append(r.Unplaced, Unplaced{
				Key:         p.Key(),
				ProductType: p.ProductType,
				Type:        p.Type,
				Reason:      reason,
			})
		}
	}
	return r
}

func isGzip(name string) bool {
	return strings.HasSuffix(name, ".gz")
}
