package family

import (
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

// Strategy is the query contract every product family offers. All methods
// are reads over immutable data and never fail; misses are reported as
// absent values or empty slices.
type Strategy interface {
	Id() types.FamilyId
	GetAllProducts() []*types.Product
	GetProductByName(name string) (*types.Product, bool)
	SearchProducts(filters Filters, page, pageSize int) SearchResult
	GetFilterOptions(subset []*types.Product) FilterOptions
	GetSimilarProducts(target *types.Product, limit int) []*types.Product
	Stats() Stats
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains treats a zero bound as open.
func (r Range) Contains(v float64) bool {
	if r.Min != 0 && v < r.Min {
		return false
	}
	if r.Max != 0 && v > r.Max {
		return false
	}
	return true
}

func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Filters are AND-ed across fields and OR-ed within a field.
type Filters struct {
	Search         string              `json:"search,omitempty" schema:"q"`
	Standards      []string            `json:"standards,omitempty" schema:"standard"`
	Certifications []string            `json:"certifications,omitempty" schema:"certification"`
	Features       []string            `json:"features,omitempty" schema:"feature"`
	Types          []string            `json:"types,omitempty" schema:"type"`
	Attributes     map[string][]string `json:"attributes,omitempty" schema:"-"`
	Ranges         map[string]Range    `json:"ranges,omitempty" schema:"-"`
}

type FilterOptions struct {
	Standards      []string            `json:"standards"`
	Certifications []string            `json:"certifications"`
	Features       []string            `json:"features"`
	Types          []string            `json:"types"`
	Attributes     map[string][]string `json:"attributes,omitempty"`
	Ranges         map[string]Range    `json:"ranges,omitempty"`
}

type SearchResult struct {
	types.Page[*types.Product]
	Filters FilterOptions `json:"filters"`
}

type Stats struct {
	Total           int            `json:"total"`
	ByStandard      map[string]int `json:"byStandard"`
	ByCertification map[string]int `json:"byCertification"`
	ByType          map[string]int `json:"byType"`
}
