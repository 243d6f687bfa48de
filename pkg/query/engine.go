package query

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

var (
	listingQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_listing_queries_total",
		Help: "The total number of listing queries evaluated",
	})
	emptyListings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_listing_empty_total",
		Help: "The total number of listing queries without results",
	})
)

type stage uint8

const (
	stageText stage = 1 << iota
	stageBrand
	stageCategory
	stageSubcategory

	allStages = stageText | stageBrand | stageCategory | stageSubcategory
)

type FacetValue struct {
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

type CategoryFacet struct {
	Name          string       `json:"name"`
	Count         int          `json:"count"`
	State         TriState     `json:"state"`
	Subcategories []FacetValue `json:"subcategories,omitempty"`
}

// Facets counts products per filter value with the filter's own dimension
// left out, so the counts show what picking the value would yield.
type Facets struct {
	Brands     []FacetValue    `json:"brands"`
	Categories []CategoryFacet `json:"categories"`
}

type Result struct {
	types.Page[*types.Product]
	Facets Facets `json:"facets"`
	Chips  []Chip `json:"chips"`
}

type Engine struct {
	taxonomy *Taxonomy
	pageSize int
}

func NewEngine(taxonomy *Taxonomy, pageSize int) *Engine {
	if pageSize < 1 {
		pageSize = types.DefaultPageSize
	}
	return &Engine{taxonomy: taxonomy, pageSize: pageSize}
}

func (e *Engine) Taxonomy() *Taxonomy {
	return e.taxonomy
}

func (e *Engine) PageSize() int {
	return e.pageSize
}

type compiled struct {
	search     string
	brands     []string
	categories []string
	// folded category name to folded selected labels
	subcategories map[string][]string
}

func (e *Engine) compile(sel *Selection) *compiled {
	c := &compiled{
		search:        types.Fold(sel.Search),
		brands:        make([]string, 0, len(sel.Brands)),
		categories:    make([]string, 0, len(sel.Categories)),
		subcategories: make(map[string][]string),
	}
	for _, b := range sel.Brands {
		c.brands = append(c.brands, strings.ToUpper(strings.TrimSpace(b)))
	}
	for _, cat := range sel.Categories {
		c.categories = append(c.categories, strings.ToUpper(strings.TrimSpace(cat)))
		if !e.taxonomy.HasSubcategories(cat) {
			continue
		}
		labels := sel.Subcategories[cat]
		if len(labels) == 0 {
			continue
		}
		folded := make([]string, 0, len(labels))
		for _, l := range labels {
			folded = append(folded, types.Fold(l))
		}
		c.subcategories[types.Fold(cat)] = folded
	}
	return c
}

func (c *compiled) matchText(p *types.Product) bool {
	if c.search == "" {
		return true
	}
	for _, field := range []string{p.Name, p.ShortDescription, p.KeyFeatures, p.Standards} {
		if strings.Contains(types.Fold(field), c.search) {
			return true
		}
	}
	return false
}

func (c *compiled) matchBrand(p *types.Product) bool {
	if len(c.brands) == 0 {
		return true
	}
	brand := strings.ToUpper(p.Brand)
	for _, b := range c.brands {
		if strings.Contains(brand, b) {
			return true
		}
	}
	return false
}

func matchCategory(p *types.Product, category string) bool {
	return strings.Contains(strings.ToUpper(p.ProductType), category) ||
		strings.Contains(strings.ToUpper(p.Type), category)
}

func (c *compiled) matchCategory(p *types.Product) bool {
	if len(c.categories) == 0 {
		return true
	}
	for _, cat := range c.categories {
		if matchCategory(p, cat) {
			return true
		}
	}
	return false
}

// matchSubcategory only constrains products whose product type is one of the
// selected categories with a label selection; everything else passes.
func (c *compiled) matchSubcategory(p *types.Product) bool {
	labels, ok := c.subcategories[types.Fold(p.ProductType)]
	if !ok {
		return true
	}
	subType := types.Fold(p.Type)
	for _, l := range labels {
		if subType == l {
			return true
		}
	}
	return false
}

func (c *compiled) match(p *types.Product, stages stage) bool {
	if stages&stageText != 0 && !c.matchText(p) {
		return false
	}
	if stages&stageBrand != 0 && !c.matchBrand(p) {
		return false
	}
	if stages&stageCategory != 0 && !c.matchCategory(p) {
		return false
	}
	if stages&stageSubcategory != 0 && !c.matchSubcategory(p) {
		return false
	}
	return true
}

// Filter runs the text, brand, category and subcategory stages in order and
// keeps the input order of the products.
func (e *Engine) Filter(products []*types.Product, sel *Selection) []*types.Product {
	c := e.compile(sel)
	ret := make([]*types.Product, 0, len(products))
	for _, p := range products {
		if c.match(p, allStages) {
			ret = append(ret, p)
		}
	}
	return ret
}

func (e *Engine) Search(products []*types.Product, sel *Selection) Result {
	listingQueries.Inc()
	c := e.compile(sel)
	matching := make([]*types.Product, 0, len(products))
	for _, p := range products {
		if c.match(p, allStages) {
			matching = append(matching, p)
		}
	}
	if len(matching) == 0 {
		emptyListings.Inc()
	}
	return Result{
		Page:   types.Paginate(matching, sel.Page, e.pageSize),
		Facets: e.facets(products, sel, c),
		Chips:  sel.Chips(e.taxonomy),
	}
}

func (e *Engine) facets(products []*types.Product, sel *Selection, c *compiled) Facets {
	brandCounts := make([]int, len(e.taxonomy.Brands))
	brandKeys := make([]string, len(e.taxonomy.Brands))
	for i, b := range e.taxonomy.Brands {
		brandKeys[i] = strings.ToUpper(b.Name)
	}
	offered := e.taxonomy.OfferedCategories(sel.Brands)
	categories := make([]CategoryFacet, len(offered))
	for i, name := range offered {
		cf := CategoryFacet{Name: name, State: sel.CategoryState(e.taxonomy, name)}
		for _, l := range e.taxonomy.Subcategories(name) {
			cf.Subcategories = append(cf.Subcategories, FacetValue{Value: l, Selected: sel.HasSubcategory(name, l)})
		}
		categories[i] = cf
	}

	for _, p := range products {
		if c.match(p, stageText|stageCategory|stageSubcategory) {
			brand := strings.ToUpper(p.Brand)
			for i, key := range brandKeys {
				if strings.Contains(brand, key) {
					brandCounts[i]++
				}
			}
		}
		if !c.match(p, stageText|stageBrand) {
			continue
		}
		for i := range categories {
			cf := &categories[i]
			if !matchCategory(p, strings.ToUpper(cf.Name)) {
				continue
			}
			cf.Count++
			if !types.EqualFold(p.ProductType, cf.Name) {
				continue
			}
			for j := range cf.Subcategories {
				if types.EqualFold(p.Type, cf.Subcategories[j].Value) {
					cf.Subcategories[j].Count++
				}
			}
		}
	}

	ret := Facets{
		Brands:     make([]FacetValue, len(e.taxonomy.Brands)),
		Categories: categories,
	}
	for i, b := range e.taxonomy.Brands {
		ret.Brands[i] = FacetValue{Value: b.Name, Count: brandCounts[i], Selected: sel.HasBrand(b.Name)}
	}
	return ret
}
