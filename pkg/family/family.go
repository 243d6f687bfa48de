package family

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

// Family implements Strategy for one product family on top of its Traits.
type Family struct {
	traits   Traits
	products []*types.Product
	byName   map[string]*types.Product
}

func New(traits Traits, products []*types.Product) *Family {
	f := &Family{
		traits:   traits,
		products: slices.Clone(products),
		byName:   make(map[string]*types.Product, len(products)),
	}
	for _, p := range f.products {
		key := types.Fold(p.Name)
		if _, found := f.byName[key]; !found {
			f.byName[key] = p
		}
	}
	return f
}

func (f *Family) Id() types.FamilyId {
	return f.traits.Id()
}

func (f *Family) Len() int {
	return len(f.products)
}

func (f *Family) GetAllProducts() []*types.Product {
	return slices.Clone(f.products)
}

func (f *Family) GetProductByName(name string) (*types.Product, bool) {
	p, ok := f.byName[types.Fold(name)]
	return p, ok
}

func (f *Family) SearchProducts(filters Filters, page, pageSize int) SearchResult {
	matching := make([]*types.Product, 0, len(f.products))
	for _, p := range f.products {
		if f.Matches(p, &filters) {
			matching = append(matching, p)
		}
	}
	return SearchResult{
		Page:    types.Paginate(matching, page, pageSize),
		Filters: f.GetFilterOptions(matching),
	}
}

func containsAny(field string, selected []string) bool {
	return slices.ContainsFunc(selected, func(s string) bool {
		return types.ContainsFold(field, s)
	})
}

// Matches reports whether p passes every non-empty filter field.
func (f *Family) Matches(p *types.Product, filters *Filters) bool {
	if filters.Search != "" && !types.ContainsFold(p.SearchText(), filters.Search) {
		return false
	}
	if len(filters.Standards) > 0 && !containsAny(p.Standards, filters.Standards) {
		return false
	}
	if len(filters.Certifications) > 0 && !containsAny(p.Certifications, filters.Certifications) {
		return false
	}
	if len(filters.Features) > 0 && !containsAny(p.KeyFeatures, filters.Features) {
		return false
	}
	if len(filters.Types) > 0 && !slices.Contains(filters.Types, p.Type) {
		return false
	}
	for _, facet := range f.traits.Attributes() {
		selected := filters.Attributes[facet.Name]
		if len(selected) == 0 {
			continue
		}
		if !matchAttribute(facet, facet.Values(p), selected) {
			return false
		}
	}
	for _, facet := range f.traits.Ranges() {
		rng, ok := filters.Ranges[facet.Name]
		if !ok || rng.IsZero() {
			continue
		}
		// products without a readable number are not excluded
		if v, found := facet.parse(p); found && !rng.Contains(v) {
			return false
		}
	}
	return true
}

func matchAttribute(facet AttributeFacet, values, selected []string) bool {
	for _, v := range values {
		for _, s := range selected {
			switch facet.Match {
			case MatchContains:
				if types.ContainsFold(v, s) {
					return true
				}
			default:
				if v == s {
					return true
				}
			}
		}
	}
	return false
}

func sortedUniq(values []string) []string {
	ret := lo.Uniq(values)
	slices.Sort(ret)
	return ret
}

func (f *Family) GetFilterOptions(subset []*types.Product) FilterOptions {
	if subset == nil {
		subset = f.products
	}
	ret := FilterOptions{
		Standards:      sortedUniq(lo.FlatMap(subset, func(p *types.Product, _ int) []string { return p.StandardList() })),
		Certifications: sortedUniq(lo.FlatMap(subset, func(p *types.Product, _ int) []string { return p.CertificationList() })),
		Features:       sortedUniq(lo.FlatMap(subset, func(p *types.Product, _ int) []string { return p.Features() })),
		Types:          sortedUniq(lo.Map(subset, func(p *types.Product, _ int) string { return p.Type })),
	}
	if attrs := f.traits.Attributes(); len(attrs) > 0 {
		ret.Attributes = make(map[string][]string, len(attrs))
		for _, facet := range attrs {
			values := lo.FlatMap(subset, func(p *types.Product, _ int) []string { return facet.Values(p) })
			values = lo.Filter(values, func(v string, _ int) bool {
				return !types.IsPlaceholder(v) && !slices.Contains(facet.Exclude, v)
			})
			ret.Attributes[facet.Name] = sortedUniq(values)
		}
	}
	if ranges := f.traits.Ranges(); len(ranges) > 0 {
		ret.Ranges = make(map[string]Range, len(ranges))
		for _, facet := range ranges {
			ret.Ranges[facet.Name] = observedRange(facet, subset)
		}
	}
	return ret
}

func observedRange(facet RangeFacet, subset []*types.Product) Range {
	lowest, highest := math.Inf(1), 0.0
	found := false
	for _, p := range subset {
		if v, ok := facet.parse(p); ok {
			found = true
			lowest = min(lowest, v)
			highest = max(highest, v)
		}
	}
	if !found {
		return facet.Default
	}
	return Range{Min: lowest, Max: highest}
}

func lowerFeatures(p *types.Product) []string {
	return lo.Map(p.Features(), func(s string, _ int) string { return strings.ToLower(s) })
}

// FeatureSimilarity is the share of common features relative to the longer
// list. Features are common when one contains the other.
func FeatureSimilarity(a, b []string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	common := 0
	for _, fa := range a {
		if slices.ContainsFunc(b, func(fb string) bool {
			return strings.Contains(fa, fb) || strings.Contains(fb, fa)
		}) {
			common++
		}
	}
	return float64(common) / float64(longest)
}

type scored struct {
	product *types.Product
	score   float64
}

func (f *Family) GetSimilarProducts(target *types.Product, limit int) []*types.Product {
	if target == nil || limit <= 0 {
		return []*types.Product{}
	}
	targetFeatures := lowerFeatures(target)
	candidates := make([]scored, 0, len(f.products))
	for _, p := range f.products {
		if types.EqualFold(p.Name, target.Name) {
			continue
		}
		candidates = append(candidates, scored{product: p, score: FeatureSimilarity(targetFeatures, lowerFeatures(p))})
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	ret := make([]*types.Product, 0, min(limit, len(candidates)))
	for _, c := range candidates[:min(limit, len(candidates))] {
		ret = append(ret, c.product)
	}
	return ret
}

func (f *Family) Stats() Stats {
	s := Stats{
		Total:           len(f.products),
		ByStandard:      map[string]int{},
		ByCertification: map[string]int{},
		ByType:          map[string]int{},
	}
	for _, p := range f.products {
		for _, std := range p.StandardList() {
			s.ByStandard[std]++
		}
		for _, cert := range p.CertificationList() {
			s.ByCertification[cert]++
		}
		s.ByType[p.Type]++
	}
	return s
}
