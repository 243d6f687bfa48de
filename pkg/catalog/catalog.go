package catalog

import (
	"fmt"
	"slices"

	"github.com/shreeji-electro/catalog-finder/pkg/family"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

// Tagged pairs a product with the family that owns it.
type Tagged struct {
	Family  types.FamilyId `json:"family"`
	Product *types.Product `json:"product"`
}

type Collision struct {
	Name     string           `json:"name"`
	Families []types.FamilyId `json:"families"`
	Winner   types.FamilyId   `json:"winner"`
}

type Stats struct {
	Total    int                             `json:"total"`
	ByFamily map[types.FamilyId]int          `json:"byFamily"`
	Families map[types.FamilyId]family.Stats `json:"families"`
}

// Catalog is the union of all registered family strategies.
type Catalog struct {
	strategies []family.Strategy
	byId       map[types.FamilyId]family.Strategy
	priority   []family.Strategy
	byKey      map[string]*types.Product
}

func keyOf(brand, name string) string {
	return types.Fold(brand) + "\x00" + types.Fold(name)
}

// New registers the strategies in order. Name lookups walk priority, families
// missing from it are tried afterwards in registration order.
func New(priority []types.FamilyId, strategies ...family.Strategy) (*Catalog, error) {
	c := &Catalog{
		strategies: strategies,
		byId:       make(map[types.FamilyId]family.Strategy, len(strategies)),
		priority:   make([]family.Strategy, 0, len(strategies)),
	}
	for _, s := range strategies {
		if _, found := c.byId[s.Id()]; found {
			return nil, fmt.Errorf("family %s registered twice", s.Id())
		}
		c.byId[s.Id()] = s
	}
	for _, id := range priority {
		s, ok := c.byId[id]
		if !ok {
			continue
		}
		if !slices.Contains(c.priority, s) {
			c.priority = append(c.priority, s)
		}
	}
	for _, s := range strategies {
		if !slices.Contains(c.priority, s) {
			c.priority = append(c.priority, s)
		}
	}
	c.byKey = make(map[string]*types.Product)
	for _, s := range c.priority {
		for _, p := range s.GetAllProducts() {
			key := keyOf(p.Brand, p.Name)
			if _, found := c.byKey[key]; !found {
				c.byKey[key] = p
			}
		}
	}
	return c, nil
}

func (c *Catalog) Families() []types.FamilyId {
	ret := make([]types.FamilyId, 0, len(c.strategies))
	for _, s := range c.strategies {
		ret = append(ret, s.Id())
	}
	return ret
}

// Priority returns the family order used for name lookups.
func (c *Catalog) Priority() []types.FamilyId {
	ret := make([]types.FamilyId, 0, len(c.priority))
	for _, s := range c.priority {
		ret = append(ret, s.Id())
	}
	return ret
}

func (c *Catalog) Strategy(id types.FamilyId) (family.Strategy, bool) {
	s, ok := c.byId[id]
	return s, ok
}

func (c *Catalog) GetAllProducts() []*types.Product {
	ret := make([]*types.Product, 0)
	for _, s := range c.strategies {
		ret = append(ret, s.GetAllProducts()...)
	}
	return ret
}

// GetProductByName returns the first match in priority order. Names shared
// by several families resolve to the highest priority one.
func (c *Catalog) GetProductByName(name string) (*types.Product, bool) {
	for _, s := range c.priority {
		if p, ok := s.GetProductByName(name); ok {
			return p, true
		}
	}
	return nil, false
}

func (c *Catalog) GetProduct(key types.ProductKey) (*types.Product, bool) {
	p, ok := c.byKey[keyOf(key.Brand, key.Name)]
	return p, ok
}

func (c *Catalog) GetProductsByFamily(id types.FamilyId) []Tagged {
	s, ok := c.byId[id]
	if !ok {
		return []Tagged{}
	}
	products := s.GetAllProducts()
	ret := make([]Tagged, 0, len(products))
	for _, p := range products {
		ret = append(ret, Tagged{Family: id, Product: p})
	}
	return ret
}

// GetSimilarProducts asks the family owning target for its ranking.
func (c *Catalog) GetSimilarProducts(target *types.Product, limit int) []*types.Product {
	if target == nil {
		return []*types.Product{}
	}
	s, ok := c.byId[target.Family]
	if !ok {
		return []*types.Product{}
	}
	return s.GetSimilarProducts(target, limit)
}

// Collisions lists names present in more than one family, in priority order.
func (c *Catalog) Collisions() []Collision {
	seen := map[string]*Collision{}
	order := []string{}
	for _, s := range c.priority {
		names := map[string]struct{}{}
		for _, p := range s.GetAllProducts() {
			key := types.Fold(p.Name)
			if _, dup := names[key]; dup {
				continue
			}
			names[key] = struct{}{}
			if existing, ok := seen[key]; ok {
				existing.Families = append(existing.Families, s.Id())
				continue
			}
			seen[key] = &Collision{Name: p.Name, Families: []types.FamilyId{s.Id()}, Winner: s.Id()}
			order = append(order, key)
		}
	}
	ret := make([]Collision, 0)
	for _, key := range order {
		if col := seen[key]; len(col.Families) > 1 {
			ret = append(ret, *col)
		}
	}
	return ret
}

func (c *Catalog) Stats() Stats {
	s := Stats{
		ByFamily: make(map[types.FamilyId]int, len(c.strategies)),
		Families: make(map[types.FamilyId]family.Stats, len(c.strategies)),
	}
	for _, strategy := range c.strategies {
		fs := strategy.Stats()
		s.Total += fs.Total
		s.ByFamily[strategy.Id()] = fs.Total
		s.Families[strategy.Id()] = fs
	}
	return s
}
