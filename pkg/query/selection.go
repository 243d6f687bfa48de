package query

import (
	"slices"
	"strings"

	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type TriState string

const (
	Unchecked     TriState = "unchecked"
	Indeterminate TriState = "indeterminate"
	Checked       TriState = "checked"
)

// Selection is the filter state of one listing session. A category with
// subcategories is selected exactly when at least one of its labels is.
type Selection struct {
	Search        string              `json:"searchQuery"`
	Brands        []string            `json:"brandSel"`
	Categories    []string            `json:"catSel"`
	Subcategories map[string][]string `json:"subcategorySel"`
	Page          int                 `json:"page"`
}

func NewSelection() *Selection {
	return &Selection{
		Brands:        []string{},
		Categories:    []string{},
		Subcategories: map[string][]string{},
		Page:          1,
	}
}

// SelectionFromRequest builds a selection from a stateless listing request.
// Invalid combinations are pruned, the requested page is kept.
func SelectionFromRequest(tax *Taxonomy, req *types.ListingRequest) *Selection {
	s := NewSelection()
	s.Search = req.Query
	for _, b := range req.Brands {
		s.Brands = addFold(s.Brands, canonicalBrand(tax, b))
	}
	for _, c := range req.Categories {
		if cat, ok := tax.Category(c); ok {
			s.Categories = addFold(s.Categories, cat.Name)
		}
	}
	for _, ref := range req.SubcategoryRefs() {
		cat, ok := tax.Category(ref.Category)
		if !ok {
			continue
		}
		if label, ok := tax.Subcategory(cat.Name, ref.Label); ok {
			s.Subcategories[cat.Name] = addFold(s.Subcategories[cat.Name], label)
			s.Categories = addFold(s.Categories, cat.Name)
		}
	}
	// a category asked for without labels means all of them
	for _, c := range s.Categories {
		if tax.HasSubcategories(c) && len(s.Subcategories[c]) == 0 {
			s.Subcategories[c] = slices.Clone(tax.Subcategories(c))
		}
	}
	s.Prune(tax)
	s.Page = types.ClampPage(req.Page)
	return s
}

// Request renders the selection back to its stateless form.
func (s *Selection) Request() *types.ListingRequest {
	ret := &types.ListingRequest{
		Query:         s.Search,
		Brands:        slices.Clone(s.Brands),
		Categories:    slices.Clone(s.Categories),
		Subcategories: []string{},
		Page:          s.Page,
	}
	for _, c := range s.Categories {
		for _, l := range s.Subcategories[c] {
			ret.Subcategories = append(ret.Subcategories, c+":"+l)
		}
	}
	return ret
}

func (s *Selection) Clone() *Selection {
	ret := &Selection{
		Search:        s.Search,
		Brands:        slices.Clone(s.Brands),
		Categories:    slices.Clone(s.Categories),
		Subcategories: make(map[string][]string, len(s.Subcategories)),
		Page:          s.Page,
	}
	for k, v := range s.Subcategories {
		ret.Subcategories[k] = slices.Clone(v)
	}
	return ret
}

// Normalize fills nil collections and clamps the page. Used after a
// selection is read back from a store.
func (s *Selection) Normalize() {
	if s.Brands == nil {
		s.Brands = []string{}
	}
	if s.Categories == nil {
		s.Categories = []string{}
	}
	if s.Subcategories == nil {
		s.Subcategories = map[string][]string{}
	}
	s.Page = types.ClampPage(s.Page)
}

func (s *Selection) HasBrand(brand string) bool {
	return containsFold(s.Brands, brand)
}

func (s *Selection) HasCategory(category string) bool {
	return containsFold(s.Categories, category)
}

func (s *Selection) HasSubcategory(category, label string) bool {
	return containsFold(s.Subcategories[category], label)
}

func (s *Selection) IsEmpty() bool {
	return len(s.Brands) == 0 && len(s.Categories) == 0 && s.Search == ""
}

func (s *Selection) ToggleBrand(tax *Taxonomy, brand string) {
	brand = canonicalBrand(tax, brand)
	if brand == "" {
		return
	}
	if s.HasBrand(brand) {
		s.Brands = removeFold(s.Brands, brand)
	} else {
		s.Brands = append(s.Brands, brand)
	}
	s.Prune(tax)
	s.Page = 1
}

func (s *Selection) SetBrands(tax *Taxonomy, brands []string) {
	s.Brands = []string{}
	for _, brand := range brands {
		if brand = canonicalBrand(tax, brand); brand != "" {
			s.Brands = addFold(s.Brands, brand)
		}
	}
	s.Prune(tax)
	s.Page = 1
}

// ToggleCategory clears a fully selected category and otherwise selects the
// category with all of its subcategories.
func (s *Selection) ToggleCategory(tax *Taxonomy, category string) {
	cat, ok := tax.Category(category)
	if !ok || !tax.Offers(s.Brands, cat.Name) {
		return
	}
	if len(cat.Subcategories) == 0 {
		if s.HasCategory(cat.Name) {
			s.Categories = removeFold(s.Categories, cat.Name)
		} else {
			s.Categories = append(s.Categories, cat.Name)
		}
		s.Page = 1
		return
	}
	if s.CategoryState(tax, cat.Name) == Checked {
		s.Categories = removeFold(s.Categories, cat.Name)
		delete(s.Subcategories, cat.Name)
	} else {
		s.Categories = addFold(s.Categories, cat.Name)
		s.Subcategories[cat.Name] = slices.Clone(cat.Subcategories)
	}
	s.Page = 1
}

func (s *Selection) ToggleSubcategory(tax *Taxonomy, category, label string) {
	cat, ok := tax.Category(category)
	if !ok || !tax.Offers(s.Brands, cat.Name) {
		return
	}
	label, ok = tax.Subcategory(cat.Name, label)
	if !ok {
		return
	}
	if s.HasSubcategory(cat.Name, label) {
		s.Subcategories[cat.Name] = removeFold(s.Subcategories[cat.Name], label)
	} else {
		s.Subcategories[cat.Name] = append(s.Subcategories[cat.Name], label)
	}
	if len(s.Subcategories[cat.Name]) == 0 {
		delete(s.Subcategories, cat.Name)
		s.Categories = removeFold(s.Categories, cat.Name)
	} else {
		s.Categories = addFold(s.Categories, cat.Name)
	}
	s.Page = 1
}

func (s *Selection) CategoryState(tax *Taxonomy, category string) TriState {
	if !s.HasCategory(category) {
		return Unchecked
	}
	all := tax.Subcategories(category)
	if len(all) == 0 {
		return Checked
	}
	selected := 0
	for _, l := range all {
		if s.HasSubcategory(category, l) {
			selected++
		}
	}
	switch selected {
	case 0:
		return Unchecked
	case len(all):
		return Checked
	default:
		return Indeterminate
	}
}

// SetSearch reports whether the query changed; a new query restarts paging.
func (s *Selection) SetSearch(text string) bool {
	text = strings.TrimSpace(text)
	if text == s.Search {
		return false
	}
	s.Search = text
	s.Page = 1
	return true
}

func (s *Selection) SetPage(page int) {
	s.Page = types.ClampPage(page)
}

// ClearFilters drops brands, categories and subcategories but keeps the search.
func (s *Selection) ClearFilters() {
	s.Brands = []string{}
	s.Categories = []string{}
	s.Subcategories = map[string][]string{}
	s.Page = 1
}

func (s *Selection) Reset() {
	s.ClearFilters()
	s.Search = ""
}

// Prune removes categories the selected brands do not offer and restores the
// parent/subcategory invariant. It reports whether anything was dropped.
func (s *Selection) Prune(tax *Taxonomy) bool {
	s.Normalize()
	changed := false
	categories := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		if !tax.Offers(s.Brands, c) {
			changed = true
			continue
		}
		categories = append(categories, c)
	}
	for c, labels := range s.Subcategories {
		valid := make([]string, 0, len(labels))
		for _, l := range labels {
			if _, ok := tax.Subcategory(c, l); ok {
				valid = append(valid, l)
			}
		}
		if len(valid) == 0 || !containsFold(categories, c) {
			delete(s.Subcategories, c)
			changed = true
			continue
		}
		if len(valid) != len(labels) {
			changed = true
		}
		s.Subcategories[c] = valid
	}
	s.Categories = categories[:0:0]
	for _, c := range categories {
		if tax.HasSubcategories(c) && len(s.Subcategories[c]) == 0 {
			changed = true
			continue
		}
		s.Categories = append(s.Categories, c)
	}
	if changed {
		s.Page = 1
	}
	return changed
}

type ChipKind string

const (
	ChipBrand       ChipKind = "brand"
	ChipCategory    ChipKind = "category"
	ChipSubcategory ChipKind = "subcategory"
)

// Chip is one removable token describing an active filter.
type Chip struct {
	Kind     ChipKind `json:"kind"`
	Value    string   `json:"value"`
	Category string   `json:"category,omitempty"`
	Label    string   `json:"label"`
}

// Chips lists brands, then categories, then the selected subcategories of
// partially selected categories. A fully selected category shows as one chip.
func (s *Selection) Chips(tax *Taxonomy) []Chip {
	ret := make([]Chip, 0, len(s.Brands)+len(s.Categories))
	for _, b := range s.Brands {
		ret = append(ret, Chip{Kind: ChipBrand, Value: b, Label: b})
	}
	for _, c := range s.Categories {
		if s.CategoryState(tax, c) == Checked {
			ret = append(ret, Chip{Kind: ChipCategory, Value: c, Label: c})
		}
	}
	for _, c := range s.Categories {
		if s.CategoryState(tax, c) != Indeterminate {
			continue
		}
		for _, l := range s.Subcategories[c] {
			ret = append(ret, Chip{Kind: ChipSubcategory, Value: l, Category: c, Label: c + ": " + l})
		}
	}
	return ret
}

func (s *Selection) RemoveChip(tax *Taxonomy, chip Chip) {
	switch chip.Kind {
	case ChipBrand:
		if s.HasBrand(chip.Value) {
			s.ToggleBrand(tax, chip.Value)
		}
	case ChipCategory:
		if s.HasCategory(chip.Value) {
			s.Categories = removeFold(s.Categories, chip.Value)
			for c := range s.Subcategories {
				if types.EqualFold(c, chip.Value) {
					delete(s.Subcategories, c)
				}
			}
			s.Page = 1
		}
	case ChipSubcategory:
		if s.HasSubcategory(chip.Category, chip.Value) {
			s.ToggleSubcategory(tax, chip.Category, chip.Value)
		}
	}
}

func canonicalBrand(tax *Taxonomy, brand string) string {
	brand = strings.TrimSpace(brand)
	if b, ok := tax.Brand(brand); ok {
		return b.Name
	}
	return brand
}

func containsFold(values []string, value string) bool {
	return slices.ContainsFunc(values, func(v string) bool { return types.EqualFold(v, value) })
}

func addFold(values []string, value string) []string {
	if containsFold(values, value) {
		return values
	}
	return append(values, value)
}

func removeFold(values []string, value string) []string {
	return slices.DeleteFunc(slices.Clone(values), func(v string) bool { return types.EqualFold(v, value) })
}
