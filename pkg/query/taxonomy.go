package query

import (
	"fmt"
	"slices"

	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories,omitempty"`
}

type Brand struct {
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases,omitempty"`
	Categories []string `json:"categories"`
}

func (b *Brand) is(name string) bool {
	if types.EqualFold(b.Name, name) {
		return true
	}
	return slices.ContainsFunc(b.Aliases, func(alias string) bool {
		return types.EqualFold(alias, name)
	})
}

// Taxonomy declares the listing categories, their subcategory labels and
// which brand offers which category.
type Taxonomy struct {
	Brands     []Brand    `json:"brands"`
	Categories []Category `json:"categories"`
}

func (t *Taxonomy) Validate() error {
	for _, b := range t.Brands {
		for _, c := range b.Categories {
			if _, ok := t.Category(c); !ok {
				return fmt.Errorf("brand %s offers unknown category %q", b.Name, c)
			}
		}
	}
	return nil
}

func (t *Taxonomy) Category(name string) (*Category, bool) {
	for i := range t.Categories {
		if types.EqualFold(t.Categories[i].Name, name) {
			return &t.Categories[i], true
		}
	}
	return nil, false
}

func (t *Taxonomy) Brand(name string) (*Brand, bool) {
	for i := range t.Brands {
		if t.Brands[i].is(name) {
			return &t.Brands[i], true
		}
	}
	return nil, false
}

func (t *Taxonomy) HasSubcategories(category string) bool {
	c, ok := t.Category(category)
	return ok && len(c.Subcategories) > 0
}

func (t *Taxonomy) Subcategories(category string) []string {
	if c, ok := t.Category(category); ok {
		return c.Subcategories
	}
	return nil
}

// Subcategory returns the canonical label of a subcategory.
func (t *Taxonomy) Subcategory(category, label string) (string, bool) {
	for _, l := range t.Subcategories(category) {
		if types.EqualFold(l, label) {
			return l, true
		}
	}
	return "", false
}

// OfferedCategories lists, in taxonomy order, the categories offered by any
// of the brands. Without brands every category is offered.
func (t *Taxonomy) OfferedCategories(brands []string) []string {
	ret := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		if t.Offers(brands, c.Name) {
			ret = append(ret, c.Name)
		}
	}
	return ret
}

func (t *Taxonomy) Offers(brands []string, category string) bool {
	if _, ok := t.Category(category); !ok {
		return false
	}
	if len(brands) == 0 {
		return true
	}
	for _, name := range brands {
		b, ok := t.Brand(name)
		if !ok {
			continue
		}
		if slices.ContainsFunc(b.Categories, func(c string) bool { return types.EqualFold(c, category) }) {
			return true
		}
	}
	return false
}

var (
	cableSubcategories = []string{
		"LV Power Cable",
		"MV Power Cable",
		"EHV Power Cable",
		"Instrumentation Cable",
		"Communication & Data Cable",
		"Renewable Energy Cable",
		"Control Cable",
		"Fire Protection Cable",
		"Industrial Cable",
		"Rubber Cable",
		"Marine & Offshore/Onshore Cable",
		"High Temperature Cable",
		"Defence Cable",
		"Domestic Appliance and Lighting Cable",
		"Building Wires",
		"Special Cable",
		"Aerial Bunched Cable",
	}
	fanSubcategories = []string{
		"Ceiling Fan",
		"Table Fan",
		"Wall Fan",
		"Pedestal Fan",
		"Exhaust Fan",
		"Air Circulator",
		"Farrata Fan",
	}
	lightingSubcategories = []string{
		"LED Bulb",
		"Downlight",
		"Panel Light",
		"LED Batten",
		"Outdoor Lights",
		"Rope and Strip Lights",
	}
	switchgearSubcategories = []string{
		"RCBO",
		"RCCB",
		"ACCL",
		"ISOLATOR",
		"MCB Changeover Switch",
		"MCB (Miniature Circuit Breaker)",
		"Distribution Board",
	}
	mediumVoltageSubcategories = []string{
		"Air Insulated Switchgear - AIS",
		"Ring Main Unit - RMU",
		"Compact Secondary Substation - CSS",
		"Vacuum Circuit Breaker - VCB",
	}
)

func DefaultTaxonomy() *Taxonomy {
	lk := []string{
		"Pump Starters and Controllers",
		"Medium Voltage",
		"LV IEC Panels",
		"Power Distribution Products",
		"Motor Management & Control",
		"Industrial Automation & Control",
		"Energy Management Products",
		"MCB, RCCB & Distribution Boards",
		"Panel Accessories",
	}
	categories := []Category{
		{Name: "Cables", Subcategories: cableSubcategories},
		{Name: "Wires"},
		{Name: "Fans", Subcategories: fanSubcategories},
		{Name: "Lighting", Subcategories: lightingSubcategories},
		{Name: "Switchgear", Subcategories: switchgearSubcategories},
		{Name: "Cable Glands"},
		{Name: "Cable Lugs"},
	}
	for _, name := range lk {
		c := Category{Name: name}
		if name == "Medium Voltage" {
			c.Subcategories = mediumVoltageSubcategories
		}
		categories = append(categories, c)
	}
	return &Taxonomy{
		Categories: categories,
		Brands: []Brand{
			{Name: "POLYCAB", Categories: []string{"Cables", "Wires", "Fans", "Lighting", "Switchgear"}},
			{Name: "LAURITZ KNUDSEN", Aliases: []string{"L&K", "LK"}, Categories: lk},
			{Name: "NEPTUNE", Categories: []string{"Switchgear"}},
			{Name: "CABSEAL", Categories: []string{"Cable Glands"}},
			{Name: "DOWELL'S", Aliases: []string{"DOWELLS"}, Categories: []string{"Cable Glands", "Cable Lugs"}},
			{Name: "HAGER", Categories: []string{"Switchgear"}},
		},
	}
}
