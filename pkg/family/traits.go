package family

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchContains
)

// AttributeFacet is a family specific multi-value filter.
type AttributeFacet struct {
	Name    string
	Match   MatchMode
	Values  func(p *types.Product) []string
	Exclude []string
}

// RangeFacet is a numeric filter read from a free text field.
type RangeFacet struct {
	Name    string
	Value   func(p *types.Product) string
	Parse   func(s string) (float64, bool)
	Default Range
}

func (r RangeFacet) parse(p *types.Product) (float64, bool) {
	parse := r.Parse
	if parse == nil {
		parse = FirstNumber
	}
	return parse(r.Value(p))
}

// Traits holds what differs between families: how the payload is read
// from a raw row and which extra facets apply.
type Traits interface {
	Id() types.FamilyId
	Payload(raw *types.RawRecord) types.Payload
	Attributes() []AttributeFacet
	Ranges() []RangeFacet
}

var registry = map[types.FamilyId]Traits{
	types.FamilyCable:      CableTraits{},
	types.FamilyFan:        FanTraits{},
	types.FamilyLighting:   LightingTraits{},
	types.FamilySwitchgear: SwitchgearTraits{},
	types.FamilyWire:       WireTraits{},
}

// DefaultPriority is the lookup order used when none is configured.
var DefaultPriority = []types.FamilyId{
	types.FamilyCable,
	types.FamilyFan,
	types.FamilyLighting,
	types.FamilySwitchgear,
	types.FamilyWire,
}

func TraitsFor(id types.FamilyId) (Traits, bool) {
	t, ok := registry[id]
	return t, ok
}

var (
	numberRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)
	priceRegex  = regexp.MustCompile(`[\d,]*\d`)
)

// FirstNumber returns the first decimal number found in s.
func FirstNumber(s string) (float64, bool) {
	m := numberRegex.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	return v, err == nil
}

// PriceNumber reads a price like "Rs. 3,450/-" ignoring thousand separators.
func PriceNumber(s string) (float64, bool) {
	m := priceRegex.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return float64(v), true
}

func single(v string) []string {
	if types.IsPlaceholder(v) {
		return nil
	}
	return []string{strings.TrimSpace(v)}
}
