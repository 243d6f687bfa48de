package family

import (
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type WireTraits struct{}

func (WireTraits) Id() types.FamilyId { return types.FamilyWire }

func (WireTraits) Payload(raw *types.RawRecord) types.Payload {
	return &types.WirePayload{
		ConductorMaterial:  string(raw.ConductorMaterial),
		CrossSectionalArea: string(raw.CrossSectionalArea),
		CoreConfiguration:  string(raw.CoreConfiguration),
		InsulationType:     string(raw.InsulationType),
		VoltageRating:      string(raw.VoltageRating),
		CurrentRating:      string(raw.CurrentRating),
		Length:             string(raw.Length),
		Colors:             raw.AnyColor(),
	}
}

func wire(p *types.Product) *types.WirePayload {
	if w, ok := p.Payload.(*types.WirePayload); ok {
		return w
	}
	return &types.WirePayload{}
}

func (WireTraits) Attributes() []AttributeFacet {
	return []AttributeFacet{
		{Name: "crossSectionalArea", Match: MatchExact, Values: func(p *types.Product) []string {
			return types.SplitList(wire(p).CrossSectionalArea, ',')
		}},
		{Name: "insulation", Match: MatchContains, Values: func(p *types.Product) []string {
			return single(wire(p).InsulationType)
		}},
		{Name: "colors", Match: MatchContains, Values: func(p *types.Product) []string {
			return types.SplitList(wire(p).Colors, ',')
		}},
	}
}

func (WireTraits) Ranges() []RangeFacet {
	return []RangeFacet{
		{Name: "currentRating", Default: Range{Min: 0, Max: 1000}, Value: func(p *types.Product) string {
			return wire(p).CurrentRating
		}},
	}
}
