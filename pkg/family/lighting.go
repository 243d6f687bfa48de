package family

import (
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type LightingTraits struct{}

func (LightingTraits) Id() types.FamilyId { return types.FamilyLighting }

func (LightingTraits) Payload(raw *types.RawRecord) types.Payload {
	return &types.LightingPayload{
		Wattage:          string(raw.Wattage),
		Lumens:           string(raw.Lumens),
		ColorTemperature: string(raw.ColorTemperature),
		BeamAngle:        string(raw.BeamAngle),
		BaseType:         string(raw.BaseType),
		Colors:           raw.AnyColor(),
		IPRating:         string(raw.IPRating),
		Dimmable:         string(raw.Dimmable),
		Shape:            string(raw.Shape),
	}
}

func lighting(p *types.Product) *types.LightingPayload {
	if l, ok := p.Payload.(*types.LightingPayload); ok {
		return l
	}
	return &types.LightingPayload{}
}

func (LightingTraits) Attributes() []AttributeFacet {
	return []AttributeFacet{
		{Name: "colorTemperature", Match: MatchContains, Values: func(p *types.Product) []string {
			return types.SplitList(lighting(p).ColorTemperature, ',', '/')
		}},
		{Name: "baseType", Match: MatchExact, Values: func(p *types.Product) []string {
			return single(lighting(p).BaseType)
		}},
		{Name: "shape", Match: MatchExact, Values: func(p *types.Product) []string {
			return single(lighting(p).Shape)
		}},
		{Name: "ipRating", Match: MatchExact, Values: func(p *types.Product) []string {
			return single(lighting(p).IPRating)
		}},
	}
}

func (LightingTraits) Ranges() []RangeFacet {
	return []RangeFacet{
		{Name: "wattage", Default: Range{Min: 0, Max: 200}, Value: func(p *types.Product) string {
			return lighting(p).Wattage
		}},
		{Name: "lumens", Default: Range{Min: 0, Max: 20000}, Value: func(p *types.Product) string {
			return lighting(p).Lumens
		}},
	}
}
