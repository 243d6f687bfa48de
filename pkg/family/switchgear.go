package family

import (
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type SwitchgearTraits struct{}

func (SwitchgearTraits) Id() types.FamilyId { return types.FamilySwitchgear }

func (SwitchgearTraits) Payload(raw *types.RawRecord) types.Payload {
	return &types.SwitchgearPayload{
		Poles:            string(raw.Poles),
		BreakingCapacity: string(raw.BreakingCapacity),
		Amperage:         string(raw.Amperage),
		Voltage:          string(raw.Voltage),
		TripCurve:        string(raw.TripCurve),
		MCBType:          string(raw.MCBType),
		Sensitivity:      string(raw.Sensitivity),
		Module:           string(raw.Module),
		MountingType:     string(raw.MountingType),
		IPRating:         string(raw.IPRating),
	}
}

func switchgear(p *types.Product) *types.SwitchgearPayload {
	if s, ok := p.Payload.(*types.SwitchgearPayload); ok {
		return s
	}
	return &types.SwitchgearPayload{}
}

func (SwitchgearTraits) Attributes() []AttributeFacet {
	return []AttributeFacet{
		{Name: "poles", Match: MatchExact, Values: func(p *types.Product) []string {
			return types.SplitList(switchgear(p).Poles, ',', '/')
		}},
		{Name: "tripCurve", Match: MatchContains, Values: func(p *types.Product) []string {
			return types.SplitList(switchgear(p).TripCurve, ',', '/')
		}},
		{Name: "breakingCapacity", Match: MatchExact, Values: func(p *types.Product) []string {
			return single(switchgear(p).BreakingCapacity)
		}},
		{Name: "sensitivity", Match: MatchContains, Values: func(p *types.Product) []string {
			return single(switchgear(p).Sensitivity)
		}},
	}
}

func (SwitchgearTraits) Ranges() []RangeFacet {
	return []RangeFacet{
		{Name: "amperage", Default: Range{Min: 0, Max: 6300}, Value: func(p *types.Product) string {
			return switchgear(p).Amperage
		}},
	}
}
