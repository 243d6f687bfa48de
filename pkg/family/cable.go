package family

import (
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type CableTraits struct{}

func (CableTraits) Id() types.FamilyId { return types.FamilyCable }

func (CableTraits) Payload(raw *types.RawRecord) types.Payload {
	return &types.CablePayload{
		VoltageRating:      string(raw.VoltageRating),
		ConductorMaterial:  string(raw.ConductorMaterial),
		ConductorType:      string(raw.ConductorType),
		InsulationType:     string(raw.InsulationType),
		SheathType:         string(raw.SheathType),
		Armour:             string(raw.Armour),
		NumberOfCores:      string(raw.NumberOfCores),
		CrossSectionalArea: string(raw.CrossSectionalArea),
	}
}

func cable(p *types.Product) *types.CablePayload {
	if c, ok := p.Payload.(*types.CablePayload); ok {
		return c
	}
	return &types.CablePayload{}
}

func (CableTraits) Attributes() []AttributeFacet {
	return []AttributeFacet{
		{Name: "conductor", Match: MatchContains, Values: func(p *types.Product) []string {
			return single(cable(p).ConductorMaterial)
		}},
		{Name: "voltage", Match: MatchExact, Values: func(p *types.Product) []string {
			return single(cable(p).VoltageRating)
		}},
		{Name: "armour", Match: MatchExact, Values: func(p *types.Product) []string {
			return single(cable(p).Armour)
		}},
	}
}

func (CableTraits) Ranges() []RangeFacet {
	return nil
}
