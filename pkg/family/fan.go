package family

import (
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type FanTraits struct{}

func (FanTraits) Id() types.FamilyId { return types.FamilyFan }

func (FanTraits) Payload(raw *types.RawRecord) types.Payload {
	return &types.FanPayload{
		Colors:           raw.AnyColor(),
		SweepSize:        string(raw.SweepSize),
		RPM:              string(raw.RPM),
		PowerConsumption: string(raw.PowerConsumption),
		AirDelivery:      string(raw.AirDelivery),
		BEERating:        string(raw.BEERating),
		NumberOfBlades:   string(raw.NumberOfBlades),
		BladeMaterial:    string(raw.BladeMaterial),
		BodyMaterial:     string(raw.BodyMaterial),
		MotorWinding:     string(raw.MotorWinding),
	}
}

func fan(p *types.Product) *types.FanPayload {
	if f, ok := p.Payload.(*types.FanPayload); ok {
		return f
	}
	return &types.FanPayload{}
}

func (FanTraits) Attributes() []AttributeFacet {
	return []AttributeFacet{
		{Name: "colors", Match: MatchContains, Exclude: []string{"Available in Multiple Color"}, Values: func(p *types.Product) []string {
			return fan(p).ColorList()
		}},
		{Name: "sweepSize", Match: MatchExact, Values: func(p *types.Product) []string {
			return single(fan(p).SweepSize)
		}},
		{Name: "numberOfBlades", Match: MatchExact, Values: func(p *types.Product) []string {
			return single(fan(p).NumberOfBlades)
		}},
		{Name: "beeRating", Match: MatchContains, Values: func(p *types.Product) []string {
			return single(fan(p).BEERating)
		}},
		{Name: "bladeMaterial", Match: MatchExact, Values: func(p *types.Product) []string {
			return single(fan(p).BladeMaterial)
		}},
		{Name: "bodyMaterial", Match: MatchExact, Values: func(p *types.Product) []string {
			return single(fan(p).BodyMaterial)
		}},
		{Name: "motorWinding", Match: MatchContains, Values: func(p *types.Product) []string {
			return single(fan(p).MotorWinding)
		}},
	}
}

func (FanTraits) Ranges() []RangeFacet {
	return []RangeFacet{
		{Name: "price", Parse: PriceNumber, Default: Range{Min: 0, Max: 50000}, Value: func(p *types.Product) string {
			return p.Price
		}},
		{Name: "powerConsumption", Default: Range{Min: 0, Max: 100}, Value: func(p *types.Product) string {
			return fan(p).PowerConsumption
		}},
		{Name: "airDelivery", Default: Range{Min: 0, Max: 500}, Value: func(p *types.Product) string {
			return fan(p).AirDelivery
		}},
		{Name: "rpm", Default: Range{Min: 0, Max: 2000}, Value: func(p *types.Product) string {
			return fan(p).RPM
		}},
	}
}
