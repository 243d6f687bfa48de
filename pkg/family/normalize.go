package family

import (
	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

type LoadReport struct {
	Source  types.DatasetSource `json:"source"`
	Loaded  int                 `json:"loaded"`
	Dropped int                 `json:"dropped"`
}

// Normalize turns raw rows into products. Rows missing a required field
// are dropped and counted in the report.
func Normalize(traits Traits, src types.DatasetSource, records []types.RawRecord) ([]*types.Product, LoadReport) {
	if src.Family == "" {
		src.Family = traits.Id()
	}
	report := LoadReport{Source: src}
	ret := make([]*types.Product, 0, len(records))
	for i := range records {
		raw := &records[i]
		p := raw.Core(src)
		if err := p.Validate(); err != nil {
			report.Dropped++
			log.Debug().Str("file", src.File).Int("row", i).Str("name", p.Name).Msg("dropping incomplete record")
			continue
		}
		p.Payload = traits.Payload(raw)
		ret = append(ret, p)
	}
	report.Loaded = len(ret)
	return ret, report
}
