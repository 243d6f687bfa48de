package catalog

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/family"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
)

var (
	loadedProducts = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalog_products_loaded",
		Help: "Number of products loaded per family",
	}, []string{"family"})
	droppedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_records_dropped_total",
		Help: "Dataset rows dropped during normalization",
	}, []string{"family"})
)

// Loader reads the raw rows of every source, in source order.
type Loader interface {
	LoadSources(ctx context.Context, sources []types.DatasetSource) ([][]types.RawRecord, error)
}

// Load reads and normalizes all sources and registers one family per
// distinct family id, in order of first appearance in sources.
func Load(ctx context.Context, loader Loader, sources []types.DatasetSource, priority []types.FamilyId) (*Catalog, []family.LoadReport, error) {
	for _, src := range sources {
		if _, ok := family.TraitsFor(src.Family); !ok {
			return nil, nil, fmt.Errorf("source %s: unknown family %q", src.File, src.Family)
		}
	}
	rows, err := loader.LoadSources(ctx, sources)
	if err != nil {
		return nil, nil, err
	}

	order := make([]types.FamilyId, 0)
	products := map[types.FamilyId][]*types.Product{}
	reports := make([]family.LoadReport, 0, len(sources))
	for i, src := range sources {
		traits, _ := family.TraitsFor(src.Family)
		normalized, report := family.Normalize(traits, src, rows[i])
		if _, seen := products[src.Family]; !seen {
			order = append(order, src.Family)
		}
		products[src.Family] = append(products[src.Family], normalized...)
		reports = append(reports, report)
		droppedRecords.WithLabelValues(string(src.Family)).Add(float64(report.Dropped))
		if report.Dropped > 0 {
			log.Warn().Str("file", src.File).Int("dropped", report.Dropped).Msg("dropped incomplete records")
		}
	}

	strategies := make([]family.Strategy, 0, len(order))
	for _, id := range order {
		traits, _ := family.TraitsFor(id)
		strategies = append(strategies, family.New(traits, products[id]))
		loadedProducts.WithLabelValues(string(id)).Set(float64(len(products[id])))
	}
	c, err := New(priority, strategies...)
	if err != nil {
		return nil, nil, err
	}
	for _, col := range c.Collisions() {
		log.Warn().Str("name", col.Name).Interface("families", col.Families).Str("winner", string(col.Winner)).Msg("product name shared across families")
	}
	return c, reports, nil
}
