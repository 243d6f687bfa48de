package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/catalog"
	"github.com/shreeji-electro/catalog-finder/pkg/config"
	"github.com/shreeji-electro/catalog-finder/pkg/query"
	"github.com/shreeji-electro/catalog-finder/pkg/storage"
)

// checker loads every configured dataset and writes a report of dropped
// rows, shared names and products the listing filters cannot reach.
// Usage: checker [report file], a .gz name writes a gzipped report.
func main() {
	output := "catalog-report.json"
	if len(os.Args) > 1 {
		output = os.Args[1]
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	s := storage.NewDiskStorage(cfg.Catalog.DataDir)
	c, reports, err := catalog.Load(context.Background(), s, cfg.Catalog.Sources, cfg.Catalog.PriorityOrDefault(nil))
	if err != nil {
		log.Fatal().Err(err).Msg("could not load catalog")
	}

	tax := &query.Taxonomy{}
	if err = s.LoadJson(tax, cfg.Catalog.TaxonomyFile); errors.Is(err, storage.ErrNotFound) {
		tax = query.DefaultTaxonomy()
	} else if err != nil {
		log.Fatal().Err(err).Msg("could not load taxonomy")
	}

	report := buildReport(c, reports, tax)
	if isGzip(output) {
		err = s.SaveGzippedJson(report, output)
	} else {
		err = s.SaveJson(report, output)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("could not save report")
	}
	log.Info().
		Int("products", report.Stats.Total).
		Int("dropped", report.Dropped).
		Int("collisions", len(report.Collisions)).
		Int("unplaced", len(report.Unplaced)).
		Str("file", output).
		Msg("catalog checked")
	if !report.Clean() {
		os.Exit(1)
	}
}
