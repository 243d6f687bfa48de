package main

import (
	"testing"

	"github.com/shreeji-electro/catalog-finder/pkg/catalog"
	"github.com/shreeji-electro/catalog-finder/pkg/family"
	"github.com/shreeji-electro/catalog-finder/pkg/query"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	cables := family.New(family.CableTraits{}, []*types.Product{
		{Name: "Polycab LV Cable A", Brand: "POLYCAB", ProductType: "Cables", Type: "LV Power Cable", Family: types.FamilyCable},
		{Name: "Polycab Mystery Cable", Brand: "POLYCAB", ProductType: "Cables", Type: "Mystery", Family: types.FamilyCable},
		{Name: "Dowells Gland", Brand: "DOWELL'S", ProductType: "Cable Glands", Type: "Brass", Family: types.FamilyCable},
	})
	gear := family.New(family.SwitchgearTraits{}, []*types.Product{
		{Name: "Hager Cable Duct", Brand: "HAGER", ProductType: "Cables", Type: "LV Power Cable", Family: types.FamilySwitchgear},
		{Name: "Acme RCCB", Brand: "ACME", ProductType: "Switchgear", Type: "RCCB", Family: types.FamilySwitchgear},
	})
	c, err := catalog.New([]types.FamilyId{types.FamilyCable, types.FamilySwitchgear}, cables, gear)
	require.NoError(t, err)

	reports := []family.LoadReport{{Loaded: 3, Dropped: 1}, {Loaded: 2}}
	report := buildReport(c, reports, query.DefaultTaxonomy())

	assert.Equal(t, 1, report.Dropped)
	assert.Equal(t, 5, report.Stats.Total)
	assert.Empty(t, report.Collisions)
	reasons := map[string]string{}
	for _, u := range report.Unplaced {
		reasons[u.Key.Name] = u.Reason
	}
	assert.Equal(t, map[string]string{
		"Polycab Mystery Cable": "unknown subcategory",
		"Hager Cable Duct":      "category not offered by brand",
		"Acme RCCB":             "unknown brand",
	}, reasons)
	assert.False(t, report.Clean())
}

func TestIsGzip(t *testing.T) {
	assert.True(t, isGzip("report.json.gz"))
	assert.False(t, isGzip("report.json"))
}
