package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shreeji-electro/catalog-finder/pkg/family"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, priority ...types.FamilyId) *Catalog {
	t.Helper()
	cables := family.New(family.CableTraits{}, []*types.Product{
		{Name: "Polycab XLPE Cable", Brand: "POLYCAB", ProductType: "Cables", Type: "LV Power Cable", Family: types.FamilyCable},
		{Name: "Shared Name", Brand: "POLYCAB", ProductType: "Cables", Type: "Control Cable", Family: types.FamilyCable},
	})
	fans := family.New(family.FanTraits{}, []*types.Product{
		{Name: "Elanza", Brand: "POLYCAB", ProductType: "Fans", Type: "Ceiling Fan", Family: types.FamilyFan},
		{Name: "Shared Name", Brand: "POLYCAB", ProductType: "Fans", Type: "Table Fan", Family: types.FamilyFan},
	})
	gear := family.New(family.SwitchgearTraits{}, []*types.Product{
		{Name: "Shared Name", Brand: "HAGER", ProductType: "Switchgear", Type: "RCCB", Family: types.FamilySwitchgear},
	})
	c, err := New(priority, cables, fans, gear)
	require.NoError(t, err)
	return c
}

func TestGetAllProductsRegistrationOrder(t *testing.T) {
	c := fixture(t, types.FamilyFan)
	all := c.GetAllProducts()
	require.Len(t, all, 5)
	assert.Equal(t, "Polycab XLPE Cable", all[0].Name)
	assert.Equal(t, types.FamilySwitchgear, all[4].Family)
}

func TestGetProductByNamePriority(t *testing.T) {
	c := fixture(t, family.DefaultPriority...)
	p, ok := c.GetProductByName("shared name")
	require.True(t, ok)
	assert.Equal(t, types.FamilyCable, p.Family)

	c = fixture(t, types.FamilySwitchgear, types.FamilyFan)
	p, ok = c.GetProductByName("SHARED NAME")
	require.True(t, ok)
	assert.Equal(t, types.FamilySwitchgear, p.Family)
	assert.Equal(t, []types.FamilyId{types.FamilySwitchgear, types.FamilyFan, types.FamilyCable}, c.Priority())

	_, ok = c.GetProductByName("unknown")
	assert.False(t, ok)
}

func TestGetProductByKey(t *testing.T) {
	c := fixture(t, family.DefaultPriority...)
	p, ok := c.GetProduct(types.ProductKey{Brand: "hager", Name: "shared name"})
	require.True(t, ok)
	assert.Equal(t, types.FamilySwitchgear, p.Family)

	_, ok = c.GetProduct(types.ProductKey{Brand: "NEPTUNE", Name: "Shared Name"})
	assert.False(t, ok)
}

func TestGetProductsByFamilyTagged(t *testing.T) {
	c := fixture(t)
	tagged := c.GetProductsByFamily(types.FamilyFan)
	require.Len(t, tagged, 2)
	for _, item := range tagged {
		assert.Equal(t, types.FamilyFan, item.Family)
	}
	assert.Empty(t, c.GetProductsByFamily(types.FamilyWire))
}

func TestCollisions(t *testing.T) {
	c := fixture(t, types.FamilyFan)
	cols := c.Collisions()
	require.Len(t, cols, 1)
	assert.Equal(t, types.FamilyFan, cols[0].Winner)
	assert.Len(t, cols[0].Families, 3)
}

func TestStats(t *testing.T) {
	s := fixture(t).Stats()
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.ByFamily[types.FamilyCable])
	assert.Equal(t, 1, s.Families[types.FamilySwitchgear].ByType["RCCB"])
}

func TestDuplicateFamily(t *testing.T) {
	a := family.New(family.CableTraits{}, nil)
	b := family.New(family.CableTraits{}, nil)
	_, err := New(nil, a, b)
	assert.Error(t, err)
}

type fakeLoader struct {
	rows [][]types.RawRecord
	err  error
}

func (f *fakeLoader) LoadSources(ctx context.Context, sources []types.DatasetSource) ([][]types.RawRecord, error) {
	return f.rows, f.err
}

func TestLoad(t *testing.T) {
	loader := &fakeLoader{rows: [][]types.RawRecord{
		{{Name: "Elanza", ProductType: "Fans", Type: "Ceiling Fan"}},
		{{Name: "SafeRing", ProductType: "Ring Main Unit - RMU", Type: "Medium Voltage"}, {Name: ""}},
		{{Name: "Wave", ProductType: "Fans", Type: "Table Fan"}},
	}}
	sources := []types.DatasetSource{
		{Family: types.FamilyFan, Brand: "POLYCAB", File: "polycab/fans.json"},
		{Family: types.FamilySwitchgear, Brand: "LAURITZ KNUDSEN", File: "lk/products.json", SwapTypes: true},
		{Family: types.FamilyFan, Brand: "POLYCAB", File: "polycab/fans-2.json"},
	}
	c, reports, err := Load(context.Background(), loader, sources, nil)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, 1, reports[1].Dropped)
	assert.Equal(t, []types.FamilyId{types.FamilyFan, types.FamilySwitchgear}, c.Families())

	p, ok := c.GetProductByName("saferING")
	require.True(t, ok)
	assert.Equal(t, "Medium Voltage", p.ProductType)
	assert.Equal(t, "LAURITZ KNUDSEN", p.Brand)
	_, isSwitchgear := p.Payload.(*types.SwitchgearPayload)
	assert.True(t, isSwitchgear)
	assert.Len(t, c.GetProductsByFamily(types.FamilyFan), 2)
}

func TestLoadErrors(t *testing.T) {
	_, _, err := Load(context.Background(), &fakeLoader{}, []types.DatasetSource{{Family: "solar"}}, nil)
	assert.Error(t, err)

	boom := errors.New("boom")
	_, _, err = Load(context.Background(), &fakeLoader{err: boom}, []types.DatasetSource{{Family: types.FamilyFan}}, nil)
	assert.ErrorIs(t, err, boom)
}
