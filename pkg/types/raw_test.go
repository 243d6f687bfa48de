package types

import (
	"testing"

	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
)

const rawFan = `{
	"Name": "Elanza Plus",
	"Product_Type": "Fans",
	"Type": "",
	"Price": 3450,
	"Dimmable": true,
	"Warranty": null,
	"Key_Features": " Energy saving , , Anti dust ",
	"Colors": ["White", "Brown"]
}`

func TestRawRecordFlexibleScalars(t *testing.T) {
	var raw RawRecord
	if err := jsoncompat.Unmarshal([]byte(rawFan), &raw); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if raw.Price != "3450" {
		t.Errorf("Expected price 3450, got %q", raw.Price)
	}
	if raw.Dimmable != "true" {
		t.Errorf("Expected dimmable true, got %q", raw.Dimmable)
	}
	if raw.Warranty != "" {
		t.Errorf("Expected empty warranty, got %q", raw.Warranty)
	}
	if raw.AnyColor() != "White, Brown" {
		t.Errorf("Expected joined colors, got %q", raw.AnyColor())
	}
}

func TestCoreDefaults(t *testing.T) {
	var raw RawRecord
	if err := jsoncompat.Unmarshal([]byte(rawFan), &raw); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	p := raw.Core(DatasetSource{Family: FamilyFan, Brand: "POLYCAB"})
	if p.Brand != "POLYCAB" {
		t.Errorf("Expected source brand, got %q", p.Brand)
	}
	if p.Type != "Fans" {
		t.Errorf("Expected type to default to product type, got %q", p.Type)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Expected valid product, got %v", err)
	}
	features := p.Features()
	if len(features) != 2 || features[0] != "Energy saving" || features[1] != "Anti dust" {
		t.Errorf("Expected trimmed features, got %v", features)
	}
}

func TestCoreSwapTypes(t *testing.T) {
	raw := RawRecord{Name: "SafeRing", ProductType: "Ring Main Unit - RMU", Type: "Medium Voltage", Brand: "LAURITZ KNUDSEN"}
	p := raw.Core(DatasetSource{Family: FamilySwitchgear, SwapTypes: true})
	if p.ProductType != "Medium Voltage" || p.Type != "Ring Main Unit - RMU" {
		t.Errorf("Expected swapped category and subtype, got %q / %q", p.ProductType, p.Type)
	}
}

func TestValidateMissingName(t *testing.T) {
	p := &Product{ProductType: "Cables", Type: "Cables", Brand: "POLYCAB"}
	if p.Validate() != ErrIncompleteRecord {
		t.Errorf("Expected incomplete record error")
	}
}
