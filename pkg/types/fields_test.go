package types

import "testing"

func TestSplitListDropsEmpty(t *testing.T) {
	images := SplitList("a.png; ;b.png;", ';')
	if len(images) != 2 || images[1] != "b.png" {
		t.Errorf("Expected [a.png b.png], got %v", images)
	}
	if SplitList("   ") != nil {
		t.Errorf("Expected nil for blank input")
	}
}

func TestFoldComparisons(t *testing.T) {
	if !EqualFold("POLYCAB XLPE Cable", "polycab xlpe cable") {
		t.Errorf("Expected names to match case-insensitively")
	}
	if !ContainsFold("Lauritz Knudsen", "KNUDSEN") {
		t.Errorf("Expected contains to ignore case")
	}
}

func TestKeyMatches(t *testing.T) {
	p := &Product{Name: "Etira", Brand: "POLYCAB"}
	if !(ProductKey{Brand: "polycab", Name: "ETIRA"}).Matches(p) {
		t.Errorf("Expected key to match")
	}
	if (ProductKey{Brand: "hager", Name: "Etira"}).Matches(p) {
		t.Errorf("Expected brand mismatch")
	}
}

func TestAttributesSkipPlaceholders(t *testing.T) {
	fan := &FanPayload{SweepSize: "1200mm", RPM: "N/A", BladeMaterial: ""}
	attrs := fan.Attributes()
	if len(attrs) != 1 || attrs[0].Label != "Sweep Size" {
		t.Errorf("Expected only sweep size, got %v", attrs)
	}
}
