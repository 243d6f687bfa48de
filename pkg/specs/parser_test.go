package specs

import (
	"testing"
)

func TestParseDetailPairs(t *testing.T) {
	spec := Parse("Detail\nVoltage\n440V\nCurrent\n16A")
	if spec.Mode != ModePairs {
		t.Fatalf("Expected pairs mode, got %s", spec.Mode)
	}
	expected := []Entry{{Key: "Voltage", Value: "440V"}, {Key: "Current", Value: "16A"}}
	if len(spec.Entries) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, spec.Entries)
	}
	for i, e := range expected {
		if spec.Entries[i] != e {
			t.Errorf("Expected %v at %d, got %v", e, i, spec.Entries[i])
		}
	}
}

func TestParseBullets(t *testing.T) {
	spec := Parse("IP65 rated\nFlame retardant")
	if spec.Mode != ModeBullets {
		t.Fatalf("Expected bullets mode, got %s", spec.Mode)
	}
	if len(spec.Entries) != 2 || spec.Entries[0].Value != "IP65 rated" || spec.Entries[1].Value != "Flame retardant" {
		t.Errorf("Expected two bullets, got %v", spec.Entries)
	}
	if spec.Entries[0].Key != "" {
		t.Errorf("Expected keyless bullets, got %q", spec.Entries[0].Key)
	}
}

func TestParseDropsPlaceholders(t *testing.T) {
	spec := Parse("  \nDetails\nModel\nDescription\nWarranty\n\n2 Years\nColour")
	if spec.Mode != ModePairs {
		t.Fatalf("Expected pairs mode, got %s", spec.Mode)
	}
	if len(spec.Entries) != 1 || spec.Entries[0].Key != "Warranty" || spec.Entries[0].Value != "2 Years" {
		t.Errorf("Expected only the warranty entry, got %v", spec.Entries)
	}
}

func TestParseIgnoresLinesBeforeMarker(t *testing.T) {
	spec := Parse("Neptune Isolator\nDETAIL\nPoles\n4")
	if len(spec.Entries) != 1 || spec.Entries[0].Key != "Poles" {
		t.Errorf("Expected only entries after the marker, got %v", spec.Entries)
	}
}

func TestParseKeyValueList(t *testing.T) {
	spec := Parse("Voltage: 1.1 kV, Conductor: Copper, Aluminium\nArmour: Steel wire")
	if spec.Mode != ModeKeyValue {
		t.Fatalf("Expected keyvalue mode, got %s", spec.Mode)
	}
	if len(spec.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %v", spec.Entries)
	}
	if spec.Entries[1].Value != "Copper, Aluminium" {
		t.Errorf("Expected continuation to be joined, got %q", spec.Entries[1].Value)
	}
}

func TestParseEmpty(t *testing.T) {
	spec := Parse(" \n \n")
	if spec.Mode != ModeEmpty || !spec.IsEmpty() {
		t.Errorf("Expected empty specification, got %v", spec)
	}
}

func TestParseKeyValueWithPunctuatedKeys(t *testing.T) {
	spec := Parse("Voltage Grade (Uo/U): 0.6/1.1 kV, Cores: 4, Std. Length: 500 m")
	if spec.Mode != ModeKeyValue {
		t.Fatalf("Expected keyvalue mode, got %s", spec.Mode)
	}
	expected := []Entry{
		{Key: "Voltage Grade (Uo/U)", Value: "0.6/1.1 kV"},
		{Key: "Cores", Value: "4"},
		{Key: "Std. Length", Value: "500 m"},
	}
	if len(spec.Entries) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, spec.Entries)
	}
	for i, e := range expected {
		if spec.Entries[i] != e {
			t.Errorf("Expected %v at %d, got %v", e, i, spec.Entries[i])
		}
	}
}

func TestParseUrlIsNotAKey(t *testing.T) {
	spec := Parse("https://polycab.com/datasheet.pdf\nFlame retardant")
	if spec.Mode != ModeBullets {
		t.Fatalf("Expected bullets mode, got %s", spec.Mode)
	}
	if len(spec.Entries) != 2 || spec.Entries[0].Value != "https://polycab.com/datasheet.pdf" {
		t.Errorf("Expected the url as a bullet, got %v", spec.Entries)
	}
}
