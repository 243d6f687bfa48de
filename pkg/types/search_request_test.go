package types

import (
	"net/url"
	"testing"
)

func TestParseListingQueryValues(t *testing.T) {
	query := url.Values{
		"q":        []string{" xlpe "},
		"brand":    []string{"Polycab", "Hager"},
		"category": []string{"Cables"},
		"sub":      []string{"Cables:LV Power Cable", "broken", "Cables:Control Cable"},
		"page":     []string{"2"},
		"unknown":  []string{"ignored"},
	}
	lr := makeBaseListingRequest()
	err := listingFromQuery(query, lr)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	lr.Sanitize()
	if lr.Query != "xlpe" {
		t.Errorf("Expected query to be xlpe, got %q", lr.Query)
	}
	if len(lr.Brands) != 2 || lr.Brands[0] != "Polycab" || lr.Brands[1] != "Hager" {
		t.Errorf("Expected brands to be [Polycab Hager], got %v", lr.Brands)
	}
	if lr.Page != 2 {
		t.Errorf("Expected page to be 2, got %v", lr.Page)
	}
	refs := lr.SubcategoryRefs()
	if len(refs) != 2 {
		t.Fatalf("Expected 2 subcategory refs, got %v", refs)
	}
	if refs[0].Category != "Cables" || refs[0].Label != "LV Power Cable" {
		t.Errorf("Expected Cables:LV Power Cable, got %v", refs[0])
	}
}

func TestSanitizeClampsPage(t *testing.T) {
	lr := &ListingRequest{Page: -4, Brands: []string{" ", "Polycab"}}
	lr.Sanitize()
	if lr.Page != 1 {
		t.Errorf("Expected page to be clamped to 1, got %d", lr.Page)
	}
	if len(lr.Brands) != 1 {
		t.Errorf("Expected blank brands to be dropped, got %v", lr.Brands)
	}
}
