package types

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
)

// ListingRequest is the stateless form of a listing query.
// Subcategories are encoded as "Category:Label".
type ListingRequest struct {
	Query         string   `json:"q" schema:"q"`
	Brands        []string `json:"brand" schema:"brand"`
	Categories    []string `json:"category" schema:"category"`
	Subcategories []string `json:"sub" schema:"sub"`
	Page          int      `json:"page" schema:"page,default:1"`
	SkipTracking  bool     `json:"skipTracking" schema:"nt"`
}

type SubcategoryRef struct {
	Category string
	Label    string
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func (s *ListingRequest) Sanitize() {
	s.Page = ClampPage(s.Page)
	s.Query = strings.TrimSpace(s.Query)
	s.Brands = compact(s.Brands)
	s.Categories = compact(s.Categories)
	s.Subcategories = compact(s.Subcategories)
}

// SubcategoryRefs parses the "Category:Label" pairs, skipping malformed ones.
// The label is everything after the first colon so labels may contain colons.
func (s *ListingRequest) SubcategoryRefs() []SubcategoryRef {
	ret := make([]SubcategoryRef, 0, len(s.Subcategories))
	for _, v := range s.Subcategories {
		category, label, found := strings.Cut(v, ":")
		category, label = strings.TrimSpace(category), strings.TrimSpace(label)
		if !found || category == "" || label == "" {
			continue
		}
		ret = append(ret, SubcategoryRef{Category: category, Label: label})
	}
	return ret
}

func makeBaseListingRequest() *ListingRequest {
	return &ListingRequest{
		Page:          1,
		Brands:        []string{},
		Categories:    []string{},
		Subcategories: []string{},
	}
}

func GetListingRequest(r *http.Request) (*ListingRequest, error) {
	lr := makeBaseListingRequest()
	var err error
	if r.Method == http.MethodGet {
		err = listingFromQuery(r.URL.Query(), lr)
	} else {
		err = jsoncompat.NewDecoder(r.Body).Decode(lr)
	}
	lr.Sanitize()
	return lr, err
}

func listingFromQuery(query url.Values, result *ListingRequest) error {
	return decoder.Decode(result, query)
}

func compact(values []string) []string {
	ret := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			ret = append(ret, trimmed)
		}
	}
	return ret
}
