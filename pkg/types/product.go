package types

import (
	"errors"
	"strings"
)

type FamilyId string

const (
	FamilyCable      FamilyId = "cable"
	FamilyFan        FamilyId = "fan"
	FamilyLighting   FamilyId = "lighting"
	FamilySwitchgear FamilyId = "switchgear"
	FamilyWire       FamilyId = "wire"
)

var ErrIncompleteRecord = errors.New("record is missing a required field")

// Product is the normalized catalog entity. The core fields are shared by
// every family, Payload carries the family specific attributes.
type Product struct {
	Name             string   `json:"name"`
	ProductType      string   `json:"productType"`
	Type             string   `json:"type"`
	Brand            string   `json:"brand"`
	Family           FamilyId `json:"family"`
	KeyFeatures      string   `json:"keyFeatures,omitempty"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	FullDescription  string   `json:"fullDescription,omitempty"`
	ImagePath        string   `json:"imagePath,omitempty"`
	Standards        string   `json:"standards,omitempty"`
	Certifications   string   `json:"certifications,omitempty"`
	Specifications   string   `json:"specifications,omitempty"`
	ModelNumber      string   `json:"modelNumber,omitempty"`
	ProductURL       string   `json:"productUrl,omitempty"`
	BrochurePath     string   `json:"brochurePath,omitempty"`
	Price            string   `json:"price,omitempty"`
	Warranty         string   `json:"warranty,omitempty"`
	Payload          Payload  `json:"attributes,omitempty"`
}

// Payload is implemented by the family specific attribute sets.
type Payload interface {
	Family() FamilyId
	Attributes() []Attribute
}

type Attribute struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ProductKey identifies a product across families.
type ProductKey struct {
	Brand string `json:"brand" schema:"brand"`
	Name  string `json:"name" schema:"name"`
}

func (k ProductKey) IsZero() bool {
	return strings.TrimSpace(k.Brand) == "" && strings.TrimSpace(k.Name) == ""
}

func (k ProductKey) Matches(p *Product) bool {
	if p == nil {
		return false
	}
	return EqualFold(p.Name, k.Name) && EqualFold(p.Brand, k.Brand)
}

func (k ProductKey) String() string {
	return k.Brand + "/" + k.Name
}

func (p *Product) Key() ProductKey {
	return ProductKey{Brand: p.Brand, Name: p.Name}
}

func (p *Product) Validate() error {
	if p.Name == "" || p.ProductType == "" || p.Type == "" || p.Brand == "" {
		return ErrIncompleteRecord
	}
	return nil
}

func (p *Product) Features() []string {
	return SplitList(p.KeyFeatures, ',')
}

func (p *Product) CertificationList() []string {
	return SplitList(p.Certifications, ',')
}

func (p *Product) StandardList() []string {
	return SplitList(p.Standards, ',')
}

func (p *Product) Images() []string {
	return SplitList(p.ImagePath, ';')
}

// Attributes returns the payload attributes, or nil for products without one.
func (p *Product) Attributes() []Attribute {
	if p.Payload == nil {
		return nil
	}
	return p.Payload.Attributes()
}

// SearchText joins the fields free text search runs over.
func (p *Product) SearchText() string {
	return strings.Join([]string{p.Name, p.ShortDescription, p.FullDescription, p.KeyFeatures}, " ")
}
