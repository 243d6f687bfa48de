package types

import (
	"bytes"
	"strings"

	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
)

// FlexString accepts any scalar JSON value. Spreadsheet exports mix numbers,
// booleans and strings in the same column.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := jsoncompat.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
	case '[':
		var list []FlexString
		if err := jsoncompat.Unmarshal(b, &list); err != nil {
			return err
		}
		parts := make([]string, 0, len(list))
		for _, v := range list {
			if v != "" {
				parts = append(parts, string(v))
			}
		}
		*f = FlexString(strings.Join(parts, ", "))
	default:
		*f = FlexString(b)
	}
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// RawRecord is a product row as exported from the brand spreadsheets.
type RawRecord struct {
	Name             FlexString `json:"Name"`
	ProductType      FlexString `json:"Product_Type"`
	Type             FlexString `json:"Type"`
	Brand            FlexString `json:"Brand"`
	KeyFeatures      FlexString `json:"Key_Features"`
	ShortDescription FlexString `json:"Short_Description"`
	FullDescription  FlexString `json:"Full_Description"`
	ImagePath        FlexString `json:"Image_Path"`
	Standards        FlexString `json:"Standards"`
	Certifications   FlexString `json:"Certifications"`
	Specifications   FlexString `json:"Specifications"`
	ModelNumber      FlexString `json:"Model_Number"`
	ProductURL       FlexString `json:"Product_URL"`
	BrochurePath     FlexString `json:"Brochure_Path"`
	Price            FlexString `json:"Price"`
	Warranty         FlexString `json:"Warranty"`

	VoltageRating      FlexString `json:"Voltage_Rating"`
	ConductorMaterial  FlexString `json:"Conductor_Material"`
	ConductorType      FlexString `json:"Conductor_Type"`
	InsulationType     FlexString `json:"Insulation_Type"`
	SheathType         FlexString `json:"Sheath_Type"`
	Armour             FlexString `json:"Armour"`
	NumberOfCores      FlexString `json:"Number_of_Cores"`
	CrossSectionalArea FlexString `json:"Cross_Sectional_Area"`
	CoreConfiguration  FlexString `json:"Core_Configuration"`
	CurrentRating      FlexString `json:"Current_Rating"`
	Length             FlexString `json:"Length"`

	Colors           FlexString `json:"Colors"`
	Color            FlexString `json:"Color"`
	SweepSize        FlexString `json:"Sweep_Size"`
	RPM              FlexString `json:"RPM"`
	PowerConsumption FlexString `json:"Power_Consumption"`
	AirDelivery      FlexString `json:"Air_Delivery"`
	BEERating        FlexString `json:"BEE_Rating"`
	NumberOfBlades   FlexString `json:"Number_of_Blades"`
	BladeMaterial    FlexString `json:"Blade_Material"`
	BodyMaterial     FlexString `json:"Body_Material"`
	MotorWinding     FlexString `json:"Motor_Winding"`

	Wattage          FlexString `json:"Wattage"`
	Lumens           FlexString `json:"Lumens"`
	ColorTemperature FlexString `json:"Color_Temperature"`
	BeamAngle        FlexString `json:"Beam_Angle"`
	BaseType         FlexString `json:"Base_Type"`
	Dimmable         FlexString `json:"Dimmable"`
	Shape            FlexString `json:"Shape"`
	IPRating         FlexString `json:"IP_Rating"`

	Poles            FlexString `json:"Poles"`
	BreakingCapacity FlexString `json:"Breaking_Capacity"`
	Amperage         FlexString `json:"Amperage"`
	Voltage          FlexString `json:"Voltage"`
	TripCurve        FlexString `json:"Trip_Curve"`
	MCBType          FlexString `json:"MCB_Type"`
	Sensitivity      FlexString `json:"Sensitivity"`
	Module           FlexString `json:"Module"`
	MountingType     FlexString `json:"Mounting_Type"`
}

// AnyColor returns Colors, falling back to the singular Color column.
func (r *RawRecord) AnyColor() string {
	if r.Colors != "" {
		return string(r.Colors)
	}
	return string(r.Color)
}

// DatasetSource describes one static dataset file and how its rows map to products.
type DatasetSource struct {
	Family    FamilyId `json:"family" mapstructure:"family"`
	Brand     string   `json:"brand" mapstructure:"brand"`
	File      string   `json:"file" mapstructure:"file"`
	SwapTypes bool     `json:"swapTypes" mapstructure:"swap_types"`
}

// Core builds the shared part of a product. Missing Brand falls back to the
// source brand and missing Type to ProductType.
func (r *RawRecord) Core(src DatasetSource) *Product {
	productType, subType := string(r.ProductType), string(r.Type)
	if src.SwapTypes {
		productType, subType = subType, productType
	}
	if subType == "" {
		subType = productType
	}
	brand := string(r.Brand)
	if brand == "" {
		brand = src.Brand
	}
	return &Product{
		Name:             string(r.Name),
		ProductType:      productType,
		Type:             subType,
		Brand:            brand,
		Family:           src.Family,
		KeyFeatures:      string(r.KeyFeatures),
		ShortDescription: string(r.ShortDescription),
		FullDescription:  string(r.FullDescription),
		ImagePath:        string(r.ImagePath),
		Standards:        string(r.Standards),
		Certifications:   string(r.Certifications),
		Specifications:   string(r.Specifications),
		ModelNumber:      string(r.ModelNumber),
		ProductURL:       string(r.ProductURL),
		BrochurePath:     string(r.BrochurePath),
		Price:            string(r.Price),
		Warranty:         string(r.Warranty),
	}
}
