package types

type CablePayload struct {
	VoltageRating      string `json:"voltageRating,omitempty"`
	ConductorMaterial  string `json:"conductorMaterial,omitempty"`
	ConductorType      string `json:"conductorType,omitempty"`
	InsulationType     string `json:"insulationType,omitempty"`
	SheathType         string `json:"sheathType,omitempty"`
	Armour             string `json:"armour,omitempty"`
	NumberOfCores      string `json:"numberOfCores,omitempty"`
	CrossSectionalArea string `json:"crossSectionalArea,omitempty"`
}

func (c *CablePayload) Family() FamilyId { return FamilyCable }

func (c *CablePayload) Attributes() []Attribute {
	return attributes(
		"Voltage Rating", c.VoltageRating,
		"Conductor Material", c.ConductorMaterial,
		"Conductor Type", c.ConductorType,
		"Insulation", c.InsulationType,
		"Sheath", c.SheathType,
		"Armour", c.Armour,
		"Number of Cores", c.NumberOfCores,
		"Cross Sectional Area", c.CrossSectionalArea,
	)
}

type FanPayload struct {
	Colors           string `json:"colors,omitempty"`
	SweepSize        string `json:"sweepSize,omitempty"`
	RPM              string `json:"rpm,omitempty"`
	PowerConsumption string `json:"powerConsumption,omitempty"`
	AirDelivery      string `json:"airDelivery,omitempty"`
	BEERating        string `json:"beeRating,omitempty"`
	NumberOfBlades   string `json:"numberOfBlades,omitempty"`
	BladeMaterial    string `json:"bladeMaterial,omitempty"`
	BodyMaterial     string `json:"bodyMaterial,omitempty"`
	MotorWinding     string `json:"motorWinding,omitempty"`
}

func (f *FanPayload) Family() FamilyId { return FamilyFan }

func (f *FanPayload) ColorList() []string {
	return SplitList(f.Colors, ',')
}

func (f *FanPayload) Attributes() []Attribute {
	return attributes(
		"Colors", f.Colors,
		"Sweep Size", f.SweepSize,
		"RPM", f.RPM,
		"Power Consumption", f.PowerConsumption,
		"Air Delivery", f.AirDelivery,
		"BEE Rating", f.BEERating,
		"Number of Blades", f.NumberOfBlades,
		"Blade Material", f.BladeMaterial,
		"Body Material", f.BodyMaterial,
		"Motor Winding", f.MotorWinding,
	)
}

type LightingPayload struct {
	Wattage          string `json:"wattage,omitempty"`
	Lumens           string `json:"lumens,omitempty"`
	ColorTemperature string `json:"colorTemperature,omitempty"`
	BeamAngle        string `json:"beamAngle,omitempty"`
	BaseType         string `json:"baseType,omitempty"`
	Colors           string `json:"colors,omitempty"`
	IPRating         string `json:"ipRating,omitempty"`
	Dimmable         string `json:"dimmable,omitempty"`
	Shape            string `json:"shape,omitempty"`
}

func (l *LightingPayload) Family() FamilyId { return FamilyLighting }

func (l *LightingPayload) Attributes() []Attribute {
	return attributes(
		"Wattage", l.Wattage,
		"Lumens", l.Lumens,
		"Colour Temperature", l.ColorTemperature,
		"Beam Angle", l.BeamAngle,
		"Base Type", l.BaseType,
		"Colors", l.Colors,
		"IP Rating", l.IPRating,
		"Dimmable", l.Dimmable,
		"Shape", l.Shape,
	)
}

type SwitchgearPayload struct {
	Poles            string `json:"poles,omitempty"`
	BreakingCapacity string `json:"breakingCapacity,omitempty"`
	Amperage         string `json:"amperage,omitempty"`
	Voltage          string `json:"voltage,omitempty"`
	TripCurve        string `json:"tripCurve,omitempty"`
	MCBType          string `json:"mcbType,omitempty"`
	Sensitivity      string `json:"sensitivity,omitempty"`
	Module           string `json:"module,omitempty"`
	MountingType     string `json:"mountingType,omitempty"`
	IPRating         string `json:"ipRating,omitempty"`
}

func (s *SwitchgearPayload) Family() FamilyId { return FamilySwitchgear }

func (s *SwitchgearPayload) Attributes() []Attribute {
	return attributes(
		"Poles", s.Poles,
		"Breaking Capacity", s.BreakingCapacity,
		"Amperage", s.Amperage,
		"Voltage", s.Voltage,
		"Trip Curve", s.TripCurve,
		"MCB Type", s.MCBType,
		"Sensitivity", s.Sensitivity,
		"Module", s.Module,
		"Mounting", s.MountingType,
		"IP Rating", s.IPRating,
	)
}

type WirePayload struct {
	ConductorMaterial  string `json:"conductorMaterial,omitempty"`
	CrossSectionalArea string `json:"crossSectionalArea,omitempty"`
	CoreConfiguration  string `json:"coreConfiguration,omitempty"`
	InsulationType     string `json:"insulationType,omitempty"`
	VoltageRating      string `json:"voltageRating,omitempty"`
	CurrentRating      string `json:"currentRating,omitempty"`
	Length             string `json:"length,omitempty"`
	Colors             string `json:"colors,omitempty"`
}

func (w *WirePayload) Family() FamilyId { return FamilyWire }

func (w *WirePayload) Attributes() []Attribute {
	return attributes(
		"Conductor Material", w.ConductorMaterial,
		"Cross Sectional Area", w.CrossSectionalArea,
		"Core Configuration", w.CoreConfiguration,
		"Insulation", w.InsulationType,
		"Voltage Rating", w.VoltageRating,
		"Current Rating", w.CurrentRating,
		"Length", w.Length,
		"Colors", w.Colors,
	)
}

// attributes pairs up label/value arguments, skipping placeholder values.
func attributes(pairs ...string) []Attribute {
	ret := make([]Attribute, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if IsPlaceholder(pairs[i+1]) {
			continue
		}
		ret = append(ret, Attribute{Label: pairs[i], Value: pairs[i+1]})
	}
	return ret
}
