package types

import "strings"

// BCType is the boundary condition kind attached to a boundary group
type BCType uint16

const (
	// BCNone marks the default and unspecified boundary groups
	BCNone BCType = iota

	BCInflow
	BCOutflow
	BCWall
	BCSlipWall
	BCSymmetry
	BCPeriodic
	BCFarfield

	BCIsothermal
	BCAdiabatic
	BCHeatFlux

	BCDirichlet
	BCNeumann
	BCRobin

	BCInterface
	BCPressureOutlet
	BCVelocityInlet
)

var bcTypeNames = map[BCType]string{
	BCNone:           "None",
	BCInflow:         "Inflow",
	BCOutflow:        "Outflow",
	BCWall:           "Wall",
	BCSlipWall:       "SlipWall",
	BCSymmetry:       "Symmetry",
	BCPeriodic:       "Periodic",
	BCFarfield:       "Farfield",
	BCIsothermal:     "Isothermal",
	BCAdiabatic:      "Adiabatic",
	BCHeatFlux:       "HeatFlux",
	BCDirichlet:      "Dirichlet",
	BCNeumann:        "Neumann",
	BCRobin:          "Robin",
	BCInterface:      "Interface",
	BCPressureOutlet: "PressureOutlet",
	BCVelocityInlet:  "VelocityInlet",
}

func (bc BCType) String() string {
	if name, ok := bcTypeNames[bc]; ok {
		return name
	}
	return "Unknown"
}

// BCNameMap maps lower case marker names found in mesh files to a BCType.
// Applications can add their own spellings.
var BCNameMap = map[string]BCType{
	"none":        BCNone,
	"unspecified": BCNone,
	"default":     BCNone,

	"inlet":          BCInflow,
	"inflow":         BCInflow,
	"in":             BCInflow,
	"velocity_inlet": BCVelocityInlet,

	"outlet":          BCOutflow,
	"outflow":         BCOutflow,
	"out":             BCOutflow,
	"exit":            BCOutflow,
	"pressure_outlet": BCPressureOutlet,

	"wall":          BCWall,
	"no_slip":       BCWall,
	"noslip":        BCWall,
	"slip":          BCSlipWall,
	"slip_wall":     BCSlipWall,
	"inviscid_wall": BCSlipWall,

	"symmetry":   BCSymmetry,
	"symmetric":  BCSymmetry,
	"farfield":   BCFarfield,
	"far_field":  BCFarfield,
	"far":        BCFarfield,
	"freestream": BCFarfield,
	"periodic":   BCPeriodic,

	"isothermal": BCIsothermal,
	"adiabatic":  BCAdiabatic,
	"heat_flux":  BCHeatFlux,

	"dirichlet": BCDirichlet,
	"neumann":   BCNeumann,
	"neuman":    BCNeumann,
	"robin":     BCRobin,

	"interface": BCInterface,
	"internal":  BCInterface,
}

// ParseBCName converts a boundary condition name to a BCType. Matching is
// case-insensitive; unknown names are treated as walls.
func ParseBCName(name string) BCType {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	if bcType, ok := BCNameMap[lowerName]; ok {
		return bcType
	}
	return BCWall
}

/*
BCTAG is a normalized boundary marker name. Markers are written as
"<type>" or "<type>-<label>", e.g. "Wall-top" or "Periodic-2", and the
type part selects the BCType.
*/
type BCTAG string

func NewBCTAG(label string) BCTAG {
	return BCTAG(strings.ToLower(strings.Trim(label, " \t\"")))
}

func (bt BCTAG) GetType() BCType {
	name := string(bt)
	if ind := strings.Index(name, "-"); ind > 0 {
		name = name[:ind]
	}
	return ParseBCName(name)
}

func (bt BCTAG) GetLabel() (label string) {
	name := string(bt)
	if ind := strings.Index(name, "-"); ind > 0 {
		label = name[ind+1:]
	}
	return
}
