package device

import (
	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/parts"
	"github.com/quartetsim/quartet/pkg/shape"
)

// Device-scale dimensions, mm.
const (
	// WorldDim is the edge of the liquid-helium world cube.
	WorldDim = 550.0

	// Eps keeps stacked faces from coinciding exactly.
	Eps = 0.001

	HousingDimX = 32.0
	HousingDimY = 32.0
	HousingDimZ = 8.0

	SiliconChipDimX = 10.0
	SiliconChipDimY = 10.0
	SiliconChipDimZ = 0.5

	GroundPlaneDimX = 10.0
	GroundPlaneDimY = 10.0
	GroundPlaneDimZ = parts.FilmDZ
)

// Vertical stacking: the chip rides in the housing recess with its top
// face just above the housing plane, and the ground-plane film sits on
// the chip.
const (
	siliconChipZ = 0.5*(HousingDimZ-SiliconChipDimZ) + Eps
	groundPlaneZ = 0.5*HousingDimZ + Eps + 0.5*GroundPlaneDimZ
)

// Resonator assembly row layout along the transmission line.
const (
	ResonatorLateralSpacing = 2.4
	CentralResonatorOffsetX = 0.3

	resonatorAssemblyOffsetY = 0.5*parts.ResonatorAssemblyBaseDimY + 0.5*parts.CavityWidth
)

// Flux-line sites. The bottom line is the top one rotated half a turn
// about Z.
const (
	topFluxLineOffsetX    = 0.0
	topFluxLineOffsetY    = 2.6
	bottomFluxLineOffsetX = 0.0
	bottomFluxLineOffsetY = 2.6
)

// Fixed qubit-element sites from the chip layout.
var (
	topTransmonAt      = geom.Vec3{X: 1.43, Y: 1.17}
	bottomTransmonAt   = geom.Vec3{X: 0.5, Y: -1.0}
	topXmonAt          = geom.Vec3{X: -1.0, Y: 1.0}
	bottomXmonAt       = geom.Vec3{X: -1.0, Y: -1.0}
	topResonator0At    = geom.Vec3{X: -0.39, Y: 0.39}
	topResonator1At    = geom.Vec3{X: 1.17, Y: 0.39}
	bottomResonator0At = geom.Vec3{X: -1.17, Y: -0.39}
	bottomResonator1At = geom.Vec3{X: 0.39, Y: -0.39}
)

// The q1 feed: a chained run of three curves and three straights
// folded from a single anchor next to the first qubit, heading +Y.
var (
	chainAnchorAt   = geom.Vec3{X: 1.3755, Y: 0.692}
	chainHeadingDeg = 90.0
	chainSegments   = []shape.Segment{
		shape.CurveSegment{Radius: parts.BendRadius, TurnDeg: 90},
		shape.StraightSegment{Length: 0.312},
		shape.CurveSegment{Radius: parts.BendRadius, TurnDeg: -90},
		shape.StraightSegment{Length: 0.320},
		shape.CurveSegment{Radius: parts.BendRadius, TurnDeg: -90},
		shape.StraightSegment{Length: 0.260},
	}
)
