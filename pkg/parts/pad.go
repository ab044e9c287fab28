package parts

import (
	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

// Launch pad layout along the local +X feed direction: the square
// bond conductor sits at the -X end, then the taper narrows the trace
// down to the waveguide width at the +X end.
const (
	PadLength      = 0.75
	PadWidth       = 0.4
	padBondLength  = 0.4  // cavity section holding the bond square
	padBondSide    = 0.25 // bond conductor
	padTaperLength = 0.35
)

// Pad is a coplanar-waveguide launch pad: an etched cavity holding the
// wirebond square and the taper down to the feed trace.
type Pad struct {
	Label string
}

var _ assembly.Blueprint = Pad{}

func (p Pad) Name() string { return p.Label }

func (p Pad) Build(b *assembly.Builder) error {
	cavity, err := b.Envelope(shape.Box{DX: PadLength, DY: PadWidth, DZ: FilmDZ}, material.Vacuum)
	if err != nil {
		return err
	}

	bondAt := geom.Translate(geom.Vec3{X: -PadLength/2 + padBondLength/2})
	if _, err := b.Place(cavity, p.Label+"_bond", material.Niobium,
		shape.Box{DX: padBondSide, DY: padBondSide, DZ: FilmDZ}, bondAt); err != nil {
		return err
	}

	// The Trd tapers along its local Z; rotating 90 degrees about Y
	// lays the taper in plane, narrowing toward +X.
	taper := shape.Trd{
		DX1: FilmDZ, DX2: FilmDZ,
		DY1: padBondSide, DY2: TraceWidth,
		DZ: padTaperLength,
	}
	taperAt := geom.At(geom.RotateY(90), geom.Vec3{X: PadLength/2 - padTaperLength/2})
	_, err = b.Place(cavity, p.Label+"_taper", material.Niobium, taper, taperAt)
	return err
}
