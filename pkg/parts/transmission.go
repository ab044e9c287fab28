package parts

import (
	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

const (
	// TransmissionLineLength is the full feedline extent including
	// both launch pads.
	TransmissionLineLength = 9.5

	transmissionLineRun = TransmissionLineLength - 2*PadLength
)

// TransmissionLine is the feedline across the chip: a straight cavity
// with the center conductor, terminated by a launch pad at each end.
// The pads face outward; the right pad is rotated half a turn so its
// bond square sits at the +X edge.
type TransmissionLine struct {
	Label string
}

var _ assembly.Blueprint = TransmissionLine{}

func (t TransmissionLine) Name() string { return t.Label }

func (t TransmissionLine) Build(b *assembly.Builder) error {
	cavity, err := b.Envelope(shape.Box{DX: transmissionLineRun, DY: CavityWidth, DZ: FilmDZ}, material.Vacuum)
	if err != nil {
		return err
	}

	if _, err := b.Place(cavity, t.Label+"_line", material.Niobium,
		shape.Box{DX: transmissionLineRun, DY: TraceWidth, DZ: FilmDZ}, geom.IdentityTransform()); err != nil {
		return err
	}

	padOffset := transmissionLineRun/2 + PadLength/2
	if _, err := b.Sub(cavity, Pad{Label: t.Label + "_pad1"},
		geom.Translate(geom.Vec3{X: -padOffset})); err != nil {
		return err
	}
	_, err = b.Sub(cavity, Pad{Label: t.Label + "_pad2"},
		geom.At(geom.RotateZ(180), geom.Vec3{X: padOffset}))
	return err
}
