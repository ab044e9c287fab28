package parts

import (
	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

// Flux-line envelopes. Each variant starts with a launch pad at the
// -X end of its pocket and runs toward +X; the curve and corner
// variants then drop toward -Y.
const (
	fluxLineDimX = 1.2
	fluxLineDimY = 1.0

	fluxStraightRun = 0.85
	fluxFeedRun     = 0.25
	fluxTailRun     = 0.35
	fluxCornerRun   = 0.4
	fluxCornerDrop  = 0.35
	fluxPadCenterX  = -fluxLineDimX/2 + PadLength/2
	fluxChainStartX = -fluxLineDimX/2 + PadLength
)

// StraightFluxLine is the simplest variant: pad plus a straight run.
type StraightFluxLine struct {
	Label string
}

var _ assembly.Blueprint = StraightFluxLine{}

func (f StraightFluxLine) Name() string { return f.Label }

func (f StraightFluxLine) Build(b *assembly.Builder) error {
	pocket, err := b.Envelope(shape.Box{DX: fluxLineDimX, DY: PadWidth, DZ: FilmDZ}, material.Vacuum)
	if err != nil {
		return err
	}
	if _, err := b.Sub(pocket, Pad{Label: f.Label + "_pad"},
		geom.Translate(geom.Vec3{X: fluxPadCenterX})); err != nil {
		return err
	}
	runAt := geom.Translate(geom.Vec3{X: fluxChainStartX + fluxStraightRun/2})
	_, err = b.Place(pocket, f.Label+"_line", material.Niobium,
		shape.Box{DX: fluxStraightRun, DY: TraceWidth, DZ: FilmDZ}, runAt)
	return err
}

// CurveFluxLine is the canonical variant: pad, a short feed, a
// quarter-turn bend, and the tail running toward the qubit.
type CurveFluxLine struct {
	Label string
}

var _ assembly.Blueprint = CurveFluxLine{}

func (f CurveFluxLine) Name() string { return f.Label }

func (f CurveFluxLine) Build(b *assembly.Builder) error {
	pocket, err := b.Envelope(shape.Box{DX: fluxLineDimX, DY: fluxLineDimY, DZ: FilmDZ}, material.Vacuum)
	if err != nil {
		return err
	}
	if _, err := b.Sub(pocket, Pad{Label: f.Label + "_pad"},
		geom.Translate(geom.Vec3{X: fluxPadCenterX})); err != nil {
		return err
	}

	start := shape.StartAnchor(geom.Vec3{X: fluxChainStartX}, 0)
	segs := []shape.Segment{
		shape.StraightSegment{Length: fluxFeedRun},
		shape.CurveSegment{Radius: BendRadius, TurnDeg: -90},
		shape.StraightSegment{Length: fluxTailRun},
	}
	_, err = PlaceRun(b, pocket, f.Label, start, segs)
	return err
}

// CornerFluxLine replaces the bend with a square corner patch joining
// two perpendicular straight runs. It is structurally supported but
// not part of the default device.
type CornerFluxLine struct {
	Label string
}

var _ assembly.Blueprint = CornerFluxLine{}

func (f CornerFluxLine) Name() string { return f.Label }

func (f CornerFluxLine) Build(b *assembly.Builder) error {
	pocket, err := b.Envelope(shape.Box{DX: fluxLineDimX, DY: fluxLineDimY, DZ: FilmDZ}, material.Vacuum)
	if err != nil {
		return err
	}
	if _, err := b.Sub(pocket, Pad{Label: f.Label + "_pad"},
		geom.Translate(geom.Vec3{X: fluxPadCenterX})); err != nil {
		return err
	}

	feedAt := geom.Translate(geom.Vec3{X: fluxChainStartX + fluxCornerRun/2})
	if _, err := b.Place(pocket, f.Label+"_feed", material.Niobium,
		shape.Box{DX: fluxCornerRun, DY: TraceWidth, DZ: FilmDZ}, feedAt); err != nil {
		return err
	}

	cornerX := fluxChainStartX + fluxCornerRun + CavityWidth/2
	corner, err := b.Place(pocket, f.Label+"_corner", material.Vacuum,
		shape.Box{DX: CavityWidth, DY: CavityWidth, DZ: FilmDZ},
		geom.Translate(geom.Vec3{X: cornerX}))
	if err != nil {
		return err
	}
	if _, err := b.Place(corner, f.Label+"_cornerPatch", material.Niobium,
		shape.Box{DX: TraceWidth, DY: TraceWidth, DZ: FilmDZ}, geom.IdentityTransform()); err != nil {
		return err
	}

	tailAt := geom.At(geom.RotateZ(-90),
		geom.Vec3{X: cornerX, Y: -CavityWidth/2 - fluxCornerDrop/2})
	_, err = b.Place(pocket, f.Label+"_tail", material.Niobium,
		shape.Box{DX: fluxCornerDrop, DY: TraceWidth, DZ: FilmDZ}, tailAt)
	return err
}
