package parts

import (
	"fmt"

	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

// Meander layout: three straight arms joined by alternating half-turn
// bends, then a shorting bar to ground at the open end. The envelope
// is the etched pocket holding the whole meander.
const (
	resonatorArmLength  = 0.30
	resonatorShortBarDY = 0.045
	resonatorDimX       = 0.44
	resonatorDimY       = 0.30
)

// Resonator is a quarter-wave meander resonator.
type Resonator struct {
	Label string
}

var _ assembly.Blueprint = Resonator{}

func (r Resonator) Name() string { return r.Label }

func (r Resonator) Build(b *assembly.Builder) error {
	cavity, err := b.Envelope(shape.Box{DX: resonatorDimX, DY: resonatorDimY, DZ: FilmDZ}, material.Vacuum)
	if err != nil {
		return err
	}

	start := shape.StartAnchor(geom.Vec3{X: -resonatorArmLength / 2, Y: -2 * BendRadius}, 0)
	segs := []shape.Segment{
		shape.StraightSegment{Length: resonatorArmLength},
		shape.CurveSegment{Radius: BendRadius, TurnDeg: 180},
		shape.StraightSegment{Length: resonatorArmLength},
		shape.CurveSegment{Radius: BendRadius, TurnDeg: -180},
		shape.StraightSegment{Length: resonatorArmLength},
	}
	chain, err := shape.FoldChain(start, segs)
	if err != nil {
		return err
	}

	// The envelope is the shared pocket, so only the conductor trace
	// is realized per segment.
	for i, pl := range chain.Placements {
		var s shape.Shape
		switch seg := pl.Segment.(type) {
		case shape.StraightSegment:
			s = shape.StraightSolid(seg, TraceWidth, FilmDZ)
		case shape.CurveSegment:
			s = shape.CurveSolid(seg, TraceWidth, FilmDZ)
		}
		name := fmt.Sprintf("%s_seg%d", r.Label, i)
		if _, err := b.Place(cavity, name, material.Niobium, s, pl.Frame); err != nil {
			return err
		}
	}

	barAt := geom.At(chain.End.Heading,
		chain.End.Position.Add(chain.End.Heading.Apply(geom.Vec3{X: TraceWidth / 2})))
	_, err = b.Place(cavity, r.Label+"_short", material.Niobium,
		shape.Box{DX: TraceWidth, DY: resonatorShortBarDY, DZ: FilmDZ}, barAt)
	return err
}

// ResonatorAssembly is the repeated unit hanging off the transmission
// line: a niobium base plate carrying a meander resonator and the
// qubit pocket with its island.
type ResonatorAssembly struct {
	Label string
}

var _ assembly.Blueprint = ResonatorAssembly{}

func (a ResonatorAssembly) Name() string { return a.Label }

func (a ResonatorAssembly) Build(b *assembly.Builder) error {
	base, err := b.Envelope(shape.Box{
		DX: ResonatorAssemblyBaseDimX,
		DY: ResonatorAssemblyBaseDimY,
		DZ: FilmDZ,
	}, material.Niobium)
	if err != nil {
		return err
	}

	if _, err := b.Sub(base, Resonator{Label: a.Label + "_resonator"},
		geom.Translate(geom.Vec3{X: -0.3, Y: 0.12})); err != nil {
		return err
	}

	pocket, err := b.Place(base, a.Label+"_pocket", material.Vacuum,
		shape.Box{DX: 0.3, DY: 0.3, DZ: FilmDZ}, geom.Translate(geom.Vec3{X: 0.35}))
	if err != nil {
		return err
	}
	_, err = b.Place(pocket, a.Label+"_island", material.Niobium,
		shape.Box{DX: 0.2, DY: 0.2, DZ: FilmDZ}, geom.IdentityTransform())
	return err
}
