package parts

import (
	"fmt"

	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

// Straight is one straight coplanar-waveguide segment: the etched
// cavity with the center conductor inside. Place it at a fold frame
// (segment midpoint, entry heading) or anywhere a straight run is
// needed.
type Straight struct {
	Label  string
	Length float64
}

var _ assembly.Blueprint = Straight{}

func (s Straight) Name() string { return s.Label }

func (s Straight) Build(b *assembly.Builder) error {
	seg := shape.StraightSegment{Length: s.Length}
	cavity, err := b.Envelope(shape.StraightSolid(seg, CavityWidth, FilmDZ), material.Vacuum)
	if err != nil {
		return err
	}
	_, err = b.Place(cavity, s.Label+"_line", material.Niobium,
		shape.StraightSolid(seg, TraceWidth, FilmDZ), geom.IdentityTransform())
	return err
}

// Curve is one curved coplanar-waveguide segment. The tube sections
// share the fold convention: the blueprint expects to be placed at the
// arc-center frame with the entry heading.
type Curve struct {
	Label   string
	Radius  float64
	TurnDeg float64
}

var _ assembly.Blueprint = Curve{}

func (c Curve) Name() string { return c.Label }

func (c Curve) Build(b *assembly.Builder) error {
	seg := shape.CurveSegment{Radius: c.Radius, TurnDeg: c.TurnDeg}
	cavity, err := b.Envelope(shape.CurveSolid(seg, CavityWidth, FilmDZ), material.Vacuum)
	if err != nil {
		return err
	}
	_, err = b.Place(cavity, c.Label+"_line", material.Niobium,
		shape.CurveSolid(seg, TraceWidth, FilmDZ), geom.IdentityTransform())
	return err
}

// PlaceRun folds a segment chain from start and instantiates a
// Straight or Curve blueprint at every fold frame, as children of
// parent. Labels are prefix_seg0, prefix_seg1, ... in chain order. It
// returns the chain result so callers can continue from the exit
// anchor.
func PlaceRun(b *assembly.Builder, parent *assembly.Volume, prefix string, start shape.Anchor, segs []shape.Segment) (shape.ChainResult, error) {
	chain, err := shape.FoldChain(start, segs)
	if err != nil {
		return shape.ChainResult{}, err
	}
	for i, pl := range chain.Placements {
		label := fmt.Sprintf("%s_seg%d", prefix, i)
		var bp assembly.Blueprint
		switch seg := pl.Segment.(type) {
		case shape.StraightSegment:
			bp = Straight{Label: label, Length: seg.Length}
		case shape.CurveSegment:
			bp = Curve{Label: label, Radius: seg.Radius, TurnDeg: seg.TurnDeg}
		}
		if _, err := b.Sub(parent, bp, pl.Frame); err != nil {
			return shape.ChainResult{}, err
		}
	}
	return chain, nil
}
