package shape

import (
	"fmt"

	"github.com/quartetsim/quartet/pkg/geom"
)

// ---------------------------------------------------------------------------
// Chained segments
// ---------------------------------------------------------------------------

// Anchor is the running position and heading of a segment chain.
// The heading's local +X axis points along the path direction.
type Anchor struct {
	Position geom.Vec3
	Heading  geom.Rotation
}

// StartAnchor returns an anchor at pos with the path heading rotated
// headingDeg degrees about Z from the +X axis.
func StartAnchor(pos geom.Vec3, headingDeg float64) Anchor {
	return Anchor{Position: pos, Heading: geom.RotateZ(headingDeg)}
}

// Transform returns the anchor as a rigid placement.
func (a Anchor) Transform() geom.Transform {
	return geom.At(a.Heading, a.Position)
}

// Segment is one element of a chained path: a straight run or a
// circular turn. Segments describe the path centerline only; the
// conductor and gap cross-sections are applied when a segment is
// realized into a Shape.
type Segment interface {
	segment()

	// Validate checks the segment's dimensions.
	Validate() error
}

// StraightSegment is a straight run of the given centerline length.
type StraightSegment struct {
	Length float64 // mm
}

func (StraightSegment) segment() {}

func (s StraightSegment) Validate() error {
	if s.Length <= 0 {
		return fmt.Errorf("%w: straight segment length %g", ErrBadDimension, s.Length)
	}
	return nil
}

// CurveSegment is a circular turn with the given centerline radius.
// TurnDeg is the signed turn angle: positive turns left
// (counterclockwise about +Z), negative turns right.
type CurveSegment struct {
	Radius  float64 // centerline radius in mm
	TurnDeg float64 // signed turn angle in degrees, non-zero, |turn| <= 360
}

func (CurveSegment) segment() {}

func (c CurveSegment) Validate() error {
	if c.Radius <= 0 {
		return fmt.Errorf("%w: curve segment radius %g", ErrBadDimension, c.Radius)
	}
	if c.TurnDeg == 0 || c.TurnDeg < -360 || c.TurnDeg > 360 {
		return fmt.Errorf("%w: curve segment turn %g degrees", ErrBadAngle, c.TurnDeg)
	}
	return nil
}

// ArcAngles returns the Tubs start angle and span for the curve,
// expressed in the frame of the segment's entry heading. The entry
// point of a left turn sits at -90 degrees from the arc center, of a
// right turn at +90 degrees; the span is always counterclockwise.
func (c CurveSegment) ArcAngles() (startPhi, spanPhi float64) {
	if c.TurnDeg >= 0 {
		return -90, c.TurnDeg
	}
	return 90 + c.TurnDeg, -c.TurnDeg
}

// SegmentPlacement is one folded segment: the segment itself, its world
// placement frame, and the chain anchors at its two ends. For a
// straight the frame origin is the segment midpoint; for a curve it is
// the arc center. In both cases the frame rotation is the entry
// heading, so ArcAngles can be used directly for curve realization.
type SegmentPlacement struct {
	Segment Segment
	Frame   geom.Transform
	Entry   Anchor
	Exit    Anchor
}

// ChainResult is the output of FoldChain.
type ChainResult struct {
	Placements []SegmentPlacement
	End        Anchor
}

// FoldChain places each segment of a chain in order, starting from
// start. It is a left fold: every segment's placement is computed from
// the current anchor and its own geometry, and the anchor then advances
// by the segment's exit transform. The result is a pure function of the
// inputs; folding the same chain twice yields identical placements.
//
// An empty chain or an invalid segment returns an error before any
// placement is produced.
func FoldChain(start Anchor, segs []Segment) (ChainResult, error) {
	if len(segs) == 0 {
		return ChainResult{}, ErrEmptyChain
	}
	for i, seg := range segs {
		if err := seg.Validate(); err != nil {
			return ChainResult{}, fmt.Errorf("shape: segment %d: %w", i, err)
		}
	}

	result := ChainResult{Placements: make([]SegmentPlacement, 0, len(segs))}
	anchor := start
	for _, seg := range segs {
		frameLocal, exitLocal := advance(seg)

		entryT := anchor.Transform()
		placement := SegmentPlacement{
			Segment: seg,
			Frame:   entryT.Compose(frameLocal),
			Entry:   anchor,
			Exit: Anchor{
				Position: entryT.Apply(exitLocal.Translation),
				Heading:  anchor.Heading.Mul(exitLocal.Rotation),
			},
		}
		result.Placements = append(result.Placements, placement)
		anchor = placement.Exit
	}
	result.End = anchor
	return result, nil
}

// advance returns a segment's placement frame and exit transform in the
// entry anchor's local coordinates (+X forward, +Y left).
func advance(seg Segment) (frame, exit geom.Transform) {
	switch s := seg.(type) {
	case StraightSegment:
		frame = geom.Translate(geom.Vec3{X: s.Length / 2})
		exit = geom.Translate(geom.Vec3{X: s.Length})
		return frame, exit

	case CurveSegment:
		side := 1.0
		if s.TurnDeg < 0 {
			side = -1.0
		}
		center := geom.Vec3{Y: side * s.Radius}
		rot := geom.RotateZ(s.TurnDeg)
		// The entry point orbits the arc center by the turn angle.
		exitPos := center.Add(rot.Apply(geom.Vec3{Y: -side * s.Radius}))
		frame = geom.Translate(center)
		exit = geom.At(rot, exitPos)
		return frame, exit

	default:
		panic(fmt.Sprintf("shape: unknown segment type %T", seg))
	}
}

// StraightSolid realizes a straight segment as a Box with the given
// cross-section, oriented along the segment frame's +X axis.
func StraightSolid(s StraightSegment, width, height float64) Box {
	return Box{DX: s.Length, DY: width, DZ: height}
}

// CurveSolid realizes a curve segment as a Tubs section with the given
// cross-section, centered on the segment frame (the arc center).
func CurveSolid(c CurveSegment, width, height float64) Tubs {
	start, span := c.ArcAngles()
	return Tubs{
		RMin:     c.Radius - width/2,
		RMax:     c.Radius + width/2,
		DZ:       height,
		StartPhi: start,
		SpanPhi:  span,
	}
}
