// Package shape defines the solid descriptors the device is built from
// and the chained-segment fold used for meandering coplanar-waveguide
// runs. Shapes are plain value descriptors; realization into an actual
// geometry kernel solid happens elsewhere.
package shape

import (
	"fmt"
	"math"

	"github.com/quartetsim/quartet/pkg/geom"
)

// Shape is a solid descriptor. All shapes are centered on their local
// origin; placement happens through a geom.Transform at instantiation.
type Shape interface {
	shape() // marker method restricting implementations to this package

	// Bounds returns the local-frame axis-aligned bounding box.
	Bounds() geom.AABB

	// Validate checks the descriptor's dimensions.
	Validate() error
}

// ---------------------------------------------------------------------------
// Box
// ---------------------------------------------------------------------------

// Box is a rectangular solid with full extents DX, DY, DZ in mm.
type Box struct {
	DX, DY, DZ float64
}

func (Box) shape() {}

// Bounds returns the box's own extents.
func (b Box) Bounds() geom.AABB {
	return geom.AABBAround(b.DX, b.DY, b.DZ)
}

// Validate checks that all extents are positive.
func (b Box) Validate() error {
	if b.DX <= 0 || b.DY <= 0 || b.DZ <= 0 {
		return fmt.Errorf("%w: box %gx%gx%g", ErrBadDimension, b.DX, b.DY, b.DZ)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Tubs
// ---------------------------------------------------------------------------

// Tubs is an angular section of an annulus extruded along Z: inner and
// outer radius, full height DZ, and a counterclockwise angular span of
// SpanPhi degrees starting at StartPhi. Curved waveguide segments are
// Tubs sections centered on their arc center.
type Tubs struct {
	RMin, RMax float64 // radii in mm, 0 <= RMin < RMax
	DZ         float64 // full height in mm
	StartPhi   float64 // degrees, measured from +X toward +Y
	SpanPhi    float64 // degrees, (0, 360]
}

func (Tubs) shape() {}

// Bounds returns the tight axis-aligned box around the angular section.
// Besides the four corner points of the section, any axis crossing
// (0, 90, 180, 270 degrees) inside the span pushes the box out to RMax.
func (t Tubs) Bounds() geom.AABB {
	points := []geom.Vec3{
		arcPoint(t.RMin, t.StartPhi),
		arcPoint(t.RMin, t.StartPhi+t.SpanPhi),
		arcPoint(t.RMax, t.StartPhi),
		arcPoint(t.RMax, t.StartPhi+t.SpanPhi),
	}
	for axis := 0.0; axis < 360; axis += 90 {
		if angleInSpan(axis, t.StartPhi, t.SpanPhi) {
			points = append(points, arcPoint(t.RMax, axis))
		}
	}

	b := geom.AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	b.Min.Z = -t.DZ / 2
	b.Max.Z = t.DZ / 2
	return b
}

// Validate checks radii, height, and angular span.
func (t Tubs) Validate() error {
	if t.RMin < 0 || t.RMax <= t.RMin {
		return fmt.Errorf("%w: tubs radii rmin=%g rmax=%g", ErrBadDimension, t.RMin, t.RMax)
	}
	if t.DZ <= 0 {
		return fmt.Errorf("%w: tubs height %g", ErrBadDimension, t.DZ)
	}
	if t.SpanPhi <= 0 || t.SpanPhi > 360 {
		return fmt.Errorf("%w: tubs span %g degrees", ErrBadAngle, t.SpanPhi)
	}
	return nil
}

// arcPoint returns the XY point at radius r and angle deg.
func arcPoint(r, deg float64) geom.Vec3 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return geom.Vec3{X: r * c, Y: r * s}
}

// angleInSpan reports whether deg falls inside [start, start+span],
// with all comparisons normalized to [0, 360).
func angleInSpan(deg, start, span float64) bool {
	norm := func(a float64) float64 {
		a = math.Mod(a, 360)
		if a < 0 {
			a += 360
		}
		return a
	}
	d := norm(deg - start)
	return d >= 0 && d <= span
}

// ---------------------------------------------------------------------------
// Trd
// ---------------------------------------------------------------------------

// Trd is a trapezoidal solid: full X extent DX1 at the -Z face tapering
// to DX2 at the +Z face, likewise DY1 to DY2, with full height DZ.
// Launch pads use Trd to flare from the feed trace to the bond pad.
type Trd struct {
	DX1, DX2 float64
	DY1, DY2 float64
	DZ       float64
}

func (Trd) shape() {}

// Bounds returns the box enclosing the larger of each face pair.
func (t Trd) Bounds() geom.AABB {
	return geom.AABBAround(math.Max(t.DX1, t.DX2), math.Max(t.DY1, t.DY2), t.DZ)
}

// Validate checks that the solid has positive extent everywhere.
func (t Trd) Validate() error {
	if t.DX1 <= 0 || t.DX2 <= 0 || t.DY1 <= 0 || t.DY2 <= 0 || t.DZ <= 0 {
		return fmt.Errorf("%w: trd %gx%g/%gx%g height %g",
			ErrBadDimension, t.DX1, t.DY1, t.DX2, t.DY2, t.DZ)
	}
	return nil
}
