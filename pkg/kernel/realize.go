package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/shape"
)

// ErrUnsupportedShape reports a shape descriptor the realizer cannot
// turn into kernel solids.
var ErrUnsupportedShape = errors.New("kernel: unsupported shape")

// cylinderSegments is the tessellation hint passed to backends whose
// cylinders are faceted. SDF-based backends ignore it.
const cylinderSegments = 32

// Realize turns a shape descriptor into a kernel solid centered on the
// local origin, composing it from the kernel's primitive and boolean
// operations. Angular sections and tapers are carved with oversized
// half-space boxes, so any backend that can do box booleans can realize
// every shape.
func Realize(k Kernel, s shape.Shape) (Solid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s := s.(type) {
	case shape.Box:
		return k.Box(s.DX, s.DY, s.DZ), nil
	case shape.Tubs:
		return realizeTubs(k, s), nil
	case shape.Trd:
		return realizeTrd(k, s), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, s)
	}
}

// RealizeVolume realizes v's shape and moves it into world coordinates
// using the volume's composed placement.
func RealizeVolume(k Kernel, v *assembly.Volume) (Solid, error) {
	solid, err := Realize(k, v.Shape)
	if err != nil {
		return nil, fmt.Errorf("volume %q: %w", v.Name, err)
	}
	t := v.WorldTransform()
	if !t.Rotation.IsIdentity(1e-12) {
		x, y, z := t.Rotation.EulerAngles()
		solid = k.Rotate(solid, x, y, z)
	}
	if t.Translation != (geom.Vec3{}) {
		solid = k.Translate(solid, t.Translation.X, t.Translation.Y, t.Translation.Z)
	}
	return solid, nil
}

// realizeTubs builds an annular section from two cylinders and, for
// spans under a full turn, trims it to the sector with half-plane cuts.
func realizeTubs(k Kernel, t shape.Tubs) Solid {
	ring := k.Cylinder(t.DZ, t.RMax, cylinderSegments)
	if t.RMin > 0 {
		// The bore is made taller than the ring so the subtracted faces
		// never coincide with the ring's own end caps.
		bore := k.Cylinder(t.DZ*1.02, t.RMin, cylinderSegments)
		ring = k.Difference(ring, bore)
	}
	if t.SpanPhi >= 360 {
		return ring
	}

	// halfPlane(theta) keeps the angles [theta, theta+180].
	size := 4 * t.RMax
	halfPlane := func(theta float64) Solid {
		s := k.Box(size, size, 2*t.DZ)
		s = k.Translate(s, 0, size/2, 0)
		return k.Rotate(s, 0, 0, theta)
	}

	if t.SpanPhi <= 180 {
		ring = k.Intersection(ring, halfPlane(t.StartPhi))
		return k.Intersection(ring, halfPlane(t.StartPhi+t.SpanPhi-180))
	}
	keep := k.Union(halfPlane(t.StartPhi), halfPlane(t.StartPhi+t.SpanPhi-180))
	return k.Intersection(ring, keep)
}

// realizeTrd starts from the box enclosing the larger face pair and
// shaves each tapered side off with a tilted half-space box. The tilt
// angle follows from the face extents: a side running from DX1/2 at
// the -Z face to DX2/2 at +Z lies in the plane x = a + m*z with
// a = (DX1+DX2)/4 and m = (DX2-DX1)/(2*DZ).
func realizeTrd(k Kernel, t shape.Trd) Solid {
	maxDX := math.Max(t.DX1, t.DX2)
	maxDY := math.Max(t.DY1, t.DY2)
	solid := k.Box(maxDX, maxDY, t.DZ)
	size := 4 * math.Max(t.DZ, math.Max(maxDX, maxDY))

	// cut keeps the half-space on the inner side of a box face shifted
	// off-center by sign*size/2 along the given axis, tilted by deg.
	cutX := func(deg, shift float64, sign float64) Solid {
		s := k.Box(size, size, size)
		s = k.Translate(s, sign*size/2, 0, 0)
		s = k.Rotate(s, 0, deg, 0)
		return k.Translate(s, shift, 0, 0)
	}
	cutY := func(deg, shift float64, sign float64) Solid {
		s := k.Box(size, size, size)
		s = k.Translate(s, 0, sign*size/2, 0)
		s = k.Rotate(s, deg, 0, 0)
		return k.Translate(s, 0, shift, 0)
	}

	const toDeg = 180 / math.Pi
	if t.DX1 != t.DX2 {
		a := (t.DX1 + t.DX2) / 4
		tilt := math.Atan((t.DX2-t.DX1)/(2*t.DZ)) * toDeg
		solid = k.Intersection(solid, cutX(tilt, a, -1))
		solid = k.Intersection(solid, cutX(-tilt, -a, +1))
	}
	if t.DY1 != t.DY2 {
		a := (t.DY1 + t.DY2) / 4
		tilt := math.Atan((t.DY2-t.DY1)/(2*t.DZ)) * toDeg
		solid = k.Intersection(solid, cutY(-tilt, a, -1))
		solid = k.Intersection(solid, cutY(tilt, -a, +1))
	}
	return solid
}
