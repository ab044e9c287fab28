package geom

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// AABBAround returns the box centered at the origin with the given full
// extents along each axis.
func AABBAround(dx, dy, dz float64) AABB {
	h := Vec3{dx / 2, dy / 2, dz / 2}
	return AABB{Min: h.Scale(-1), Max: h}
}

// Center returns the box center.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the full extents along each axis.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// IsEmpty reports whether the box has non-positive extent on any axis.
func (b AABB) IsEmpty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y || b.Max.Z <= b.Min.Z
}

// Union returns the smallest box containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec3{
			math.Min(b.Min.X, o.Min.X),
			math.Min(b.Min.Y, o.Min.Y),
			math.Min(b.Min.Z, o.Min.Z),
		},
		Max: Vec3{
			math.Max(b.Max.X, o.Max.X),
			math.Max(b.Max.Y, o.Max.Y),
			math.Max(b.Max.Z, o.Max.Z),
		},
	}
}

// Intersects reports whether b and o overlap with positive volume.
// Boxes that merely touch on a face or edge do not intersect.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y &&
		b.Min.Z < o.Max.Z && o.Min.Z < b.Max.Z
}

// Contains reports whether o lies entirely inside b (faces may touch).
func (b AABB) Contains(o AABB) bool {
	return b.Min.X <= o.Min.X && o.Max.X <= b.Max.X &&
		b.Min.Y <= o.Min.Y && o.Max.Y <= b.Max.Y &&
		b.Min.Z <= o.Min.Z && o.Max.Z <= b.Max.Z
}

// Transformed returns the axis-aligned box enclosing b after applying t.
// The eight corners are transformed and re-boxed, so the result grows
// under rotation.
func (b AABB) Transformed(t Transform) AABB {
	corners := [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
	out := AABB{Min: t.Apply(corners[0]), Max: t.Apply(corners[0])}
	for _, c := range corners[1:] {
		p := t.Apply(c)
		out.Min.X = math.Min(out.Min.X, p.X)
		out.Min.Y = math.Min(out.Min.Y, p.Y)
		out.Min.Z = math.Min(out.Min.Z, p.Z)
		out.Max.X = math.Max(out.Max.X, p.X)
		out.Max.Y = math.Max(out.Max.Y, p.Y)
		out.Max.Z = math.Max(out.Max.Z, p.Z)
	}
	return out
}
