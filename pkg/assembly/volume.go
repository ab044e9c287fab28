// Package assembly builds placed volume trees from blueprints.
//
// A Volume is one placed solid: a shape, a material, and a transform
// relative to its parent. A Blueprint describes how to build a group
// of volumes; instantiating it yields an Assembly, which pairs the
// finished subtree with a catalog of every volume whose material
// differs from its immediate parent. The catalog is what downstream
// boundary wiring consumes, so it is derived from the tree rather
// than declared by hand.
package assembly

import (
	"fmt"

	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

// Volume is a placed solid in the device tree.
type Volume struct {
	Name     string
	Shape    shape.Shape
	Material *material.Material
	Parent   *Volume
	// Placement positions the volume relative to its parent.
	Placement geom.Transform

	children []*Volume
}

// NewVolume creates a volume and links it under parent. A nil parent
// makes a root volume.
func NewVolume(name string, s shape.Shape, m *material.Material, parent *Volume, at geom.Transform) *Volume {
	v := &Volume{
		Name:      name,
		Shape:     s,
		Material:  m,
		Parent:    parent,
		Placement: at,
	}
	if parent != nil {
		parent.children = append(parent.children, v)
	}
	return v
}

// Children returns the direct children in placement order.
func (v *Volume) Children() []*Volume {
	return v.children
}

// Walk visits v and every descendant in depth-first placement order.
func (v *Volume) Walk(fn func(*Volume)) {
	fn(v)
	for _, c := range v.children {
		c.Walk(fn)
	}
}

// WorldTransform composes the placements from the root down to v.
func (v *Volume) WorldTransform() geom.Transform {
	if v.Parent == nil {
		return v.Placement
	}
	return v.Parent.WorldTransform().Compose(v.Placement)
}

// ParentBounds returns the volume's bounding box in its parent's frame.
func (v *Volume) ParentBounds() geom.AABB {
	return v.Shape.Bounds().Transformed(v.Placement)
}

func (v *Volume) String() string {
	mat := "<nil>"
	if v.Material != nil {
		mat = v.Material.Name
	}
	return fmt.Sprintf("%s [%s]", v.Name, mat)
}
