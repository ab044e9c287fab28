package geom

// Transform is a rigid placement: a rotation followed by a translation.
type Transform struct {
	Rotation    Rotation
	Translation Vec3
}

// IdentityTransform returns the identity placement.
func IdentityTransform() Transform {
	return Transform{Rotation: Identity()}
}

// Translate returns a pure translation by v.
func Translate(v Vec3) Transform {
	return Transform{Rotation: Identity(), Translation: v}
}

// Rotated returns a pure rotation placement.
func Rotated(r Rotation) Transform {
	return Transform{Rotation: r}
}

// At returns a placement with the given rotation and translation.
func At(r Rotation, v Vec3) Transform {
	return Transform{Rotation: r, Translation: v}
}

// Apply returns t applied to a point p: rotate first, then translate.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Rotation.Apply(p).Add(t.Translation)
}

// Compose returns the transform equivalent to applying child first,
// then t. Used to flatten nested placements into world coordinates.
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Mul(child.Rotation),
		Translation: t.Rotation.Apply(child.Translation).Add(t.Translation),
	}
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	rt := t.Rotation.Transpose()
	return Transform{
		Rotation:    rt,
		Translation: rt.Apply(t.Translation).Scale(-1),
	}
}
