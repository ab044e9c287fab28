package parts

import (
	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

// Transmon is a single-island transmon qubit: the etched pocket, the
// shunt-capacitor island, the junction lead, and the readout coupler.
// The lead touches the island; the gap between lead and coupler is the
// junction.
type Transmon struct {
	Label string
}

var _ assembly.Blueprint = Transmon{}

func (t Transmon) Name() string { return t.Label }

func (t Transmon) Build(b *assembly.Builder) error {
	pocket, err := b.Envelope(shape.Box{DX: 0.5, DY: 0.6, DZ: FilmDZ}, material.Vacuum)
	if err != nil {
		return err
	}
	if _, err := b.Place(pocket, t.Label+"_island", material.Niobium,
		shape.Box{DX: 0.35, DY: 0.25, DZ: FilmDZ}, geom.Translate(geom.Vec3{Y: 0.1})); err != nil {
		return err
	}
	if _, err := b.Place(pocket, t.Label+"_lead", material.Niobium,
		shape.Box{DX: 0.02, DY: 0.1, DZ: FilmDZ}, geom.Translate(geom.Vec3{Y: -0.075})); err != nil {
		return err
	}
	_, err = b.Place(pocket, t.Label+"_coupler", material.Niobium,
		shape.Box{DX: 0.1, DY: 0.05, DZ: FilmDZ}, geom.Translate(geom.Vec3{Y: -0.2}))
	return err
}

// Xmon is a cross-shaped qubit: the etched pocket holding a center
// square and four arms meeting it face to face.
type Xmon struct {
	Label string
}

var _ assembly.Blueprint = Xmon{}

func (x Xmon) Name() string { return x.Label }

func (x Xmon) Build(b *assembly.Builder) error {
	pocket, err := b.Envelope(shape.Box{DX: 0.6, DY: 0.6, DZ: FilmDZ}, material.Vacuum)
	if err != nil {
		return err
	}
	if _, err := b.Place(pocket, x.Label+"_center", material.Niobium,
		shape.Box{DX: 0.1, DY: 0.1, DZ: FilmDZ}, geom.IdentityTransform()); err != nil {
		return err
	}

	arms := []struct {
		name string
		box  shape.Box
		at   geom.Vec3
	}{
		{x.Label + "_armWest", shape.Box{DX: 0.22, DY: 0.08, DZ: FilmDZ}, geom.Vec3{X: -0.16}},
		{x.Label + "_armEast", shape.Box{DX: 0.22, DY: 0.08, DZ: FilmDZ}, geom.Vec3{X: 0.16}},
		{x.Label + "_armNorth", shape.Box{DX: 0.08, DY: 0.22, DZ: FilmDZ}, geom.Vec3{Y: 0.16}},
		{x.Label + "_armSouth", shape.Box{DX: 0.08, DY: 0.22, DZ: FilmDZ}, geom.Vec3{Y: -0.16}},
	}
	for _, arm := range arms {
		if _, err := b.Place(pocket, arm.name, material.Niobium, arm.box, geom.Translate(arm.at)); err != nil {
			return err
		}
	}
	return nil
}
