package assembly

import (
	"errors"
	"testing"

	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

// fakeBlueprint lets each test shape its own build sequence.
type fakeBlueprint struct {
	name  string
	build func(b *Builder) error
}

func (f fakeBlueprint) Name() string          { return f.name }
func (f fakeBlueprint) Build(b *Builder) error { return f.build(b) }

// recordingPlacer captures the placement stream.
type recordingPlacer struct {
	names    []string
	overlaps []bool
}

func (p *recordingPlacer) Place(s shape.Shape, at geom.Transform, parent *Volume, name string, m *material.Material, checkOverlap bool) (*Volume, error) {
	p.names = append(p.names, name)
	p.overlaps = append(p.overlaps, checkOverlap)
	return NewVolume(name, s, m, parent, at), nil
}

func nbParent(t *testing.T) *Volume {
	t.Helper()
	cat := material.NewBuiltinCatalog()
	nb, err := cat.Find(material.Niobium)
	if err != nil {
		t.Fatalf("Find(niobium): %v", err)
	}
	return NewVolume("groundPlane", shape.Box{DX: 10, DY: 10, DZ: 0.1}, nb, nil, geom.IdentityTransform())
}

func TestInstantiateCatalog(t *testing.T) {
	parent := nbParent(t)
	bp := fakeBlueprint{
		name: "pad1",
		build: func(b *Builder) error {
			env, err := b.Envelope(shape.Box{DX: 0.4, DY: 0.4, DZ: 0.1}, material.LiquidHelium)
			if err != nil {
				return err
			}
			// Conductor differs from the cavity, so it catalogs.
			if _, err := b.Place(env, "pad1_conductor", material.Niobium, shape.Box{DX: 0.3, DY: 0.3, DZ: 0.1}, geom.IdentityTransform()); err != nil {
				return err
			}
			// Same material as its parent, so it does not.
			_, err = b.Place(env, "pad1_trench", material.LiquidHelium, shape.Box{DX: 0.05, DY: 0.05, DZ: 0.1}, geom.IdentityTransform())
			return err
		},
	}

	asm, err := Instantiate(bp, Env{
		Parent:    parent,
		At:        geom.Translate(geom.Vec3{X: 1}),
		Materials: material.NewBuiltinCatalog(),
	})
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	if asm.Root.Name != "pad1" || asm.Root.Parent != parent {
		t.Errorf("root = %v under %v", asm.Root, asm.Root.Parent)
	}
	if len(asm.Catalog) != 2 {
		t.Fatalf("catalog size = %d, want 2: %v", len(asm.Catalog), asm.Catalog)
	}
	if asm.Catalog[0].Name != "pad1" || asm.Catalog[0].Role != material.RoleVacuum {
		t.Errorf("entry 0 = %+v, want the vacuum envelope", asm.Catalog[0])
	}
	if asm.Catalog[1].Name != "pad1_conductor" || asm.Catalog[1].Role != material.RoleConductor {
		t.Errorf("entry 1 = %+v, want the conductor", asm.Catalog[1])
	}
}

func TestInstantiateDuplicateName(t *testing.T) {
	bp := fakeBlueprint{
		name: "part",
		build: func(b *Builder) error {
			env, err := b.Envelope(shape.Box{DX: 1, DY: 1, DZ: 1}, material.LiquidHelium)
			if err != nil {
				return err
			}
			if _, err := b.Place(env, "leaf", material.Niobium, shape.Box{DX: 0.1, DY: 0.1, DZ: 0.1}, geom.IdentityTransform()); err != nil {
				return err
			}
			_, err = b.Place(env, "leaf", material.Niobium, shape.Box{DX: 0.1, DY: 0.1, DZ: 0.1}, geom.IdentityTransform())
			return err
		},
	}
	_, err := Instantiate(bp, Env{Parent: nbParent(t), Materials: material.NewBuiltinCatalog()})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("error = %v, want ErrDuplicateName", err)
	}
}

func TestInstantiateUnknownMaterial(t *testing.T) {
	bp := fakeBlueprint{
		name: "part",
		build: func(b *Builder) error {
			_, err := b.Envelope(shape.Box{DX: 1, DY: 1, DZ: 1}, "unobtainium")
			return err
		},
	}
	_, err := Instantiate(bp, Env{Parent: nbParent(t), Materials: material.NewBuiltinCatalog()})
	if !errors.Is(err, material.ErrUnknownMaterial) {
		t.Errorf("error = %v, want ErrUnknownMaterial", err)
	}
}

func TestInstantiateNoEnvelope(t *testing.T) {
	bp := fakeBlueprint{
		name:  "empty",
		build: func(b *Builder) error { return nil },
	}
	_, err := Instantiate(bp, Env{Parent: nbParent(t), Materials: material.NewBuiltinCatalog()})
	if !errors.Is(err, ErrNoEnvelope) {
		t.Errorf("error = %v, want ErrNoEnvelope", err)
	}
}

func TestInstantiateEnvelopeTwice(t *testing.T) {
	bp := fakeBlueprint{
		name: "part",
		build: func(b *Builder) error {
			if _, err := b.Envelope(shape.Box{DX: 1, DY: 1, DZ: 1}, material.LiquidHelium); err != nil {
				return err
			}
			_, err := b.Envelope(shape.Box{DX: 1, DY: 1, DZ: 1}, material.LiquidHelium)
			return err
		},
	}
	if _, err := Instantiate(bp, Env{Parent: nbParent(t), Materials: material.NewBuiltinCatalog()}); err == nil {
		t.Error("second envelope should fail")
	}
}

func TestInvalidShapeStopsBeforePlacer(t *testing.T) {
	placer := &recordingPlacer{}
	bp := fakeBlueprint{
		name: "part",
		build: func(b *Builder) error {
			_, err := b.Envelope(shape.Box{DX: -1, DY: 1, DZ: 1}, material.LiquidHelium)
			return err
		},
	}
	_, err := Instantiate(bp, Env{Parent: nbParent(t), Materials: material.NewBuiltinCatalog(), Placer: placer})
	if !errors.Is(err, shape.ErrBadDimension) {
		t.Fatalf("error = %v, want ErrBadDimension", err)
	}
	if len(placer.names) != 0 {
		t.Errorf("placer saw %v before validation failed", placer.names)
	}
}

func TestPlacerReceivesEveryVolume(t *testing.T) {
	placer := &recordingPlacer{}
	bp := fakeBlueprint{
		name: "part",
		build: func(b *Builder) error {
			env, err := b.Envelope(shape.Box{DX: 1, DY: 1, DZ: 1}, material.LiquidHelium)
			if err != nil {
				return err
			}
			_, err = b.Place(env, "leaf", material.Niobium, shape.Box{DX: 0.1, DY: 0.1, DZ: 0.1}, geom.IdentityTransform())
			return err
		},
	}
	_, err := Instantiate(bp, Env{
		Parent:        nbParent(t),
		Materials:     material.NewBuiltinCatalog(),
		Placer:        placer,
		CheckOverlaps: true,
	})
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if len(placer.names) != 2 || placer.names[0] != "part" || placer.names[1] != "leaf" {
		t.Errorf("placement order = %v", placer.names)
	}
	for i, flag := range placer.overlaps {
		if !flag {
			t.Errorf("placement %d lost the overlap-check request", i)
		}
	}
}

func TestWorldTransformComposes(t *testing.T) {
	cat := material.NewBuiltinCatalog()
	si, _ := cat.Find(material.Silicon)
	root := NewVolume("root", shape.Box{DX: 10, DY: 10, DZ: 10}, si, nil, geom.Translate(geom.Vec3{X: 1}))
	mid := NewVolume("mid", shape.Box{DX: 5, DY: 5, DZ: 5}, si, root, geom.Translate(geom.Vec3{Y: 2}))
	leaf := NewVolume("leaf", shape.Box{DX: 1, DY: 1, DZ: 1}, si, mid, geom.Translate(geom.Vec3{Z: 3}))

	got := leaf.WorldTransform().Translation
	want := geom.Vec3{X: 1, Y: 2, Z: 3}
	if !got.NearEqual(want, 1e-12) {
		t.Errorf("world translation = %v, want %v", got, want)
	}
}
