package assembly

import (
	"errors"
	"fmt"

	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

var (
	// ErrDuplicateName reports two volumes sharing a name within one
	// assembly.
	ErrDuplicateName = errors.New("assembly: duplicate volume name")

	// ErrNoEnvelope reports a blueprint that finished without placing
	// its envelope volume.
	ErrNoEnvelope = errors.New("assembly: blueprint placed no envelope")
)

// Blueprint is a buildable recipe of shapes, materials, and relative
// placements.
type Blueprint interface {
	// Name labels the instance; it becomes the envelope volume's name
	// and must be unique within the device.
	Name() string

	// Build places the blueprint's volumes through the builder.
	Build(b *Builder) error
}

// Placer creates placed volumes. The device layer injects a recording
// placer; the zero Env falls back to plain tree placement.
// Implementations must link the returned volume under parent (NewVolume
// does this).
type Placer interface {
	Place(s shape.Shape, at geom.Transform, parent *Volume, name string, m *material.Material, checkOverlap bool) (*Volume, error)
}

// Env is everything an instantiation needs from its surroundings.
type Env struct {
	// Parent receives the envelope volume. May be nil for a detached
	// assembly.
	Parent *Volume
	// At places the envelope relative to Parent.
	At geom.Transform
	// Materials resolves material names to definitions.
	Materials material.Catalog
	// Placer creates the volumes. Nil means plain tree placement.
	Placer Placer
	// CheckOverlaps is forwarded to the placer for every volume of
	// this assembly.
	CheckOverlaps bool
}

// Instantiate builds bp in the given environment and derives its
// catalog. No volume is created once an error occurs.
func Instantiate(bp Blueprint, env Env) (*Assembly, error) {
	b := &Builder{
		name:  bp.Name(),
		env:   env,
		names: make(map[string]struct{}),
	}
	if b.env.Placer == nil {
		b.env.Placer = directPlacer{}
	}
	if err := bp.Build(b); err != nil {
		return nil, fmt.Errorf("assembly %q: %w", bp.Name(), err)
	}
	if b.root == nil {
		return nil, fmt.Errorf("assembly %q: %w", bp.Name(), ErrNoEnvelope)
	}
	return &Assembly{
		Name:    bp.Name(),
		Root:    b.root,
		Catalog: deriveCatalog(b.root),
	}, nil
}

// Builder accumulates one assembly's volume tree.
type Builder struct {
	name  string
	env   Env
	root  *Volume
	names map[string]struct{}
}

// Root returns the envelope volume, or nil before Envelope is called.
func (b *Builder) Root() *Volume {
	return b.root
}

// Envelope places the blueprint's outer volume into the environment's
// parent at the external placement. It must be called exactly once,
// before any Place call.
func (b *Builder) Envelope(s shape.Shape, matName string) (*Volume, error) {
	if b.root != nil {
		return nil, fmt.Errorf("assembly: envelope for %q already placed", b.name)
	}
	v, err := b.place(s, b.env.At, b.env.Parent, b.name, matName)
	if err != nil {
		return nil, err
	}
	b.root = v
	return v, nil
}

// Place puts a named child volume under parent. Shape validation runs
// before the placer sees anything, and names are unique within the
// assembly.
func (b *Builder) Place(parent *Volume, name, matName string, s shape.Shape, at geom.Transform) (*Volume, error) {
	if parent == nil {
		return nil, fmt.Errorf("assembly: %q placed with nil parent", name)
	}
	return b.place(s, at, parent, name, matName)
}

// Sub builds a nested blueprint under parent, sharing this assembly's
// name set, placer, and overlap policy. The nested envelope and its
// descendants become part of the enclosing assembly's tree and
// catalog.
func (b *Builder) Sub(parent *Volume, bp Blueprint, at geom.Transform) (*Volume, error) {
	if parent == nil {
		return nil, fmt.Errorf("assembly: sub-assembly %q placed with nil parent", bp.Name())
	}
	env := b.env
	env.Parent = parent
	env.At = at
	sub := &Builder{name: bp.Name(), env: env, names: b.names}
	if err := bp.Build(sub); err != nil {
		return nil, fmt.Errorf("sub-assembly %q: %w", bp.Name(), err)
	}
	if sub.root == nil {
		return nil, fmt.Errorf("sub-assembly %q: %w", bp.Name(), ErrNoEnvelope)
	}
	return sub.root, nil
}

func (b *Builder) place(s shape.Shape, at geom.Transform, parent *Volume, name, matName string) (*Volume, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("volume %q: %w", name, err)
	}
	if _, taken := b.names[name]; taken {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	m, err := b.env.Materials.Find(matName)
	if err != nil {
		return nil, fmt.Errorf("volume %q: %w", name, err)
	}
	v, err := b.env.Placer.Place(s, at, parent, name, m, b.env.CheckOverlaps)
	if err != nil {
		return nil, err
	}
	b.names[name] = struct{}{}
	return v, nil
}

// directPlacer is the fallback used when no placer is injected.
type directPlacer struct{}

func (directPlacer) Place(s shape.Shape, at geom.Transform, parent *Volume, name string, m *material.Material, _ bool) (*Volume, error) {
	return NewVolume(name, s, m, parent, at), nil
}

var _ Placer = directPlacer{}
