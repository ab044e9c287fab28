// Package device assembles the four-qubit chip. The Assembler drives
// the whole construction: world and substrate, the optional copper
// housing, and the ground plane with its nested transmission line,
// resonator assemblies, flux lines, and qubit elements. Every volume
// placement, boundary interface, lattice registration, and
// sensitive-region registration flows through sinks carried by an
// injected BuildContext, so sequential builds and independent
// assemblers never share ambient state.
//
// Boundary interfaces pair the substrate with each leaf volume whose
// material differs from its surroundings; the classification is a
// total lookup over material roles, never over display names.
package device

import (
	"errors"

	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/boundary"
)

var (
	// ErrDuplicateInterface reports a boundary name defined twice in
	// one generation. It indicates a skipped or incomplete teardown.
	ErrDuplicateInterface = errors.New("device: duplicate interface name")

	// ErrOverlap reports interpenetrating sibling volumes when the
	// placement store is configured to treat overlaps as fatal.
	ErrOverlap = errors.New("device: overlapping sibling volumes")
)

// Interface is one boundary between the substrate and a leaf volume,
// with the scattering property governing it.
type Interface struct {
	Name     string
	VolumeA  *assembly.Volume // always the substrate
	VolumeB  *assembly.Volume
	Property boundary.PropertyID
}

// BoundarySink receives interface definitions. Duplicate names are
// fatal, never silently replaced.
type BoundarySink interface {
	ClearAll()
	Define(name string, a, b *assembly.Volume, prop boundary.PropertyID) (*Interface, error)
}

// MillerOrientation is a crystal orientation in Miller indices.
type MillerOrientation struct {
	H, K, L int
}

// LatticeSink records crystal-orientation registrations. The device
// core passes them through without interpretation.
type LatticeSink interface {
	Clear()
	Register(v *assembly.Volume, o MillerOrientation)
}

// SensitiveHandler is invoked by the consumer for events in a
// sensitive region; the device core only wires it up.
type SensitiveHandler func(v *assembly.Volume)

// SensitiveSink records sensitive-region registrations. Registering a
// volume again replaces its handler, so rebuilds can re-register
// without accumulating stale entries.
type SensitiveSink interface {
	Register(v *assembly.Volume, h SensitiveHandler)
}
