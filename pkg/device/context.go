package device

import (
	"github.com/quartetsim/quartet/pkg/boundary"
	"github.com/quartetsim/quartet/pkg/material"
)

// BuildContext bundles the sinks a build writes into. Callers that
// want to capture placements or interfaces somewhere else swap in
// their own sink implementations before constructing the Assembler.
type BuildContext struct {
	Materials  material.Catalog
	Registry   *boundary.Registry
	Classifier *boundary.Classifier
	Placements *PlacementStore
	Boundaries BoundarySink
	Lattice    LatticeSink
	Sensitive  SensitiveSink
}

// NewBuildContext returns a context wired to the builtin material
// catalog and fresh in-memory sinks.
func NewBuildContext() *BuildContext {
	return &BuildContext{
		Materials:  material.NewBuiltinCatalog(),
		Registry:   boundary.NewRegistry(),
		Placements: NewPlacementStore(),
		Boundaries: NewBoundaryTable(),
		Lattice:    NewLatticeTable(),
		Sensitive:  NewSensitiveRegistry(),
	}
}

// Reset tears down everything a previous build produced: placements,
// interfaces, and lattice registrations. Sensitive regions persist
// across rebuilds; Register replaces the stale entry on the next
// build.
func (ctx *BuildContext) Reset() {
	ctx.Placements.Reset()
	ctx.Boundaries.ClearAll()
	ctx.Lattice.Clear()
}
