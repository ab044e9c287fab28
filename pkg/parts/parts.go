// Package parts is the blueprint library for the four-qubit chip:
// launch pads, coplanar-waveguide segments, the transmission line,
// resonators and their assemblies, transmon and xmon qubits, and flux
// lines. Every part describes its volumes through the assembly
// builder, so the material-boundary catalog falls out of the tree
// rather than being maintained by hand. Conductor features are
// niobium; etched gaps and pockets are vacuum.
//
// All dimensions are in millimeters.
package parts

// Shared coplanar-waveguide cross section. The same trace and cavity
// widths run through the transmission line, resonators, flux lines,
// and chained segments.
const (
	CavityWidth = 0.024  // etched gap, edge to edge
	TraceWidth  = 0.010  // center conductor
	FilmDZ      = 0.0001 // metallization thickness
)

// Resonator assembly base plate. The device layer spaces assemblies
// off the transmission line using these.
const (
	ResonatorAssemblyBaseDimX = 1.2
	ResonatorAssemblyBaseDimY = 0.6
)

// BendRadius is the central radius shared by every curved segment on
// the chip.
const BendRadius = 0.045
