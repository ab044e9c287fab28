package device

import (
	"fmt"

	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/boundary"
)

// BoundaryTable is the in-memory boundary sink. Interfaces keep their
// definition order; names are unique per generation.
type BoundaryTable struct {
	interfaces []*Interface
	byName     map[string]*Interface
}

var _ BoundarySink = (*BoundaryTable)(nil)

// NewBoundaryTable returns an empty table.
func NewBoundaryTable() *BoundaryTable {
	return &BoundaryTable{byName: make(map[string]*Interface)}
}

// ClearAll drops every interface of the current generation.
func (t *BoundaryTable) ClearAll() {
	t.interfaces = nil
	t.byName = make(map[string]*Interface)
}

// Define records a named interface between two volumes.
func (t *BoundaryTable) Define(name string, a, b *assembly.Volume, prop boundary.PropertyID) (*Interface, error) {
	if _, taken := t.byName[name]; taken {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateInterface, name)
	}
	iface := &Interface{Name: name, VolumeA: a, VolumeB: b, Property: prop}
	t.interfaces = append(t.interfaces, iface)
	t.byName[name] = iface
	return iface, nil
}

// Lookup returns the interface with the given name, or nil.
func (t *BoundaryTable) Lookup(name string) *Interface {
	return t.byName[name]
}

// Interfaces returns the interfaces in definition order.
func (t *BoundaryTable) Interfaces() []*Interface {
	out := make([]*Interface, len(t.interfaces))
	copy(out, t.interfaces)
	return out
}

// Names returns the interface names in definition order.
func (t *BoundaryTable) Names() []string {
	names := make([]string, len(t.interfaces))
	for i, iface := range t.interfaces {
		names[i] = iface.Name
	}
	return names
}

// Len returns the number of defined interfaces.
func (t *BoundaryTable) Len() int {
	return len(t.interfaces)
}

// LatticeEntry is one crystal-orientation registration.
type LatticeEntry struct {
	Volume      *assembly.Volume
	Orientation MillerOrientation
}

// LatticeTable is the in-memory lattice sink.
type LatticeTable struct {
	entries []LatticeEntry
}

var _ LatticeSink = (*LatticeTable)(nil)

// NewLatticeTable returns an empty table.
func NewLatticeTable() *LatticeTable {
	return &LatticeTable{}
}

// Clear drops every registration.
func (t *LatticeTable) Clear() {
	t.entries = nil
}

// Register records a crystal orientation for a volume.
func (t *LatticeTable) Register(v *assembly.Volume, o MillerOrientation) {
	t.entries = append(t.entries, LatticeEntry{Volume: v, Orientation: o})
}

// Entries returns the registrations in order.
func (t *LatticeTable) Entries() []LatticeEntry {
	out := make([]LatticeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// SensitiveRegion is one registered sensitive volume.
type SensitiveRegion struct {
	Volume  *assembly.Volume
	Handler SensitiveHandler
}

// SensitiveRegistry is the in-memory sensitive sink. Registrations
// survive teardown; rebuilding re-registers the substrate and replaces
// the entry rather than stacking a second one.
type SensitiveRegistry struct {
	regions []SensitiveRegion
}

var _ SensitiveSink = (*SensitiveRegistry)(nil)

// NewSensitiveRegistry returns an empty registry.
func NewSensitiveRegistry() *SensitiveRegistry {
	return &SensitiveRegistry{}
}

// Register records a sensitive region. A volume with the same name as
// an existing registration replaces it.
func (r *SensitiveRegistry) Register(v *assembly.Volume, h SensitiveHandler) {
	for i, region := range r.regions {
		if region.Volume.Name == v.Name {
			r.regions[i] = SensitiveRegion{Volume: v, Handler: h}
			return
		}
	}
	r.regions = append(r.regions, SensitiveRegion{Volume: v, Handler: h})
}

// Regions returns the registrations in order.
func (r *SensitiveRegistry) Regions() []SensitiveRegion {
	out := make([]SensitiveRegion, len(r.regions))
	copy(out, r.regions)
	return out
}
