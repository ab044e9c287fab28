// Package material defines the closed material-role taxonomy and the
// material catalog the device is built against. Roles, not display
// names, drive boundary-interface classification: every volume is
// tagged with a Role at creation time, so classification never has to
// infer anything from a free-text name.
package material

import (
	"errors"
	"fmt"
)

// Role is the closed set of material roles appearing in the device.
// The zero value RoleUnknown is deliberately not a valid role; volumes
// created without an explicit role fail classification.
type Role int

const (
	RoleUnknown      Role = iota // zero value, never classifiable
	RoleVacuum                   // etched gaps, pockets, the world volume
	RoleConductor                // superconducting film (niobium)
	RoleSubstrate                // the silicon chip
	RoleHousingMetal             // machined copper housing
)

func (r Role) String() string {
	switch r {
	case RoleVacuum:
		return "vacuum"
	case RoleConductor:
		return "conductor"
	case RoleSubstrate:
		return "substrate"
	case RoleHousingMetal:
		return "housing-metal"
	default:
		return "unknown"
	}
}

// Material is one catalog entry.
type Material struct {
	Name    string
	Role    Role
	Density float64 // g/cm3, advisory
}

// Catalog resolves material names to handles. Find fails with
// ErrUnknownMaterial when the name is absent; the device build treats
// that as fatal at the materials-definition step.
type Catalog interface {
	Find(name string) (*Material, error)
}

// ErrUnknownMaterial is returned by Catalog.Find for an absent name.
var ErrUnknownMaterial = errors.New("material: unknown material")

// Names of the standard catalog entries.
const (
	Vacuum       = "vacuum"
	LiquidHelium = "liquid_helium"
	Silicon      = "silicon"
	Niobium      = "niobium"
	Copper       = "copper"
	Aluminum     = "aluminum"
	Germanium    = "germanium"
	Tungsten     = "tungsten"
)

// BuiltinCatalog is the in-process default catalog.
type BuiltinCatalog struct {
	byName map[string]*Material
}

// NewBuiltinCatalog returns a catalog preloaded with the standard
// device materials.
func NewBuiltinCatalog() *BuiltinCatalog {
	c := &BuiltinCatalog{byName: make(map[string]*Material)}
	for _, m := range []Material{
		{Name: Vacuum, Role: RoleVacuum, Density: 1e-25},
		{Name: LiquidHelium, Role: RoleVacuum, Density: 0.125},
		{Name: Silicon, Role: RoleSubstrate, Density: 2.33},
		{Name: Niobium, Role: RoleConductor, Density: 8.57},
		{Name: Copper, Role: RoleHousingMetal, Density: 8.96},
		{Name: Aluminum, Role: RoleConductor, Density: 2.70},
		{Name: Germanium, Role: RoleSubstrate, Density: 5.32},
		{Name: Tungsten, Role: RoleConductor, Density: 19.3},
	} {
		entry := m
		c.byName[m.Name] = &entry
	}
	return c
}

// Find returns the material with the given name.
func (c *BuiltinCatalog) Find(name string) (*Material, error) {
	m, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

// Add inserts or replaces a catalog entry.
func (c *BuiltinCatalog) Add(m Material) {
	entry := m
	c.byName[m.Name] = &entry
}
