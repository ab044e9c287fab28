package assembly

import "github.com/quartetsim/quartet/pkg/material"

// CatalogEntry names one volume that participates in a material
// boundary against its immediate parent. The role carries everything
// boundary classification needs; the name becomes part of the
// interface name.
type CatalogEntry struct {
	Role   material.Role
	Name   string
	Volume *Volume
}

// Assembly is an instantiated blueprint: the envelope subtree plus the
// derived catalog of material-boundary volumes, in placement order.
type Assembly struct {
	Name    string
	Root    *Volume
	Catalog []CatalogEntry
}

// deriveCatalog walks the subtree under root and collects every volume
// whose material differs from its immediate parent's. The root itself
// qualifies when it differs from the external parent it was placed
// into. Order is depth-first placement order, so two identical builds
// produce identical catalogs.
func deriveCatalog(root *Volume) []CatalogEntry {
	var entries []CatalogEntry
	root.Walk(func(v *Volume) {
		if v.Parent == nil || v.Material == nil || v.Parent.Material == nil {
			return
		}
		if v.Material.Name == v.Parent.Material.Name {
			return
		}
		entries = append(entries, CatalogEntry{
			Role:   v.Material.Role,
			Name:   v.Name,
			Volume: v,
		})
	})
	return entries
}
