// Package tessellate walks a placed volume tree and produces triangle
// meshes using a geometry kernel. One mesh is produced per volume.
package tessellate

import (
	"fmt"

	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/kernel"
)

// VolumeMesh pairs a placed volume with its realized triangle mesh.
type VolumeMesh struct {
	Volume *assembly.Volume
	Mesh   *kernel.Mesh
}

// Tessellate realizes each volume in the subtree rooted at root and
// meshes it with the provided kernel. Meshes come back in depth-first
// placement order, root first. The tessellator is read-only and never
// mutates the tree.
func Tessellate(root *assembly.Volume, k kernel.Kernel) ([]VolumeMesh, error) {
	if root == nil {
		return nil, fmt.Errorf("tessellate: nil root volume")
	}

	var vols []*assembly.Volume
	root.Walk(func(v *assembly.Volume) {
		vols = append(vols, v)
	})

	meshes := make([]VolumeMesh, 0, len(vols))
	for _, v := range vols {
		solid, err := kernel.RealizeVolume(k, v)
		if err != nil {
			return nil, fmt.Errorf("tessellate: %w", err)
		}
		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: volume %q: %w", v.Name, err)
		}
		mesh.Volume = v.Name
		meshes = append(meshes, VolumeMesh{Volume: v, Mesh: mesh})
	}
	return meshes, nil
}
