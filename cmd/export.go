package cmd

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quartetsim/quartet/pkg/device"
	"github.com/quartetsim/quartet/pkg/kernel/sdfx"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/tessellate"
)

// roleColors assigns one render color per material role.
var roleColors = map[material.Role]string{
	material.RoleSubstrate:    "#4A90D9",
	material.RoleConductor:    "#E67E22",
	material.RoleVacuum:       "#1ABC9C",
	material.RoleHousingMetal: "#E74C3C",
	material.RoleUnknown:      "#9B59B6",
}

// MeshData is the JSON-serializable mesh format for viewers.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Volume   string    `json:"volume"`
	Role     string    `json:"role"`
	Color    string    `json:"color"`
}

// exportCmd assembles the device and exports triangle meshes.
var exportCmd = &cobra.Command{
	Use:   "export [output.json]",
	Short: "Assemble the device and export its triangle meshes as JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := "quartet-meshes.json"
		if len(args) == 1 {
			out = args[0]
		}

		cfg, _, err := loadConfig(cfgFile, scriptPath, cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		bctx := device.NewBuildContext()
		asm, err := device.New(bctx)
		if err != nil {
			logrus.Fatalf("assembler: %v", err)
		}
		world, err := asm.Build(cfg)
		if err != nil {
			logrus.Fatalf("build: %v", err)
		}

		// The world volume is the mounting vacuum around the device;
		// only its children are worth meshing.
		k := sdfx.New()
		var meshes []MeshData
		for _, child := range world.Children() {
			vms, err := tessellate.Tessellate(child, k)
			if err != nil {
				logrus.Fatalf("export: %v", err)
			}
			for _, vm := range vms {
				role := material.RoleUnknown
				if vm.Volume.Material != nil {
					role = vm.Volume.Material.Role
				}
				meshes = append(meshes, MeshData{
					Vertices: vm.Mesh.Vertices,
					Normals:  vm.Mesh.Normals,
					Indices:  vm.Mesh.Indices,
					Volume:   vm.Mesh.Volume,
					Role:     role.String(),
					Color:    roleColors[role],
				})
			}
		}

		if err := writeMeshes(out, meshes); err != nil {
			logrus.Fatalf("export: %v", err)
		}
		logrus.Infof("Exported %d meshes to %s", len(meshes), out)
	},
}

func writeMeshes(path string, meshes []MeshData) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(f).Encode(meshes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	addSelectionFlags(exportCmd)
	rootCmd.AddCommand(exportCmd)
}
