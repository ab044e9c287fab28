package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/quartetsim/quartet/pkg/boundary"
	"github.com/quartetsim/quartet/pkg/device"
)

func buildDefault(t *testing.T) (*device.Assembler, *device.BuildContext) {
	t.Helper()
	bctx := device.NewBuildContext()
	asm, err := device.New(bctx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := asm.Build(device.DefaultConfig()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return asm, bctx
}

func TestPrintResultSummarizesBuild(t *testing.T) {
	asm, bctx := buildDefault(t)

	var buf bytes.Buffer
	printResult(&buf, asm.Result(), bctx.Registry)
	out := buf.String()

	for _, want := range []string{
		"built",
		"substrate",
		"conductor",
		boundary.SiNbInterface,
		boundary.SiVacuumInterface,
		boundary.SiCopperInterface,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintResultEmptyBuild(t *testing.T) {
	bctx := device.NewBuildContext()
	asm, err := device.New(bctx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var buf bytes.Buffer
	printResult(&buf, asm.Result(), bctx.Registry)
	if !strings.Contains(buf.String(), "uninitialized") {
		t.Errorf("expected uninitialized state, got:\n%s", buf.String())
	}
}

func TestWriteReport(t *testing.T) {
	asm, bctx := buildDefault(t)
	res := asm.Result()

	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := writeReport(path, res, bctx.Registry); err != nil {
		t.Fatalf("writeReport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var rep buildReport
	if err := yaml.Unmarshal(data, &rep); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if rep.State != "built" {
		t.Errorf("state = %q, want built", rep.State)
	}
	if rep.Generation != res.Generation {
		t.Errorf("generation = %q, want %q", rep.Generation, res.Generation)
	}
	if rep.Volumes != res.Volumes {
		t.Errorf("volumes = %d, want %d", rep.Volumes, res.Volumes)
	}
	for role, n := range res.ByRole {
		if rep.ByRole[role.String()] != n {
			t.Errorf("byRole[%s] = %d, want %d", role, rep.ByRole[role.String()], n)
		}
	}
	if len(rep.Interfaces) != len(res.Interfaces) {
		t.Fatalf("interfaces = %d, want %d", len(rep.Interfaces), len(res.Interfaces))
	}
	for _, in := range rep.Interfaces {
		if in.Name == "" || in.Volume == "" || in.Property == "" {
			t.Fatalf("incomplete interface entry: %+v", in)
		}
		if !strings.HasPrefix(in.Name, "border_siliconChip_") {
			t.Errorf("interface name %q should carry the border prefix", in.Name)
		}
	}
}

func TestWriteMeshes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshes.json")
	meshes := []MeshData{{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
		Volume:   "groundPlane",
		Role:     "conductor",
		Color:    "#E67E22",
	}}

	if err := writeMeshes(path, meshes); err != nil {
		t.Fatalf("writeMeshes: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []MeshData
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].Volume != "groundPlane" || len(got[0].Indices) != 3 {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestRoleColorsCoverDisplayRoles(t *testing.T) {
	for _, role := range displayRoles {
		if roleColors[role] == "" {
			t.Errorf("no color for role %s", role)
		}
	}
}
