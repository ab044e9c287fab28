package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/boundary"
	"github.com/quartetsim/quartet/pkg/material"
)

func newAssembler(t *testing.T) (*Assembler, *BuildContext) {
	t.Helper()
	ctx := NewBuildContext()
	a, err := New(ctx)
	require.NoError(t, err)
	return a, ctx
}

func buildNames(t *testing.T, cfg Config) []string {
	t.Helper()
	a, _ := newAssembler(t)
	_, err := a.Build(cfg)
	require.NoError(t, err)
	return a.InterfaceNames()
}

// subtract returns the entries of a that are not in b, keeping a's
// order.
func subtract(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, s := range b {
		in[s] = true
	}
	var out []string
	for _, s := range a {
		if !in[s] {
			out = append(out, s)
		}
	}
	return out
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func TestDefaultBuildFullDevice(t *testing.T) {
	a, ctx := newAssembler(t)
	world, err := a.Build(DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, world)
	assert.Equal(t, Built, a.State())

	res := a.Result()
	assert.Equal(t, 152, res.Volumes)
	assert.Len(t, res.Interfaces, 135)
	assert.Equal(t, 135, ctx.Boundaries.(*BoundaryTable).Len())

	for _, iface := range res.Interfaces {
		assert.Same(t, a.Substrate(), iface.VolumeA, iface.Name)
		assert.True(t, strings.HasPrefix(iface.Name, "border_siliconChip_"), iface.Name)
		assert.NotZero(t, iface.Property, iface.Name)
	}
}

func TestGroundPlaneOnlyScenario(t *testing.T) {
	a, _ := newAssembler(t)
	_, err := a.Build(Config{UseGroundPlane: true})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"border_siliconChip_world", "border_siliconChip_groundPlane"},
		a.InterfaceNames())

	res := a.Result()
	assert.Equal(t, 3, res.Volumes)
	assert.Equal(t, 1, res.ByRole[material.RoleSubstrate])
	assert.Equal(t, 1, res.ByRole[material.RoleConductor])
	assert.Equal(t, 1, res.ByRole[material.RoleVacuum])
	assert.Zero(t, res.ByRole[material.RoleHousingMetal])
}

func TestAllTogglesOffScenario(t *testing.T) {
	a, _ := newAssembler(t)
	_, err := a.Build(Config{})
	require.NoError(t, err)

	assert.Equal(t, []string{"border_siliconChip_world"}, a.InterfaceNames())
	assert.Equal(t, 2, a.Result().Volumes)
}

func TestNestedTogglesInertWithoutGroundPlane(t *testing.T) {
	noGP := Config{
		UseTransmissionLine:  true,
		UseResonatorAssembly: true,
		UseFluxLines:         true,
		UseQubitElements:     true,
		ResonatorCount:       6,
	}
	assert.Equal(t, buildNames(t, Config{}), buildNames(t, noGP))
}

func TestIdempotentRebuild(t *testing.T) {
	a, ctx := newAssembler(t)
	cfg := DefaultConfig()

	_, err := a.Build(cfg)
	require.NoError(t, err)
	first := a.InterfaceNames()
	gen := a.Generation()

	_, err = a.Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, first, a.InterfaceNames())
	assert.NotEqual(t, gen, a.Generation())
	assert.Equal(t, len(first), ctx.Boundaries.(*BoundaryTable).Len())
	assert.Equal(t, 152, ctx.Placements.Len())
}

func TestToggleIsolation(t *testing.T) {
	cases := []struct {
		name     string
		base     Config
		with     Config
		added    int
		prefixes []string
	}{
		{
			name:     "housing",
			base:     Config{},
			with:     Config{UseQubitHousing: true},
			added:    1,
			prefixes: []string{"border_siliconChip_qubitHousing"},
		},
		{
			name:     "transmissionLine",
			base:     Config{UseGroundPlane: true},
			with:     Config{UseGroundPlane: true, UseTransmissionLine: true},
			added:    6,
			prefixes: []string{"border_siliconChip_transmissionLine"},
		},
		{
			name:     "resonatorAssemblies",
			base:     Config{UseGroundPlane: true},
			with:     Config{UseGroundPlane: true, UseResonatorAssembly: true, ResonatorCount: 6},
			added:    54,
			prefixes: []string{"border_siliconChip_resonatorAssembly"},
		},
		{
			name:  "fluxLines",
			base:  Config{UseGroundPlane: true},
			with:  Config{UseGroundPlane: true, UseFluxLines: true},
			added: 12,
			prefixes: []string{
				"border_siliconChip_topFluxLine",
				"border_siliconChip_bottomFluxLine",
			},
		},
		{
			name:  "qubitElements",
			base:  Config{UseGroundPlane: true},
			with:  Config{UseGroundPlane: true, UseQubitElements: true},
			added: 60,
			prefixes: []string{
				"border_siliconChip_topTransmon",
				"border_siliconChip_bottomTransmon",
				"border_siliconChip_topXmon",
				"border_siliconChip_bottomXmon",
				"border_siliconChip_topResonator",
				"border_siliconChip_bottomResonator",
				"border_siliconChip_chainSegment",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := buildNames(t, tc.base)
			with := buildNames(t, tc.with)

			added := subtract(with, base)
			assert.Len(t, added, tc.added)
			assert.Empty(t, subtract(base, with), "base interfaces must survive the toggle")
			for _, name := range added {
				assert.True(t, hasAnyPrefix(name, tc.prefixes), name)
			}
		})
	}
}

func TestDeterministicAcrossAssemblers(t *testing.T) {
	a1, ctx1 := newAssembler(t)
	a2, ctx2 := newAssembler(t)

	_, err := a1.Build(DefaultConfig())
	require.NoError(t, err)
	_, err = a2.Build(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, a1.InterfaceNames(), a2.InterfaceNames())

	volumeNames := func(ctx *BuildContext) []string {
		vols := ctx.Placements.Volumes()
		out := make([]string, len(vols))
		for i, v := range vols {
			out[i] = v.Name
		}
		return out
	}
	assert.Equal(t, volumeNames(ctx1), volumeNames(ctx2))
}

func TestUnclassifiableRoleAbortsBuild(t *testing.T) {
	ctx := NewBuildContext()
	set, err := boundary.DefineStandardProperties(ctx.Registry)
	require.NoError(t, err)

	// No rule for conductors, so the ground plane leaf must abort the
	// build.
	c := boundary.NewClassifier()
	c.Bind(material.RoleVacuum, set.SiVacuum)
	c.Bind(material.RoleSubstrate, 0)
	ctx.Classifier = c

	a, err := New(ctx)
	require.NoError(t, err)

	_, err = a.Build(Config{UseGroundPlane: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, boundary.ErrUnclassifiableRole)
	assert.Contains(t, err.Error(), "groundPlane")
	assert.Equal(t, Uninitialized, a.State())
}

func TestFatalOverlapsAbortsPackedLayout(t *testing.T) {
	a, ctx := newAssembler(t)
	ctx.Placements.FatalOverlaps(true)

	// The full layout packs the standalone resonators against the
	// assembly bases, so the strict policy must refuse it.
	_, err := a.Build(DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverlap)
	assert.Equal(t, Uninitialized, a.State())
}

func TestFatalOverlapsAcceptsStackedFaces(t *testing.T) {
	a, ctx := newAssembler(t)
	ctx.Placements.FatalOverlaps(true)

	// Chip, ground plane and feedline only meet at faces; face contact
	// is not an overlap.
	_, err := a.Build(Config{
		UseQubitHousing:     true,
		UseGroundPlane:      true,
		UseTransmissionLine: true,
	})
	require.NoError(t, err)
}

func TestInvalidConfigKeepsPreviousBuild(t *testing.T) {
	a, _ := newAssembler(t)
	_, err := a.Build(DefaultConfig())
	require.NoError(t, err)
	gen := a.Generation()

	_, err = a.Build(Config{ResonatorCount: -1})
	assert.ErrorIs(t, err, ErrBadConfig)
	assert.Equal(t, Built, a.State())
	assert.Equal(t, gen, a.Generation())
	assert.Len(t, a.InterfaceNames(), 135)

	_, err = a.Build(Config{FluxLineVariant: "zigzag"})
	assert.ErrorIs(t, err, ErrBadConfig)
}

func TestResonatorCountScaling(t *testing.T) {
	for _, tc := range []struct{ count, want int }{
		{0, 2},
		{1, 11},
		{3, 29},
		{6, 56},
	} {
		cfg := Config{UseGroundPlane: true, UseResonatorAssembly: true, ResonatorCount: tc.count}
		assert.Len(t, buildNames(t, cfg), tc.want, "count %d", tc.count)
	}
}

func TestFluxVariantScaling(t *testing.T) {
	for _, tc := range []struct {
		variant string
		want    int
	}{
		{FluxVariantCurve, 14},
		{FluxVariantStraight, 10},
		{FluxVariantCorner, 14},
	} {
		cfg := Config{UseGroundPlane: true, UseFluxLines: true, FluxLineVariant: tc.variant}
		assert.Len(t, buildNames(t, cfg), tc.want, tc.variant)
	}
}

func TestSensitiveRegionSurvivesRebuild(t *testing.T) {
	a, ctx := newAssembler(t)
	var hits int
	a.SetSensorHandler(func(v *assembly.Volume) { hits++ })

	_, err := a.Build(DefaultConfig())
	require.NoError(t, err)
	_, err = a.Build(DefaultConfig())
	require.NoError(t, err)

	regions := ctx.Sensitive.(*SensitiveRegistry).Regions()
	require.Len(t, regions, 1)
	assert.Same(t, a.Substrate(), regions[0].Volume)

	require.NotNil(t, regions[0].Handler)
	regions[0].Handler(regions[0].Volume)
	assert.Equal(t, 1, hits)
}

func TestLatticeRegistrationPerBuild(t *testing.T) {
	a, ctx := newAssembler(t)
	_, err := a.Build(Config{})
	require.NoError(t, err)
	_, err = a.Build(Config{})
	require.NoError(t, err)

	entries := ctx.Lattice.(*LatticeTable).Entries()
	require.Len(t, entries, 1)
	assert.Same(t, a.Substrate(), entries[0].Volume)
	assert.Equal(t, MillerOrientation{H: 1}, entries[0].Orientation)
}

func TestSharedRegistryAcrossAssemblers(t *testing.T) {
	ctx1 := NewBuildContext()
	a1, err := New(ctx1)
	require.NoError(t, err)

	ctx2 := NewBuildContext()
	ctx2.Registry = ctx1.Registry
	a2, err := New(ctx2)
	require.NoError(t, err)

	// The second assembler reuses the existing definitions instead of
	// redefining them.
	assert.Equal(t, a1.Properties(), a2.Properties())
	assert.Equal(t, 3, ctx1.Registry.Len())
}

func TestVerticalStack(t *testing.T) {
	a, ctx := newAssembler(t)
	_, err := a.Build(Config{UseQubitHousing: true, UseGroundPlane: true})
	require.NoError(t, err)

	byName := make(map[string]*assembly.Volume)
	for _, v := range ctx.Placements.Volumes() {
		byName[v.Name] = v
	}
	chip := byName["siliconChip"].ParentBounds()
	housing := byName["qubitHousing"].ParentBounds()
	gp := byName["groundPlane"].ParentBounds()

	// Chip top face just above the housing plane, film on the chip.
	assert.InDelta(t, housing.Max.Z+Eps, chip.Max.Z, 1e-9)
	assert.InDelta(t, chip.Max.Z, gp.Min.Z, 1e-9)
}
