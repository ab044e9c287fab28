package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/boundary"
	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

func builtinMaterial(t *testing.T, name string) *material.Material {
	t.Helper()
	m, err := material.NewBuiltinCatalog().Find(name)
	require.NoError(t, err)
	return m
}

func testVolume(t *testing.T, name string) *assembly.Volume {
	t.Helper()
	m := builtinMaterial(t, material.Niobium)
	return assembly.NewVolume(name, shape.Box{DX: 1, DY: 1, DZ: 1}, m, nil, geom.IdentityTransform())
}

func TestBoundaryTableDefineAndOrder(t *testing.T) {
	table := NewBoundaryTable()
	sub := testVolume(t, "substrate")
	leafA := testVolume(t, "leafA")
	leafB := testVolume(t, "leafB")

	_, err := table.Define("border_siliconChip_leafA", sub, leafA, 1)
	require.NoError(t, err)
	_, err = table.Define("border_siliconChip_leafB", sub, leafB, 2)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"border_siliconChip_leafA", "border_siliconChip_leafB"},
		table.Names())
	assert.Equal(t, 2, table.Len())

	iface := table.Lookup("border_siliconChip_leafB")
	require.NotNil(t, iface)
	assert.Equal(t, boundary.PropertyID(2), iface.Property)
	assert.Same(t, leafB, iface.VolumeB)
	assert.Nil(t, table.Lookup("border_siliconChip_missing"))
}

func TestBoundaryTableDuplicateName(t *testing.T) {
	table := NewBoundaryTable()
	sub := testVolume(t, "substrate")
	leaf := testVolume(t, "leaf")

	_, err := table.Define("border_siliconChip_leaf", sub, leaf, 1)
	require.NoError(t, err)
	_, err = table.Define("border_siliconChip_leaf", sub, leaf, 1)
	assert.ErrorIs(t, err, ErrDuplicateInterface)
	assert.Contains(t, err.Error(), "border_siliconChip_leaf")
	assert.Equal(t, 1, table.Len())
}

func TestBoundaryTableClearAll(t *testing.T) {
	table := NewBoundaryTable()
	sub := testVolume(t, "substrate")
	leaf := testVolume(t, "leaf")
	_, err := table.Define("border_siliconChip_leaf", sub, leaf, 1)
	require.NoError(t, err)

	table.ClearAll()
	assert.Zero(t, table.Len())

	// The name is free again after teardown.
	_, err = table.Define("border_siliconChip_leaf", sub, leaf, 1)
	assert.NoError(t, err)
}

func TestPlacementStoreRecordsAndCounts(t *testing.T) {
	si := builtinMaterial(t, material.Silicon)
	nb := builtinMaterial(t, material.Niobium)
	store := NewPlacementStore()

	parent, err := store.Place(shape.Box{DX: 10, DY: 10, DZ: 10},
		geom.IdentityTransform(), nil, "parent", si, false)
	require.NoError(t, err)
	_, err = store.Place(shape.Box{DX: 1, DY: 1, DZ: 1},
		geom.IdentityTransform(), parent, "child", nb, true)
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())
	counts := store.CountByRole()
	assert.Equal(t, 1, counts[material.RoleSubstrate])
	assert.Equal(t, 1, counts[material.RoleConductor])

	store.Reset()
	assert.Zero(t, store.Len())
}

func TestPlacementStoreOverlapPolicy(t *testing.T) {
	si := builtinMaterial(t, material.Silicon)
	nb := builtinMaterial(t, material.Niobium)

	place := func(store *PlacementStore) error {
		parent, err := store.Place(shape.Box{DX: 10, DY: 10, DZ: 10},
			geom.IdentityTransform(), nil, "parent", si, false)
		if err != nil {
			return err
		}
		if _, err := store.Place(shape.Box{DX: 2, DY: 2, DZ: 2},
			geom.IdentityTransform(), parent, "first", nb, true); err != nil {
			return err
		}
		_, err = store.Place(shape.Box{DX: 2, DY: 2, DZ: 2},
			geom.Translate(geom.Vec3{X: 1}), parent, "second", nb, true)
		return err
	}

	// Default policy warns and keeps going.
	require.NoError(t, place(NewPlacementStore()))

	strict := NewPlacementStore()
	strict.FatalOverlaps(true)
	err := place(strict)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverlap)
	assert.Contains(t, err.Error(), "second")
}

func TestPlacementStoreFaceContactAllowed(t *testing.T) {
	si := builtinMaterial(t, material.Silicon)
	nb := builtinMaterial(t, material.Niobium)

	store := NewPlacementStore()
	store.FatalOverlaps(true)
	parent, err := store.Place(shape.Box{DX: 10, DY: 10, DZ: 10},
		geom.IdentityTransform(), nil, "parent", si, false)
	require.NoError(t, err)
	_, err = store.Place(shape.Box{DX: 2, DY: 2, DZ: 2},
		geom.IdentityTransform(), parent, "left", nb, true)
	require.NoError(t, err)

	// Shares the x = 1 face exactly.
	_, err = store.Place(shape.Box{DX: 2, DY: 2, DZ: 2},
		geom.Translate(geom.Vec3{X: 2}), parent, "right", nb, true)
	assert.NoError(t, err)
}

func TestSensitiveRegistryReplacesByName(t *testing.T) {
	reg := NewSensitiveRegistry()
	gen1 := testVolume(t, "siliconChip")
	gen2 := testVolume(t, "siliconChip")

	var got string
	reg.Register(gen1, func(*assembly.Volume) { got = "one" })
	reg.Register(gen2, func(*assembly.Volume) { got = "two" })

	regions := reg.Regions()
	require.Len(t, regions, 1)
	assert.Same(t, gen2, regions[0].Volume)
	regions[0].Handler(gen2)
	assert.Equal(t, "two", got)
}

func TestLatticeTableClear(t *testing.T) {
	table := NewLatticeTable()
	table.Register(testVolume(t, "siliconChip"), MillerOrientation{H: 1})
	require.Len(t, table.Entries(), 1)

	table.Clear()
	assert.Empty(t, table.Entries())
}
