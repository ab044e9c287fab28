package device

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/geom"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

// PlacementStore creates and records every placed volume, and runs the
// axis-aligned sibling-overlap check when a placement requests it.
// Overlaps are reported as warnings unless FatalOverlaps upgrades them
// to errors; the policy lives here, not in the assembler.
type PlacementStore struct {
	volumes       []*assembly.Volume
	fatalOverlaps bool
}

var _ assembly.Placer = (*PlacementStore)(nil)

// NewPlacementStore returns an empty store with the warning policy.
func NewPlacementStore() *PlacementStore {
	return &PlacementStore{}
}

// FatalOverlaps upgrades overlap reports from warnings to errors.
func (s *PlacementStore) FatalOverlaps(on bool) {
	s.fatalOverlaps = on
}

// Place creates a volume under parent and records it. With
// checkOverlap set, the new volume's bounds are tested against every
// sibling already placed under the same parent.
func (s *PlacementStore) Place(sh shape.Shape, at geom.Transform, parent *assembly.Volume, name string, m *material.Material, checkOverlap bool) (*assembly.Volume, error) {
	v := assembly.NewVolume(name, sh, m, parent, at)
	s.volumes = append(s.volumes, v)

	if checkOverlap && parent != nil {
		bounds := v.ParentBounds()
		for _, sib := range parent.Children() {
			if sib == v {
				continue
			}
			if bounds.Intersects(sib.ParentBounds()) {
				if s.fatalOverlaps {
					return nil, fmt.Errorf("%w: %q and %q", ErrOverlap, name, sib.Name)
				}
				logrus.Warnf("placement: %q overlaps sibling %q", name, sib.Name)
			}
		}
	}
	return v, nil
}

// Reset forgets every recorded volume.
func (s *PlacementStore) Reset() {
	s.volumes = nil
}

// Volumes returns the recorded volumes in placement order.
func (s *PlacementStore) Volumes() []*assembly.Volume {
	out := make([]*assembly.Volume, len(s.volumes))
	copy(out, s.volumes)
	return out
}

// Len returns the number of recorded volumes.
func (s *PlacementStore) Len() int {
	return len(s.volumes)
}

// CountByRole tallies recorded volumes by material role.
func (s *PlacementStore) CountByRole() map[material.Role]int {
	counts := make(map[material.Role]int)
	for _, v := range s.volumes {
		if v.Material == nil {
			continue
		}
		counts[v.Material.Role]++
	}
	return counts
}
