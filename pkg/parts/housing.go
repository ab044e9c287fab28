package parts

import (
	"github.com/quartetsim/quartet/pkg/assembly"
	"github.com/quartetsim/quartet/pkg/material"
	"github.com/quartetsim/quartet/pkg/shape"
)

// Housing is the machined copper box the chip sits in. It is a single
// solid; the chip recess is implied by the z stacking the device layer
// computes, not carved out of the solid.
type Housing struct {
	Label string
	// Full outer extents.
	DimX, DimY, DimZ float64
}

var _ assembly.Blueprint = Housing{}

func (h Housing) Name() string { return h.Label }

func (h Housing) Build(b *assembly.Builder) error {
	_, err := b.Envelope(shape.Box{DX: h.DimX, DY: h.DimY, DZ: h.DimZ}, material.Copper)
	return err
}
