package device

import (
	"errors"
	"fmt"
)

// Flux-line variants selectable through Config. The curve variant is
// the canonical device; the straight and corner variants share the
// same catalog contract and remain buildable.
const (
	FluxVariantCurve    = "curve"
	FluxVariantStraight = "straight"
	FluxVariantCorner   = "corner"
)

// ErrBadConfig reports an invalid device configuration.
var ErrBadConfig = errors.New("device: invalid configuration")

// Config selects which optional device elements are built. Everything
// below UseGroundPlane is nested: those toggles are inert while the
// ground plane is off.
type Config struct {
	UseQubitHousing      bool `koanf:"useQubitHousing"`
	UseGroundPlane       bool `koanf:"useGroundPlane"`
	UseTransmissionLine  bool `koanf:"useTransmissionLine"`
	UseResonatorAssembly bool `koanf:"useResonatorAssembly"`
	UseFluxLines         bool `koanf:"useFluxLines"`
	UseQubitElements     bool `koanf:"useQubitElements"`

	// ResonatorCount is the number of resonator assemblies hung off the
	// transmission line, split between the top and bottom rows.
	ResonatorCount int `koanf:"resonatorCount"`

	// FluxLineVariant picks the flux-line blueprint.
	FluxLineVariant string `koanf:"fluxLineVariant"`
}

// DefaultConfig is the full four-qubit device.
func DefaultConfig() Config {
	return Config{
		UseQubitHousing:      true,
		UseGroundPlane:       true,
		UseTransmissionLine:  true,
		UseResonatorAssembly: true,
		UseFluxLines:         true,
		UseQubitElements:     true,
		ResonatorCount:       6,
		FluxLineVariant:      FluxVariantCurve,
	}
}

// Validate checks the configuration before any sink is touched.
func (c Config) Validate() error {
	if c.ResonatorCount < 0 {
		return fmt.Errorf("%w: resonator count %d", ErrBadConfig, c.ResonatorCount)
	}
	switch c.FluxLineVariant {
	case "", FluxVariantCurve, FluxVariantStraight, FluxVariantCorner:
		return nil
	default:
		return fmt.Errorf("%w: flux-line variant %q", ErrBadConfig, c.FluxLineVariant)
	}
}

// fluxVariant resolves the empty default.
func (c Config) fluxVariant() string {
	if c.FluxLineVariant == "" {
		return FluxVariantCurve
	}
	return c.FluxLineVariant
}
