// Package boundary holds the interface-property catalog and the
// material-role classifier that together decide which physical
// behavior each substrate boundary gets. Properties are defined once
// per device lifetime and referenced by id from every build
// generation.
package boundary

// PropertyID identifies a registered boundary property. The zero value
// means "no property": classification outcomes and sensor attachment
// both treat it as an explicit absence rather than an error.
type PropertyID int

// ChannelProbs are the interaction probabilities for one carrier
// channel at a boundary.
type ChannelProbs struct {
	AbsProb  float64 // absorption probability
	ReflProb float64 // reflection probability
	SpecProb float64 // specular (vs diffuse) reflection probability
	MinK     float64 // minimum wavenumber for absorption
}

// ScatteringSpec carries the frequency-banded scattering coefficients
// for a boundary: one vector per channel (anharmonic decay, diffuse
// reflection, specular reflection) plus the two cutoff frequencies.
// The vectors are opaque to this package; physical plausibility is the
// caller's concern.
type ScatteringSpec struct {
	AnhCoeffs  []float64 // anharmonic decay, per frequency band
	DiffCoeffs []float64 // diffuse reflection, per frequency band
	SpecCoeffs []float64 // specular reflection, per frequency band

	AnhCutoffGHz  float64 // anharmonic decay cutoff
	ReflCutoffGHz float64 // reflection cutoff
}

// SensorParams describes the phonon sensor model bound to a boundary
// property. The defaults mirror the niobium thin-film sensor.
type SensorParams struct {
	FilmAbsorption      float64 // dimensionless
	FilmThicknessNm     float64 // nm
	GapEnergyEV         float64 // eV
	LowQPLimit          float64 // dimensionless
	PhononLifetimePs    float64 // ps
	PhononLifetimeSlope float64 // dimensionless
	VSoundKmPerS        float64 // km/s
	SubgapAbsorption    float64 // dimensionless
}

// DefaultSensorParams returns the niobium film sensor parameter set.
func DefaultSensorParams() SensorParams {
	return SensorParams{
		FilmAbsorption:      0.0,
		FilmThicknessNm:     90,
		GapEnergyEV:         1.6e-3,
		LowQPLimit:          3,
		PhononLifetimePs:    4.17,
		PhononLifetimeSlope: 0.29,
		VSoundKmPerS:        3.48,
		SubgapAbsorption:    0.0,
	}
}

// Property is one registered boundary-property definition.
type Property struct {
	ID   PropertyID
	Name string

	Charge ChannelProbs
	Phonon ChannelProbs

	Scattering ScatteringSpec

	// Sensor is the attached sensor-response model, nil when none is
	// attached.
	Sensor *SensorParams
}
