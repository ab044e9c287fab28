package boundary

import "github.com/quartetsim/quartet/pkg/material"

// Standard property names for the silicon-chip boundaries.
const (
	SiNbInterface     = "SiNbInterface"
	SiCopperInterface = "SiCopperInterface"
	SiVacuumInterface = "SiVacuumInterface"
)

// StandardSet holds the property ids for the three boundary classes
// the four-qubit device needs.
type StandardSet struct {
	SiNb     PropertyID
	SiCopper PropertyID
	SiVacuum PropertyID
}

// standardScattering returns the shared frequency-banded scattering
// spec. The coefficient values are placeholders pending measurement:
// anharmonic decay and specular reflection are switched off and the
// lowest diffuse band is pinned to 1.
func standardScattering() ScatteringSpec {
	return ScatteringSpec{
		AnhCoeffs:     []float64{0, 0, 0, 0, 0, 0},
		DiffCoeffs:    []float64{1, 0, 0, 0, 0, 0},
		SpecCoeffs:    []float64{0, 0, 0, 0, 0, 0},
		AnhCutoffGHz:  520,
		ReflCutoffGHz: 350,
	}
}

// DefineStandardProperties registers the three silicon-chip boundary
// properties and attaches the niobium film sensor to the Si-Nb
// boundary. It must be called exactly once per registry; a second call
// fails on the duplicate names.
func DefineStandardProperties(reg *Registry) (StandardSet, error) {
	var set StandardSet
	var err error

	set.SiNb, err = reg.Define(SiNbInterface,
		ChannelProbs{AbsProb: 1.0},
		ChannelProbs{AbsProb: 0.1, ReflProb: 1.0},
		standardScattering())
	if err != nil {
		return set, err
	}

	set.SiCopper, err = reg.Define(SiCopperInterface,
		ChannelProbs{AbsProb: 1.0},
		ChannelProbs{AbsProb: 1.0},
		standardScattering())
	if err != nil {
		return set, err
	}

	set.SiVacuum, err = reg.Define(SiVacuumInterface,
		ChannelProbs{ReflProb: 1.0},
		ChannelProbs{ReflProb: 1.0},
		standardScattering())
	if err != nil {
		return set, err
	}

	reg.AttachSensor(set.SiNb, DefaultSensorParams())
	return set, nil
}

// StandardClassifier returns the rule table for the four-qubit device:
// vacuum gaps share the Si-vacuum property, niobium features the Si-Nb
// property, the copper housing the Si-copper property, and the
// substrate itself has no self-interface.
func StandardClassifier(set StandardSet) *Classifier {
	c := NewClassifier()
	c.Bind(material.RoleVacuum, set.SiVacuum)
	c.Bind(material.RoleConductor, set.SiNb)
	c.Bind(material.RoleHousingMetal, set.SiCopper)
	c.Bind(material.RoleSubstrate, 0)
	return c
}
