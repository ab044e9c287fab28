package boundary

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateProperty is returned when a property name is defined
	// twice.
	ErrDuplicateProperty = errors.New("boundary: property already defined")

	// ErrUnclassifiableRole is returned when a material role has no
	// classification rule. This is a configuration error that aborts
	// the build.
	ErrUnclassifiableRole = errors.New("boundary: unclassifiable material role")
)

// Registry is the catalog of boundary-property definitions. Properties
// are defined once and live for the registry's lifetime; rebuilds
// reference the same ids rather than redefining them.
type Registry struct {
	props  []*Property
	byName map[string]PropertyID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]PropertyID)}
}

// Define registers a new property and returns its id. Defining the
// same name twice is an error.
func (r *Registry) Define(name string, charge, phonon ChannelProbs, scat ScatteringSpec) (PropertyID, error) {
	if _, exists := r.byName[name]; exists {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateProperty, name)
	}

	id := PropertyID(len(r.props) + 1)
	r.props = append(r.props, &Property{
		ID:         id,
		Name:       name,
		Charge:     charge,
		Phonon:     phonon,
		Scattering: scat,
	})
	r.byName[name] = id
	return id, nil
}

// Get returns the property with the given id, or nil.
func (r *Registry) Get(id PropertyID) *Property {
	if id < 1 || int(id) > len(r.props) {
		return nil
	}
	return r.props[id-1]
}

// Lookup returns the property with the given name, or nil.
func (r *Registry) Lookup(name string) *Property {
	id, ok := r.byName[name]
	if !ok {
		return nil
	}
	return r.Get(id)
}

// AttachSensor binds a sensor model to the property. Attachment is
// idempotent: re-attaching replaces the previous model. A zero or
// unknown id is a silent no-op, mirroring the null-surface check in
// the legacy sensor hookup.
func (r *Registry) AttachSensor(id PropertyID, params SensorParams) {
	p := r.Get(id)
	if p == nil {
		return
	}
	sp := params
	p.Sensor = &sp
}

// Properties returns all registered properties in definition order.
func (r *Registry) Properties() []*Property {
	out := make([]*Property, len(r.props))
	copy(out, r.props)
	return out
}

// Len returns the number of registered properties.
func (r *Registry) Len() int {
	return len(r.props)
}
