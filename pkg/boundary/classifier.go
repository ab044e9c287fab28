package boundary

import (
	"fmt"

	"github.com/quartetsim/quartet/pkg/material"
)

// Classifier maps material roles to boundary properties through an
// explicit enumerated rule table. Classification is total over the
// bound roles: a bound role yields exactly one property id or an
// explicit no-interface outcome, and an unbound role is a
// configuration error. The table is keyed by the role enum assigned at
// volume creation, never by display-name matching, so materials with
// overlapping names (a conductor called "NiobiumVacuumGap", say)
// cannot match more than one rule.
type Classifier struct {
	rules map[material.Role]PropertyID
}

// NewClassifier returns a classifier with an empty rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: make(map[material.Role]PropertyID)}
}

// Bind adds or replaces the rule for a role. A zero id binds the role
// to the explicit no-interface outcome.
func (c *Classifier) Bind(role material.Role, id PropertyID) {
	c.rules[role] = id
}

// Classify resolves a role against the rule table. It returns the
// property id and true when the role needs an interface, zero and
// false when the role is bound to no interface, and an error when the
// role has no rule at all.
func (c *Classifier) Classify(role material.Role) (PropertyID, bool, error) {
	id, ok := c.rules[role]
	if !ok {
		return 0, false, fmt.Errorf("%w: %s", ErrUnclassifiableRole, role)
	}
	if id == 0 {
		return 0, false, nil
	}
	return id, true, nil
}
